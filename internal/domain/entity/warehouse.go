package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
// La organización dueña decide, entre otras cosas, si un traslado es
// inter-organización y requiere aprobación.
type Warehouse struct {
	ID             string
	OrganizationID string
	Name           string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
