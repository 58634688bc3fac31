package entity

import "time"

// Part representa un repuesto o insumo controlado por el libro de inventario.
// El precio unitario se maneja aparte en PartPrice (historial).
type Part struct {
	ID             string
	OrganizationID string
	Code           string // código único por organización
	Name           string
	Description    string
	UnitMeasure    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
