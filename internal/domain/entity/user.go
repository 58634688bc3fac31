package entity

import "time"

// User actor que ejecuta transacciones. La autenticación vive fuera del
// sistema; aquí solo interesa su existencia como referencia.
type User struct {
	ID             string
	OrganizationID string
	Email          string
	Name           string
	Role           string // "admin" | "supervisor" | "bodeguero"
	CreatedAt      time.Time
}
