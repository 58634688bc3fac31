package entity

import "time"

// Machine equipo al que puede imputarse un consumo de repuestos.
type Machine struct {
	ID             string
	OrganizationID string
	Code           string
	Name           string
	Location       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
