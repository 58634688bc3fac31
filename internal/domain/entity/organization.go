package entity

import "time"

// Organization agrupa bodegas y usuarios (multi-tenant).
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
