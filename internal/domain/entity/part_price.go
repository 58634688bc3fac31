package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartPrice precio unitario conocido de un repuesto en un momento dado.
// El registro más reciente alimenta la regla de alto valor de la compuerta
// de aprobación.
type PartPrice struct {
	ID          string
	PartID      string
	UnitPrice   decimal.Decimal
	EffectiveAt time.Time
	CreatedAt   time.Time
}
