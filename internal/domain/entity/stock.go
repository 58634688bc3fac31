package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord stock actual de un repuesto en una bodega (caché materializada,
// clave única bodega+repuesto). Derivable por completo del historial de
// transacciones; CurrentStock nunca puede quedar negativo tras un commit.
type StockRecord struct {
	WarehouseID  string
	PartID       string
	CurrentStock decimal.Decimal
	UnitMeasure  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
