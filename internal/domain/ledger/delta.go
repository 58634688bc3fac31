package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockDelta efecto con signo de una transacción sobre una bodega.
type StockDelta struct {
	WarehouseID string
	Delta       decimal.Decimal
}

// Deltas mapea una transacción a sus efectos de stock. Es el ÚNICO punto del
// sistema que conoce la dirección de mutación por tipo; el mutador y la
// reconciliación lo comparten para que no existan dos fuentes de verdad.
//
//	CREATION:    +cantidad en destino
//	TRANSFER:    -cantidad en origen, +cantidad en destino
//	CONSUMPTION: -cantidad en origen
//	ADJUSTMENT:  ±cantidad en origen según sentido
func Deltas(t *entity.Transaction) ([]StockDelta, error) {
	switch t.Kind {
	case entity.KindCreation:
		return []StockDelta{{WarehouseID: t.ToWarehouseID, Delta: t.Quantity}}, nil
	case entity.KindTransfer:
		return []StockDelta{
			{WarehouseID: t.FromWarehouseID, Delta: t.Quantity.Neg()},
			{WarehouseID: t.ToWarehouseID, Delta: t.Quantity},
		}, nil
	case entity.KindConsumption:
		return []StockDelta{{WarehouseID: t.FromWarehouseID, Delta: t.Quantity.Neg()}}, nil
	case entity.KindAdjustment:
		d := t.Quantity
		if t.Direction == entity.AdjustmentDecrease {
			d = d.Neg()
		}
		return []StockDelta{{WarehouseID: t.FromWarehouseID, Delta: d}}, nil
	}
	return nil, domain.NewRuleError("KIND_UNKNOWN", "kind", "tipo de transacción desconocido")
}

// DeltaFor devuelve el efecto neto de la transacción sobre una bodega
// concreta (cero si no la toca). Usado por la reconciliación al reproducir
// el historial de un par bodega+repuesto.
func DeltaFor(t *entity.Transaction, warehouseID string) (decimal.Decimal, error) {
	deltas, err := Deltas(t)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, d := range deltas {
		if d.WarehouseID == warehouseID {
			sum = sum.Add(d.Delta)
		}
	}
	return sum, nil
}
