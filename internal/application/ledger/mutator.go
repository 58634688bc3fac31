package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	domledger "github.com/jhoicas/inventario-ledger/internal/domain/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// StockMutator único punto de mutación de stock del sistema. Siempre opera
// sobre un StockRepository atado a la transacción de BD en curso: el
// bloqueo de fila (SELECT FOR UPDATE) más el commit atómico del TxRunner
// son lo que impide que dos mutaciones concurrentes sobre el mismo par
// lean stock viejo y lo empujen a negativo.
type StockMutator struct{}

// NewStockMutator construye el mutador.
func NewStockMutator() *StockMutator {
	return &StockMutator{}
}

// Apply suma un delta con signo al stock de bodega+repuesto.
//   - sin registro y delta negativo: ErrInsufficientStock (no se crea stock
//     negativo de la nada)
//   - sin registro y delta no negativo: crea el registro perezosamente
//   - resultado negativo: ErrInsufficientStock, sin escritura
func (m *StockMutator) Apply(stockRepo repository.StockRepository, warehouseID, partID, unitMeasure string, delta decimal.Decimal, now time.Time) (*entity.StockRecord, error) {
	record, err := stockRepo.GetForUpdate(warehouseID, partID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		if delta.IsNegative() {
			return nil, domain.ErrInsufficientStock
		}
		record = &entity.StockRecord{
			WarehouseID:  warehouseID,
			PartID:       partID,
			CurrentStock: decimal.Zero,
			UnitMeasure:  unitMeasure,
			CreatedAt:    now,
		}
	}
	newStock := record.CurrentStock.Add(delta)
	if newStock.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}
	record.CurrentStock = newStock
	record.UpdatedAt = now
	if err := stockRepo.Upsert(record); err != nil {
		return nil, err
	}
	return record, nil
}

// ApplyTransaction aplica todos los deltas de una transacción en orden.
// Cualquier fallo deja la tx de BD condenada al rollback del caller.
func (m *StockMutator) ApplyTransaction(stockRepo repository.StockRepository, t *entity.Transaction, now time.Time) error {
	deltas, err := domledger.Deltas(t)
	if err != nil {
		return err
	}
	for _, d := range deltas {
		if _, err := m.Apply(stockRepo, d.WarehouseID, t.PartID, t.UnitMeasure, d.Delta, now); err != nil {
			return err
		}
	}
	return nil
}
