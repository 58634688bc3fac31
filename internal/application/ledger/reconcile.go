package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	domledger "github.com/jhoicas/inventario-ledger/internal/domain/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// ReconcileUseCase recalcula el stock de un par bodega+repuesto
// reproduciendo su historial completo de transacciones y lo compara contra
// la caché viva. Solo lectura: una discrepancia se reporta, nunca se
// corrige en silencio, para que un operador investigue rutas de mutación
// fuera de banda.
type ReconcileUseCase struct {
	txRepo    repository.TransactionRepository
	stockRepo repository.StockRepository
}

// NewReconcileUseCase construye el caso de uso con repos de solo lectura
// (atados al pool, sin transacción: la reconciliación no toma bloqueos).
func NewReconcileUseCase(txRepo repository.TransactionRepository, stockRepo repository.StockRepository) *ReconcileUseCase {
	return &ReconcileUseCase{txRepo: txRepo, stockRepo: stockRepo}
}

// ReconcileResult reporte de reconciliación de un par bodega+repuesto.
type ReconcileResult struct {
	WarehouseID       string
	PartID            string
	CurrentStock      decimal.Decimal // caché viva (cero si no hay registro)
	CalculatedBalance decimal.Decimal // derivado del historial
	Discrepancy       decimal.Decimal // CurrentStock - CalculatedBalance
	Reconciled        bool            // true si la discrepancia es cero
}

// Reconcile reproduce toda transacción APLICADA que toque el par (como
// origen o destino según tipo), suma los deltas con el mismo mapeo que usa
// el mutador y compara contra la caché. Las PENDING no cuentan: aún no
// tienen efecto sobre stock.
//
// No serializa contra escritores concurrentes: la lectura del stock vivo y
// el replay pueden reflejar instantes distintos. Aceptable porque la
// reconciliación es diagnóstica, no correctiva.
func (uc *ReconcileUseCase) Reconcile(_ context.Context, warehouseID, partID string) (*ReconcileResult, error) {
	txs, err := uc.txRepo.ListByWarehouseAndPart(warehouseID, partID)
	if err != nil {
		return nil, err
	}
	balance := decimal.Zero
	for _, t := range txs {
		if !t.Applied() {
			continue
		}
		delta, err := domledger.DeltaFor(t, warehouseID)
		if err != nil {
			return nil, err
		}
		balance = balance.Add(delta)
	}

	current := decimal.Zero
	record, err := uc.stockRepo.Get(warehouseID, partID)
	if err != nil {
		return nil, err
	}
	if record != nil {
		current = record.CurrentStock
	}

	discrepancy := current.Sub(balance)
	return &ReconcileResult{
		WarehouseID:       warehouseID,
		PartID:            partID,
		CurrentStock:      current,
		CalculatedBalance: balance,
		Discrepancy:       discrepancy,
		Reconciled:        discrepancy.IsZero(),
	}, nil
}
