package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner atomicidad en memoria: serializa escritores con un mutex propio,
// toma una instantánea del estado mutable antes de ejecutar el callback y
// la restaura si falla. Mismo contrato que el TxRunner de PostgreSQL:
// commit total o rollback total.
type TxRunner struct {
	s    *Store
	txMu sync.Mutex
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos atados al almacén; restaura la instantánea si fn
// devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	stockRepo repository.StockRepository,
	priceRepo repository.PartPriceRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.s.takeSnapshot()
	if err := fn(NewTransactionRepository(r.s), NewStockRepository(r.s), NewPartPriceRepository(r.s)); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
