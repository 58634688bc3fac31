package ledger

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro: o se
// confirman todas las mutaciones de stock y todos los registros de
// transacción, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		priceRepo repository.PartPriceRepository,
	) error) error
}
