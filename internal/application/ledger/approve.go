package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// ApproveUseCase procesa la aprobación de una transacción retenida: aplica
// su efecto de stock exactamente una vez y flipa PENDING → APPROVED, todo
// en una transacción de BD. También lista la cola de retenidas para el
// aprobador.
type ApproveUseCase struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository // atado al pool, para lecturas
	mutator  *StockMutator
}

// NewApproveUseCase construye el caso de uso.
func NewApproveUseCase(txRunner TxRunner, txRepo repository.TransactionRepository) *ApproveUseCase {
	return &ApproveUseCase{txRunner: txRunner, txRepo: txRepo, mutator: NewStockMutator()}
}

// ListPending lista las transacciones retenidas en orden de llegada.
func (uc *ApproveUseCase) ListPending(_ context.Context, limit, offset int) ([]*entity.Transaction, error) {
	return uc.txRepo.ListPending(limit, offset)
}

// ApproveResult resultado de la aprobación.
type ApproveResult struct {
	TransactionID string
	Status        string // APPROVED
}

// Approve carga la transacción y la aplica. Rechazos:
//   - no existe: ErrNotFound
//   - nunca requirió aprobación, o ya no está PENDING: ErrApprovalState
//     (evita la doble aplicación del efecto de stock)
//   - el mutador falla (ej. el stock bajó entretanto): la operación aborta
//     completa, la transacción sigue PENDING y el error sube al caller
//     para resolución manual
//
// La carga y el flip ocurren dentro de la MISMA tx de BD: el respaldo
// MarkApproved a nivel de fila cubre dos aprobaciones concurrentes.
func (uc *ApproveUseCase) Approve(ctx context.Context, transactionID string) (*ApproveResult, error) {
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		_ repository.PartPriceRepository,
	) error {
		t, err := txRepo.GetByID(transactionID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if !t.RequiresApproval || t.ApprovalStatus != entity.ApprovalPending {
			return domain.ErrApprovalState
		}
		if err := uc.mutator.ApplyTransaction(stockRepo, t, now); err != nil {
			return err
		}
		return txRepo.MarkApproved(transactionID)
	})
	if err != nil {
		return nil, err
	}
	return &ApproveResult{TransactionID: transactionID, Status: string(entity.ApprovalApproved)}, nil
}
