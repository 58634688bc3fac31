package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner en memoria: mismo contrato que el de PostgreSQL, commit total o
// rollback total vía instantánea del estado mutable.
// ──────────────────────────────────────────────────────────────────────────────

var errFallo = errors.New("fallo simulado")

func nuevaTx(id string) *entity.Transaction {
	t := entity.NewCreation("parte-1", "bodega-1", "unidad", "user-1", decimal.NewFromInt(5))
	t.ID = id
	t.CreatedAt = time.Now()
	return t
}

func TestTxRunner_CommitPersisteTodo(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	err := runner.Run(context.Background(), func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		_ repository.PartPriceRepository,
	) error {
		if err := txRepo.Create(nuevaTx("tx-1")); err != nil {
			return err
		}
		return stockRepo.Upsert(&entity.StockRecord{
			WarehouseID:  "bodega-1",
			PartID:       "parte-1",
			CurrentStock: decimal.NewFromInt(5),
			UnitMeasure:  "unidad",
		})
	})
	require.NoError(t, err)

	tx, err := memory.NewTransactionRepository(store).GetByID("tx-1")
	require.NoError(t, err)
	assert.NotNil(t, tx)
	rec, err := memory.NewStockRepository(store).Get("bodega-1", "parte-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.CurrentStock.Equal(decimal.NewFromInt(5)))
}

func TestTxRunner_ErrorRestauraEstado(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	// Estado previo que el rollback debe preservar.
	stockRepo := memory.NewStockRepository(store)
	require.NoError(t, stockRepo.Upsert(&entity.StockRecord{
		WarehouseID:  "bodega-1",
		PartID:       "parte-1",
		CurrentStock: decimal.NewFromInt(3),
		UnitMeasure:  "unidad",
	}))

	err := runner.Run(context.Background(), func(
		txRepo repository.TransactionRepository,
		sr repository.StockRepository,
		priceRepo repository.PartPriceRepository,
	) error {
		if err := txRepo.Create(nuevaTx("tx-1")); err != nil {
			return err
		}
		if err := sr.Upsert(&entity.StockRecord{
			WarehouseID:  "bodega-1",
			PartID:       "parte-1",
			CurrentStock: decimal.NewFromInt(99),
			UnitMeasure:  "unidad",
		}); err != nil {
			return err
		}
		if err := priceRepo.Create(&entity.PartPrice{ID: "pr-1", PartID: "parte-1", UnitPrice: decimal.NewFromInt(100)}); err != nil {
			return err
		}
		return errFallo
	})
	assert.ErrorIs(t, err, errFallo)

	// Nada del callback sobrevivió.
	tx, err := memory.NewTransactionRepository(store).GetByID("tx-1")
	require.NoError(t, err)
	assert.Nil(t, tx)
	rec, err := stockRepo.Get("bodega-1", "parte-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.CurrentStock.Equal(decimal.NewFromInt(3)))
	price, err := memory.NewPartPriceRepository(store).GetLatest("parte-1")
	require.NoError(t, err)
	assert.Nil(t, price)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Run(ctx, func(
		repository.TransactionRepository,
		repository.StockRepository,
		repository.PartPriceRepository,
	) error {
		t.Fatal("el callback no debe ejecutarse con contexto cancelado")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMarkApproved_SoloUnaVez(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewTransactionRepository(store)

	tx := nuevaTx("tx-1")
	tx.RequiresApproval = true
	tx.ApprovalStatus = entity.ApprovalPending
	require.NoError(t, repo.Create(tx))

	require.NoError(t, repo.MarkApproved("tx-1"))
	assert.Error(t, repo.MarkApproved("tx-1"), "el flip PENDING → APPROVED ocurre exactamente una vez")

	got, err := repo.GetByID("tx-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalApproved, got.ApprovalStatus)
}
