package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación: reproducir el historial debe dar exactamente el stock
// cacheado. Solo lectura: nunca corrige.
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_HistorialMixtoSinDiscrepancia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Historial: +100, traslado -30, consumo -20, ajuste -5. Stock final 45.
	_, err := f.submit.Submit(ctx, creationInput("100"))
	require.NoError(t, err)
	_, err = f.submit.Submit(ctx, appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindTransfer),
		PartID:          fxParte,
		Quantity:        dec("30"),
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		ToWarehouseID:   fxBodega2,
		PerformedBy:     fxActor,
	})
	require.NoError(t, err)
	_, err = f.submit.Submit(ctx, appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindConsumption),
		PartID:          fxParte,
		Quantity:        dec("20"),
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		MachineID:       fxMaquina,
		PerformedBy:     fxActor,
	})
	require.NoError(t, err)
	_, err = f.submit.Submit(ctx, appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindAdjustment),
		PartID:          fxParte,
		Quantity:        dec("-5"),
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		PerformedBy:     fxActor,
	})
	require.NoError(t, err)

	res, err := f.reconcile.Reconcile(ctx, fxBodega1, fxParte)
	require.NoError(t, err)
	assert.True(t, res.Reconciled)
	assert.True(t, res.CurrentStock.Equal(dec("45")))
	assert.True(t, res.CalculatedBalance.Equal(dec("45")))
	assert.True(t, res.Discrepancy.IsZero())

	// La bodega destino del traslado también cuadra.
	res, err = f.reconcile.Reconcile(ctx, fxBodega2, fxParte)
	require.NoError(t, err)
	assert.True(t, res.Reconciled)
	assert.True(t, res.CalculatedBalance.Equal(dec("30")))
}

func TestReconcile_PendientesNoCuentan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.submit.Submit(ctx, creationInput("10"))
	require.NoError(t, err)
	res, err := f.submit.Submit(ctx, creationInput("150"))
	require.NoError(t, err)
	require.Equal(t, appledger.StatusPending, res.Status)

	rep, err := f.reconcile.Reconcile(ctx, fxBodega1, fxParte)
	require.NoError(t, err)
	assert.True(t, rep.Reconciled, "la retenida no aporta al balance hasta aprobarse")
	assert.True(t, rep.CalculatedBalance.Equal(dec("10")))

	// Tras aprobar, la transacción entra al replay y el par sigue cuadrado.
	_, err = f.approve.Approve(ctx, res.TransactionID)
	require.NoError(t, err)
	rep, err = f.reconcile.Reconcile(ctx, fxBodega1, fxParte)
	require.NoError(t, err)
	assert.True(t, rep.Reconciled)
	assert.True(t, rep.CalculatedBalance.Equal(dec("160")))
}

func TestReconcile_ParSinHistorialNiRegistro(t *testing.T) {
	f := newFixture(t)

	res, err := f.reconcile.Reconcile(context.Background(), fxBodega1, fxParte)
	require.NoError(t, err)
	assert.True(t, res.Reconciled)
	assert.True(t, res.CurrentStock.IsZero())
	assert.True(t, res.CalculatedBalance.IsZero())
}

func TestReconcile_DetectaMutacionFueraDeBanda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.submit.Submit(ctx, creationInput("50"))
	require.NoError(t, err)

	// Simular una escritura que no pasó por el libro.
	rec, err := f.stockRepo.Get(fxBodega1, fxParte)
	require.NoError(t, err)
	rec.CurrentStock = dec("47")
	rec.UpdatedAt = time.Now()
	require.NoError(t, f.stockRepo.Upsert(rec))

	res, err := f.reconcile.Reconcile(ctx, fxBodega1, fxParte)
	require.NoError(t, err)
	assert.False(t, res.Reconciled)
	assert.True(t, res.CurrentStock.Equal(dec("47")))
	assert.True(t, res.CalculatedBalance.Equal(dec("50")))
	assert.True(t, res.Discrepancy.Equal(dec("-3")), "discrepancia = caché - balance")

	// Diagnóstico, no corrección: el stock cacheado queda como estaba.
	rec, err = f.stockRepo.Get(fxBodega1, fxParte)
	require.NoError(t, err)
	assert.True(t, rec.CurrentStock.Equal(dec("47")))
}
