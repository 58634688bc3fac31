package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	domledger "github.com/jhoicas/inventario-ledger/internal/domain/ledger"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: almacén en memoria con una organización, un actor, dos bodegas
// propias, una bodega de otra organización, una máquina y un repuesto.
// ──────────────────────────────────────────────────────────────────────────────

const (
	fxOrg      = "org-1"
	fxOrgAjena = "org-2"
	fxActor    = "user-1"
	fxBodega1  = "bodega-1"
	fxBodega2  = "bodega-2"
	fxBodega3  = "bodega-ajena"
	fxMaquina  = "maquina-1"
	fxParte    = "parte-1"
	fxUnidad   = "unidad"
)

type fixture struct {
	store     *memory.Store
	submit    *appledger.SubmitUseCase
	approve   *appledger.ApproveUseCase
	reconcile *appledger.ReconcileUseCase
	stockRepo *memory.StockRepo
	txRepo    *memory.TransactionRepo
	priceRepo *memory.PartPriceRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.SeedOrganization(entity.Organization{ID: fxOrg, Name: "Minera Andina"})
	store.SeedOrganization(entity.Organization{ID: fxOrgAjena, Name: "Contratista Externo"})
	store.SeedUser(entity.User{ID: fxActor, OrganizationID: fxOrg, Name: "Bodeguero", Role: "bodeguero"})

	warehouseRepo := memory.NewWarehouseRepository(store)
	require.NoError(t, warehouseRepo.Create(&entity.Warehouse{ID: fxBodega1, OrganizationID: fxOrg, Name: "Bodega Central"}))
	require.NoError(t, warehouseRepo.Create(&entity.Warehouse{ID: fxBodega2, OrganizationID: fxOrg, Name: "Bodega Taller"}))
	require.NoError(t, warehouseRepo.Create(&entity.Warehouse{ID: fxBodega3, OrganizationID: fxOrgAjena, Name: "Bodega Contratista"}))

	partRepo := memory.NewPartRepository(store)
	require.NoError(t, partRepo.Create(&entity.Part{ID: fxParte, OrganizationID: fxOrg, Code: "FIL-001", Name: "Filtro de aceite", UnitMeasure: fxUnidad}))

	machineRepo := memory.NewMachineRepository(store)
	require.NoError(t, machineRepo.Create(&entity.Machine{ID: fxMaquina, OrganizationID: fxOrg, Code: "EXC-01", Name: "Excavadora"}))

	txRunner := memory.NewTxRunner(store)
	priceRepo := memory.NewPartPriceRepository(store)
	submit := appledger.NewSubmitUseCase(
		txRunner, partRepo, warehouseRepo, machineRepo,
		memory.NewUserRepository(store), priceRepo,
		domledger.DefaultThresholds(),
	)
	txRepo := memory.NewTransactionRepository(store)
	stockRepo := memory.NewStockRepository(store)
	return &fixture{
		store:     store,
		submit:    submit,
		approve:   appledger.NewApproveUseCase(txRunner, txRepo),
		reconcile: appledger.NewReconcileUseCase(txRepo, stockRepo),
		stockRepo: stockRepo,
		txRepo:    txRepo,
		priceRepo: priceRepo,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func creationInput(quantity string) appledger.TransactionInput {
	return appledger.TransactionInput{
		OrganizationID: fxOrg,
		Kind:           string(entity.KindCreation),
		PartID:         fxParte,
		Quantity:       dec(quantity),
		UnitMeasure:    fxUnidad,
		ToWarehouseID:  fxBodega1,
		PerformedBy:    fxActor,
	}
}

// stockDe lee el stock actual del par (cero si no hay registro).
func (f *fixture) stockDe(t *testing.T, warehouseID string) decimal.Decimal {
	t.Helper()
	rec, err := f.stockRepo.Get(warehouseID, fxParte)
	require.NoError(t, err)
	if rec == nil {
		return decimal.Zero
	}
	return rec.CurrentStock
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío individual
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_CreationAplicaStock(t *testing.T) {
	f := newFixture(t)

	res, err := f.submit.Submit(context.Background(), creationInput("10"))
	require.NoError(t, err)
	assert.Equal(t, appledger.StatusApplied, res.Status)
	assert.NotEmpty(t, res.TransactionID)
	assert.True(t, f.stockDe(t, fxBodega1).Equal(dec("10")))

	// La transacción quedó registrada sin requerir aprobación.
	tx, err := f.txRepo.GetByID(res.TransactionID)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.False(t, tx.RequiresApproval)
	assert.Equal(t, entity.ApprovalNone, tx.ApprovalStatus)
}

func TestSubmit_TransferMueveStockEntreBodegas(t *testing.T) {
	f := newFixture(t)
	_, err := f.submit.Submit(context.Background(), creationInput("10"))
	require.NoError(t, err)

	res, err := f.submit.Submit(context.Background(), appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindTransfer),
		PartID:          fxParte,
		Quantity:        dec("10"),
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		ToWarehouseID:   fxBodega2,
		PerformedBy:     fxActor,
	})
	require.NoError(t, err)
	assert.Equal(t, appledger.StatusApplied, res.Status)
	assert.True(t, f.stockDe(t, fxBodega1).IsZero())
	assert.True(t, f.stockDe(t, fxBodega2).Equal(dec("10")))
}

func TestSubmit_ConsumptionSinStockSuficiente(t *testing.T) {
	f := newFixture(t)
	_, err := f.submit.Submit(context.Background(), creationInput("10"))
	require.NoError(t, err)

	_, err = f.submit.Submit(context.Background(), appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindConsumption),
		PartID:          fxParte,
		Quantity:        dec("15"),
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		MachineID:       fxMaquina,
		PerformedBy:     fxActor,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// Rollback total: el stock sigue intacto y el rechazo no dejó registro.
	assert.True(t, f.stockDe(t, fxBodega1).Equal(dec("10")))
	txs, err := f.txRepo.ListByWarehouseAndPart(fxBodega1, fxParte)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "solo la creación inicial queda registrada")
}

func TestSubmit_ConsumptionSobreParSinRegistro(t *testing.T) {
	f := newFixture(t)

	_, err := f.submit.Submit(context.Background(), appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindConsumption),
		PartID:          fxParte,
		Quantity:        dec("1"),
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		PerformedBy:     fxActor,
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock), "sin registro de stock un delta negativo se rechaza")

	// Y no se creó registro alguno por el intento.
	rec, err := f.stockRepo.Get(fxBodega1, fxParte)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSubmit_AdjustmentNegativoNormalizado(t *testing.T) {
	f := newFixture(t)
	_, err := f.submit.Submit(context.Background(), creationInput("10"))
	require.NoError(t, err)

	res, err := f.submit.Submit(context.Background(), appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindAdjustment),
		PartID:          fxParte,
		Quantity:        dec("-4"), // merma de conteo físico
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		PerformedBy:     fxActor,
	})
	require.NoError(t, err)
	assert.Equal(t, appledger.StatusApplied, res.Status)
	assert.True(t, f.stockDe(t, fxBodega1).Equal(dec("6")))

	tx, err := f.txRepo.GetByID(res.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentDecrease, tx.Direction)
	assert.True(t, tx.Quantity.Equal(dec("4")), "el registro guarda cantidad positiva + sentido")
}

func TestSubmit_ValidacionEstructuralRechazaSinEfectos(t *testing.T) {
	f := newFixture(t)

	in := creationInput("5")
	in.FromWarehouseID = fxBodega2 // ilegal para CREATION

	_, err := f.submit.Submit(context.Background(), in)
	require.Error(t, err)
	var re *domain.RuleError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "FROM_WAREHOUSE_FORBIDDEN", re.Code)
	assert.True(t, f.stockDe(t, fxBodega1).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Existencia referencial
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_ReferenciasInexistentes(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		nombre string
		mutar  func(*appledger.TransactionInput)
		code   string
	}{
		{"repuesto", func(in *appledger.TransactionInput) { in.PartID = "no-existe" }, "PART_NOT_FOUND"},
		{"bodega", func(in *appledger.TransactionInput) { in.ToWarehouseID = "no-existe" }, "WAREHOUSE_NOT_FOUND"},
		{"actor", func(in *appledger.TransactionInput) { in.PerformedBy = "no-existe" }, "ACTOR_NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			in := creationInput("5")
			tc.mutar(&in)
			_, err := f.submit.Submit(context.Background(), in)
			require.Error(t, err)
			var re *domain.RuleError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tc.code, re.Code)
		})
	}
}

func TestSubmit_MaquinaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.submit.Submit(context.Background(), creationInput("10"))
	require.NoError(t, err)

	_, err = f.submit.Submit(context.Background(), appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindConsumption),
		PartID:          fxParte,
		Quantity:        dec("1"),
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		MachineID:       "no-existe",
		PerformedBy:     fxActor,
	})
	var re *domain.RuleError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "MACHINE_NOT_FOUND", re.Code)
}

func TestSubmit_RepuestoDeOtraOrganizacion(t *testing.T) {
	f := newFixture(t)
	in := creationInput("5")
	in.OrganizationID = fxOrgAjena

	_, err := f.submit.Submit(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestSubmit_MaquinaDeOtraOrganizacion(t *testing.T) {
	f := newFixture(t)
	machineRepo := memory.NewMachineRepository(f.store)
	require.NoError(t, machineRepo.Create(&entity.Machine{
		ID: "maquina-ajena", OrganizationID: fxOrgAjena, Code: "EXC-99", Name: "Excavadora Contratista",
	}))
	_, err := f.submit.Submit(context.Background(), appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindConsumption),
		PartID:          fxParte,
		Quantity:        dec("1"),
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		MachineID:       "maquina-ajena",
		PerformedBy:     fxActor,
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// ──────────────────────────────────────────────────────────────────────────────
// Compuerta de aprobación en el envío
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_VolumenAltoQuedaPendiente(t *testing.T) {
	f := newFixture(t)

	res, err := f.submit.Submit(context.Background(), creationInput("101"))
	require.NoError(t, err)
	assert.Equal(t, appledger.StatusPending, res.Status)

	// Sin efecto de stock hasta aprobar.
	assert.True(t, f.stockDe(t, fxBodega1).IsZero())

	tx, err := f.txRepo.GetByID(res.TransactionID)
	require.NoError(t, err)
	assert.True(t, tx.RequiresApproval)
	assert.Equal(t, entity.ApprovalPending, tx.ApprovalStatus)
}

func TestSubmit_TransferEntreOrganizacionesQuedaPendiente(t *testing.T) {
	f := newFixture(t)
	_, err := f.submit.Submit(context.Background(), creationInput("10"))
	require.NoError(t, err)

	res, err := f.submit.Submit(context.Background(), appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindTransfer),
		PartID:          fxParte,
		Quantity:        dec("5"),
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		ToWarehouseID:   fxBodega3, // otra organización
		PerformedBy:     fxActor,
	})
	require.NoError(t, err)
	assert.Equal(t, appledger.StatusPending, res.Status)
	assert.True(t, f.stockDe(t, fxBodega1).Equal(dec("10")), "el traslado pendiente no mueve stock")
}

func TestSubmit_RepuestoDeAltoValorQuedaPendiente(t *testing.T) {
	f := newFixture(t)

	// CREATION con precio alto registra el historial y se aplica (la regla
	// de alto valor mira el precio YA conocido, no el que trae el ítem).
	precio := dec("750000")
	in := creationInput("10")
	in.UnitPrice = &precio
	res, err := f.submit.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, appledger.StatusApplied, res.Status)

	// Con el precio en el historial, hasta un consumo de 1 unidad se retiene.
	res, err = f.submit.Submit(context.Background(), appledger.TransactionInput{
		OrganizationID:  fxOrg,
		Kind:            string(entity.KindConsumption),
		PartID:          fxParte,
		Quantity:        dec("1"),
		UnitMeasure:     fxUnidad,
		FromWarehouseID: fxBodega1,
		PerformedBy:     fxActor,
	})
	require.NoError(t, err)
	assert.Equal(t, appledger.StatusPending, res.Status)
}

func TestSubmit_CreationConPrecioRegistraHistorial(t *testing.T) {
	f := newFixture(t)

	precio := dec("12500")
	in := creationInput("10")
	in.UnitPrice = &precio
	_, err := f.submit.Submit(context.Background(), in)
	require.NoError(t, err)

	last, err := f.priceRepo.GetLatest(fxParte)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.UnitPrice.Equal(precio))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes: todo-o-nada con partición inmediato/pendiente
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitBatch_ParticionInmediatoPendiente(t *testing.T) {
	f := newFixture(t)

	results, err := f.submit.SubmitBatch(context.Background(), []appledger.TransactionInput{
		creationInput("150"), // supera el umbral de volumen → PENDING
		creationInput("20"),  // bajo el umbral → APPLIED
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, appledger.StatusPending, results[0].Status)
	assert.Equal(t, appledger.StatusApplied, results[1].Status)

	// Solo la inmediata tocó el stock; ambas quedaron registradas.
	assert.True(t, f.stockDe(t, fxBodega1).Equal(dec("20")))
	txs, err := f.txRepo.ListByWarehouseAndPart(fxBodega1, fxParte)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestSubmitBatch_UnItemInvalidoAbortaTodo(t *testing.T) {
	f := newFixture(t)

	invalida := creationInput("5")
	invalida.ToWarehouseID = "" // falla estructural

	_, err := f.submit.SubmitBatch(context.Background(), []appledger.TransactionInput{
		creationInput("1"),
		creationInput("2"),
		invalida,
		creationInput("3"),
		creationInput("4"),
	})
	require.Error(t, err)
	var bie *domain.BatchItemError
	require.ErrorAs(t, err, &bie)
	assert.Equal(t, 2, bie.Index, "el error señala el ítem culpable")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Nada del lote se persistió.
	assert.True(t, f.stockDe(t, fxBodega1).IsZero())
	txs, err := f.txRepo.ListByWarehouseAndPart(fxBodega1, fxParte)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSubmitBatch_FalloDeStockHaceRollbackTotal(t *testing.T) {
	f := newFixture(t)
	_, err := f.submit.Submit(context.Background(), creationInput("10"))
	require.NoError(t, err)

	// El segundo ítem consume más de lo disponible: el primero ya había
	// aplicado su delta dentro de la tx, pero el rollback lo des-hace.
	_, err = f.submit.SubmitBatch(context.Background(), []appledger.TransactionInput{
		creationInput("5"),
		{
			OrganizationID:  fxOrg,
			Kind:            string(entity.KindConsumption),
			PartID:          fxParte,
			Quantity:        dec("99"),
			UnitMeasure:     fxUnidad,
			FromWarehouseID: fxBodega1,
			PerformedBy:     fxActor,
		},
	})
	require.Error(t, err)
	var bie *domain.BatchItemError
	require.ErrorAs(t, err, &bie)
	assert.Equal(t, 1, bie.Index)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.True(t, f.stockDe(t, fxBodega1).Equal(dec("10")), "el stock vuelve al valor previo al lote")
}

func TestSubmitBatch_MutacionInmediataDentroDelLote(t *testing.T) {
	f := newFixture(t)

	// El consumo del ítem 2 solo es posible porque el ítem 1 ya aplicó su
	// delta: la mutación es inmediata en orden de lote, no diferida.
	results, err := f.submit.SubmitBatch(context.Background(), []appledger.TransactionInput{
		creationInput("10"),
		{
			OrganizationID:  fxOrg,
			Kind:            string(entity.KindConsumption),
			PartID:          fxParte,
			Quantity:        dec("7"),
			UnitMeasure:     fxUnidad,
			FromWarehouseID: fxBodega1,
			PerformedBy:     fxActor,
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, f.stockDe(t, fxBodega1).Equal(dec("3")))
}

func TestSubmitBatch_Vacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.submit.SubmitBatch(context.Background(), nil)
	var re *domain.RuleError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "BATCH_EMPTY", re.Code)
}

func TestSubmitBatch_IdentificadoresUnicos(t *testing.T) {
	f := newFixture(t)

	results, err := f.submit.SubmitBatch(context.Background(), []appledger.TransactionInput{
		creationInput("1"), creationInput("2"), creationInput("3"),
	})
	require.NoError(t, err)
	vistos := make(map[string]bool)
	for _, r := range results {
		_, err := uuid.Parse(r.TransactionID)
		assert.NoError(t, err, "el identificador debe ser un UUID válido")
		assert.False(t, vistos[r.TransactionID])
		vistos[r.TransactionID] = true
	}
}

func TestSubmit_FechaPorDefecto(t *testing.T) {
	f := newFixture(t)

	res, err := f.submit.Submit(context.Background(), creationInput("5"))
	require.NoError(t, err)
	tx, err := f.txRepo.GetByID(res.TransactionID)
	require.NoError(t, err)
	assert.False(t, tx.Date.IsZero())
	assert.WithinDuration(t, time.Now(), tx.CreatedAt, 5*time.Second)
}
