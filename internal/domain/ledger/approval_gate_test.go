package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Compuerta de aprobación: cuatro reglas independientes en OR lógico.
// Umbrales por defecto: volumen 100, ajuste 50, precio alto 500000.
// ──────────────────────────────────────────────────────────────────────────────

func gateCtx() ledger.GateContext {
	return ledger.GateContext{
		WarehouseOrg: map[string]string{
			testBodegaA: "org-1",
			testBodegaB: "org-1",
		},
	}
}

func TestRequiresApproval_VolumenAlto(t *testing.T) {
	th := ledger.DefaultThresholds()

	justo := entity.NewCreation(testPart, testBodegaA, testUnidad, testActor, qty("100"))
	assert.False(t, ledger.RequiresApproval(justo, gateCtx(), th), "en el umbral exacto no se retiene")

	encima := entity.NewCreation(testPart, testBodegaA, testUnidad, testActor, qty("100.001"))
	assert.True(t, ledger.RequiresApproval(encima, gateCtx(), th), "por encima del umbral se retiene")
}

func TestRequiresApproval_AjusteConUmbralEstricto(t *testing.T) {
	th := ledger.DefaultThresholds()

	// 51 unidades: no dispara la regla de volumen (100) pero sí la de ajuste (50).
	ajuste := entity.NewAdjustment(testPart, testBodegaA, testUnidad, testActor, qty("51"))
	assert.True(t, ledger.RequiresApproval(ajuste, gateCtx(), th))

	// El sentido no importa: un ajuste negativo de la misma magnitud también se retiene.
	negativo := entity.NewAdjustment(testPart, testBodegaA, testUnidad, testActor, qty("-51"))
	assert.True(t, ledger.RequiresApproval(negativo, gateCtx(), th))

	// 50 exacto no se retiene; la misma cantidad en un consumo tampoco.
	enUmbral := entity.NewAdjustment(testPart, testBodegaA, testUnidad, testActor, qty("50"))
	assert.False(t, ledger.RequiresApproval(enUmbral, gateCtx(), th))

	consumo := entity.NewConsumption(testPart, testBodegaA, "", testUnidad, testActor, qty("51"))
	assert.False(t, ledger.RequiresApproval(consumo, gateCtx(), th), "el umbral de ajuste no aplica a otros tipos")
}

func TestRequiresApproval_TransferEntreOrganizaciones(t *testing.T) {
	th := ledger.DefaultThresholds()
	gc := ledger.GateContext{
		WarehouseOrg: map[string]string{
			testBodegaA: "org-1",
			testBodegaB: "org-2",
		},
	}

	cruzado := entity.NewTransfer(testPart, testBodegaA, testBodegaB, testUnidad, testActor, qty("5"))
	assert.True(t, ledger.RequiresApproval(cruzado, gc, th))

	mismaOrg := entity.NewTransfer(testPart, testBodegaA, testBodegaB, testUnidad, testActor, qty("5"))
	assert.False(t, ledger.RequiresApproval(mismaOrg, gateCtx(), th))
}

func TestRequiresApproval_RepuestoDeAltoValor(t *testing.T) {
	th := ledger.DefaultThresholds()

	caro := qty("500000.01")
	gc := gateCtx()
	gc.LastUnitPrice = &caro

	// Hasta un consumo de 1 unidad se retiene si el repuesto es de alto valor.
	consumo := entity.NewConsumption(testPart, testBodegaA, "", testUnidad, testActor, qty("1"))
	assert.True(t, ledger.RequiresApproval(consumo, gc, th))

	enUmbral := qty("500000")
	gc.LastUnitPrice = &enUmbral
	assert.False(t, ledger.RequiresApproval(consumo, gc, th), "en el umbral exacto no se retiene")

	gc.LastUnitPrice = nil
	assert.False(t, ledger.RequiresApproval(consumo, gc, th), "sin historial de precios la regla no aplica")
}

func TestRequiresApproval_SinReglaDisparada(t *testing.T) {
	th := ledger.DefaultThresholds()
	tx := entity.NewCreation(testPart, testBodegaA, testUnidad, testActor, qty("10"))
	assert.False(t, ledger.RequiresApproval(tx, gateCtx(), th))
}

func TestRequiresApproval_UmbralesConfigurables(t *testing.T) {
	th := ledger.Thresholds{
		HighVolume:     decimal.NewFromInt(10),
		Adjustment:     decimal.NewFromInt(5),
		HighValuePrice: decimal.NewFromInt(1000),
	}
	tx := entity.NewCreation(testPart, testBodegaA, testUnidad, testActor, qty("11"))
	assert.True(t, ledger.RequiresApproval(tx, gateCtx(), th))
}
