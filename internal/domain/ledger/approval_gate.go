package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Thresholds umbrales de la compuerta de aprobación (configurables).
type Thresholds struct {
	HighVolume     decimal.Decimal // cantidad por encima de la cual todo movimiento se retiene
	Adjustment     decimal.Decimal // umbral más estricto para ajustes
	HighValuePrice decimal.Decimal // precio unitario a partir del cual el repuesto es de alto valor
}

// DefaultThresholds valores por defecto (sobreescribibles vía config).
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighVolume:     decimal.NewFromInt(100),
		Adjustment:     decimal.NewFromInt(50),
		HighValuePrice: decimal.NewFromInt(500000),
	}
}

// GateContext foto de los datos de referencia que necesita la compuerta.
// Se arma antes de evaluar para que la decisión sea pura y determinista:
// la partición inmediato/pendiente del lote depende de ello.
type GateContext struct {
	WarehouseOrg  map[string]string // bodega -> organización dueña
	LastUnitPrice *decimal.Decimal  // último precio conocido del repuesto (nil = sin historial)
}

// RequiresApproval decide si una transacción validada debe retenerse para
// aprobación manual. Las reglas son independientes (OR lógico):
//
//  1. cantidad supera el umbral de alto volumen
//  2. ADJUSTMENT y cantidad supera el umbral de ajuste
//  3. TRANSFER entre bodegas de organizaciones distintas
//  4. último precio unitario del repuesto supera el umbral de alto valor
//
// Función pura: sin efectos, mismo resultado para mismas entradas.
func RequiresApproval(t *entity.Transaction, gc GateContext, th Thresholds) bool {
	if t.Quantity.GreaterThan(th.HighVolume) {
		return true
	}
	if t.Kind == entity.KindAdjustment && t.Quantity.GreaterThan(th.Adjustment) {
		return true
	}
	if t.Kind == entity.KindTransfer {
		fromOrg, okFrom := gc.WarehouseOrg[t.FromWarehouseID]
		toOrg, okTo := gc.WarehouseOrg[t.ToWarehouseID]
		if okFrom && okTo && fromOrg != toOrg {
			return true
		}
	}
	if gc.LastUnitPrice != nil && gc.LastUnitPrice.GreaterThan(th.HighValuePrice) {
		return true
	}
	return false
}
