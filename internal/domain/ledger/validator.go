// Package ledger contiene las reglas puras del libro de inventario:
// validación estructural por tipo, mapeo de deltas de stock y la compuerta
// de aprobación. Nada aquí toca persistencia.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// maxFractionalDigits precisión máxima de cantidades en todo el sistema.
const maxFractionalDigits = 3

// Shape campos crudos de una transacción propuesta, tal como llegan en la
// entrada. Se valida antes de construir la entidad: una combinación ilegal
// de campos se rechaza nombrando la regla sin llegar a existir como
// transacción.
type Shape struct {
	Kind            entity.Kind
	PartID          string
	UnitMeasure     string
	PerformedBy     string
	Quantity        decimal.Decimal
	FromWarehouseID string
	ToWarehouseID   string
	MachineID       string
	Direction       entity.AdjustmentDirection
}

// ValidateStructure aplica las reglas estructurales sobre una transacción ya
// construida. Mismo juego de reglas que ValidateShape.
func ValidateStructure(t *entity.Transaction) error {
	return ValidateShape(Shape{
		Kind:            t.Kind,
		PartID:          t.PartID,
		UnitMeasure:     t.UnitMeasure,
		PerformedBy:     t.PerformedBy,
		Quantity:        t.Quantity,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		MachineID:       t.MachineID,
		Direction:       t.Direction,
	})
}

// ValidateShape aplica las reglas estructurales por tipo sobre la forma
// cruda de una transacción propuesta. No consulta el almacén: la existencia
// referencial se verifica aparte, antes de mutar nada.
//
// Reglas por tipo:
//
//	CREATION:    to obligatoria; from ausente.
//	TRANSFER:    from y to obligatorias y distintas; machine ausente.
//	CONSUMPTION: from obligatoria; to ausente.
//	ADJUSTMENT:  from obligatoria; to y machine ausentes; sentido explícito.
//
// Transversales: cantidad estrictamente positiva con máx. 3 decimales,
// repuesto, unidad y actor presentes.
func ValidateShape(t Shape) error {
	if t.PartID == "" {
		return domain.NewRuleError("PART_REQUIRED", "part_id", "repuesto requerido")
	}
	if t.UnitMeasure == "" {
		return domain.NewRuleError("UNIT_MEASURE_REQUIRED", "unit_measure", "unidad de medida requerida")
	}
	if t.PerformedBy == "" {
		return domain.NewRuleError("ACTOR_REQUIRED", "performed_by", "actor requerido")
	}
	if err := validateQuantity(t.Quantity); err != nil {
		return err
	}

	switch t.Kind {
	case entity.KindCreation:
		if t.ToWarehouseID == "" {
			return domain.NewRuleError("TO_WAREHOUSE_REQUIRED", "to_warehouse_id", "CREATION requiere bodega destino")
		}
		if t.FromWarehouseID != "" {
			return domain.NewRuleError("FROM_WAREHOUSE_FORBIDDEN", "from_warehouse_id", "CREATION no admite bodega origen")
		}
		if t.MachineID != "" {
			return domain.NewRuleError("MACHINE_FORBIDDEN", "machine_id", "CREATION no admite máquina")
		}
	case entity.KindTransfer:
		if t.FromWarehouseID == "" {
			return domain.NewRuleError("FROM_WAREHOUSE_REQUIRED", "from_warehouse_id", "TRANSFER requiere bodega origen")
		}
		if t.ToWarehouseID == "" {
			return domain.NewRuleError("TO_WAREHOUSE_REQUIRED", "to_warehouse_id", "TRANSFER requiere bodega destino")
		}
		if t.FromWarehouseID == t.ToWarehouseID {
			return domain.NewRuleError("WAREHOUSES_NOT_DISTINCT", "to_warehouse_id", "origen y destino deben ser distintas")
		}
		if t.MachineID != "" {
			return domain.NewRuleError("MACHINE_FORBIDDEN", "machine_id", "TRANSFER no admite máquina")
		}
	case entity.KindConsumption:
		if t.FromWarehouseID == "" {
			return domain.NewRuleError("FROM_WAREHOUSE_REQUIRED", "from_warehouse_id", "CONSUMPTION requiere bodega origen")
		}
		if t.ToWarehouseID != "" {
			return domain.NewRuleError("TO_WAREHOUSE_FORBIDDEN", "to_warehouse_id", "CONSUMPTION no admite bodega destino")
		}
	case entity.KindAdjustment:
		if t.FromWarehouseID == "" {
			return domain.NewRuleError("FROM_WAREHOUSE_REQUIRED", "from_warehouse_id", "ADJUSTMENT requiere bodega")
		}
		if t.ToWarehouseID != "" {
			return domain.NewRuleError("TO_WAREHOUSE_FORBIDDEN", "to_warehouse_id", "ADJUSTMENT no admite bodega destino")
		}
		if t.MachineID != "" {
			return domain.NewRuleError("MACHINE_FORBIDDEN", "machine_id", "ADJUSTMENT no admite máquina")
		}
		if t.Direction != entity.AdjustmentIncrease && t.Direction != entity.AdjustmentDecrease {
			return domain.NewRuleError("DIRECTION_REQUIRED", "direction", "ADJUSTMENT requiere sentido explícito")
		}
	default:
		return domain.NewRuleError("KIND_UNKNOWN", "kind", "tipo de transacción desconocido")
	}
	return nil
}

func validateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return domain.NewRuleError("QUANTITY_NOT_POSITIVE", "quantity", "la cantidad debe ser estrictamente positiva")
	}
	if !q.Round(maxFractionalDigits).Equal(q) {
		return domain.NewRuleError("QUANTITY_PRECISION", "quantity", "máximo 3 decimales")
	}
	return nil
}
