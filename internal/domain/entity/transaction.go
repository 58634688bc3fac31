package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind tipo de transacción del libro de inventario. Cada tipo determina qué
// referencias de bodega son legales y la dirección del efecto sobre el stock.
type Kind string

const (
	KindCreation    Kind = "CREATION"    // entrada de stock nuevo (compra, producción)
	KindTransfer    Kind = "TRANSFER"    // traslado entre bodegas
	KindConsumption Kind = "CONSUMPTION" // salida por consumo (mantenimiento, orden)
	KindAdjustment  Kind = "ADJUSTMENT"  // corrección manual (conteo físico)
)

// ApprovalStatus estado de aprobación de una transacción.
type ApprovalStatus string

const (
	ApprovalNone     ApprovalStatus = "NONE"     // no requiere aprobación
	ApprovalPending  ApprovalStatus = "PENDING"  // retenida, sin efecto sobre stock
	ApprovalApproved ApprovalStatus = "APPROVED" // aprobada y aplicada
)

// AdjustmentDirection sentido de un ajuste. La cantidad de la transacción es
// siempre positiva; el sentido del delta va aparte para que un ajuste negativo
// sea representable sin romper la regla de cantidad positiva.
type AdjustmentDirection string

const (
	AdjustmentIncrease AdjustmentDirection = "INCREASE"
	AdjustmentDecrease AdjustmentDirection = "DECREASE"
)

// Transaction movimiento del libro de inventario (registro append-only).
// Una vez creada nunca se modifica, salvo ApprovalStatus que transiciona
// PENDING → APPROVED exactamente una vez.
type Transaction struct {
	ID               string
	Kind             Kind
	PartID           string
	Quantity         decimal.Decimal // siempre positiva, máx. 3 decimales
	UnitMeasure      string
	FromWarehouseID  string // presencia según Kind
	ToWarehouseID    string // presencia según Kind
	MachineID        string // solo CONSUMPTION ligado a equipo
	Direction        AdjustmentDirection
	PerformedBy      string // UserID del actor
	Date             time.Time
	Notes            string
	ReferenceNumber  string
	RequiresApproval bool           // decidido una vez al crear, inmutable
	ApprovalStatus   ApprovalStatus // NONE si RequiresApproval es false
	CreatedAt        time.Time
}

// Applied indica si el efecto sobre stock ya fue (o será al confirmar) aplicado.
// Una transacción PENDING no tiene efecto hasta ser aprobada.
func (t *Transaction) Applied() bool {
	return !t.RequiresApproval || t.ApprovalStatus == ApprovalApproved
}

// NewCreation construye una entrada de stock hacia una bodega destino.
// Los constructores por tipo son la única vía programática de armar una
// transacción: las combinaciones ilegales de campos no son construibles.
func NewCreation(partID, toWarehouseID, unitMeasure, performedBy string, quantity decimal.Decimal) *Transaction {
	return &Transaction{
		Kind:          KindCreation,
		PartID:        partID,
		ToWarehouseID: toWarehouseID,
		UnitMeasure:   unitMeasure,
		PerformedBy:   performedBy,
		Quantity:      quantity,
	}
}

// NewTransfer construye un traslado entre dos bodegas distintas.
func NewTransfer(partID, fromWarehouseID, toWarehouseID, unitMeasure, performedBy string, quantity decimal.Decimal) *Transaction {
	return &Transaction{
		Kind:            KindTransfer,
		PartID:          partID,
		FromWarehouseID: fromWarehouseID,
		ToWarehouseID:   toWarehouseID,
		UnitMeasure:     unitMeasure,
		PerformedBy:     performedBy,
		Quantity:        quantity,
	}
}

// NewConsumption construye una salida por consumo desde una bodega origen.
// machineID es opcional (vacío si el consumo no está ligado a un equipo).
func NewConsumption(partID, fromWarehouseID, machineID, unitMeasure, performedBy string, quantity decimal.Decimal) *Transaction {
	return &Transaction{
		Kind:            KindConsumption,
		PartID:          partID,
		FromWarehouseID: fromWarehouseID,
		MachineID:       machineID,
		UnitMeasure:     unitMeasure,
		PerformedBy:     performedBy,
		Quantity:        quantity,
	}
}

// NewAdjustment construye un ajuste manual sobre una bodega. delta trae el
// signo: positivo aumenta, negativo disminuye. Se normaliza a cantidad
// positiva + sentido explícito.
func NewAdjustment(partID, warehouseID, unitMeasure, performedBy string, delta decimal.Decimal) *Transaction {
	direction := AdjustmentIncrease
	if delta.IsNegative() {
		direction = AdjustmentDecrease
	}
	return &Transaction{
		Kind:            KindAdjustment,
		PartID:          partID,
		FromWarehouseID: warehouseID,
		UnitMeasure:     unitMeasure,
		PerformedBy:     performedBy,
		Quantity:        delta.Abs(),
		Direction:       direction,
	}
}
