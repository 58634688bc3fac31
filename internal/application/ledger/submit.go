// Package ledger implementa los casos de uso del libro transaccional de
// inventario: envío (individual y por lote), aprobación y reconciliación.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	domledger "github.com/jhoicas/inventario-ledger/internal/domain/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Estado resultante de un envío.
const (
	StatusApplied = "APPLIED" // efecto de stock aplicado y confirmado
	StatusPending = "PENDING" // retenida para aprobación, sin efecto aún
)

// SubmitUseCase coordina lotes de transacciones como una sola unidad:
// valida todo antes de mutar nada, particiona en inmediatas/pendientes,
// aplica solo las inmediatas y confirma todo-o-nada.
type SubmitUseCase struct {
	txRunner      TxRunner
	partRepo      repository.PartRepository
	warehouseRepo repository.WarehouseRepository
	machineRepo   repository.MachineRepository
	userRepo      repository.UserRepository
	priceRepo     repository.PartPriceRepository
	thresholds    domledger.Thresholds
	mutator       *StockMutator
}

// NewSubmitUseCase construye el caso de uso.
func NewSubmitUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	warehouseRepo repository.WarehouseRepository,
	machineRepo repository.MachineRepository,
	userRepo repository.UserRepository,
	priceRepo repository.PartPriceRepository,
	thresholds domledger.Thresholds,
) *SubmitUseCase {
	return &SubmitUseCase{
		txRunner:      txRunner,
		partRepo:      partRepo,
		warehouseRepo: warehouseRepo,
		machineRepo:   machineRepo,
		userRepo:      userRepo,
		priceRepo:     priceRepo,
		thresholds:    thresholds,
		mutator:       NewStockMutator(),
	}
}

// TransactionInput entrada para una transacción propuesta.
// Quantity es positiva para CREATION/TRANSFER/CONSUMPTION; para ADJUSTMENT
// lleva el signo del ajuste y el constructor la normaliza a cantidad
// positiva + sentido explícito.
// UnitPrice opcional en CREATION: registra el precio en el historial.
type TransactionInput struct {
	OrganizationID  string
	Kind            string
	PartID          string
	Quantity        decimal.Decimal
	UnitMeasure     string
	FromWarehouseID string
	ToWarehouseID   string
	MachineID       string
	PerformedBy     string
	Date            time.Time
	Notes           string
	ReferenceNumber string
	UnitPrice       *decimal.Decimal
}

// SubmitResult resultado por transacción persistida.
type SubmitResult struct {
	TransactionID string
	Status        string // APPLIED | PENDING
}

// Submit envía una transacción individual (lote de tamaño uno).
func (uc *SubmitUseCase) Submit(ctx context.Context, input TransactionInput) (*SubmitResult, error) {
	results, err := uc.SubmitBatch(ctx, []TransactionInput{input})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// SubmitBatch procesa un lote todo-o-nada:
//
//  1. valida estructura de cada ítem; un fallo aborta el lote sin efectos
//  2. valida existencia referencial (repuesto, bodegas, máquina, actor)
//  3. evalúa la compuerta y particiona en inmediatas/pendientes
//  4. asigna identificadores
//  5. en UNA transacción de BD: aplica stock de las inmediatas en orden y
//     persiste todos los registros; cualquier fallo hace rollback total
func (uc *SubmitUseCase) SubmitBatch(ctx context.Context, inputs []TransactionInput) ([]SubmitResult, error) {
	if len(inputs) == 0 {
		return nil, domain.NewRuleError("BATCH_EMPTY", "transactions", "el lote no puede estar vacío")
	}

	// Fase 1: estructura (pura, sobre la entrada cruda, sin tocar el almacén)
	txs := make([]*entity.Transaction, 0, len(inputs))
	for i := range inputs {
		t, err := buildTransaction(&inputs[i])
		if err != nil {
			return nil, &domain.BatchItemError{Index: i, Err: err}
		}
		txs = append(txs, t)
	}

	// Fase 2: existencia referencial + foto para la compuerta
	warehouseOrg := make(map[string]string)
	lastPrice := make(map[string]*decimal.Decimal)
	for i := range inputs {
		if err := uc.checkReferences(&inputs[i], warehouseOrg); err != nil {
			return nil, &domain.BatchItemError{Index: i, Err: err}
		}
		if _, ok := lastPrice[inputs[i].PartID]; !ok {
			price, err := uc.priceRepo.GetLatest(inputs[i].PartID)
			if err != nil {
				return nil, err
			}
			if price != nil {
				p := price.UnitPrice
				lastPrice[inputs[i].PartID] = &p
			} else {
				lastPrice[inputs[i].PartID] = nil
			}
		}
	}

	// Fase 3: compuerta de aprobación (decisión inmutable de ahí en adelante)
	now := time.Now()
	for _, t := range txs {
		gc := domledger.GateContext{
			WarehouseOrg:  warehouseOrg,
			LastUnitPrice: lastPrice[t.PartID],
		}
		t.RequiresApproval = domledger.RequiresApproval(t, gc, uc.thresholds)
		if t.RequiresApproval {
			t.ApprovalStatus = entity.ApprovalPending
		} else {
			t.ApprovalStatus = entity.ApprovalNone
		}
		t.ID = uuid.New().String()
		t.CreatedAt = now
		if t.Date.IsZero() {
			t.Date = now
		}
	}

	// Fases 4 y 5: commit atómico (Commit si todo ok, Rollback si algo falla)
	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		priceRepo repository.PartPriceRepository,
	) error {
		for i, t := range txs {
			if t.RequiresApproval {
				continue // pendientes: sin efecto de stock hasta aprobar
			}
			if err := uc.mutator.ApplyTransaction(stockRepo, t, now); err != nil {
				return &domain.BatchItemError{Index: i, Err: err}
			}
		}
		for _, t := range txs {
			if err := txRepo.Create(t); err != nil {
				return err
			}
		}
		for i := range inputs {
			if inputs[i].UnitPrice == nil || txs[i].Kind != entity.KindCreation {
				continue
			}
			price := &entity.PartPrice{
				ID:          uuid.New().String(),
				PartID:      inputs[i].PartID,
				UnitPrice:   *inputs[i].UnitPrice,
				EffectiveAt: txs[i].Date,
				CreatedAt:   now,
			}
			if err := priceRepo.Create(price); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]SubmitResult, 0, len(txs))
	for _, t := range txs {
		status := StatusApplied
		if t.RequiresApproval {
			status = StatusPending
		}
		results = append(results, SubmitResult{TransactionID: t.ID, Status: status})
	}
	return results, nil
}

// buildTransaction valida la forma cruda de la entrada y solo entonces arma
// la entidad vía el constructor del tipo: una combinación ilegal de campos
// se rechaza nombrando la regla sin llegar a existir como entidad.
func buildTransaction(in *TransactionInput) (*entity.Transaction, error) {
	kind := entity.Kind(in.Kind)
	shape := domledger.Shape{
		Kind:            kind,
		PartID:          in.PartID,
		UnitMeasure:     in.UnitMeasure,
		PerformedBy:     in.PerformedBy,
		Quantity:        in.Quantity,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		MachineID:       in.MachineID,
	}
	if kind == entity.KindAdjustment {
		// El signo de la cantidad trae el sentido del ajuste
		shape.Quantity = in.Quantity.Abs()
		shape.Direction = entity.AdjustmentIncrease
		if in.Quantity.IsNegative() {
			shape.Direction = entity.AdjustmentDecrease
		}
	}
	if err := domledger.ValidateShape(shape); err != nil {
		return nil, err
	}

	var t *entity.Transaction
	switch kind {
	case entity.KindCreation:
		t = entity.NewCreation(in.PartID, in.ToWarehouseID, in.UnitMeasure, in.PerformedBy, in.Quantity)
	case entity.KindTransfer:
		t = entity.NewTransfer(in.PartID, in.FromWarehouseID, in.ToWarehouseID, in.UnitMeasure, in.PerformedBy, in.Quantity)
	case entity.KindConsumption:
		t = entity.NewConsumption(in.PartID, in.FromWarehouseID, in.MachineID, in.UnitMeasure, in.PerformedBy, in.Quantity)
	default:
		// ValidateShape ya rechazó cualquier tipo fuera de los cuatro
		t = entity.NewAdjustment(in.PartID, in.FromWarehouseID, in.UnitMeasure, in.PerformedBy, in.Quantity)
	}
	t.Date = in.Date
	t.Notes = in.Notes
	t.ReferenceNumber = in.ReferenceNumber
	return t, nil
}

// checkReferences verifica que repuesto, bodega(s), máquina y actor existan
// y pertenezcan a la organización. Llena el mapa bodega→organización que
// consume la compuerta.
func (uc *SubmitUseCase) checkReferences(in *TransactionInput, warehouseOrg map[string]string) error {
	part, err := uc.partRepo.GetByID(in.PartID)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.NewRuleError("PART_NOT_FOUND", "part_id", "el repuesto no existe")
	}
	if in.OrganizationID != "" && part.OrganizationID != in.OrganizationID {
		return domain.ErrForbidden
	}

	for _, whID := range []string{in.FromWarehouseID, in.ToWarehouseID} {
		if whID == "" {
			continue
		}
		if _, ok := warehouseOrg[whID]; ok {
			continue
		}
		wh, err := uc.warehouseRepo.GetByID(whID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.NewRuleError("WAREHOUSE_NOT_FOUND", "warehouse_id", "la bodega no existe")
		}
		warehouseOrg[whID] = wh.OrganizationID
	}

	if in.MachineID != "" {
		machine, err := uc.machineRepo.GetByID(in.MachineID)
		if err != nil {
			return err
		}
		if machine == nil {
			return domain.NewRuleError("MACHINE_NOT_FOUND", "machine_id", "la máquina no existe")
		}
		if in.OrganizationID != "" && machine.OrganizationID != in.OrganizationID {
			return domain.ErrForbidden
		}
	}

	actor, err := uc.userRepo.GetByID(in.PerformedBy)
	if err != nil {
		return err
	}
	if actor == nil {
		return domain.NewRuleError("ACTOR_NOT_FOUND", "performed_by", "el actor no existe")
	}
	return nil
}
