package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
)

// LedgerHandler maneja las peticiones HTTP del libro transaccional (protegido).
type LedgerHandler struct {
	submitUC    *ledger.SubmitUseCase
	approveUC   *ledger.ApproveUseCase
	reconcileUC *ledger.ReconcileUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(submitUC *ledger.SubmitUseCase, approveUC *ledger.ApproveUseCase, reconcileUC *ledger.ReconcileUseCase) *LedgerHandler {
	return &LedgerHandler{submitUC: submitUC, approveUC: approveUC, reconcileUC: reconcileUC}
}

// Submit godoc
// @Summary      Registrar una transacción de inventario
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitTransactionRequest  true  "kind, part_id, quantity, unit_measure, bodega(s) según kind"
// @Success      201   {object}  dto.SubmitTransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions [post]
func (h *LedgerHandler) Submit(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	userID := GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SubmitTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.submitUC.Submit(c.Context(), toTransactionInput(orgID, userID, in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitTransactionResponse{
		TransactionID: result.TransactionID,
		Status:        result.Status,
	})
}

// SubmitBatch godoc
// @Summary      Registrar un lote de transacciones (todo-o-nada)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitBatchRequest  true  "transacciones del lote"
// @Success      201   {object}  dto.SubmitBatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions/batch [post]
func (h *LedgerHandler) SubmitBatch(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	userID := GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SubmitBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inputs := make([]ledger.TransactionInput, 0, len(in.Transactions))
	for _, t := range in.Transactions {
		inputs = append(inputs, toTransactionInput(orgID, userID, t))
	}
	results, err := h.submitUC.SubmitBatch(c.Context(), inputs)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.SubmitBatchResponse{Results: make([]dto.SubmitTransactionResponse, 0, len(results))}
	for _, r := range results {
		out.Results = append(out.Results, dto.SubmitTransactionResponse{
			TransactionID: r.TransactionID,
			Status:        r.Status,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve godoc
// @Summary      Aprobar una transacción retenida
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción PENDING"
// @Success      200  {object}  dto.ApproveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions/{id}/approve [post]
func (h *LedgerHandler) Approve(c *fiber.Ctx) error {
	transactionID := c.Params("id")
	if transactionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id requerido"})
	}
	result, err := h.approveUC.Approve(c.Context(), transactionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ApproveResponse{
		TransactionID: result.TransactionID,
		Status:        result.Status,
	})
}

// ListPending godoc
// @Summary      Listar transacciones retenidas a la espera de aprobación
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.PendingListResponse
// @Router       /api/ledger/transactions/pending [get]
func (h *LedgerHandler) ListPending(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	txs, err := h.approveUC.ListPending(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.PendingListResponse{
		Items: make([]dto.TransactionResponse, 0, len(txs)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, t := range txs {
		out.Items = append(out.Items, dto.TransactionResponse{
			ID:              t.ID,
			Kind:            string(t.Kind),
			PartID:          t.PartID,
			Quantity:        t.Quantity,
			UnitMeasure:     t.UnitMeasure,
			FromWarehouseID: t.FromWarehouseID,
			ToWarehouseID:   t.ToWarehouseID,
			MachineID:       t.MachineID,
			Direction:       string(t.Direction),
			PerformedBy:     t.PerformedBy,
			Date:            t.Date,
			Notes:           t.Notes,
			ReferenceNumber: t.ReferenceNumber,
			ApprovalStatus:  string(t.ApprovalStatus),
			CreatedAt:       t.CreatedAt,
		})
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Reconciliar el stock de un par bodega+repuesto
// @Description  Reproduce el historial de transacciones del par y compara
//
//	el balance derivado contra la caché viva. Solo lectura; una
//	discrepancia se reporta, no se corrige.
//
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "bodega"
// @Param        part_id       query  string  true  "repuesto"
// @Success      200  {object}  dto.ReconciliationResponse
// @Router       /api/ledger/reconciliation [get]
func (h *LedgerHandler) Reconcile(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	partID := c.Query("part_id")
	if warehouseID == "" || partID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "warehouse_id y part_id requeridos"})
	}
	result, err := h.reconcileUC.Reconcile(c.Context(), warehouseID, partID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconciliationResponse{
		WarehouseID:       result.WarehouseID,
		PartID:            result.PartID,
		CurrentStock:      result.CurrentStock,
		CalculatedBalance: result.CalculatedBalance,
		Discrepancy:       result.Discrepancy,
		Reconciled:        result.Reconciled,
	})
}

func toTransactionInput(orgID, userID string, in dto.SubmitTransactionRequest) ledger.TransactionInput {
	input := ledger.TransactionInput{
		OrganizationID:  orgID,
		Kind:            in.Kind,
		PartID:          in.PartID,
		Quantity:        in.Quantity,
		UnitMeasure:     in.UnitMeasure,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		MachineID:       in.MachineID,
		PerformedBy:     userID,
		Notes:           in.Notes,
		ReferenceNumber: in.ReferenceNumber,
		UnitPrice:       in.UnitPrice,
	}
	if in.Date != nil {
		input.Date = *in.Date
	}
	return input
}
