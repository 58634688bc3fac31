package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// respondError mapea la taxonomía de errores del dominio a HTTP. Todo error
// llega síncrono desde el caso de uso; nada se traga con solo loguearlo.
//
//	RuleError (validación y referencial)  -> 422 con regla y campo
//	ErrNotFound                           -> 404
//	ErrInsufficientStock                  -> 409
//	ErrApprovalState                      -> 409
//	ErrDuplicate                          -> 409
//	ErrForbidden                          -> 403
//	resto (persistencia no disponible)    -> 503, reintentable
func respondError(c *fiber.Ctx, err error) error {
	var index *int
	var batchErr *domain.BatchItemError
	if errors.As(err, &batchErr) {
		i := batchErr.Index
		index = &i
	}

	var ruleErr *domain.RuleError
	if errors.As(err, &ruleErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    ruleErr.Code,
			Field:   ruleErr.Field,
			Message: ruleErr.Message,
			Index:   index,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado", Index: index})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente", Index: index})
	case errors.Is(err, domain.ErrApprovalState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "APPROVAL_STATE", Message: "la transacción no está pendiente de aprobación"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Index: index})
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "persistencia no disponible, reintente"})
}
