package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrApprovalState     = errors.New("estado de aprobación inválido")
)

// RuleError rechazo estructurado de validación: nombra la regla violada y el
// campo. Envuelve ErrInvalidInput (referencial o estructural, mismo
// tratamiento para el caller).
type RuleError struct {
	Code    string // ej. "TO_WAREHOUSE_REQUIRED"
	Field   string // ej. "to_warehouse_id"
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *RuleError) Unwrap() error { return ErrInvalidInput }

// NewRuleError construye un rechazo de validación.
func NewRuleError(code, field, message string) *RuleError {
	return &RuleError{Code: code, Field: field, Message: message}
}

// BatchItemError señala qué ítem del lote provocó el rechazo total.
// El lote es todo-o-nada: un solo ítem inválido aborta el conjunto.
type BatchItemError struct {
	Index int
	Err   error
}

func (e *BatchItemError) Error() string {
	return fmt.Sprintf("ítem %d del lote: %v", e.Index, e.Err)
}

func (e *BatchItemError) Unwrap() error { return e.Err }
