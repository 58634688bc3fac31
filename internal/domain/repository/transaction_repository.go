package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// TransactionRepository puerto de persistencia del libro de transacciones.
// Append-only: no hay Update ni Delete; la única mutación permitida es el
// paso PENDING → APPROVED vía MarkApproved.
type TransactionRepository interface {
	Create(t *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	// ListByWarehouseAndPart devuelve toda transacción que toque el par
	// bodega+repuesto (como origen o destino según tipo), en orden de creación.
	ListByWarehouseAndPart(warehouseID, partID string) ([]*entity.Transaction, error)
	ListPending(limit, offset int) ([]*entity.Transaction, error)
	// MarkApproved flipa PENDING → APPROVED. Devuelve ErrApprovalState si la
	// transacción no estaba PENDING (respaldo a nivel de fila contra doble
	// aplicación).
	MarkApproved(id string) error
}
