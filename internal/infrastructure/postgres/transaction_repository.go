package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del libro sobre PostgreSQL (usable con pool o tx).
// Tabla append-only: solo INSERT y el flip PENDING → APPROVED.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, kind, part_id, quantity, unit_measure,
	from_warehouse_id, to_warehouse_id, machine_id, direction,
	performed_by, transaction_date, notes, reference_number,
	requires_approval, approval_status, created_at`

// Create persiste una transacción del libro.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	query := `
		INSERT INTO ledger_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, string(t.Kind), t.PartID, t.Quantity, t.UnitMeasure,
		nullIfEmpty(t.FromWarehouseID), nullIfEmpty(t.ToWarehouseID),
		nullIfEmpty(t.MachineID), nullIfEmpty(string(t.Direction)),
		t.PerformedBy, t.Date, nullIfEmpty(t.Notes), nullIfEmpty(t.ReferenceNumber),
		t.RequiresApproval, string(t.ApprovalStatus), t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID (nil si no existe).
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListByWarehouseAndPart devuelve toda transacción que toque el par
// bodega+repuesto, como origen o destino, en orden de creación. Es la
// consulta del replay de reconciliación.
func (r *TransactionRepo) ListByWarehouseAndPart(warehouseID, partID string) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM ledger_transactions
		WHERE part_id = $1 AND (from_warehouse_id = $2 OR to_warehouse_id = $2)
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, partID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list by warehouse and part: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListPending lista transacciones retenidas a la espera de aprobación.
func (r *TransactionRepo) ListPending(limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM ledger_transactions
		WHERE approval_status = $1
		ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, string(entity.ApprovalPending), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// MarkApproved flipa PENDING → APPROVED. La cláusula WHERE sobre el estado
// es el respaldo a nivel de fila: dos aprobaciones concurrentes no pueden
// aplicar el efecto dos veces.
func (r *TransactionRepo) MarkApproved(id string) error {
	query := `
		UPDATE ledger_transactions
		SET approval_status = $1
		WHERE id = $2 AND approval_status = $3`
	tag, err := r.q.Exec(context.Background(), query,
		string(entity.ApprovalApproved), id, string(entity.ApprovalPending))
	if err != nil {
		return fmt.Errorf("mark approved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApprovalState
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var kind, status string
	var fromWh, toWh, machine, direction, notes, reference *string
	err := row.Scan(
		&t.ID, &kind, &t.PartID, &t.Quantity, &t.UnitMeasure,
		&fromWh, &toWh, &machine, &direction,
		&t.PerformedBy, &t.Date, &notes, &reference,
		&t.RequiresApproval, &status, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Kind = entity.Kind(kind)
	t.ApprovalStatus = entity.ApprovalStatus(status)
	t.FromWarehouseID = deref(fromWh)
	t.ToWarehouseID = deref(toWh)
	t.MachineID = deref(machine)
	t.Direction = entity.AdjustmentDirection(deref(direction))
	t.Notes = deref(notes)
	t.ReferenceNumber = deref(reference)
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
