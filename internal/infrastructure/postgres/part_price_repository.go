package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.PartPriceRepository = (*PartPriceRepo)(nil)

// PartPriceRepo historial de precios sobre PostgreSQL (usable con pool o tx).
type PartPriceRepo struct {
	q Querier
}

// NewPartPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartPriceRepository(q Querier) *PartPriceRepo {
	return &PartPriceRepo{q: q}
}

// Create persiste un precio.
func (r *PartPriceRepo) Create(price *entity.PartPrice) error {
	query := `
		INSERT INTO part_prices (id, part_id, unit_price, effective_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		price.ID, price.PartID, price.UnitPrice, price.EffectiveAt, price.CreatedAt)
	if err != nil {
		return fmt.Errorf("create part price: %w", err)
	}
	return nil
}

// GetLatest devuelve el precio más reciente del repuesto (nil si no hay).
func (r *PartPriceRepo) GetLatest(partID string) (*entity.PartPrice, error) {
	query := `
		SELECT id, part_id, unit_price, effective_at, created_at
		FROM part_prices WHERE part_id = $1
		ORDER BY effective_at DESC, created_at DESC LIMIT 1`
	var p entity.PartPrice
	err := r.q.QueryRow(context.Background(), query, partID).Scan(
		&p.ID, &p.PartID, &p.UnitPrice, &p.EffectiveAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest price: %w", err)
	}
	return &p, nil
}

// ListByPart lista el historial de precios de un repuesto.
func (r *PartPriceRepo) ListByPart(partID string, limit, offset int) ([]*entity.PartPrice, error) {
	query := `
		SELECT id, part_id, unit_price, effective_at, created_at
		FROM part_prices WHERE part_id = $1
		ORDER BY effective_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, partID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list part prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.PartPrice
	for rows.Next() {
		var p entity.PartPrice
		if err := rows.Scan(&p.ID, &p.PartID, &p.UnitPrice, &p.EffectiveAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan part price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
