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

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación de PartRepository sobre PostgreSQL.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste un repuesto.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (id, organization_id, code, name, description, unit_measure, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.OrganizationID, part.Code, part.Name,
		nullIfEmpty(part.Description), part.UnitMeasure, part.CreatedAt, part.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID (nil si no existe).
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	query := `
		SELECT id, organization_id, code, name, description, unit_measure, created_at, updated_at
		FROM parts WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByOrgAndCode obtiene un repuesto por código dentro de una organización.
func (r *PartRepo) GetByOrgAndCode(orgID, code string) (*entity.Part, error) {
	query := `
		SELECT id, organization_id, code, name, description, unit_measure, created_at, updated_at
		FROM parts WHERE organization_id = $1 AND code = $2`
	return r.scanOne(query, orgID, code)
}

// ListByOrganization lista repuestos de una organización con paginación.
func (r *PartRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.Part, error) {
	query := `
		SELECT id, organization_id, code, name, description, unit_measure, created_at, updated_at
		FROM parts WHERE organization_id = $1
		ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		var description *string
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Code, &p.Name, &description, &p.UnitMeasure, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		p.Description = deref(description)
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *PartRepo) scanOne(query string, args ...any) (*entity.Part, error) {
	var p entity.Part
	var description *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.OrganizationID, &p.Code, &p.Name, &description, &p.UnitMeasure, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	p.Description = deref(description)
	return &p, nil
}
