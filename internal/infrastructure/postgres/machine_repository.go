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

var _ repository.MachineRepository = (*MachineRepo)(nil)

// MachineRepo implementación de MachineRepository sobre PostgreSQL.
type MachineRepo struct {
	q Querier
}

// NewMachineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMachineRepository(q Querier) *MachineRepo {
	return &MachineRepo{q: q}
}

// Create persiste una máquina.
func (r *MachineRepo) Create(machine *entity.Machine) error {
	query := `
		INSERT INTO machines (id, organization_id, code, name, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		machine.ID, machine.OrganizationID, machine.Code, machine.Name,
		nullIfEmpty(machine.Location), machine.CreatedAt, machine.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create machine: %w", err)
	}
	return nil
}

// GetByID obtiene una máquina por ID (nil si no existe).
func (r *MachineRepo) GetByID(id string) (*entity.Machine, error) {
	query := `
		SELECT id, organization_id, code, name, location, created_at, updated_at
		FROM machines WHERE id = $1`
	var m entity.Machine
	var location *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.OrganizationID, &m.Code, &m.Name, &location, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get machine: %w", err)
	}
	m.Location = deref(location)
	return &m, nil
}

// ListByOrganization lista máquinas de una organización con paginación.
func (r *MachineRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.Machine, error) {
	query := `
		SELECT id, organization_id, code, name, location, created_at, updated_at
		FROM machines WHERE organization_id = $1
		ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Machine
	for rows.Next() {
		var m entity.Machine
		var location *string
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.Code, &m.Name, &location, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan machine: %w", err)
		}
		m.Location = deref(location)
		list = append(list, &m)
	}
	return list, rows.Err()
}
