package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// PartRepository puerto de persistencia para repuestos (DIP).
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	GetByOrgAndCode(orgID, code string) (*entity.Part, error)
	ListByOrganization(orgID string, limit, offset int) ([]*entity.Part, error)
}
