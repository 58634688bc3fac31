package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// MachineRepository puerto de persistencia para máquinas (DIP).
type MachineRepository interface {
	Create(machine *entity.Machine) error
	GetByID(id string) (*entity.Machine, error)
	ListByOrganization(orgID string, limit, offset int) ([]*entity.Machine, error)
}
