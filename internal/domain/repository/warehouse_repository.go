package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// WarehouseRepository puerto de persistencia para bodegas (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	ListByOrganization(orgID string, limit, offset int) ([]*entity.Warehouse, error)
}
