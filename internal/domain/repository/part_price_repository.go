package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// PartPriceRepository puerto del historial de precios por repuesto.
type PartPriceRepository interface {
	Create(price *entity.PartPrice) error
	// GetLatest devuelve el precio más reciente del repuesto, nil si no hay.
	GetLatest(partID string) (*entity.PartPrice, error)
	ListByPart(partID string, limit, offset int) ([]*entity.PartPrice, error)
}
