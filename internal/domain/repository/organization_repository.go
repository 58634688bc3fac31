package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// OrganizationRepository puerto de lectura de organizaciones.
type OrganizationRepository interface {
	GetByID(id string) (*entity.Organization, error)
}
