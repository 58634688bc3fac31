package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas (datos de referencia del
// libro de inventario).
type WarehouseUseCase struct {
	repo    repository.WarehouseRepository
	orgRepo repository.OrganizationRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, orgRepo repository.OrganizationRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, orgRepo: orgRepo}
}

// Create crea una nueva bodega. La organización dueña debe existir: de ella
// depende la regla de traslado inter-organización.
func (uc *WarehouseUseCase) Create(orgID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	org, err := uc.orgRepo.GetByID(orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.NewRuleError("ORGANIZATION_NOT_FOUND", "organization_id", "la organización no existe")
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           in.Name,
		Address:        in.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID (nil si no existe).
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas por organización con paginación.
func (uc *WarehouseUseCase) List(orgID string, limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.ListByOrganization(orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:             w.ID,
		OrganizationID: w.OrganizationID,
		Name:           w.Name,
		Address:        w.Address,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}
