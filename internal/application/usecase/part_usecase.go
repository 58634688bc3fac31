package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// PartUseCase casos de uso CRUD para repuestos y su historial de precios.
type PartUseCase struct {
	repo      repository.PartRepository
	priceRepo repository.PartPriceRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository, priceRepo repository.PartPriceRepository) *PartUseCase {
	return &PartUseCase{repo: repo, priceRepo: priceRepo}
}

// Create crea un repuesto; código único por organización. Si viene precio
// inicial, queda como primer registro del historial.
func (uc *PartUseCase) Create(orgID string, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	existing, err := uc.repo.GetByOrgAndCode(orgID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	part := &entity.Part{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Code:           in.Code,
		Name:           in.Name,
		Description:    in.Description,
		UnitMeasure:    in.UnitMeasure,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(part); err != nil {
		return nil, err
	}
	if in.UnitPrice != nil {
		price := &entity.PartPrice{
			ID:          uuid.New().String(),
			PartID:      part.ID,
			UnitPrice:   *in.UnitPrice,
			EffectiveAt: now,
			CreatedAt:   now,
		}
		if err := uc.priceRepo.Create(price); err != nil {
			return nil, err
		}
	}
	return toPartResponse(part), nil
}

// GetByID obtiene un repuesto por ID (nil si no existe).
func (uc *PartUseCase) GetByID(id string) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}
	return toPartResponse(part), nil
}

// List lista repuestos por organización con paginación.
func (uc *PartUseCase) List(orgID string, limit, offset int) (*dto.PartListResponse, error) {
	list, err := uc.repo.ListByOrganization(orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// RegisterPrice añade un precio al historial del repuesto.
func (uc *PartUseCase) RegisterPrice(partID string, in dto.RegisterPriceRequest) (*dto.PartPriceResponse, error) {
	part, err := uc.repo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if !in.UnitPrice.IsPositive() {
		return nil, domain.NewRuleError("PRICE_NOT_POSITIVE", "unit_price", "el precio debe ser positivo")
	}
	now := time.Now()
	effectiveAt := now
	if in.EffectiveAt != nil {
		effectiveAt = *in.EffectiveAt
	}
	price := &entity.PartPrice{
		ID:          uuid.New().String(),
		PartID:      partID,
		UnitPrice:   in.UnitPrice,
		EffectiveAt: effectiveAt,
		CreatedAt:   now,
	}
	if err := uc.priceRepo.Create(price); err != nil {
		return nil, err
	}
	return &dto.PartPriceResponse{
		ID:          price.ID,
		PartID:      price.PartID,
		UnitPrice:   price.UnitPrice,
		EffectiveAt: price.EffectiveAt,
	}, nil
}

// ListPrices lista el historial de precios del repuesto con paginación.
func (uc *PartUseCase) ListPrices(partID string, limit, offset int) (*dto.PartPriceListResponse, error) {
	part, err := uc.repo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.priceRepo.ListByPart(partID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartPriceResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.PartPriceResponse{
			ID:          p.ID,
			PartID:      p.PartID,
			UnitPrice:   p.UnitPrice,
			EffectiveAt: p.EffectiveAt,
		})
	}
	return &dto.PartPriceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	if p == nil {
		return nil
	}
	return &dto.PartResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Code:           p.Code,
		Name:           p.Name,
		Description:    p.Description,
		UnitMeasure:    p.UnitMeasure,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
