package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// MachineUseCase casos de uso CRUD para máquinas.
type MachineUseCase struct {
	repo repository.MachineRepository
}

// NewMachineUseCase construye el caso de uso.
func NewMachineUseCase(repo repository.MachineRepository) *MachineUseCase {
	return &MachineUseCase{repo: repo}
}

// Create crea una máquina.
func (uc *MachineUseCase) Create(orgID string, in dto.CreateMachineRequest) (*dto.MachineResponse, error) {
	now := time.Now()
	machine := &entity.Machine{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Code:           in.Code,
		Name:           in.Name,
		Location:       in.Location,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(machine); err != nil {
		return nil, err
	}
	return toMachineResponse(machine), nil
}

// GetByID obtiene una máquina por ID (nil si no existe).
func (uc *MachineUseCase) GetByID(id string) (*dto.MachineResponse, error) {
	machine, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, nil
	}
	return toMachineResponse(machine), nil
}

// List lista máquinas por organización con paginación.
func (uc *MachineUseCase) List(orgID string, limit, offset int) (*dto.MachineListResponse, error) {
	list, err := uc.repo.ListByOrganization(orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MachineResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMachineResponse(m))
	}
	return &dto.MachineListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toMachineResponse(m *entity.Machine) *dto.MachineResponse {
	if m == nil {
		return nil
	}
	return &dto.MachineResponse{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Code:           m.Code,
		Name:           m.Name,
		Location:       m.Location,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
