package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// WarehouseResponse bodega en respuestas.
type WarehouseResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// WarehouseListResponse listado paginado de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreatePartRequest body para POST /api/parts.
type CreatePartRequest struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	UnitMeasure string           `json:"unit_measure"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"` // precio inicial opcional
}

// PartResponse repuesto en respuestas.
type PartResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	UnitMeasure    string    `json:"unit_measure"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PartListResponse listado paginado de repuestos.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// RegisterPriceRequest body para POST /api/parts/:id/prices.
type RegisterPriceRequest struct {
	UnitPrice   decimal.Decimal `json:"unit_price"`
	EffectiveAt *time.Time      `json:"effective_at,omitempty"`
}

// PartPriceResponse precio registrado.
type PartPriceResponse struct {
	ID          string          `json:"id"`
	PartID      string          `json:"part_id"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	EffectiveAt time.Time       `json:"effective_at"`
}

// PartPriceListResponse historial paginado de precios de un repuesto.
type PartPriceListResponse struct {
	Items []PartPriceResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateMachineRequest body para POST /api/machines.
type CreateMachineRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// MachineResponse máquina en respuestas.
type MachineResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Location       string    `json:"location,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MachineListResponse listado paginado de máquinas.
type MachineListResponse struct {
	Items []MachineResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
