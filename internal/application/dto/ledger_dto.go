package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitTransactionRequest body para POST /api/ledger/transactions.
// Las referencias de bodega dependen de type:
//
//	CREATION:    to_warehouse_id
//	TRANSFER:    from_warehouse_id y to_warehouse_id (distintas)
//	CONSUMPTION: from_warehouse_id (machine_id opcional)
//	ADJUSTMENT:  from_warehouse_id; quantity lleva el signo del ajuste
type SubmitTransactionRequest struct {
	Kind            string           `json:"kind"`
	PartID          string           `json:"part_id"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitMeasure     string           `json:"unit_measure"`
	FromWarehouseID string           `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   string           `json:"to_warehouse_id,omitempty"`
	MachineID       string           `json:"machine_id,omitempty"`
	Date            *time.Time       `json:"transaction_date,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"` // CREATION: alimenta el historial de precios
}

// SubmitBatchRequest body para POST /api/ledger/transactions/batch.
type SubmitBatchRequest struct {
	Transactions []SubmitTransactionRequest `json:"transactions"`
}

// SubmitTransactionResponse resultado por transacción.
type SubmitTransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"` // APPLIED | PENDING
}

// SubmitBatchResponse resultado de un lote confirmado.
type SubmitBatchResponse struct {
	Results []SubmitTransactionResponse `json:"results"`
}

// TransactionResponse transacción del libro en respuestas.
type TransactionResponse struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	PartID          string          `json:"part_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitMeasure     string          `json:"unit_measure"`
	FromWarehouseID string          `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   string          `json:"to_warehouse_id,omitempty"`
	MachineID       string          `json:"machine_id,omitempty"`
	Direction       string          `json:"direction,omitempty"`
	PerformedBy     string          `json:"performed_by"`
	Date            time.Time       `json:"transaction_date"`
	Notes           string          `json:"notes,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	ApprovalStatus  string          `json:"approval_status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PendingListResponse transacciones retenidas a la espera de aprobación.
type PendingListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ApproveResponse resultado de aprobar una transacción retenida.
type ApproveResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"` // APPROVED
}

// ReconciliationResponse reporte de reconciliación de un par bodega+repuesto.
type ReconciliationResponse struct {
	WarehouseID       string          `json:"warehouse_id"`
	PartID            string          `json:"part_id"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Discrepancy       decimal.Decimal `json:"discrepancy"`
	Reconciled        bool            `json:"reconciled"`
}
