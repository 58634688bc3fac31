package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// StockRepository puerto para consultar/actualizar stock por bodega+repuesto.
// Usado dentro de transacciones para garantizar consistencia.
// Get y GetForUpdate devuelven nil (sin error) si el par no tiene registro:
// el mutador necesita distinguir "sin registro" de "stock cero" para rechazar
// deltas negativos sobre pares inexistentes.
type StockRepository interface {
	Get(warehouseID, partID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(warehouseID, partID string) (*entity.StockRecord, error)
	Upsert(record *entity.StockRecord) error
}
