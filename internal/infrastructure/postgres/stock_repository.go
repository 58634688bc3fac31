package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// Devuelve nil cuando el par no tiene fila: el mutador distingue "sin
// registro" de "stock cero" para rechazar deltas negativos sobre pares
// inexistentes.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un repuesto en una bodega (nil si no hay fila).
func (r *StockRepo) Get(warehouseID, partID string) (*entity.StockRecord, error) {
	query := `
		SELECT warehouse_id, part_id, current_stock, unit_measure, created_at, updated_at
		FROM stock_records WHERE warehouse_id = $1 AND part_id = $2`
	return r.scanOne(query, warehouseID, partID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Dos mutaciones concurrentes sobre el mismo par se serializan aquí.
func (r *StockRepo) GetForUpdate(warehouseID, partID string) (*entity.StockRecord, error) {
	query := `
		SELECT warehouse_id, part_id, current_stock, unit_measure, created_at, updated_at
		FROM stock_records WHERE warehouse_id = $1 AND part_id = $2
		FOR UPDATE`
	return r.scanOne(query, warehouseID, partID)
}

// Upsert inserta o actualiza la cantidad en stock (por bodega y repuesto).
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (warehouse_id, part_id, current_stock, unit_measure, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (warehouse_id, part_id)
		DO UPDATE SET current_stock = EXCLUDED.current_stock, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		record.WarehouseID, record.PartID, record.CurrentStock, record.UnitMeasure, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

func (r *StockRepo) scanOne(query, warehouseID, partID string) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, warehouseID, partID).Scan(
		&s.WarehouseID, &s.PartID, &s.CurrentStock, &s.UnitMeasure, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}
