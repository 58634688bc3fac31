package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// UserRepository puerto de lectura de actores. El alta y autenticación de
// usuarios viven fuera; el libro solo valida existencia.
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
}
