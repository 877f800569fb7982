package repository

import (
	"context"

	"github.com/jhoicas/kho-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos de la pantalla masiva.
type ProductFilter struct {
	CategoryID string // vacío = todas las categorías
}

// ProductRepository define el puerto de lectura del catálogo y de escritura de stock_quantity.
// GetByID / GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock fija stock_quantity. Solo lo usa el motor de movimientos.
	UpdateStock(ctx context.Context, id string, quantity int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// GetByIDs trae varios productos en una sola consulta (sin N+1).
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
}
