package repository

import (
	"context"

	"github.com/jhoicas/kho-api/internal/domain/entity"
)

// CategoryRepository define el puerto de lectura de categorías (DIP).
type CategoryRepository interface {
	// List devuelve todas las categorías ordenadas por sort_order y nombre.
	List(ctx context.Context) ([]*entity.Category, error)
}
