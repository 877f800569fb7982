package inventory

import (
	"context"

	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/repository"
	"github.com/jhoicas/kho-api/pkg/textutil"
)

// CatalogFilter filtro de la lista de productos de la pantalla masiva.
type CatalogFilter struct {
	CategoryID string
	Search     string // se compara sin diacríticos ni mayúsculas
}

// CatalogUseCase lectura del catálogo para la pantalla masiva.
type CatalogUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// Categories lista las categorías para los chips de filtro.
func (uc *CatalogUseCase) Categories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

// ListForBulk productos con id, nombre, imagen y stock_quantity, filtrados por categoría y búsqueda.
func (uc *CatalogUseCase) ListForBulk(ctx context.Context, filter CatalogFilter) ([]*entity.Product, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{CategoryID: filter.CategoryID})
	if err != nil {
		return nil, err
	}
	if filter.Search == "" {
		return products, nil
	}
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if textutil.ContainsFolded(p.Name, filter.Search) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Snapshot trae en una sola consulta los productos del lote; la foto sirve para el
// pre-chequeo de stock de salida.
func (uc *CatalogUseCase) Snapshot(ctx context.Context, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return uc.productRepo.GetByIDs(ctx, ids)
}
