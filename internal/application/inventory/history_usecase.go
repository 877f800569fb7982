package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/kho-api/internal/domain"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// HistoryUseCase historial de movimientos de un producto (drawer).
type HistoryUseCase struct {
	ledgerRepo repository.LedgerRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(ledgerRepo repository.LedgerRepository) *HistoryUseCase {
	return &HistoryUseCase{ledgerRepo: ledgerRepo}
}

// ListByProduct devuelve las filas del producto, más reciente primero.
// limit <= 0 usa el valor por defecto; se recorta a maxHistoryLimit.
func (uc *HistoryUseCase) ListByProduct(ctx context.Context, productID string, includeAdjust bool, limit int) ([]*entity.LedgerRow, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("%w: product_id vacío", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return uc.ledgerRepo.ListByProduct(ctx, productID, includeAdjust, limit)
}
