package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kho-api/internal/domain/entity"
)

// LedgerRepository define el puerto de persistencia del ledger inventory_transactions.
// Es append-only: no hay Update ni Delete.
type LedgerRepository interface {
	Create(ctx context.Context, row *entity.LedgerRow) error
	// ListByReceipt devuelve las filas de un phiếu ordenadas por created_at ascendente.
	ListByReceipt(ctx context.Context, receiptID string) ([]*entity.LedgerRow, error)
	// ListByProduct devuelve el historial de un producto, más reciente primero.
	// Con includeAdjust=false solo devuelve IN/OUT.
	ListByProduct(ctx context.Context, productID string, includeAdjust bool, limit int) ([]*entity.LedgerRow, error)
	// ListSince devuelve las filas creadas desde since (para el asistente).
	ListSince(ctx context.Context, since time.Time, limit int) ([]*entity.LedgerRow, error)
}
