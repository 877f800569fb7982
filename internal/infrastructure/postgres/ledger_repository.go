package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación append-only de inventory_transactions (usable con pool o tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, product_id, receipt_id, type, requested_quantity, applied_quantity, delta,
	note, input_value, input_unit, created_at, created_by`

// Create inserta una fila del ledger.
func (r *LedgerRepo) Create(ctx context.Context, row *entity.LedgerRow) error {
	query := `
		INSERT INTO inventory_transactions (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		row.ID, row.ProductID, row.ReceiptID, row.Type,
		row.RequestedQuantity, row.AppliedQuantity, row.Delta,
		row.Note, row.InputValue, row.InputUnit, row.CreatedAt, nullIfEmpty(row.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create ledger row: %w", err)
	}
	return nil
}

// ListByReceipt filas de un phiếu, la más antigua primero (orden de impresión).
// Un id que no es UUID no tiene filas.
func (r *LedgerRepo) ListByReceipt(ctx context.Context, receiptID string) ([]*entity.LedgerRow, error) {
	if !isUUID(receiptID) {
		return nil, nil
	}
	query := `SELECT ` + ledgerColumns + `
		FROM inventory_transactions
		WHERE receipt_id = $1
		ORDER BY created_at ASC, id ASC`
	return r.queryRows(ctx, query, receiptID)
}

// ListByProduct historial de un producto, más reciente primero.
func (r *LedgerRepo) ListByProduct(ctx context.Context, productID string, includeAdjust bool, limit int) ([]*entity.LedgerRow, error) {
	if !isUUID(productID) {
		return nil, invalidID("product_id", productID)
	}
	query := `SELECT ` + ledgerColumns + `
		FROM inventory_transactions
		WHERE product_id = $1`
	if !includeAdjust {
		query += ` AND type IN ('IN', 'OUT')`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT $2`
	return r.queryRows(ctx, query, productID, limit)
}

// ListSince filas creadas desde since, más antiguas primero.
func (r *LedgerRepo) ListSince(ctx context.Context, since time.Time, limit int) ([]*entity.LedgerRow, error) {
	query := `SELECT ` + ledgerColumns + `
		FROM inventory_transactions
		WHERE created_at >= $1
		ORDER BY created_at ASC
		LIMIT $2`
	return r.queryRows(ctx, query, since, limit)
}

func (r *LedgerRepo) queryRows(ctx context.Context, query string, args ...any) ([]*entity.LedgerRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerRow
	for rows.Next() {
		row, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func scanLedgerRow(row pgx.Row) (*entity.LedgerRow, error) {
	var l entity.LedgerRow
	var createdBy *string
	err := row.Scan(
		&l.ID, &l.ProductID, &l.ReceiptID, &l.Type,
		&l.RequestedQuantity, &l.AppliedQuantity, &l.Delta,
		&l.Note, &l.InputValue, &l.InputUnit, &l.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	l.CreatedBy = valueOrEmpty(createdBy)
	return &l, nil
}
