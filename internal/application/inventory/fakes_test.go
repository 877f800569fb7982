package inventory_test

import (
	"context"
	"errors"
	"sort"
	"time"

	appinv "github.com/jhoicas/kho-api/internal/application/inventory"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/repository"
)

var errBoom = errors.New("conexión perdida")

// fakeMutator registra las llamadas y responde según errs (por product_id).
type fakeMutator struct {
	calls []mutatorCall
	errs  map[string]error
}

type mutatorCall struct {
	Type  string
	Input appinv.MovementInput
}

func (f *fakeMutator) CreateInventoryIn(_ context.Context, in appinv.MovementInput) (string, error) {
	return f.record(entity.MovementTypeIN, in)
}

func (f *fakeMutator) CreateInventoryOut(_ context.Context, in appinv.MovementInput) (string, error) {
	return f.record(entity.MovementTypeOUT, in)
}

func (f *fakeMutator) record(typ string, in appinv.MovementInput) (string, error) {
	f.calls = append(f.calls, mutatorCall{Type: typ, Input: in})
	if err := f.errs[in.ProductID]; err != nil {
		return "", err
	}
	return "row-" + in.ProductID, nil
}

// fakeProductRepo catálogo en memoria.
type fakeProductRepo struct {
	products map[string]*entity.Product
	listErr  error
	updates  int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, quantity int) error {
	r.updates++
	r.products[id].StockQuantity = quantity
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*entity.Product
	for _, p := range r.products {
		if filter.CategoryID == "" || p.CategoryID == filter.CategoryID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeCategoryRepo categorías fijas, ya ordenadas.
type fakeCategoryRepo []*entity.Category

func (r fakeCategoryRepo) List(context.Context) ([]*entity.Category, error) {
	return r, nil
}

// fakeLedgerRepo ledger append-only en memoria.
type fakeLedgerRepo struct {
	rows           []*entity.LedgerRow
	readErr        error
	receiptQueries int
}

func (r *fakeLedgerRepo) Create(_ context.Context, row *entity.LedgerRow) error {
	r.rows = append(r.rows, row)
	return nil
}

func (r *fakeLedgerRepo) ListByReceipt(_ context.Context, receiptID string) ([]*entity.LedgerRow, error) {
	r.receiptQueries++
	if r.readErr != nil {
		return nil, r.readErr
	}
	var out []*entity.LedgerRow
	for _, row := range r.rows {
		if row.ReceiptIDValue() == receiptID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeLedgerRepo) ListByProduct(_ context.Context, productID string, includeAdjust bool, limit int) ([]*entity.LedgerRow, error) {
	var out []*entity.LedgerRow
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		row := r.rows[i]
		if row.ProductID != productID {
			continue
		}
		if !includeAdjust && row.Type == entity.MovementTypeADJUST {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeLedgerRepo) ListSince(_ context.Context, since time.Time, limit int) ([]*entity.LedgerRow, error) {
	var out []*entity.LedgerRow
	for _, row := range r.rows {
		if !row.CreatedAt.Before(since) && len(out) < limit {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta fn con los repos en memoria; si fn falla no deshace nada,
// por eso los tests revisan que el caso de uso valide antes de escribir.
type fakeTxRunner struct {
	ledger   *fakeLedgerRepo
	products *fakeProductRepo
	runs     int
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(repository.LedgerRepository, repository.ProductRepository) error) error {
	t.runs++
	return fn(t.ledger, t.products)
}

// fakeCache caché en memoria.
type fakeCache struct {
	items  map[string]*appinv.Receipt
	getErr  error
	sets    int
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]*appinv.Receipt)}
}

func (c *fakeCache) Get(_ context.Context, id string) (*appinv.Receipt, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.items[id], nil
}

func (c *fakeCache) Set(_ context.Context, r *appinv.Receipt, _ time.Duration) error {
	c.sets++
	c.items[r.ID] = r
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id string) error {
	c.deletes = append(c.deletes, id)
	delete(c.items, id)
	return nil
}

func strPtr(s string) *string { return &s }
