package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kho-api/internal/application/dto"
	appinv "github.com/jhoicas/kho-api/internal/application/inventory"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/repository"
	"github.com/jhoicas/kho-api/internal/infrastructure/postgres"
	apphttp "github.com/jhoicas/kho-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProducts struct {
	byID map[string]*entity.Product
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return m.GetByID(ctx, id)
}

func (m *memProducts) UpdateStock(_ context.Context, id string, quantity int) error {
	m.byID[id].StockQuantity = quantity
	return nil
}

func (m *memProducts) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.byID {
		if filter.CategoryID == "" || p.CategoryID == filter.CategoryID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memProducts) GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, _ := m.GetByID(ctx, id); p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

type memCategories []*entity.Category

func (m memCategories) List(context.Context) ([]*entity.Category, error) { return m, nil }

type memLedger struct {
	rows    []*entity.LedgerRow
	readErr error
}

func (m *memLedger) Create(_ context.Context, row *entity.LedgerRow) error {
	m.rows = append(m.rows, row)
	return nil
}

func (m *memLedger) ListByReceipt(_ context.Context, receiptID string) ([]*entity.LedgerRow, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []*entity.LedgerRow
	for _, r := range m.rows {
		if r.ReceiptIDValue() == receiptID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memLedger) ListByProduct(_ context.Context, productID string, includeAdjust bool, limit int) ([]*entity.LedgerRow, error) {
	var out []*entity.LedgerRow
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		r := m.rows[i]
		if r.ProductID == productID && (includeAdjust || r.Type != entity.MovementTypeADJUST) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memLedger) ListSince(_ context.Context, _ time.Time, _ int) ([]*entity.LedgerRow, error) {
	return m.rows, nil
}

type memTx struct {
	ledger   *memLedger
	products *memProducts
}

func (t *memTx) Run(_ context.Context, fn func(repository.LedgerRepository, repository.ProductRepository) error) error {
	return fn(t.ledger, t.products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	ledger   *memLedger
	products *memProducts
}

func newTestEnv(products ...*entity.Product) *testEnv {
	prods := &memProducts{byID: make(map[string]*entity.Product)}
	for _, p := range products {
		prods.byID[p.ID] = p
	}
	ledger := &memLedger{}
	movement := appinv.NewMovementUseCase(&memTx{ledger: ledger, products: prods})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Catalog:   appinv.NewCatalogUseCase(prods, memCategories{{ID: "c-drinks", Name: "Đồ uống"}}),
		Bulk:      appinv.NewBulkUseCase(movement, nil),
		Movement:  movement,
		History:   appinv.NewHistoryUseCase(ledger),
		Receipt:   appinv.NewReceiptUseCase(ledger, prods, appinv.ReceiptDeps{}),
		JWTSecret: testJWTSecret,
	})
	return &testEnv{app: app, ledger: ledger, products: prods}
}

func (e *testEnv) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func milk() *entity.Product {
	return &entity.Product{ID: "p-milk", Name: "Sữa tươi", StockQuantity: 10}
}

func coffee() *entity.Product {
	return &entity.Product{ID: "p-coffee", Name: "Cà phê sữa đá", StockQuantity: 2}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: la previsualización deriva cantidades sin tocar el ledger.
func TestPreviewBulk_DerivaCantidades(t *testing.T) {
	env := newTestEnv(milk())
	resp := env.do(t, http.MethodPost, "/api/inventory/bulk/preview", "staff", dto.BulkRequest{
		Type: "IN",
		Rows: []dto.BulkRowRequest{{ProductID: "p-milk", RawInput: "1.5", Unit: "l"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.BulkPreviewResponse](t, resp)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, 3, out.Rows[0].Quantity, "1.5 lít = 3 unidades de 500 ml")
	assert.Equal(t, "lít", out.Rows[0].UnitLabel)
	assert.True(t, out.CanSubmit)
	assert.Equal(t, "Kho giao", out.ReasonPresets[0])
	assert.Empty(t, env.ledger.rows, "preview no escribe")
}

// Caso 2: lote IN exitoso y phiếu recuperable por su id.
func TestSubmitBulk_EntradaYRecibo(t *testing.T) {
	env := newTestEnv(milk(), coffee())
	resp := env.do(t, http.MethodPost, "/api/inventory/bulk", "staff", dto.BulkRequest{
		Type: "IN",
		Rows: []dto.BulkRowRequest{
			{ProductID: "p-milk", RawInput: "500", Unit: "ml"},
			{ProductID: "p-coffee", RawInput: "2"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.BulkSubmitResponse](t, resp)
	assert.Equal(t, 2, out.Success)
	assert.Equal(t, 0, out.Fail)
	require.NotEmpty(t, out.ReceiptID)
	assert.Equal(t, 11, env.products.byID["p-milk"].StockQuantity)
	assert.Equal(t, 4, env.products.byID["p-coffee"].StockQuantity)

	resp = env.do(t, http.MethodGet, "/api/receipts/"+out.ReceiptID, "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	receipt := decode[dto.ReceiptResponse](t, resp)
	assert.Equal(t, "IN", receipt.Type)
	assert.Equal(t, 3, receipt.TotalQty)
	assert.Equal(t, "Kho giao", receipt.ReasonText)
	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, "Sữa tươi", receipt.Lines[0].ProductName, "las líneas conservan el orden de envío")
	assert.Equal(t, "ml", receipt.Lines[0].InputUnit)
}

// Caso 3: lote OUT parcial; el ítem que supera el stock falla y el resto se registra.
func TestSubmitBulk_SalidaParcial(t *testing.T) {
	env := newTestEnv(milk(), coffee())
	resp := env.do(t, http.MethodPost, "/api/inventory/bulk", "staff", dto.BulkRequest{
		Type: "OUT",
		Rows: []dto.BulkRowRequest{
			{ProductID: "p-milk", RawInput: "4"},
			{ProductID: "p-coffee", RawInput: "5"},
		},
		ReasonPreset: "Hàng hỏng",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.BulkSubmitResponse](t, resp)
	assert.Equal(t, 1, out.Success)
	assert.Equal(t, 1, out.Fail)
	assert.NotEmpty(t, out.ReceiptID)
	require.Len(t, out.Details, 2)
	assert.True(t, out.Details[0].OK)
	assert.False(t, out.Details[1].OK)
	assert.Contains(t, out.Details[1].Error, "stock actual: 2")
	assert.Equal(t, 6, env.products.byID["p-milk"].StockQuantity)
	assert.Equal(t, 2, env.products.byID["p-coffee"].StockQuantity, "el stock nunca se recorta")
	assert.Equal(t, "Hàng hỏng", env.ledger.rows[0].Note)
}

// Caso 4: sin ítems con cantidad o "Khác" sin texto → 422 sin I/O.
func TestSubmitBulk_NoEnviable(t *testing.T) {
	env := newTestEnv(milk())

	resp := env.do(t, http.MethodPost, "/api/inventory/bulk", "staff", dto.BulkRequest{
		Type: "IN",
		Rows: []dto.BulkRowRequest{{ProductID: "p-milk", RawInput: "100", Unit: "ml"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "100 ml = 0 unidades")

	resp = env.do(t, http.MethodPost, "/api/inventory/bulk", "staff", dto.BulkRequest{
		Type:         "IN",
		Rows:         []dto.BulkRowRequest{{ProductID: "p-milk", RawInput: "1"}},
		ReasonPreset: "Khác",
		ReasonCustom: "   ",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, env.ledger.rows)
}

// Caso 5: unidad, razón o tipo fuera del enum, o producto repetido → 400.
func TestSubmitBulk_RequestInvalido(t *testing.T) {
	env := newTestEnv(milk())
	cases := []dto.BulkRequest{
		{Type: "IN", Rows: []dto.BulkRowRequest{{ProductID: "p-milk", RawInput: "1", Unit: "oz"}}},
		{Type: "IN", Rows: []dto.BulkRowRequest{{ProductID: "p-milk", RawInput: "1"}}, ReasonPreset: "Xuất bán"},
		{Type: "ADJUST", Rows: []dto.BulkRowRequest{{ProductID: "p-milk", RawInput: "1"}}},
		{Type: "IN", Rows: []dto.BulkRowRequest{
			{ProductID: "p-milk", RawInput: "2"},
			{ProductID: "p-milk", RawInput: "3"},
		}},
	}
	for _, in := range cases {
		resp := env.do(t, http.MethodPost, "/api/inventory/bulk", "staff", in)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "request %+v", in)
	}
	assert.Empty(t, env.ledger.rows)
	assert.Equal(t, 10, env.products.byID["p-milk"].StockQuantity)
}

// Caso 5b: un movimiento individual no se cuelga de un phiếu existente.
func TestCreateIn_IgnoraReceiptID(t *testing.T) {
	env := newTestEnv(milk())
	resp := env.do(t, http.MethodPost, "/api/inventory/in", "staff", map[string]any{
		"product_id": "p-milk",
		"quantity":   2,
		"receipt_id": "6f1c2a4e-8b7d-4c3a-9e21-0d5b6a7c8e9f",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, env.ledger.rows, 1)
	assert.Nil(t, env.ledger.rows[0].ReceiptID)
	assert.Equal(t, 12, env.products.byID["p-milk"].StockQuantity)
}

// Caso 6: salida individual que supera el stock → 409.
func TestCreateOut_StockInsuficiente(t *testing.T) {
	env := newTestEnv(coffee())
	resp := env.do(t, http.MethodPost, "/api/inventory/out", "staff", dto.MovementRequest{ProductID: "p-coffee", Quantity: 3})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
}

// Caso 7: el ajuste es solo para admin y aparece en el historial.
func TestAdjust_SoloAdmin(t *testing.T) {
	env := newTestEnv(milk())
	req := dto.AdjustRequest{Direction: "decrease", Quantity: 1, Note: "Kiểm kê"}

	resp := env.do(t, http.MethodPost, "/api/inventory/products/p-milk/adjust", "staff", req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/inventory/products/p-milk/adjust", "admin", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 9, env.products.byID["p-milk"].StockQuantity)

	resp = env.do(t, http.MethodGet, "/api/inventory/products/p-milk/history?include_adjust=false", "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.LedgerRowResponse](t, resp), "sin ajustes cuando include_adjust=false")

	resp = env.do(t, http.MethodGet, "/api/inventory/products/p-milk/history", "staff", nil)
	rows := decode[[]dto.LedgerRowResponse](t, resp)
	require.Len(t, rows, 1)
	assert.Equal(t, -1, rows[0].Delta)
	assert.Empty(t, rows[0].ReceiptID)
}

// Caso 8: phiếu inexistente → 404; fallo de lectura → 503 con retryable.
func TestGetReceipt_Errores(t *testing.T) {
	env := newTestEnv(milk())

	resp := env.do(t, http.MethodGet, "/api/receipts/no-existe", "staff", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	env.ledger.readErr = errors.New("timeout")
	resp = env.do(t, http.MethodGet, "/api/receipts/r-1", "staff", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "RECEIPT_UNAVAILABLE", body.Code)
	assert.True(t, body.Retryable)
}

// Caso 9: listado con búsqueda sin diacríticos.
func TestListProducts_Busqueda(t *testing.T) {
	env := newTestEnv(milk(), coffee(), &entity.Product{ID: "p-tea", Name: "Trà đào"})
	resp := env.do(t, http.MethodGet, "/api/inventory/products?search=sua", "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[[]dto.ProductResponse](t, resp)
	require.Len(t, out, 2)
	assert.Equal(t, "Cà phê sữa đá", out[0].Name)
	assert.Equal(t, "Sữa tươi", out[1].Name)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv()
	resp := env.do(t, http.MethodGet, "/api/inventory/categories", "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[[]dto.CategoryResponse](t, resp)
	require.Len(t, out, 1)
	assert.Equal(t, "Đồ uống", out[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ids que no son UUID contra los adaptadores de PostgreSQL
// ──────────────────────────────────────────────────────────────────────────────

// pgTx entrega repos de PostgreSQL sin conexión: solo sirven para ids que se rechazan antes de consultar.
type pgTx struct{}

func (pgTx) Run(_ context.Context, fn func(repository.LedgerRepository, repository.ProductRepository) error) error {
	return fn(postgres.NewLedgerRepository(nil), postgres.NewProductRepository(nil))
}

func newPostgresEnv() *testEnv {
	ledger := postgres.NewLedgerRepository(nil)
	products := postgres.NewProductRepository(nil)
	movement := appinv.NewMovementUseCase(pgTx{})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Catalog:   appinv.NewCatalogUseCase(products, memCategories{}),
		Bulk:      appinv.NewBulkUseCase(movement, nil),
		Movement:  movement,
		History:   appinv.NewHistoryUseCase(ledger),
		Receipt:   appinv.NewReceiptUseCase(ledger, products, appinv.ReceiptDeps{}),
		JWTSecret: testJWTSecret,
	})
	return &testEnv{app: app}
}

func TestIDsMalFormados(t *testing.T) {
	env := newPostgresEnv()
	cases := []struct {
		name     string
		method   string
		path     string
		role     string
		body     any
		status   int
		wantCode string
	}{
		// Caso 1: phiếu con id no UUID es "no encontrado", nunca 503 reintentable
		{"phiếu", http.MethodGet, "/api/receipts/abc", "staff", nil, http.StatusNotFound, "RECEIPT_NOT_FOUND"},
		// Caso 2: entrada y salida individuales
		{"entrada", http.MethodPost, "/api/inventory/in", "staff", dto.MovementRequest{ProductID: "abc", Quantity: 1}, http.StatusBadRequest, "VALIDATION"},
		{"salida", http.MethodPost, "/api/inventory/out", "staff", dto.MovementRequest{ProductID: "abc", Quantity: 1}, http.StatusBadRequest, "VALIDATION"},
		// Caso 3: ajuste e historial por ruta
		{"ajuste", http.MethodPost, "/api/inventory/products/abc/adjust", "admin", dto.AdjustRequest{Direction: "increase", Quantity: 1, Note: "Kiểm kê"}, http.StatusBadRequest, "VALIDATION"},
		{"historial", http.MethodGet, "/api/inventory/products/abc/history", "staff", nil, http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, tc.method, tc.path, tc.role, tc.body)
			require.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.wantCode, decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}
