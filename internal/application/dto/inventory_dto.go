package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductResponse producto de la pantalla masiva.
type ProductResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Image         string `json:"image,omitempty"`
	CategoryID    string `json:"category_id,omitempty"`
	StockQuantity int    `json:"stock_quantity"`
}

// CategoryResponse categoría para los chips de filtro.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductListQuery filtros de GET /api/inventory/products.
type ProductListQuery struct {
	CategoryID string `query:"category_id"`
	Search     string `query:"search"`
}

// BulkRowRequest una fila tal como la tecleó el operador: texto crudo + unidad.
type BulkRowRequest struct {
	ProductID string `json:"product_id"`
	RawInput  string `json:"raw_input"`
	Unit      string `json:"unit,omitempty"` // ml, l, g, kg, piece, pack; vacío = piece
}

// BulkRequest body de POST /api/inventory/bulk y /bulk/preview.
type BulkRequest struct {
	Type         string           `json:"type"` // IN | OUT
	Rows         []BulkRowRequest `json:"rows"`
	ReasonPreset string           `json:"reason_preset,omitempty"`
	ReasonCustom string           `json:"reason_custom,omitempty"`
}

// BulkRowResponse fila derivada (cantidad en unidades de stock).
type BulkRowResponse struct {
	ProductID string `json:"product_id"`
	RawInput  string `json:"raw_input"`
	Unit      string `json:"unit"`
	UnitLabel string `json:"unit_label"`
	Quantity  int    `json:"quantity"`
}

// BulkItemResponse ítem seleccionado para el lote.
type BulkItemResponse struct {
	ProductID  string           `json:"product_id"`
	Qty        int              `json:"qty"`
	InputValue *decimal.Decimal `json:"input_value,omitempty"`
	InputUnit  string           `json:"input_unit"`
}

// BulkPreviewResponse salida de POST /api/inventory/bulk/preview.
type BulkPreviewResponse struct {
	Rows          []BulkRowResponse  `json:"rows"`
	Items         []BulkItemResponse `json:"items"`
	CanSubmit     bool               `json:"can_submit"`
	ReasonPresets []string           `json:"reason_presets"`
}

// BulkItemResultResponse resultado por ítem; error vacío = registrado.
type BulkItemResultResponse struct {
	ProductID   string `json:"product_id"`
	Qty         int    `json:"qty"`
	OK          bool   `json:"ok"`
	LedgerRowID string `json:"ledger_row_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// BulkSubmitResponse salida de POST /api/inventory/bulk. receipt_id vacío si todo falló.
type BulkSubmitResponse struct {
	ReceiptID string                   `json:"receipt_id,omitempty"`
	Success   int                      `json:"success"`
	Fail      int                      `json:"fail"`
	Details   []BulkItemResultResponse `json:"details"`
}

// MovementRequest body de POST /api/inventory/in y /out (un solo producto).
// Un movimiento individual nunca pertenece a un phiếu.
type MovementRequest struct {
	ProductID  string           `json:"product_id"`
	Quantity   int              `json:"quantity"`
	Note       string           `json:"note,omitempty"`
	InputValue *decimal.Decimal `json:"input_value,omitempty"`
	InputUnit  string           `json:"input_unit,omitempty"`
}

// AdjustRequest body de POST /api/inventory/products/:id/adjust.
type AdjustRequest struct {
	Direction string `json:"direction"` // INCREASE | DECREASE
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

// MovementResponse id de la fila creada en el ledger.
type MovementResponse struct {
	LedgerRowID string `json:"ledger_row_id"`
}

// HistoryQuery filtros de GET /api/inventory/products/:id/history.
// IncludeAdjust nil = incluir ajustes.
type HistoryQuery struct {
	IncludeAdjust *bool `query:"include_adjust"`
	Limit         int   `query:"limit"`
}

// LedgerRowResponse fila del historial de un producto.
type LedgerRowResponse struct {
	ID                string           `json:"id"`
	ProductID         string           `json:"product_id"`
	ReceiptID         string           `json:"receipt_id,omitempty"`
	Type              string           `json:"type"`
	RequestedQuantity int              `json:"requested_quantity"`
	AppliedQuantity   int              `json:"applied_quantity"`
	Delta             int              `json:"delta"`
	Note              string           `json:"note,omitempty"`
	InputValue        *decimal.Decimal `json:"input_value,omitempty"`
	InputUnit         string           `json:"input_unit,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	CreatedBy         string           `json:"created_by,omitempty"`
}
