package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLineResponse línea del phiếu, en el orden en que se envió.
type ReceiptLineResponse struct {
	LedgerRowID string           `json:"ledger_row_id"`
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name"`
	Image       string           `json:"image,omitempty"`
	Quantity    int              `json:"quantity"`
	InputValue  *decimal.Decimal `json:"input_value,omitempty"`
	InputUnit   string           `json:"input_unit,omitempty"`
}

// ReceiptResponse salida de GET /api/receipts/:id.
type ReceiptResponse struct {
	ID         string                `json:"id"`
	Code       string                `json:"code"`
	Type       string                `json:"type"`
	CreatedAt  time.Time             `json:"created_at"`
	ReasonText string                `json:"reason_text"`
	TotalQty   int                   `json:"total_qty"`
	Lines      []ReceiptLineResponse `json:"lines"`
}
