package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento en el ledger inventory_transactions.
const (
	MovementTypeIN     = "IN"     // nhập kho
	MovementTypeOUT    = "OUT"    // xuất kho
	MovementTypeADJUST = "ADJUST" // điều chỉnh (drawer de un producto)
)

// Dirección de un ajuste.
const (
	AdjustIncrease = "INCREASE"
	AdjustDecrease = "DECREASE"
)

// LedgerRow es una fila inmutable del ledger: un cambio de stock de un producto.
// Se crea una sola vez y nunca se actualiza ni se borra.
type LedgerRow struct {
	ID                string
	ProductID         string
	ReceiptID         *string // nil para ajustes individuales fuera de un lote
	Type              string  // IN, OUT, ADJUST
	RequestedQuantity int
	AppliedQuantity   int
	Delta             int // cambio firmado sobre stock_quantity
	Note              string
	InputValue        decimal.NullDecimal // valor crudo tecleado por el operador (auditoría)
	InputUnit         string
	CreatedAt         time.Time
	CreatedBy         string
}

// ReceiptIDValue devuelve el receipt_id o "" si la fila no pertenece a un phiếu.
func (r *LedgerRow) ReceiptIDValue() string {
	if r.ReceiptID == nil {
		return ""
	}
	return *r.ReceiptID
}
