package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kho-api/internal/domain/entity"
)

// SelectedItem línea que entra en el lote: filas con Quantity > 0.
// InputValue e InputUnit viajan hasta el ledger para auditoría.
type SelectedItem struct {
	ProductID  string
	Qty        int
	InputValue decimal.NullDecimal // inválido si el texto estaba vacío
	InputUnit  Unit
}

// SelectedItems proyecta las filas con cantidad derivada > 0, en orden de inserción.
func SelectedItems(rows *Rows) []SelectedItem {
	var items []SelectedItem
	for _, row := range rows.All() {
		if row.Quantity <= 0 {
			continue
		}
		items = append(items, SelectedItem{
			ProductID:  row.ProductID,
			Qty:        row.Quantity,
			InputValue: row.Input.Value,
			InputUnit:  row.Unit,
		})
	}
	return items
}

// ReasonOther preset "Khác": exige texto libre.
const ReasonOther = "Khác"

var reasonPresets = map[string][]string{
	entity.MovementTypeIN:  {"Kho giao", "Nhập từ nhà cung cấp", "Khách trả hàng", ReasonOther},
	entity.MovementTypeOUT: {"Xuất bán", "Hàng hỏng", "Hết hạn sử dụng", "Chuyển chi nhánh", ReasonOther},
}

// ReasonPresets lista de razones predefinidas para un tipo de movimiento.
func ReasonPresets(movementType string) []string {
	return append([]string(nil), reasonPresets[movementType]...)
}

// Reason razón del lote: un preset o "Khác" con texto libre.
type Reason struct {
	Preset string
	Custom string
}

// DefaultReason primer preset del tipo de movimiento, sin texto libre.
func DefaultReason(movementType string) Reason {
	presets := reasonPresets[movementType]
	if len(presets) == 0 {
		return Reason{}
	}
	return Reason{Preset: presets[0]}
}

// IsOther indica si se eligió "Khác".
func (r Reason) IsOther() bool {
	return r.Preset == ReasonOther
}

// Text texto que se guarda como note en cada fila del ledger.
func (r Reason) Text() string {
	if r.IsOther() {
		return strings.TrimSpace(r.Custom)
	}
	return r.Preset
}

// CanSubmit: al menos un ítem y, si el preset es "Khác", texto libre no vacío.
func CanSubmit(items []SelectedItem, reason Reason) bool {
	if len(items) == 0 {
		return false
	}
	return !reason.IsOther() || strings.TrimSpace(reason.Custom) != ""
}
