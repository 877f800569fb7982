package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NumericInput conserva el texto tecleado tal cual (permite "", "12." mientras se edita)
// junto con su valor parseado. Value.Valid=false si el texto está vacío o no es numérico.
type NumericInput struct {
	Raw   string
	Value decimal.NullDecimal
}

// ParseInput construye el NumericInput de un texto crudo sin alterar el texto.
func ParseInput(raw string) NumericInput {
	in := NumericInput{Raw: raw}
	s := strings.TrimSpace(raw)
	if s == "" {
		return in
	}
	// "12." es un estado intermedio válido mientras se teclea decimales.
	s = strings.TrimSuffix(s, ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return in
	}
	in.Value = decimal.NewNullDecimal(d)
	return in
}

// IsBlank indica si el texto, sin espacios, está vacío.
func (n NumericInput) IsBlank() bool {
	return strings.TrimSpace(n.Raw) == ""
}

// Row estado de entrada de un producto en la sesión masiva.
// Quantity siempre es Convert(parse(Input.Raw), Unit); nunca se asigna a mano.
type Row struct {
	ProductID string
	Input     NumericInput
	Unit      Unit
	Quantity  int
}

// RowPatch cambio parcial sobre una fila: texto, unidad o ambos.
type RowPatch struct {
	Raw  *string
	Unit *Unit
}

// ApplyPatch produce el siguiente estado de la fila y recalcula Quantity.
func ApplyPatch(prev Row, patch RowPatch) Row {
	next := prev
	if patch.Raw != nil {
		next.Input = ParseInput(*patch.Raw)
	}
	if patch.Unit != nil {
		next.Unit = *patch.Unit
	}
	next.Quantity = derivedQuantity(next.Input, next.Unit)
	return next
}

func derivedQuantity(in NumericInput, unit Unit) int {
	if in.IsBlank() || !in.Value.Valid {
		return 0
	}
	return ConvertDecimal(in.Value.Decimal, unit)
}

// Rows colección de filas en orden de inserción.
// No es segura para uso concurrente: pertenece a una sola sesión.
type Rows struct {
	order []string
	byID  map[string]Row
}

// NewRows crea una colección vacía.
func NewRows() *Rows {
	return &Rows{byID: make(map[string]Row)}
}

// Get devuelve la fila de un producto.
func (r *Rows) Get(productID string) (Row, bool) {
	row, ok := r.byID[productID]
	return row, ok
}

// Patch aplica un cambio a la fila del producto, creándola si no existe.
func (r *Rows) Patch(productID string, patch RowPatch) Row {
	prev, ok := r.byID[productID]
	if !ok {
		prev = Row{ProductID: productID, Unit: DefaultUnit}
		r.order = append(r.order, productID)
	}
	next := ApplyPatch(prev, patch)
	r.byID[productID] = next
	return next
}

// Step suma delta al valor numérico de la fila (stepper +/-). El resultado nunca baja de 0
// y 0 vuelve a texto vacío en lugar de "0".
func (r *Rows) Step(productID string, delta int) Row {
	cur := decimal.Zero
	if row, ok := r.byID[productID]; ok && row.Input.Value.Valid {
		cur = row.Input.Value.Decimal
	}
	next := cur.Add(decimal.NewFromInt(int64(delta)))
	raw := ""
	if next.IsPositive() {
		raw = next.String()
	}
	return r.Patch(productID, RowPatch{Raw: &raw})
}

// Clear elimina la fila por completo (distinto de poner el valor en 0).
func (r *Rows) Clear(productID string) {
	if _, ok := r.byID[productID]; !ok {
		return
	}
	delete(r.byID, productID)
	for i, id := range r.order {
		if id == productID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Reset vacía la colección.
func (r *Rows) Reset() {
	r.order = nil
	r.byID = make(map[string]Row)
}

// Len número de filas (activas o no).
func (r *Rows) Len() int {
	return len(r.order)
}

// All devuelve una copia de las filas en orden de inserción.
func (r *Rows) All() []Row {
	out := make([]Row, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
