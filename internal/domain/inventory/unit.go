package inventory

import (
	"math"

	"github.com/shopspring/decimal"
)

// Unit unidad física en la que el operador teclea la cantidad.
type Unit string

// Unidades aceptadas por la pantalla masiva (enum cerrado).
const (
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitPiece      Unit = "piece"
	UnitPack       Unit = "pack"
)

// DefaultUnit unidad de una fila que el operador todavía no tocó.
const DefaultUnit = UnitPiece

var unitLabels = map[Unit]string{
	UnitMilliliter: "ml",
	UnitLiter:      "lít",
	UnitGram:       "g",
	UnitKilogram:   "kg",
	UnitPiece:      "cái",
	UnitPack:       "lốc",
}

// Units devuelve las unidades en orden de presentación.
func Units() []Unit {
	return []Unit{UnitMilliliter, UnitLiter, UnitGram, UnitKilogram, UnitPiece, UnitPack}
}

// ParseUnit valida un tag de unidad recibido desde fuera (HTTP, DB).
func ParseUnit(s string) (Unit, bool) {
	u := Unit(s)
	_, ok := unitLabels[u]
	return u, ok
}

// Valid indica si u pertenece al enum.
func (u Unit) Valid() bool {
	_, ok := unitLabels[u]
	return ok
}

// Label etiqueta para mostrar en pantalla y en el phiếu.
func (u Unit) Label() string {
	if l, ok := unitLabels[u]; ok {
		return l
	}
	return string(u)
}

var (
	dec2   = decimal.NewFromInt(2)
	dec6   = decimal.NewFromInt(6)
	dec10  = decimal.NewFromInt(10)
	dec100 = decimal.NewFromInt(100)
	dec500 = decimal.NewFromInt(500)

	maxQuantity = decimal.NewFromInt(math.MaxInt32)
)

// Convert transforma una cantidad física en unidades de stock (siempre floor, nunca round).
// Valores no finitos o <= 0 devuelven 0: "todavía no es una entrada válida", no un error.
//
//	ml   → floor(v / 500)
//	l    → floor(v * 1000 / 500) = floor(v * 2)
//	g    → floor(v / 100)
//	kg   → floor(v * 10)
//	piece→ floor(v)
//	pack → floor(v * 6)
func Convert(value float64, unit Unit) int {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0
	}
	// NewFromFloat usa la representación decimal más corta: 2.3 es exactamente 2.3.
	return ConvertDecimal(decimal.NewFromFloat(value), unit)
}

// ConvertDecimal aplica la misma tabla que Convert con aritmética decimal exacta.
// Unidad desconocida devuelve 0.
func ConvertDecimal(value decimal.Decimal, unit Unit) int {
	if !value.IsPositive() {
		return 0
	}
	var q decimal.Decimal
	switch unit {
	case UnitMilliliter:
		q, _ = value.QuoRem(dec500, 0)
	case UnitLiter:
		q = value.Mul(dec2)
	case UnitGram:
		q, _ = value.QuoRem(dec100, 0)
	case UnitKilogram:
		q = value.Mul(dec10)
	case UnitPiece:
		q = value
	case UnitPack:
		q = value.Mul(dec6)
	default:
		return 0
	}
	q = q.Floor()
	if q.GreaterThan(maxQuantity) {
		q = maxQuantity
	}
	return int(q.IntPart())
}
