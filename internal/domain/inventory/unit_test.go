package inventory_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kho-api/internal/domain/inventory"
)

func TestConvert_Tabla(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		unit  inventory.Unit
		want  int
	}{
		{"500 ml = 1", 500, inventory.UnitMilliliter, 1},
		{"999 ml = 1 (floor)", 999, inventory.UnitMilliliter, 1},
		{"499 ml = 0", 499, inventory.UnitMilliliter, 0},
		{"1 l = 2", 1, inventory.UnitLiter, 2},
		{"0.7 l = 1", 0.7, inventory.UnitLiter, 1},
		{"250 g = 2 (floor, no round)", 250, inventory.UnitGram, 2},
		{"1.5 kg = 15", 1.5, inventory.UnitKilogram, 15},
		{"2.3 kg = 23 (sin error binario)", 2.3, inventory.UnitKilogram, 23},
		{"2.9 piece = 2", 2.9, inventory.UnitPiece, 2},
		{"2 pack = 12", 2, inventory.UnitPack, 12},
		{"0.5 pack = 3", 0.5, inventory.UnitPack, 3},
		{"unidad desconocida = 0", 10, inventory.Unit("barril"), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.Convert(tc.value, tc.unit))
		})
	}
}

func TestConvert_EntradasNoValidasDevuelvenCero(t *testing.T) {
	for _, u := range inventory.Units() {
		assert.Equal(t, 0, inventory.Convert(0, u), "0 %s", u)
		assert.Equal(t, 0, inventory.Convert(-1, u), "-1 %s", u)
		assert.Equal(t, 0, inventory.Convert(math.NaN(), u), "NaN %s", u)
		assert.Equal(t, 0, inventory.Convert(math.Inf(1), u), "+Inf %s", u)
	}
}

func TestConvertDecimal_CoincideConConvert(t *testing.T) {
	for _, u := range inventory.Units() {
		for _, v := range []float64{0.1, 1, 12.5, 250, 1000} {
			assert.Equal(t, inventory.Convert(v, u), inventory.ConvertDecimal(decimal.NewFromFloat(v), u), "%v %s", v, u)
		}
	}
}

func TestConvertDecimal_TopeEnMaxInt32(t *testing.T) {
	huge := decimal.RequireFromString("1e30")
	assert.Equal(t, math.MaxInt32, inventory.ConvertDecimal(huge, inventory.UnitPiece))
}

func TestParseUnit(t *testing.T) {
	u, ok := inventory.ParseUnit("kg")
	assert.True(t, ok)
	assert.Equal(t, inventory.UnitKilogram, u)
	assert.Equal(t, "kg", u.Label())

	_, ok = inventory.ParseUnit("KG")
	assert.False(t, ok, "los tags son sensibles a mayúsculas")
	assert.Equal(t, "lốc", inventory.UnitPack.Label())
}
