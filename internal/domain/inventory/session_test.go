package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kho-api/internal/domain"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/inventory"
)

func newSession(t *testing.T, movementType string) *inventory.BulkSession {
	t.Helper()
	s, err := inventory.NewBulkSession(movementType)
	require.NoError(t, err)
	s.LoadProducts([]*entity.Product{
		{ID: "p1", Name: "Cà phê sữa đá", StockQuantity: 10},
		{ID: "p2", Name: "Trà đào cam sả", StockQuantity: 1},
		{ID: "p3", Name: "Sữa tươi", StockQuantity: 0},
	})
	return s
}

func TestNewBulkSession_TipoInvalido(t *testing.T) {
	_, err := inventory.NewBulkSession(entity.MovementTypeADJUST)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSelectedItems_SoloCantidadPositiva(t *testing.T) {
	s := newSession(t, entity.MovementTypeIN)
	s.Rows().Patch("p1", patch("500", inventory.UnitMilliliter))
	s.Rows().Patch("p2", patch("0", inventory.UnitPiece))
	s.Rows().Patch("p3", patch("", inventory.UnitPiece))
	s.Rows().Patch("p4", patch("99", inventory.UnitGram)) // floor(99/100) = 0

	items := s.SelectedItems()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 1, items[0].Qty)
	assert.Equal(t, inventory.UnitMilliliter, items[0].InputUnit)
	require.True(t, items[0].InputValue.Valid)
	assert.Equal(t, "500", items[0].InputValue.Decimal.String())

	// Invariante: exactamente las filas con Quantity > 0.
	for _, row := range s.Rows().All() {
		found := false
		for _, it := range items {
			found = found || it.ProductID == row.ProductID
		}
		assert.Equal(t, row.Quantity > 0, found, row.ProductID)
	}
}

func TestSelectedItems_ClearQuitaDeLaSeleccion(t *testing.T) {
	s := newSession(t, entity.MovementTypeIN)
	s.Rows().Patch("p1", patch("2", inventory.UnitPiece))
	require.Len(t, s.SelectedItems(), 1)

	s.Rows().Clear("p1")
	assert.Empty(t, s.SelectedItems())
	assert.False(t, s.CanSubmit())
}

func TestCanSubmit(t *testing.T) {
	item := []inventory.SelectedItem{{ProductID: "p1", Qty: 1}}

	assert.False(t, inventory.CanSubmit(nil, inventory.Reason{Preset: "Kho giao"}), "sin ítems nunca se envía")
	assert.False(t, inventory.CanSubmit(nil, inventory.Reason{Preset: inventory.ReasonOther, Custom: "x"}))
	assert.False(t, inventory.CanSubmit(item, inventory.Reason{Preset: inventory.ReasonOther, Custom: "   "}))
	assert.False(t, inventory.CanSubmit(item, inventory.Reason{Preset: inventory.ReasonOther}))
	assert.True(t, inventory.CanSubmit(item, inventory.Reason{Preset: inventory.ReasonOther, Custom: "Kiểm kê"}))
	assert.True(t, inventory.CanSubmit(item, inventory.Reason{Preset: "Kho giao"}))
}

func TestReason_Text(t *testing.T) {
	assert.Equal(t, "Kho giao", inventory.Reason{Preset: "Kho giao", Custom: "ignorado"}.Text())
	assert.Equal(t, "Kiểm kê", inventory.Reason{Preset: inventory.ReasonOther, Custom: "  Kiểm kê "}.Text())
}

func TestReasonPresets_TerminanEnKhac(t *testing.T) {
	for _, typ := range []string{entity.MovementTypeIN, entity.MovementTypeOUT} {
		presets := inventory.ReasonPresets(typ)
		require.NotEmpty(t, presets)
		assert.Equal(t, inventory.ReasonOther, presets[len(presets)-1])
		assert.Equal(t, presets[0], inventory.DefaultReason(typ).Preset)
	}
	assert.Equal(t, "Kho giao", inventory.DefaultReason(entity.MovementTypeIN).Preset)
}

func TestBulkSession_VisibleProductsSinDiacriticos(t *testing.T) {
	s := newSession(t, entity.MovementTypeIN)
	s.SetSearch("sua")

	var names []string
	for _, p := range s.VisibleProducts() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Cà phê sữa đá", "Sữa tươi"}, names)

	s.SetSearch("")
	assert.Len(t, s.VisibleProducts(), 3)
}

func TestBulkSession_ResetAfterSuccess(t *testing.T) {
	s := newSession(t, entity.MovementTypeOUT)
	s.Rows().Patch("p1", patch("1", inventory.UnitPiece))
	s.SetSearch("cà")
	s.SetReason(inventory.ReasonOther, "Kiểm kê")

	s.ResetAfterSuccess("r-1")

	assert.Equal(t, 0, s.Rows().Len())
	assert.Equal(t, "", s.Search())
	assert.Equal(t, inventory.DefaultReason(entity.MovementTypeOUT), s.Reason())
	assert.Equal(t, "r-1", s.LastReceiptID())
	assert.Equal(t, 10, s.StockOf("p1"), "la foto del catálogo no se toca")

	s.DiscardReceipt()
	assert.Equal(t, "", s.LastReceiptID())
}

func TestBulkSession_StockOfProductoNoCargado(t *testing.T) {
	s := newSession(t, entity.MovementTypeOUT)
	assert.Equal(t, 0, s.StockOf("desconocido"))
	_, ok := s.Product("desconocido")
	assert.False(t, ok)
}

func TestDrawer_Transiciones(t *testing.T) {
	s := newSession(t, entity.MovementTypeIN)
	d := s.Drawer()
	assert.False(t, d.IsOpen())

	require.NoError(t, d.OpenFor("p1", inventory.DrawerHistory))
	assert.True(t, d.IsOpenFor("p1"))
	assert.Equal(t, inventory.DrawerHistory, d.Mode())

	require.NoError(t, d.OpenFor("p2", inventory.DrawerAdjust))
	assert.False(t, d.IsOpenFor("p1"), "abrir otro producto reemplaza el destino")
	assert.Equal(t, "p2", d.ProductID())

	d.Close()
	assert.False(t, d.IsOpen())
	assert.Equal(t, "", d.ProductID())

	assert.ErrorIs(t, d.OpenFor("", inventory.DrawerAdjust), domain.ErrInvalidInput)
	assert.ErrorIs(t, d.OpenFor("p1", inventory.DrawerMode("edit")), domain.ErrInvalidInput)
	assert.False(t, s.Drawer().IsOpen(), "un error no abre el panel")
}
