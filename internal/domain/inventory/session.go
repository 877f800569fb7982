package inventory

import (
	"fmt"

	"github.com/jhoicas/kho-api/internal/domain"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/pkg/textutil"
)

// BulkSession estado de una pantalla masiva (nhập hoặc xuất) mientras el operador teclea.
// Guarda una foto del catálogo tomada al cargar la pantalla: el pre-chequeo de stock
// de salida se hace contra esa foto, aunque esté desactualizada.
type BulkSession struct {
	movementType  string
	rows          *Rows
	reason        Reason
	search        string
	products      map[string]entity.Product
	productOrder  []string
	lastReceiptID string
	drawer        Drawer
}

// NewBulkSession crea una sesión para IN u OUT; un lote nunca mezcla direcciones.
func NewBulkSession(movementType string) (*BulkSession, error) {
	if movementType != entity.MovementTypeIN && movementType != entity.MovementTypeOUT {
		return nil, fmt.Errorf("%w: tipo de lote %q", domain.ErrInvalidInput, movementType)
	}
	return &BulkSession{
		movementType: movementType,
		rows:         NewRows(),
		reason:       DefaultReason(movementType),
		products:     make(map[string]entity.Product),
	}, nil
}

// MovementType IN u OUT.
func (s *BulkSession) MovementType() string { return s.movementType }

// Rows filas editables de la sesión.
func (s *BulkSession) Rows() *Rows { return s.rows }

// Drawer panel lateral de la página.
func (s *BulkSession) Drawer() *Drawer { return &s.drawer }

// SetReason fija el preset y el texto libre.
func (s *BulkSession) SetReason(preset, custom string) {
	s.reason = Reason{Preset: preset, Custom: custom}
}

// Reason razón actual.
func (s *BulkSession) Reason() Reason { return s.reason }

// SetSearch fija el filtro de búsqueda.
func (s *BulkSession) SetSearch(q string) { s.search = q }

// Search filtro de búsqueda actual.
func (s *BulkSession) Search() string { return s.search }

// LoadProducts reemplaza la foto del catálogo de la pantalla.
func (s *BulkSession) LoadProducts(products []*entity.Product) {
	s.products = make(map[string]entity.Product, len(products))
	s.productOrder = s.productOrder[:0]
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, dup := s.products[p.ID]; !dup {
			s.productOrder = append(s.productOrder, p.ID)
		}
		s.products[p.ID] = *p
	}
}

// Product busca un producto en la foto.
func (s *BulkSession) Product(id string) (entity.Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

// StockOf stock_quantity según la foto; 0 si el producto no está cargado.
func (s *BulkSession) StockOf(productID string) int {
	return s.products[productID].StockQuantity
}

// VisibleProducts productos de la foto que coinciden con la búsqueda (sin diacríticos).
func (s *BulkSession) VisibleProducts() []entity.Product {
	out := make([]entity.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		p := s.products[id]
		if textutil.ContainsFolded(p.Name, s.search) {
			out = append(out, p)
		}
	}
	return out
}

// SelectedItems ítems con cantidad > 0.
func (s *BulkSession) SelectedItems() []SelectedItem {
	return SelectedItems(s.rows)
}

// CanSubmit gating del botón de envío.
func (s *BulkSession) CanSubmit() bool {
	return CanSubmit(s.SelectedItems(), s.reason)
}

// LastReceiptID phiếu del último lote con al menos un éxito; "" si no hay nada que imprimir.
func (s *BulkSession) LastReceiptID() string { return s.lastReceiptID }

// ResetAfterSuccess deja la pantalla lista para el siguiente lote y conserva el phiếu.
func (s *BulkSession) ResetAfterSuccess(receiptID string) {
	s.rows.Reset()
	s.search = ""
	s.reason = DefaultReason(s.movementType)
	s.lastReceiptID = receiptID
}

// DiscardReceipt olvida el phiếu generado cuando ningún ítem se registró.
func (s *BulkSession) DiscardReceipt() {
	s.lastReceiptID = ""
}
