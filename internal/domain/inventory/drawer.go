package inventory

import (
	"fmt"

	"github.com/jhoicas/kho-api/internal/domain"
)

// DrawerMode contenido del panel lateral de un producto.
type DrawerMode string

const (
	DrawerHistory DrawerMode = "history"
	DrawerAdjust  DrawerMode = "adjust"
)

// Drawer estado del panel lateral: cerrado, o abierto para un producto en un modo.
// Lo posee la página (la sesión); no hay estado global.
type Drawer struct {
	open      bool
	productID string
	mode      DrawerMode
}

// OpenFor abre el panel para productID. Abrirlo de nuevo reemplaza el destino.
func (d *Drawer) OpenFor(productID string, mode DrawerMode) error {
	if productID == "" {
		return fmt.Errorf("%w: drawer sin producto", domain.ErrInvalidInput)
	}
	if mode != DrawerHistory && mode != DrawerAdjust {
		return fmt.Errorf("%w: modo de drawer %q", domain.ErrInvalidInput, mode)
	}
	d.open, d.productID, d.mode = true, productID, mode
	return nil
}

// Close cierra el panel y olvida el producto.
func (d *Drawer) Close() {
	*d = Drawer{}
}

// IsOpen indica si el panel está abierto para algún producto.
func (d *Drawer) IsOpen() bool { return d.open }

// ProductID producto del panel abierto; "" si está cerrado.
func (d *Drawer) ProductID() string { return d.productID }

// Mode modo del panel abierto; "" si está cerrado.
func (d *Drawer) Mode() DrawerMode { return d.mode }

// IsOpenFor indica si el panel está abierto para ese producto.
func (d *Drawer) IsOpenFor(productID string) bool {
	return d.open && d.productID == productID
}
