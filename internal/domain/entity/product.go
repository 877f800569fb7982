package entity

import "time"

// Product representa un producto del catálogo tal como lo consume el motor de inventario.
// StockQuantity es el tồn kho actual en unidades de stock; solo lo modifica el ledger.
type Product struct {
	ID            string
	Name          string
	Image         string // URL pública de la imagen (object storage externo)
	CategoryID    string
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductSummary datos mínimos para mostrar un producto en el phiếu impreso.
type ProductSummary struct {
	ID    string
	Name  string
	Image string
}
