package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/kho-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// LedgerMutator puerto del endpoint de mutación que usa el orquestador masivo.
// Cada llamada es una transacción independiente; no hay atomicidad entre ítems.
type LedgerMutator interface {
	CreateInventoryIn(ctx context.Context, in MovementInput) (string, error)
	CreateInventoryOut(ctx context.Context, in MovementInput) (string, error)
}

// ReceiptCache caché de phiếu ya reconstruidos. Un fallo del caché nunca es fatal:
// Get devuelve (nil, nil) en miss y los errores solo se registran.
// Delete se llama tras cada fila confirmada con receipt_id: el conjunto de filas
// de un phiếu crece mientras el lote avanza.
type ReceiptCache interface {
	Get(ctx context.Context, receiptID string) (*Receipt, error)
	Set(ctx context.Context, receipt *Receipt, ttl time.Duration) error
	Delete(ctx context.Context, receiptID string) error
}

// ReceiptPDFGenerator genera el PDF imprimible de un phiếu.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(receipt *Receipt) ([]byte, error)
}

// ReceiptSheetExporter exporta un phiếu a hoja de cálculo (.xlsx).
type ReceiptSheetExporter interface {
	ExportReceipt(receipt *Receipt) ([]byte, error)
}
