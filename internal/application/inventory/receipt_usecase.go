package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/kho-api/internal/domain"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/repository"
	"github.com/jhoicas/kho-api/pkg/logger"
)

// Receipt phiếu reconstruido a partir de las filas del ledger que comparten receipt_id.
type Receipt struct {
	ID           string
	Type         string // IN u OUT, tomado de la primera fila
	Rows         []*entity.LedgerRow
	ProductsByID map[string]entity.ProductSummary
	CreatedAt    time.Time
	ReasonText   string
	TotalQty     int
}

// ProductName nombre para imprimir; si el producto ya no existe se usa el id.
func (r *Receipt) ProductName(productID string) string {
	if p, ok := r.ProductsByID[productID]; ok && p.Name != "" {
		return p.Name
	}
	return productID
}

// Code código corto impreso como "mã phiếu": PN (nhập) o PX (xuất) + 8 primeros caracteres del id.
func (r *Receipt) Code() string {
	prefix := "PX"
	if r.Type == entity.MovementTypeIN {
		prefix = "PN"
	}
	short := strings.ToUpper(strings.ReplaceAll(r.ID, "-", ""))
	if len(short) > 8 {
		short = short[:8]
	}
	return prefix + "-" + short
}

// Title título del documento según el tipo.
func (r *Receipt) Title() string {
	if r.Type == entity.MovementTypeIN {
		return "PHIẾU NHẬP KHO"
	}
	return "PHIẾU XUẤT KHO"
}

// ReceiptUseCase reconstruye y renderiza phiếu.
type ReceiptUseCase struct {
	ledgerRepo  repository.LedgerRepository
	productRepo repository.ProductRepository
	cache       ReceiptCache
	cacheTTL    time.Duration
	pdf         ReceiptPDFGenerator
	sheet       ReceiptSheetExporter
	log         *logger.Logger
}

// ReceiptDeps dependencias opcionales de ReceiptUseCase. Cache nil = sin caché.
type ReceiptDeps struct {
	Cache    ReceiptCache
	CacheTTL time.Duration
	PDF      ReceiptPDFGenerator
	Sheet    ReceiptSheetExporter
	Log      *logger.Logger
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(ledgerRepo repository.LedgerRepository, productRepo repository.ProductRepository, deps ReceiptDeps) *ReceiptUseCase {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &ReceiptUseCase{
		ledgerRepo:  ledgerRepo,
		productRepo: productRepo,
		cache:       deps.Cache,
		cacheTTL:    deps.CacheTTL,
		pdf:         deps.PDF,
		sheet:       deps.Sheet,
		log:         log.Component("receipt"),
	}
}

// LoadReceipt devuelve el phiếu. ErrReceiptNotFound si ninguna fila tiene ese id;
// ErrReceiptUnavailable (envolviendo la causa) si falló la lectura.
func (uc *ReceiptUseCase) LoadReceipt(ctx context.Context, receiptID string) (*Receipt, error) {
	receiptID = strings.TrimSpace(receiptID)
	if receiptID == "" {
		return nil, domain.ErrReceiptNotFound
	}

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, receiptID)
		if err != nil {
			uc.log.Warn().Err(err).Str("receipt_id", receiptID).Msg("caché de phiếu no disponible")
		} else if cached != nil {
			return cached, nil
		}
	}

	rows, err := uc.ledgerRepo.ListByReceipt(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReceiptUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrReceiptNotFound
	}

	ids := distinctProductIDs(rows)
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReceiptUnavailable, err)
	}

	receipt := buildReceipt(receiptID, rows, products)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, receipt, uc.cacheTTL); err != nil {
			uc.log.Warn().Err(err).Str("receipt_id", receiptID).Msg("no se pudo guardar el phiếu en caché")
		}
	}
	return receipt, nil
}

// RenderPDF genera el PDF imprimible del phiếu.
func (uc *ReceiptUseCase) RenderPDF(ctx context.Context, receiptID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador PDF no configurado")
	}
	receipt, err := uc.LoadReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReceiptPDF(receipt)
}

// RenderXLSX exporta el phiếu a Excel.
func (uc *ReceiptUseCase) RenderXLSX(ctx context.Context, receiptID string) ([]byte, error) {
	if uc.sheet == nil {
		return nil, fmt.Errorf("exportador Excel no configurado")
	}
	receipt, err := uc.LoadReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	return uc.sheet.ExportReceipt(receipt)
}

func distinctProductIDs(rows []*entity.LedgerRow) []string {
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		ids = append(ids, r.ProductID)
	}
	return ids
}

// buildReceipt asume rows no vacío y ordenado por created_at ascendente.
func buildReceipt(receiptID string, rows []*entity.LedgerRow, products []*entity.Product) *Receipt {
	receipt := &Receipt{
		ID:           receiptID,
		Type:         rows[0].Type,
		Rows:         rows,
		ProductsByID: make(map[string]entity.ProductSummary, len(products)),
		CreatedAt:    rows[0].CreatedAt,
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		receipt.ProductsByID[p.ID] = entity.ProductSummary{ID: p.ID, Name: p.Name, Image: p.Image}
	}
	for _, r := range rows {
		if receipt.ReasonText == "" && strings.TrimSpace(r.Note) != "" {
			receipt.ReasonText = r.Note
		}
		receipt.TotalQty += r.AppliedQuantity
	}
	return receipt
}
