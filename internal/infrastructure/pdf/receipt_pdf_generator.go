// Package pdf genera el phiếu nhập/xuất kho imprimible.
//
// Layout de la página A5 vertical:
//
//	┌───────────────────────────────────────────┐
//	│  PHIEU NHAP KHO            Ma phieu + Ngay  │
//	│  Ly do                                     │
//	│  ───────────────────────────────────────── │
//	│  STT | San pham | Nhap | So luong            │
//	│  ───────────────────────────────────────── │
//	│  Tong so luong                             │
//	│  QR del id  |  firmas                      │
//	└───────────────────────────────────────────┘
//
// Las fuentes core de maroto son cp1252: el texto vietnamita se imprime sin diacríticos.
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appinv "github.com/jhoicas/kho-api/internal/application/inventory"
	"github.com/jhoicas/kho-api/internal/domain/inventory"
	"github.com/jhoicas/kho-api/pkg/textutil"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 53, Blue: 15}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appinv.ReceiptPDFGenerator = (*ReceiptPDFGenerator)(nil)

// ReceiptPDFGenerator implementa inventory.ReceiptPDFGenerator usando Maroto v2.
type ReceiptPDFGenerator struct {
	storeName string
}

// NewReceiptPDFGenerator construye el generador. storeName va en el encabezado.
func NewReceiptPDFGenerator(storeName string) *ReceiptPDFGenerator {
	return &ReceiptPDFGenerator{storeName: storeName}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *ReceiptPDFGenerator) GenerateReceiptPDF(receipt *appinv.Receipt) ([]byte, error) {
	if receipt == nil || len(receipt.Rows) == 0 {
		return nil, fmt.Errorf("pdf: phiếu vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(pdfText(receipt.Title()+" "+receipt.Code()), true).
		WithAuthor(pdfText(g.storeName), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(receipt, g.storeName))
	m.AddRows(reasonRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(receipt)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(receipt))
	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(receipt))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda + título (izq) y mã phiếu + fecha (der).
func headerRow(receipt *appinv.Receipt, storeName string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(pdfText(storeName), props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(pdfText(receipt.Title()), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New("Ma phieu", props.Text{
				Size: 7, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(receipt.Code(), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 5,
			}),
			text.New("Ngay: "+receipt.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func reasonRow(receipt *appinv.Receipt) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New("Ly do: "+pdfText(nonEmpty(receipt.ReasonText, "-")), props.Text{
			Size: 9, Top: 2,
		})),
	)
}

// tableHeaderRow: STT | Sản phẩm | Nhập (valor tecleado) | Số lượng.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("STT", 1, align.Center),
		h("San pham", 6, align.Left),
		h("Da nhap", 3, align.Right),
		h("So luong", 2, align.Right),
	)
}

// tableRows: una fila por línea del ledger, en el orden de envío.
func tableRows(receipt *appinv.Receipt) []core.Row {
	result := make([]core.Row, 0, len(receipt.Rows))
	for i, r := range receipt.Rows {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				pdfText(receipt.ProductName(r.ProductID)),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				pdfText(InputText(r.InputValue.Valid, r.InputValue.Decimal.String(), r.InputUnit)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				formatThousands(r.AppliedQuantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalRow(receipt *appinv.Receipt) core.Row {
	return row.New(9).Add(
		col.New(10).Add(text.New("Tong so luong:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 2,
		})),
		col.New(2).Add(text.New(formatThousands(receipt.TotalQty), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 2,
			Color: colorPrimary,
		})),
	)
}

// footerRow: QR con el id completo del phiếu + espacio para firmas.
func footerRow(receipt *appinv.Receipt) core.Row {
	return row.New(32).Add(
		col.New(3).Add(code.NewQr(receipt.ID, props.Rect{Percent: 90, Center: true})),
		col.New(1),
		col.New(4).Add(text.New("Nguoi lap phieu", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 2,
		})),
		col.New(4).Add(text.New("Thu kho", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// InputText "1.5 kg" a partir del valor crudo y la unidad guardados para auditoría.
func InputText(valid bool, value, unit string) string {
	if !valid {
		return "-"
	}
	label := unit
	if u, ok := inventory.ParseUnit(unit); ok {
		label = u.Label()
	}
	return value + " " + label
}

func pdfText(s string) string {
	return textutil.StripDiacritics(s)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatThousands inserta puntos de miles: 25000 -> "25.000".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	l := len(s)
	if l <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
