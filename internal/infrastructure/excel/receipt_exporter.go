package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	appinv "github.com/jhoicas/kho-api/internal/application/inventory"
	"github.com/jhoicas/kho-api/internal/domain/inventory"
)

const sheetName = "Phieu"

// Fila donde empieza la tabla de líneas (1-based); arriba va el encabezado del phiếu.
const tableHeaderRow = 6

var tableHeaders = []string{"STT", "Mã sản phẩm", "Sản phẩm", "Đã nhập", "Đơn vị", "Số lượng"}

var _ appinv.ReceiptSheetExporter = (*ReceiptExporter)(nil)

// ReceiptExporter exporta un phiếu a .xlsx con excelize.
type ReceiptExporter struct{}

// NewReceiptExporter construye el exportador.
func NewReceiptExporter() *ReceiptExporter { return &ReceiptExporter{} }

// ExportReceipt devuelve el libro con una hoja: encabezado, líneas en orden de envío y total.
func (e *ReceiptExporter) ExportReceipt(receipt *appinv.Receipt) ([]byte, error) {
	if receipt == nil || len(receipt.Rows) == 0 {
		return nil, fmt.Errorf("excel: phiếu vacío")
	}
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: borrar hoja por defecto: %w", err)
	}
	if index, err := f.GetSheetIndex(sheetName); err == nil {
		f.SetActiveSheet(index)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	meta := [][2]any{
		{receipt.Title(), nil},
		{"Mã phiếu", receipt.Code()},
		{"Ngày", receipt.CreatedAt.Format("02/01/2006 15:04")},
		{"Lý do", receipt.ReasonText},
	}
	for i, kv := range meta {
		r := i + 1
		if err := setRow(f, r, kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A2", "A4", boldStyle); err != nil {
		return nil, err
	}

	header := make([]any, len(tableHeaders))
	for i, h := range tableHeaders {
		header[i] = h
	}
	if err := setRow(f, tableHeaderRow, header...); err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(tableHeaders), tableHeaderRow)
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", tableHeaderRow), last, headerStyle); err != nil {
		return nil, err
	}

	for i, r := range receipt.Rows {
		var inputValue any
		if r.InputValue.Valid {
			inputValue, _ = r.InputValue.Decimal.Float64()
		}
		unitLabel := r.InputUnit
		if u, ok := inventory.ParseUnit(r.InputUnit); ok {
			unitLabel = u.Label()
		}
		if err := setRow(f, tableHeaderRow+1+i,
			i+1, r.ProductID, receipt.ProductName(r.ProductID), inputValue, unitLabel, r.AppliedQuantity,
		); err != nil {
			return nil, err
		}
	}

	totalRow := tableHeaderRow + 1 + len(receipt.Rows)
	if err := setRow(f, totalRow, nil, nil, nil, nil, "Tổng", receipt.TotalQty); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("E%d", totalRow), fmt.Sprintf("F%d", totalRow), boldStyle); err != nil {
		return nil, err
	}

	for col, width := range map[string]float64{"A": 14, "B": 38, "C": 32, "D": 12, "E": 10, "F": 12} {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// setRow escribe values desde la columna A de la fila r; nil deja la celda vacía.
func setRow(f *excelize.File, r int, values ...any) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, r)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("excel: celda %s: %w", cell, err)
		}
	}
	return nil
}
