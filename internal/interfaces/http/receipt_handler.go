package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kho-api/internal/application/dto"
	appinv "github.com/jhoicas/kho-api/internal/application/inventory"
)

// ReceiptHandler expone el phiếu reconstruido y sus versiones imprimibles.
type ReceiptHandler struct {
	uc *appinv.ReceiptUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *appinv.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener un phiếu
// @Description  404 si ningún movimiento tiene ese id; 503 (retryable) si falló la lectura.
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "receipt_id"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) Get(c *fiber.Ctx) error {
	r, err := h.uc.LoadReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toReceiptResponse(r))
}

// PDF godoc
// @Summary      Phiếu en PDF
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "receipt_id"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/pdf [get]
func (h *ReceiptHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc.RenderPDF(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="phieu-%s.pdf"`, id))
	return c.Send(data)
}

// XLSX godoc
// @Summary      Phiếu en Excel
// @Tags         receipts
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "receipt_id"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/xlsx [get]
func (h *ReceiptHandler) XLSX(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc.RenderXLSX(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="phieu-%s.xlsx"`, id))
	return c.Send(data)
}

func toReceiptResponse(r *appinv.Receipt) dto.ReceiptResponse {
	out := dto.ReceiptResponse{
		ID:         r.ID,
		Code:       r.Code(),
		Type:       r.Type,
		CreatedAt:  r.CreatedAt,
		ReasonText: r.ReasonText,
		TotalQty:   r.TotalQty,
		Lines:      make([]dto.ReceiptLineResponse, 0, len(r.Rows)),
	}
	for _, row := range r.Rows {
		out.Lines = append(out.Lines, dto.ReceiptLineResponse{
			LedgerRowID: row.ID,
			ProductID:   row.ProductID,
			ProductName: r.ProductName(row.ProductID),
			Image:       r.ProductsByID[row.ProductID].Image,
			Quantity:    row.AppliedQuantity,
			InputValue:  decimalPtr(row.InputValue),
			InputUnit:   row.InputUnit,
		})
	}
	return out
}
