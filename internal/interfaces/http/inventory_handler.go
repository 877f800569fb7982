package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kho-api/internal/application/dto"
	appinv "github.com/jhoicas/kho-api/internal/application/inventory"
	"github.com/jhoicas/kho-api/internal/domain"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/inventory"
)

// InventoryHandler maneja la pantalla masiva, los movimientos individuales y el historial (protegido).
type InventoryHandler struct {
	catalog  *appinv.CatalogUseCase
	bulk     *appinv.BulkUseCase
	movement *appinv.MovementUseCase
	history  *appinv.HistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	catalog *appinv.CatalogUseCase,
	bulk *appinv.BulkUseCase,
	movement *appinv.MovementUseCase,
	history *appinv.HistoryUseCase,
) *InventoryHandler {
	return &InventoryHandler{catalog: catalog, bulk: bulk, movement: movement, history: history}
}

// ListProducts godoc
// @Summary      Productos de la pantalla masiva
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        search       query  string  false  "Búsqueda por nombre (sin diacríticos)"
// @Success      200  {array}   dto.ProductResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/products [get]
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	products, err := h.catalog.ListForBulk(c.Context(), appinv.CatalogFilter{CategoryID: q.CategoryID, Search: q.Search})
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(out)
}

// ListCategories godoc
// @Summary      Categorías para el filtro de la pantalla masiva
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/categories [get]
func (h *InventoryHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.catalog.Categories(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	return c.JSON(out)
}

// PreviewBulk godoc
// @Summary      Previsualizar un lote
// @Description  Deriva la cantidad de cada fila (texto + unidad) y el gating del envío, sin I/O.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkRequest  true  "type, rows, reason"
// @Success      200   {object}  dto.BulkPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/bulk/preview [post]
func (h *InventoryHandler) PreviewBulk(c *fiber.Ctx) error {
	var in dto.BulkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sess, err := sessionFromRequest(in)
	if err != nil {
		return writeError(c, err)
	}
	p := h.bulk.Preview(sess)

	out := dto.BulkPreviewResponse{
		Rows:          make([]dto.BulkRowResponse, 0, len(p.Rows)),
		Items:         make([]dto.BulkItemResponse, 0, len(p.Items)),
		CanSubmit:     p.CanSubmit,
		ReasonPresets: inventory.ReasonPresets(sess.MovementType()),
	}
	for _, r := range p.Rows {
		out.Rows = append(out.Rows, dto.BulkRowResponse{
			ProductID: r.ProductID,
			RawInput:  r.Input.Raw,
			Unit:      string(r.Unit),
			UnitLabel: r.Unit.Label(),
			Quantity:  r.Quantity,
		})
	}
	for _, it := range p.Items {
		out.Items = append(out.Items, dto.BulkItemResponse{
			ProductID:  it.ProductID,
			Qty:        it.Qty,
			InputValue: decimalPtr(it.InputValue),
			InputUnit:  string(it.InputUnit),
		})
	}
	return c.JSON(out)
}

// SubmitBulk godoc
// @Summary      Enviar un lote de nhập/xuất kho
// @Description  Best-effort: cada ítem es independiente. Devuelve 200 con el detalle por ítem aunque todos fallen.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkRequest  true  "type, rows, reason"
// @Success      200   {object}  dto.BulkSubmitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/bulk [post]
func (h *InventoryHandler) SubmitBulk(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.BulkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sess, err := sessionFromRequest(in)
	if err != nil {
		return writeError(c, err)
	}
	if !sess.CanSubmit() {
		return writeError(c, domain.ErrBatchNotSubmittable)
	}
	if err := h.loadSnapshot(c.Context(), sess); err != nil {
		return writeError(c, err)
	}

	res, err := h.bulk.Submit(c.Context(), sess, userID)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.BulkSubmitResponse{
		ReceiptID: res.ReceiptID,
		Success:   res.Success,
		Fail:      res.Fail,
		Details:   make([]dto.BulkItemResultResponse, 0, len(res.Details)),
	}
	for _, d := range res.Details {
		out.Details = append(out.Details, dto.BulkItemResultResponse{
			ProductID:   d.ProductID,
			Qty:         d.Qty,
			OK:          d.OK(),
			LedgerRowID: d.LedgerRowID,
			Error:       d.Error,
		})
	}
	return c.JSON(out)
}

// CreateIn godoc
// @Summary      Registrar una entrada (un producto)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/in [post]
func (h *InventoryHandler) CreateIn(c *fiber.Ctx) error {
	return h.createMovement(c, h.movement.CreateInventoryIn)
}

// CreateOut godoc
// @Summary      Registrar una salida (un producto)
// @Description  Rechaza con 409 si la cantidad supera el stock; nunca recorta.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/out [post]
func (h *InventoryHandler) CreateOut(c *fiber.Ctx) error {
	return h.createMovement(c, h.movement.CreateInventoryOut)
}

func (h *InventoryHandler) createMovement(c *fiber.Ctx, create func(context.Context, appinv.MovementInput) (string, error)) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := appinv.MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Note:      in.Note,
		InputUnit: in.InputUnit,
		UserID:    GetUserID(c),
	}
	if in.InputValue != nil {
		input.InputValue = decimal.NewNullDecimal(*in.InputValue)
	}
	id, err := create(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{LedgerRowID: id})
}

// Adjust godoc
// @Summary      Ajustar el stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del producto"
// @Param        body  body  dto.AdjustRequest  true  "direction, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := h.movement.CreateInventoryAdjust(c.Context(), appinv.AdjustInput{
		ProductID: c.Params("id"),
		Direction: strings.ToUpper(in.Direction),
		Quantity:  in.Quantity,
		Note:      in.Note,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{LedgerRowID: id})
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id              path   string  true   "ID del producto"
// @Param        include_adjust  query  bool    false  "Incluir ajustes (default true)"
// @Param        limit           query  int     false  "Máximo de filas (default 50)"
// @Success      200  {array}   dto.LedgerRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	includeAdjust := q.IncludeAdjust == nil || *q.IncludeAdjust
	rows, err := h.history.ListByProduct(c.Context(), c.Params("id"), includeAdjust, q.Limit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LedgerRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toLedgerRowResponse(r))
	}
	return c.JSON(out)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// sessionFromRequest arma la sesión masiva con las filas y la razón del request (sin I/O).
func sessionFromRequest(in dto.BulkRequest) (*inventory.BulkSession, error) {
	sess, err := inventory.NewBulkSession(strings.ToUpper(in.Type))
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(in.Rows))
	for _, r := range in.Rows {
		if strings.TrimSpace(r.ProductID) == "" {
			return nil, fmt.Errorf("%w: fila sin product_id", domain.ErrInvalidInput)
		}
		if _, dup := seen[r.ProductID]; dup {
			return nil, fmt.Errorf("%w: product_id %q repetido", domain.ErrInvalidInput, r.ProductID)
		}
		seen[r.ProductID] = struct{}{}
		unit := inventory.DefaultUnit
		if r.Unit != "" {
			u, ok := inventory.ParseUnit(r.Unit)
			if !ok {
				return nil, fmt.Errorf("%w: unidad %q", domain.ErrInvalidInput, r.Unit)
			}
			unit = u
		}
		raw := r.RawInput
		sess.Rows().Patch(r.ProductID, inventory.RowPatch{Raw: &raw, Unit: &unit})
	}
	if in.ReasonPreset != "" {
		if !isPreset(sess.MovementType(), in.ReasonPreset) {
			return nil, fmt.Errorf("%w: razón %q", domain.ErrInvalidInput, in.ReasonPreset)
		}
		sess.SetReason(in.ReasonPreset, in.ReasonCustom)
	}
	return sess, nil
}

func isPreset(movementType, preset string) bool {
	for _, p := range inventory.ReasonPresets(movementType) {
		if p == preset {
			return true
		}
	}
	return false
}

// loadSnapshot carga en la sesión la foto de los productos del lote.
func (h *InventoryHandler) loadSnapshot(ctx context.Context, sess *inventory.BulkSession) error {
	items := sess.SelectedItems()
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := h.catalog.Snapshot(ctx, ids)
	if err != nil {
		return fmt.Errorf("cargar productos del lote: %w", err)
	}
	sess.LoadProducts(products)
	return nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Image:         p.Image,
		CategoryID:    p.CategoryID,
		StockQuantity: p.StockQuantity,
	}
}

func toLedgerRowResponse(r *entity.LedgerRow) dto.LedgerRowResponse {
	return dto.LedgerRowResponse{
		ID:                r.ID,
		ProductID:         r.ProductID,
		ReceiptID:         r.ReceiptIDValue(),
		Type:              r.Type,
		RequestedQuantity: r.RequestedQuantity,
		AppliedQuantity:   r.AppliedQuantity,
		Delta:             r.Delta,
		Note:              r.Note,
		InputValue:        decimalPtr(r.InputValue),
		InputUnit:         r.InputUnit,
		CreatedAt:         r.CreatedAt,
		CreatedBy:         r.CreatedBy,
	}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
