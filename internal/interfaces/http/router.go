package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kho-api/internal/application/assistant"
	"github.com/jhoicas/kho-api/internal/application/auth"
	"github.com/jhoicas/kho-api/internal/application/inventory"
	"github.com/jhoicas/kho-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Catalog   *inventory.CatalogUseCase
	Bulk      *inventory.BulkUseCase
	Movement  *inventory.MovementUseCase
	History   *inventory.HistoryUseCase
	Receipt   *inventory.ReceiptUseCase
	Assistant *assistant.AssistantUseCase // nil = asistente deshabilitado
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (Bearer Token + rol de operador)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleStaff))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/users", adminOnly, authHandler.Register)

	// Inventario: pantalla masiva, movimientos individuales e historial
	inv := protected.Group("/inventory")
	invHandler := NewInventoryHandler(deps.Catalog, deps.Bulk, deps.Movement, deps.History)
	inv.Get("/categories", invHandler.ListCategories)
	inv.Get("/products", invHandler.ListProducts)
	inv.Post("/bulk/preview", invHandler.PreviewBulk)
	inv.Post("/bulk", invHandler.SubmitBulk)
	inv.Post("/in", invHandler.CreateIn)
	inv.Post("/out", invHandler.CreateOut)
	inv.Post("/products/:id/adjust", adminOnly, invHandler.Adjust)
	inv.Get("/products/:id/history", invHandler.History)

	// Phiếu (recibos)
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.Receipt)
	receipts.Get("/:id", receiptHandler.Get)
	receipts.Get("/:id/pdf", receiptHandler.PDF)
	receipts.Get("/:id/xlsx", receiptHandler.XLSX)

	if deps.Assistant != nil {
		assistantHandler := NewAssistantHandler(deps.Assistant)
		protected.Post("/assistant/ask", adminOnly, assistantHandler.Ask)
	}
}
