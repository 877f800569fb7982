package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/kho-api/internal/application/assistant"
	"github.com/jhoicas/kho-api/internal/application/auth"
	"github.com/jhoicas/kho-api/internal/application/inventory"
	infraai "github.com/jhoicas/kho-api/internal/infrastructure/ai"
	infracache "github.com/jhoicas/kho-api/internal/infrastructure/cache"
	infraexcel "github.com/jhoicas/kho-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/kho-api/internal/infrastructure/pdf"
	"github.com/jhoicas/kho-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kho-api/internal/interfaces/http"
	"github.com/jhoicas/kho-api/pkg/config"
	"github.com/jhoicas/kho-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) > 0 {
		log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de phiếu: Redis si está configurado y responde; si no, sin caché.
	var receiptCache inventory.ReceiptCache = infracache.NoopReceiptCache{}
	if cfg.Redis.Enabled() {
		rc := infracache.NewRedisReceiptCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, phiếu sin caché")
			_ = rc.Close()
		} else {
			receiptCache = rc
			defer rc.Close()
		}
		cancel()
	}

	movementUC := inventory.NewMovementUseCase(txRunner).WithReceiptCache(receiptCache, log)
	bulkUC := inventory.NewBulkUseCase(movementUC, log)
	catalogUC := inventory.NewCatalogUseCase(productRepo, categoryRepo)
	historyUC := inventory.NewHistoryUseCase(ledgerRepo)
	receiptUC := inventory.NewReceiptUseCase(ledgerRepo, productRepo, inventory.ReceiptDeps{
		Cache:    receiptCache,
		CacheTTL: cfg.Redis.ReceiptCacheTTL,
		PDF:      infrapdf.NewReceiptPDFGenerator(cfg.App.Name),
		Sheet:    infraexcel.NewReceiptExporter(),
		Log:      log,
	})
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	var assistantUC *assistant.AssistantUseCase
	if cfg.AI.GeminiAPIKey != "" {
		gemini := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
		assistantUC = assistant.NewAssistantUseCase(ledgerRepo, productRepo, gemini)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere generar docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Kho API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Catalog:   catalogUC,
		Bulk:      bulkUC,
		Movement:  movementUC,
		History:   historyUC,
		Receipt:   receiptUC,
		Assistant: assistantUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
