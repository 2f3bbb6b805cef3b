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

	"github.com/atokurn/financex-sub001/internal/application/auth"
	"github.com/atokurn/financex-sub001/internal/application/ledger"
	"github.com/atokurn/financex-sub001/internal/application/purchase"
	"github.com/atokurn/financex-sub001/internal/application/sale"
	"github.com/atokurn/financex-sub001/internal/application/usecase"
	"github.com/atokurn/financex-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/atokurn/financex-sub001/internal/interfaces/http"
	"github.com/atokurn/financex-sub001/pkg/config"
	"github.com/atokurn/financex-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	historyRepo := postgres.NewStockHistoryRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewStockLedgerUseCase(txRunner)
	historyUC := ledger.NewHistoryUseCase(historyRepo)
	purchaseUC := purchase.NewPurchaseUseCase(txRunner, ledgerUC, purchaseRepo, materialRepo, productRepo)
	saleUC := sale.NewSaleUseCase(txRunner, ledgerUC, saleRepo, productRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FinanceX API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC: materialUC,
		ProductUC:  productUC,
		ExpenseUC:  expenseUC,
		LedgerUC:   ledgerUC,
		HistoryUC:  historyUC,
		PurchaseUC: purchaseUC,
		SaleUC:     saleUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
