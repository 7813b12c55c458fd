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

	appanalytics "github.com/hidroflex/hidroflex-api/internal/application/analytics"
	"github.com/hidroflex/hidroflex-api/internal/application/auth"
	"github.com/hidroflex/hidroflex-api/internal/application/inventory"
	"github.com/hidroflex/hidroflex-api/internal/application/orders"
	"github.com/hidroflex/hidroflex-api/internal/application/usecase"
	infrapdf "github.com/hidroflex/hidroflex-api/internal/infrastructure/pdf"
	"github.com/hidroflex/hidroflex-api/internal/infrastructure/postgres"
	httpRouter "github.com/hidroflex/hidroflex-api/internal/interfaces/http"
	"github.com/hidroflex/hidroflex-api/pkg/config"
	"github.com/hidroflex/hidroflex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	adjustUC := inventory.NewAdjustStockUseCase(txRunner, productRepo)
	stockQueryUC := inventory.NewStockQueryUseCase(stockRepo, movementRepo)

	// PDF: relatório de movimentações para impressão
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := inventory.NewMovementReportUseCase(movementRepo, pdfGenerator)

	// O caso de uso de ajuste também serve de gancho de baixa para os pedidos
	// (mesma transação do pedido).
	orderUC := orders.NewCreateOrderUseCase(txRunner, adjustUC, productRepo, orderRepo)

	productUC := usecase.NewProductUseCase(productRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
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

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Hidroflex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		AdjustUC:    adjustUC,
		StockQuery:  stockQueryUC,
		ReportUC:    reportUC,
		OrderUC:     orderUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
