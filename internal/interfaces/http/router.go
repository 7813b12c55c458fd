package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hidroflex/hidroflex-api/internal/application/analytics"
	"github.com/hidroflex/hidroflex-api/internal/application/auth"
	"github.com/hidroflex/hidroflex-api/internal/application/inventory"
	"github.com/hidroflex/hidroflex-api/internal/application/orders"
	"github.com/hidroflex/hidroflex-api/internal/application/usecase"
	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	AdjustUC    *inventory.AdjustStockUseCase
	StockQuery  *inventory.StockQueryUseCase
	ReportUC    *inventory.MovementReportUseCase
	OrderUC     *orders.CreateOrderUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/registrar", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo: leitura para qualquer autenticado, escrita só admin
	products := protected.Group("/produtos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)

	// Estoque e livro-razão: operação interna (admin e vendedor)
	staffOnly := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	invGroup := protected.Group("/inventory", staffOnly)
	inventoryHandler := NewInventoryHandler(deps.AdjustUC, deps.StockQuery, deps.ReportUC)
	invGroup.Get("/estoque", inventoryHandler.ListStock)
	invGroup.Get("/estoque/:id", inventoryHandler.GetStock)
	invGroup.Get("/produtos-baixo-estoque", inventoryHandler.LowStock)
	invGroup.Post("/ajuste-estoque", inventoryHandler.AdjustStock)
	invGroup.Get("/movimentacoes", inventoryHandler.ListMovements)
	invGroup.Get("/movimentacoes/:id", inventoryHandler.GetMovement)
	invGroup.Get("/relatorio-movimentacoes", inventoryHandler.MovementReport)
	invGroup.Get("/relatorio-movimentacoes/pdf", inventoryHandler.MovementReportPDF)

	// Pedidos: criação para qualquer autenticado (pdv e loja online),
	// consulta só para a equipe
	ordersGroup := protected.Group("/pedidos")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", staffOnly, orderHandler.List)
	ordersGroup.Get("/:id", staffOnly, orderHandler.GetByID)

	// Dashboard (equipe)
	dashboard := protected.Group("/dashboard", staffOnly)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/resumo", dashboardHandler.Summary)
}
