// seed carrega dados de desenvolvimento: usuários de demonstração (um por
// papel), catálogo de mangueiras e conexões hidráulicas e entradas de estoque
// inicial lançadas pelo serviço de ajuste (passam pelo livro-razão, nunca
// gravadas direto na tabela de estoque).
//
// Uso: go run ./cmd/seed
// Idempotente por código/email: itens já existentes são pulados.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/hidroflex/hidroflex-api/internal/application/auth"
	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	"github.com/hidroflex/hidroflex-api/internal/application/inventory"
	"github.com/hidroflex/hidroflex-api/internal/application/usecase"
	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
	"github.com/hidroflex/hidroflex-api/internal/infrastructure/postgres"
	"github.com/hidroflex/hidroflex-api/pkg/config"
	"github.com/hidroflex/hidroflex-api/pkg/logger"
)

type demoProduct struct {
	code     string
	name     string
	category string
	unit     string
	price    string
	minimum  string
	opening  string // estoque inicial (entrada via ajuste)
}

var demoProducts = []demoProduct{
	{"MGH-1/4-2T", "Mangueira hidráulica 1/4\" 2 tramas", "mangueiras", "m", "28.50", "50.00", "120.00"},
	{"MGH-3/8-2T", "Mangueira hidráulica 3/8\" 2 tramas", "mangueiras", "m", "34.90", "50.00", "80.00"},
	{"MGH-1/2-4T", "Mangueira hidráulica 1/2\" 4 tramas", "mangueiras", "m", "61.00", "30.00", "45.50"},
	{"TER-1/4-R", "Terminal reto 1/4\"", "terminais", "un", "9.80", "100.00", "350.00"},
	{"TER-3/8-90", "Terminal 90 graus 3/8\"", "terminais", "un", "14.20", "80.00", "210.00"},
	{"ADP-M16-1/4", "Adaptador M16 x 1/4\" NPT", "conexoes", "un", "7.50", "60.00", "95.00"},
	{"ABR-1/2", "Abraçadeira reforçada 1/2\"", "conexoes", "un", "3.20", "200.00", "0.00"},
}

type demoUser struct {
	email    string
	password string
	name     string
	role     string
}

var demoUsers = []demoUser{
	{"admin@hidroflex.dev", "admin123", "Administrador", entity.RoleAdmin},
	{"vendedor@hidroflex.dev", "vendedor123", "Vendedor Balcão", entity.RoleVendedor},
	{"cliente@hidroflex.dev", "cliente123", "Cliente Loja Online", entity.RoleCliente},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	adjustUC := inventory.NewAdjustStockUseCase(txRunner, productRepo)

	adminID := seedUsers(ctx, log, userRepo, authUC)
	seedCatalog(ctx, log, productRepo, productUC, adjustUC, adminID)

	log.Info().Msg("seed concluído")
}

// seedUsers cria os usuários demo e devolve o ID do admin para servir de
// actor das entradas iniciais.
func seedUsers(ctx context.Context, log *logger.Logger, userRepo *postgres.UserRepo, authUC *auth.AuthUseCase) string {
	var adminID string
	for _, u := range demoUsers {
		existing, err := userRepo.FindByEmail(ctx, u.email)
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("consultar usuário")
		}
		if existing != nil {
			log.Info().Str("email", u.email).Msg("usuário já existe, pulando")
			if existing.Role == entity.RoleAdmin {
				adminID = existing.ID
			}
			continue
		}
		created, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
			Email:    u.email,
			Password: u.password,
			Name:     u.name,
			Role:     u.role,
		})
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("criar usuário")
		}
		log.Info().Str("email", created.Email).Str("role", created.Role).Msg("usuário criado")
		if created.Role == entity.RoleAdmin {
			adminID = created.ID
		}
	}
	return adminID
}

func seedCatalog(
	ctx context.Context,
	log *logger.Logger,
	productRepo *postgres.ProductRepo,
	productUC *usecase.ProductUseCase,
	adjustUC *inventory.AdjustStockUseCase,
	adminID string,
) {
	for _, p := range demoProducts {
		existing, err := productRepo.GetByCode(ctx, p.code)
		if err != nil {
			log.Fatal().Err(err).Str("code", p.code).Msg("consultar produto")
		}
		if existing != nil {
			log.Info().Str("code", p.code).Msg("produto já existe, pulando")
			continue
		}
		created, err := productUC.Create(ctx, dto.CreateProductRequest{
			Code:         p.code,
			Name:         p.name,
			Category:     p.category,
			Unit:         p.unit,
			Price:        decimal.RequireFromString(p.price),
			MinimumStock: decimal.RequireFromString(p.minimum),
		})
		if err != nil {
			log.Fatal().Err(err).Str("code", p.code).Msg("criar produto")
		}
		log.Info().Str("code", created.Code).Msg("produto criado")

		opening := decimal.RequireFromString(p.opening)
		if !opening.IsPositive() {
			continue
		}
		_, err = adjustUC.Adjust(ctx, inventory.AdjustInput{
			ProductID: created.ID,
			Kind:      entity.MovementKindEntry,
			Origin:    entity.MovementOriginManual,
			Quantity:  opening,
			Note:      "carga inicial de estoque",
			ActorID:   adminID,
		})
		if err != nil {
			log.Fatal().Err(err).Str("code", p.code).Msg("lançar estoque inicial")
		}
		log.Info().Str("code", p.code).Str("quantity", opening.StringFixed(2)).Msg("entrada inicial lançada")
	}
}
