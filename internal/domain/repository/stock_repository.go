package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
)

// StockFilter filtros do listado de estoque.
type StockFilter struct {
	Active   *bool  // filtra pelo flag ativo do produto
	Category string // categoria exata do produto
	Search   string // busca por nome ou código do produto
	OrderBy  string // "name" (padrão), "current", "last_updated"
	Limit    int
	Offset   int
}

// StockItem registro de estoque com os campos do produto necessários para
// derivar available e status no lado da leitura.
type StockItem struct {
	Stock        entity.Stock
	ProductCode  string
	ProductName  string
	Category     string
	Unit         string
	MinimumStock decimal.Decimal
	Active       bool
}

// StockRepository porta de persistência dos registros de estoque.
// O caminho de escrita é exclusivo do serviço de ajuste, sempre dentro de
// transação com a fila bloqueada (FOR UPDATE).
type StockRepository interface {
	// GetOrCreateForUpdate busca o registro do produto bloqueando a fila para
	// update; cria com current=0, reserved=0 se não existir (criação lazy na
	// mesma janela de lock).
	GetOrCreateForUpdate(ctx context.Context, productID string) (*entity.Stock, error)
	// Update grava current, reserved e last_updated do registro.
	Update(ctx context.Context, stock *entity.Stock) error

	// Leituras (fora de transação de escrita).
	GetByID(ctx context.Context, id string) (*StockItem, error)
	GetByProduct(ctx context.Context, productID string) (*entity.Stock, error)
	List(ctx context.Context, filter StockFilter) ([]StockItem, error)
	// ListBelowMinimum devolve os registros com available < minimum_stock do
	// produto, ordenados por nome do produto.
	ListBelowMinimum(ctx context.Context, limit, offset int) ([]StockItem, error)
}
