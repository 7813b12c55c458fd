package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
)

// MovementFilter filtros do listado e do relatório de movimentações.
// From/To são limites inclusivos de dia no fuso do servidor.
type MovementFilter struct {
	ProductID string
	Kind      string
	Origin    string
	From      *time.Time
	To        *time.Time
	Search    string // nome/código do produto, documento ou observação
	OrderBy   string // "occurred_at" (padrão, desc) ou "product_name"
	Limit     int
	Offset    int
}

// MovementTotals somas assinadas do relatório: entradas, saídas e líquido.
type MovementTotals struct {
	Entries decimal.Decimal
	Exits   decimal.Decimal
}

// Net devolve entradas menos saídas.
func (t MovementTotals) Net() decimal.Decimal {
	return t.Entries.Sub(t.Exits)
}

// StockMovementRepository porta de persistência do livro-razão de movimentações.
// Append-only: só Create escreve; não existem update nem delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	// Totals soma as quantidades de kind=entry e kind=exit do recorte filtrado
	// (ignora Limit/Offset/OrderBy do filtro).
	Totals(ctx context.Context, filter MovementFilter) (MovementTotals, error)
}
