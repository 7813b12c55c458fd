package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação que inclui os repos de
// estoque e de pedidos.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// InventoryUseCase interface para integrar pedidos com o motor de estoque.
// RegisterExitInTx executa uma saída usando os repositórios do caller (mesma
// transação). Se devolver erro (ex.: ErrInsufficientStock), o caller faz
// rollback do pedido inteiro.
type InventoryUseCase interface {
	RegisterExitInTx(
		ctx context.Context,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		productID string,
		quantity decimal.Decimal,
		unitValue *decimal.Decimal,
		origin string,
		actorID string,
		referenceID string, // ID do pedido
		now time.Time,
	) error
}
