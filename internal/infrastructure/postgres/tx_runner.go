package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hidroflex/hidroflex-api/internal/application/inventory"
	"github.com/hidroflex/hidroflex-api/internal/application/orders"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL serializável.
// Falhas de serialização saem como ErrTransient para o handler devolver 503.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

var serializable = pgx.TxOptions{IsoLevel: pgx.Serializable}

// Run inicia uma transação, executa fn com repos atados à tx e faz Commit ou
// Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, serializable)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	movRepo := NewStockMovementRepository(tx)

	if err := fn(stockRepo, movRepo); err != nil {
		return translateTransient(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateTransient(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunOrder inicia uma transação com repos de estoque e de pedidos (para
// CreateOrder).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, serializable)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	orderRepo := NewOrderRepository(tx)

	if err := fn(stockRepo, movRepo, orderRepo); err != nil {
		return translateTransient(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateTransient(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
