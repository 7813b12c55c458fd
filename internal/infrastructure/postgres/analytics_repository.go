package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas read-only para o dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountProducts conta os produtos ativos do catálogo.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE active = true`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountLowStock conta registros com available abaixo do mínimo do produto,
// sem filtrar pelo flag ativo: produto delistado com saldo baixo ainda conta.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM inventory_stock s
		JOIN products p ON p.id = s.product_id
		WHERE GREATEST(s.current - s.reserved, 0) < p.minimum_stock`
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// CountMovements conta as movimentações na janela informada.
func (r *AnalyticsRepo) CountMovements(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM inventory_movement WHERE occurred_at >= $1 AND occurred_at <= $2`
	var n int
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// InventoryValue soma current * price dos produtos ativos.
func (r *AnalyticsRepo) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.current * p.price), 0)
		FROM inventory_stock s
		JOIN products p ON p.id = s.product_id
		WHERE p.active = true`
	var v decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("inventory value: %w", err)
	}
	return v, nil
}
