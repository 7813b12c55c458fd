package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository consultas read-only para o dashboard.
type AnalyticsRepository interface {
	CountProducts(ctx context.Context) (int, error)
	// CountLowStock conta registros com available < minimum_stock (inclui zerados).
	CountLowStock(ctx context.Context) (int, error)
	CountMovements(ctx context.Context, from, to time.Time) (int, error)
	// InventoryValue soma current * price dos produtos ativos.
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
}
