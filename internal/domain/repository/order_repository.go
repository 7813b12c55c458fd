package repository

import (
	"context"

	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
)

// OrderRepository porta de persistência para pedidos de venda.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
}
