package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canais de venda de um pedido.
const (
	OrderChannelPDV    = "pdv"
	OrderChannelOnline = "online"
)

// ReferenceKindOrder valor de reference_kind nas movimentações geradas por pedidos.
const ReferenceKindOrder = "order"

// Status de um pedido.
const (
	OrderStatusCreated   = "created"
	OrderStatusCancelled = "cancelled"
)

// Order cabeçalho de um pedido de venda. A criação do pedido debita o estoque
// de cada item na mesma transação (gancho de venda do motor de estoque).
type Order struct {
	ID           string
	CustomerName string
	Channel      string // pdv, online
	Status       string // created, cancelled
	Total        decimal.Decimal
	CreatedBy    string
	CreatedAt    time.Time
	Items        []OrderItem
}

// OrderItem linha de um pedido.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
