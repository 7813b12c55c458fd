package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest linha do pedido. UnitPrice zero usa o preço do catálogo.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateOrderRequest body do POST /api/pedidos.
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Channel      string             `json:"channel"` // pdv, online
	Items        []OrderItemRequest `json:"items"`
}

// OrderItemResponse linha do pedido nas respostas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido com itens.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customer_name"`
	Channel      string              `json:"channel"`
	Status       string              `json:"status"`
	Total        decimal.Decimal     `json:"total"`
	CreatedBy    string              `json:"created_by"`
	CreatedAt    time.Time           `json:"created_at"`
	Items        []OrderItemResponse `json:"items"`
}
