package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body do POST /api/produtos.
type CreateProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Price        decimal.Decimal `json:"price"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// UpdateProductRequest body do PUT /api/produtos/:id. Code não muda após criado.
type UpdateProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Price        decimal.Decimal `json:"price"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Active       *bool           `json:"active,omitempty"`
}

// ProductResponse representação de produto nas respostas.
type ProductResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Price        decimal.Decimal `json:"price"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de produtos.
type ProductListResponse struct {
	Items    []ProductResponse `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}
