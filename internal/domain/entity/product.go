package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um item do catálogo (mangueiras, conexões, terminais).
// MinimumStock é o limiar usado pela projeção de baixo estoque; o estoque em si
// vive em Stock e só muda via movimentações.
type Product struct {
	ID           string
	Code         string // código único do produto (ex: MGH-1/4-2T)
	Name         string
	Description  string
	Category     string
	Unit         string // unidade de exibição: m, un, pc
	Price        decimal.Decimal
	MinimumStock decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
