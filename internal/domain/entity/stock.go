package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rótulos derivados do estado do estoque frente ao mínimo do produto.
const (
	StockStatusOut    = "out"
	StockStatusLow    = "low"
	StockStatusNormal = "normal"
)

// Stock representa o registro de estoque de um produto (um por produto).
// Current e Reserved são persistidos; Available e o status são derivações puras
// de leitura — nunca gravados.
type Stock struct {
	ID          string
	ProductID   string
	Current     decimal.Decimal
	Reserved    decimal.Decimal
	LastUpdated time.Time
}

// Available devolve a quantidade disponível para novas saídas: max(0, Current - Reserved).
func (s *Stock) Available() decimal.Decimal {
	avail := s.Current.Sub(s.Reserved)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

// Status classifica o registro frente ao estoque mínimo do produto:
// out se available <= 0; low se 0 < available < minimumStock; senão normal.
func (s *Stock) Status(minimumStock decimal.Decimal) string {
	avail := s.Available()
	if !avail.IsPositive() {
		return StockStatusOut
	}
	if avail.LessThan(minimumStock) {
		return StockStatusLow
	}
	return StockStatusNormal
}
