package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body do POST /api/inventory/ajuste-estoque.
type AdjustStockRequest struct {
	ProductID     string           `json:"product_id"`
	Kind          string           `json:"kind"`   // entry, exit, adjustment
	Origin        string           `json:"origin"` // purchase, sale, return, manual, service_order, online_order
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitValue     *decimal.Decimal `json:"unit_value,omitempty"`
	Document      string           `json:"document,omitempty"`
	Note          string           `json:"note,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	ReferenceKind string           `json:"reference_kind,omitempty"`
}

// StockResponse registro de estoque com as derivações de leitura.
type StockResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductCode  string          `json:"product_code,omitempty"`
	ProductName  string          `json:"product_name,omitempty"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Current      decimal.Decimal `json:"current"`
	Reserved     decimal.Decimal `json:"reserved"`
	Available    decimal.Decimal `json:"available"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Status       string          `json:"status"` // out, low, normal
	LastUpdated  time.Time       `json:"last_updated"`
}

// MovementResponse linha do livro-razão.
type MovementResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Kind          string           `json:"kind"`
	Origin        string           `json:"origin"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitValue     *decimal.Decimal `json:"unit_value,omitempty"`
	Document      string           `json:"document,omitempty"`
	Note          string           `json:"note,omitempty"`
	ActorID       *string          `json:"actor_id,omitempty"`
	ReferenceID   *string          `json:"reference_id,omitempty"`
	ReferenceKind string           `json:"reference_kind,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

// AdjustStockResponse resposta 201 do ajuste: registro atualizado + movimentação criada.
type AdjustStockResponse struct {
	Estoque      StockResponse    `json:"estoque"`
	Movimentacao MovementResponse `json:"movimentacao"`
}

// ReportPeriod eco dos filtros de data do relatório. Inicio fica nulo quando
// data_inicio não foi informada; Fim assume o dia de hoje quando omitido.
type ReportPeriod struct {
	Inicio *string `json:"inicio"`
	Fim    string  `json:"fim"`
}

// MovementReportResponse saída do relatório de movimentações.
// Totais em string com duas casas (escala fixa 10.2 do livro-razão).
type MovementReportResponse struct {
	Movimentacoes []MovementResponse `json:"movimentacoes"`
	TotalEntries  string             `json:"total_entries"`
	TotalExits    string             `json:"total_exits"`
	Net           string             `json:"net"`
	Periodo       ReportPeriod       `json:"periodo"`
}
