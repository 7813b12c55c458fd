package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação do livro-razão de estoque.
// reservation/cancel_reservation existem na taxonomia mas não têm caminho de
// mutação: o serviço de ajuste só aceita entry/exit/adjustment.
const (
	MovementKindEntry = "entry"
	MovementKindExit  = "exit"
	// MovementKindAdjustment grava como quantity o valor absoluto alvo do
	// ajuste, não o delta assinado.
	MovementKindAdjustment        = "adjustment"
	MovementKindReservation       = "reservation"
	MovementKindCancelReservation = "cancel_reservation"
)

// Origens de negócio de uma movimentação.
const (
	MovementOriginPurchase     = "purchase"
	MovementOriginSale         = "sale"
	MovementOriginReturn       = "return"
	MovementOriginManual       = "manual"
	MovementOriginServiceOrder = "service_order"
	MovementOriginOnlineOrder  = "online_order"
)

// AdjustableKinds tipos aceitos pelo serviço de ajuste (POST ajuste-estoque).
func AdjustableKinds() []string {
	return []string{MovementKindEntry, MovementKindExit, MovementKindAdjustment}
}

// ValidKinds todos os tipos da taxonomia, aceitos como filtro de consulta.
func ValidKinds() []string {
	return []string{
		MovementKindEntry, MovementKindExit, MovementKindAdjustment,
		MovementKindReservation, MovementKindCancelReservation,
	}
}

// ValidOrigins origens aceitas em qualquer movimentação.
func ValidOrigins() []string {
	return []string{
		MovementOriginPurchase, MovementOriginSale, MovementOriginReturn,
		MovementOriginManual, MovementOriginServiceOrder, MovementOriginOnlineOrder,
	}
}

// IsAdjustableKind verifica se o tipo pode ser aplicado via serviço de ajuste.
func IsAdjustableKind(kind string) bool {
	for _, k := range AdjustableKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// IsValidKind verifica se o tipo pertence à taxonomia do livro-razão.
func IsValidKind(kind string) bool {
	for _, k := range ValidKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// IsValidOrigin verifica se a origem pertence à enumeração.
func IsValidOrigin(origin string) bool {
	for _, o := range ValidOrigins() {
		if o == origin {
			return true
		}
	}
	return false
}

// StockMovement é uma linha imutável do livro-razão: nunca é atualizada nem
// apagada; corrigir um erro significa lançar uma movimentação compensatória.
type StockMovement struct {
	ID            string
	ProductID     string
	Kind          string
	Origin        string
	Quantity      decimal.Decimal
	UnitValue     *decimal.Decimal // valor unitário opcional (compra/venda)
	Document      string           // nota fiscal ou recibo, opcional
	Note          string
	ActorID       *string // nulo se o usuário foi removido
	ReferenceID   *string // entidade de origem (pedido, ordem de serviço)
	ReferenceKind string
	OccurredAt    time.Time
}
