package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hidroflex/hidroflex-api/internal/domain"
	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

// AdjustStockUseCase aplica ajustes de estoque de forma transacional
// (entry, exit, adjustment) com bloqueio de fila (SELECT FOR UPDATE) e Commit/Rollback.
// Cada ajuste grava exatamente uma linha no livro-razão na mesma transação.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewAdjustStockUseCase constrói o caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
	}
}

// AdjustInput entrada para aplicar um ajuste de estoque.
// Para entry/exit a Quantity é o delta (> 0); para adjustment é o valor
// absoluto alvo (>= 0) de current.
type AdjustInput struct {
	ProductID     string
	Kind          string
	Origin        string
	Quantity      decimal.Decimal
	UnitValue     *decimal.Decimal
	Document      string
	Note          string
	ReferenceID   string
	ReferenceKind string
	ActorID       string
}

// AdjustResult registro de estoque após o ajuste + movimentação criada.
// Product acompanha para derivar status na resposta.
type AdjustResult struct {
	Stock    entity.Stock
	Movement entity.StockMovement
	Product  *entity.Product
}

// hasLedgerScale verifica a escala fixa 10.2 do livro-razão.
func hasLedgerScale(d decimal.Decimal) bool {
	return d.Round(2).Equal(d) && d.Abs().LessThan(decimal.New(1, 8))
}

func (uc *AdjustStockUseCase) validate(input AdjustInput) error {
	if input.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.IsAdjustableKind(input.Kind) {
		return fmt.Errorf("%w: kind deve ser um de %v", domain.ErrInvalidInput, entity.AdjustableKinds())
	}
	if !entity.IsValidOrigin(input.Origin) {
		return fmt.Errorf("%w: origin deve ser um de %v", domain.ErrInvalidInput, entity.ValidOrigins())
	}
	if !hasLedgerScale(input.Quantity) {
		return domain.ErrInvalidQuantity
	}
	switch input.Kind {
	case entity.MovementKindEntry, entity.MovementKindExit:
		if !input.Quantity.IsPositive() {
			return domain.ErrInvalidQuantity
		}
	case entity.MovementKindAdjustment:
		if input.Quantity.IsNegative() {
			return domain.ErrInvalidQuantity
		}
	}
	if input.UnitValue != nil && input.UnitValue.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Adjust inicia uma transação serializável, bloqueia a fila em inventory_stock
// (criando-a com zeros se for o primeiro ajuste do produto), aplica a lógica
// segundo o tipo e grava a movimentação correspondente. Commit ou Rollback
// ficam a cargo do TxRunner.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, input AdjustInput) (*AdjustResult, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	// Produto precisa existir; inativo ainda aceita ajuste (acerto de inventário).
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	var result AdjustResult
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) error {
		stock, err := stockRepo.GetOrCreateForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}

		switch input.Kind {
		case entity.MovementKindEntry:
			stock.Current = stock.Current.Add(input.Quantity)
		case entity.MovementKindExit:
			if stock.Current.Sub(stock.Reserved).LessThan(input.Quantity) {
				return domain.ErrInsufficientStock
			}
			stock.Current = stock.Current.Sub(input.Quantity)
		case entity.MovementKindAdjustment:
			stock.Current = input.Quantity
		}

		now := time.Now()
		stock.LastUpdated = now
		if err := stockRepo.Update(ctx, stock); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     input.ProductID,
			Kind:          input.Kind,
			Origin:        input.Origin,
			Quantity:      input.Quantity,
			UnitValue:     input.UnitValue,
			Document:      input.Document,
			Note:          input.Note,
			ActorID:       optional(input.ActorID),
			ReferenceID:   optional(input.ReferenceID),
			ReferenceKind: input.ReferenceKind,
			OccurredAt:    now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		result.Stock = *stock
		result.Movement = *mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Product = product
	return &result, nil
}

// RegisterExitInTx executa uma saída (exit) usando os repositórios fornecidos
// (mesma transação do caller). Implementa a interface orders.InventoryUseCase
// para a baixa de estoque na criação de pedidos; referenceID costuma ser o ID
// do pedido.
func (uc *AdjustStockUseCase) RegisterExitInTx(
	ctx context.Context,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	productID string,
	quantity decimal.Decimal,
	unitValue *decimal.Decimal,
	origin string,
	actorID string,
	referenceID string,
	now time.Time,
) error {
	if !quantity.IsPositive() || !hasLedgerScale(quantity) {
		return domain.ErrInvalidQuantity
	}
	stock, err := stockRepo.GetOrCreateForUpdate(ctx, productID)
	if err != nil {
		return err
	}
	if stock.Current.Sub(stock.Reserved).LessThan(quantity) {
		return domain.ErrInsufficientStock
	}
	stock.Current = stock.Current.Sub(quantity)
	stock.LastUpdated = now
	if err := stockRepo.Update(ctx, stock); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     productID,
		Kind:          entity.MovementKindExit,
		Origin:        origin,
		Quantity:      quantity,
		UnitValue:     unitValue,
		ActorID:       optional(actorID),
		ReferenceID:   optional(referenceID),
		ReferenceKind: entity.ReferenceKindOrder,
		OccurredAt:    now,
	}
	return movRepo.Create(ctx, mov)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
