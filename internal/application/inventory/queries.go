package inventory

import (
	"context"

	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	"github.com/hidroflex/hidroflex-api/internal/domain"
	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

// StockQueryUseCase leituras de estoque e do livro-razão.
// available e status são derivados aqui, nunca persistidos.
type StockQueryUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
}

// NewStockQueryUseCase constrói o caso de uso.
func NewStockQueryUseCase(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// ListStock lista os registros de estoque com os filtros informados.
func (uc *StockQueryUseCase) ListStock(ctx context.Context, filter repository.StockFilter) ([]dto.StockResponse, error) {
	items, err := uc.stockRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(items))
	for _, it := range items {
		out = append(out, StockItemResponse(it))
	}
	return out, nil
}

// GetStock busca um registro de estoque pelo ID.
func (uc *StockQueryUseCase) GetStock(ctx context.Context, id string) (*dto.StockResponse, error) {
	item, err := uc.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := StockItemResponse(*item)
	return &resp, nil
}

// ListLowStock devolve os produtos com available abaixo do estoque mínimo,
// ordenados por nome.
func (uc *StockQueryUseCase) ListLowStock(ctx context.Context, page dto.PageRequest) ([]dto.StockResponse, error) {
	page.Normalize()
	items, err := uc.stockRepo.ListBelowMinimum(ctx, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(items))
	for _, it := range items {
		out = append(out, StockItemResponse(it))
	}
	return out, nil
}

// ListMovements lista as linhas do livro-razão com os filtros informados.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]dto.MovementResponse, error) {
	if filter.Kind != "" && !entity.IsValidKind(filter.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if filter.Origin != "" && !entity.IsValidOrigin(filter.Origin) {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, MovementItemResponse(m))
	}
	return out, nil
}

// GetMovement busca uma linha do livro-razão pelo ID.
func (uc *StockQueryUseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	resp := MovementItemResponse(mov)
	return &resp, nil
}

// StockItemResponse mapeia um StockItem para a resposta HTTP, derivando
// available e status.
func StockItemResponse(it repository.StockItem) dto.StockResponse {
	return dto.StockResponse{
		ID:           it.Stock.ID,
		ProductID:    it.Stock.ProductID,
		ProductCode:  it.ProductCode,
		ProductName:  it.ProductName,
		Category:     it.Category,
		Unit:         it.Unit,
		Current:      it.Stock.Current,
		Reserved:     it.Stock.Reserved,
		Available:    it.Stock.Available(),
		MinimumStock: it.MinimumStock,
		Status:       it.Stock.Status(it.MinimumStock),
		LastUpdated:  it.Stock.LastUpdated,
	}
}

// StockEntityResponse mapeia o registro recém-ajustado usando o produto para
// derivar o status.
func StockEntityResponse(stock entity.Stock, product *entity.Product) dto.StockResponse {
	return dto.StockResponse{
		ID:           stock.ID,
		ProductID:    stock.ProductID,
		ProductCode:  product.Code,
		ProductName:  product.Name,
		Category:     product.Category,
		Unit:         product.Unit,
		Current:      stock.Current,
		Reserved:     stock.Reserved,
		Available:    stock.Available(),
		MinimumStock: product.MinimumStock,
		Status:       stock.Status(product.MinimumStock),
		LastUpdated:  stock.LastUpdated,
	}
}

// MovementItemResponse mapeia uma linha do livro-razão para a resposta HTTP.
func MovementItemResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Kind:          m.Kind,
		Origin:        m.Origin,
		Quantity:      m.Quantity,
		UnitValue:     m.UnitValue,
		Document:      m.Document,
		Note:          m.Note,
		ActorID:       m.ActorID,
		ReferenceID:   m.ReferenceID,
		ReferenceKind: m.ReferenceKind,
		OccurredAt:    m.OccurredAt,
	}
}
