package orders

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	"github.com/hidroflex/hidroflex-api/internal/domain"
	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

// CreateOrderUseCase cria um pedido de venda e debita o estoque de cada item
// numa única transação.
type CreateOrderUseCase struct {
	txRunner    TxRunner
	inventoryUC InventoryUseCase
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewCreateOrderUseCase constrói o caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	inventoryUC InventoryUseCase,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// origem da movimentação segundo o canal de venda.
func originForChannel(channel string) (string, bool) {
	switch channel {
	case entity.OrderChannelPDV:
		return entity.MovementOriginSale, true
	case entity.OrderChannelOnline:
		return entity.MovementOriginOnlineOrder, true
	}
	return "", false
}

// CreateOrder cria o pedido, registra a saída de estoque de cada linha e grava
// cabeçalho e itens. Qualquer linha sem saldo disponível desfaz o pedido
// inteiro (rollback).
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	origin, ok := originForChannel(in.Channel)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.CustomerName) == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Valida produtos e preços fora da transação (só leitura).
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || !item.Quantity.IsPositive() || !item.Quantity.Round(2).Equal(item.Quantity) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.IsZero() {
			in.Items[i].UnitPrice = product.Price
		}
	}

	// Baixas em ordem crescente de product_id para que pedidos concorrentes
	// travem as filas na mesma sequência e não se enrosquem em deadlock.
	items := make([]dto.OrderItemRequest, len(in.Items))
	copy(items, in.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	now := time.Now()
	orderID := uuid.New().String()
	var order *entity.Order

	err := uc.txRunner.RunOrder(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		for _, item := range items {
			unitPrice := item.UnitPrice
			if err := uc.inventoryUC.RegisterExitInTx(
				ctx, stockRepo, movRepo,
				item.ProductID, item.Quantity, &unitPrice,
				origin, userID, orderID, now,
			); err != nil {
				return err
			}
		}

		total := decimal.Zero
		order = &entity.Order{
			ID:           orderID,
			CustomerName: in.CustomerName,
			Channel:      in.Channel,
			Status:       entity.OrderStatusCreated,
			CreatedBy:    userID,
			CreatedAt:    now,
		}
		for _, item := range items {
			subtotal := item.Quantity.Mul(item.UnitPrice)
			total = total.Add(subtotal)
			order.Items = append(order.Items, entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  subtotal,
			})
		}
		order.Total = total

		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for i := range order.Items {
			if err := orderRepo.CreateItem(ctx, &order.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := orderResponse(order)
	return &resp, nil
}

// GetOrder busca um pedido pelo ID.
func (uc *CreateOrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	resp := orderResponse(order)
	return &resp, nil
}

// ListOrders lista os pedidos mais recentes.
func (uc *CreateOrderUseCase) ListOrders(ctx context.Context, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.Normalize()
	list, err := uc.orderRepo.List(ctx, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, orderResponse(o))
	}
	return out, nil
}

func orderResponse(o *entity.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Channel:      o.Channel,
		Status:       o.Status,
		Total:        o.Total,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
