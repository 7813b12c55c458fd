package orders_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	"github.com/hidroflex/hidroflex-api/internal/application/inventory"
	"github.com/hidroflex/hidroflex-api/internal/application/orders"
	"github.com/hidroflex/hidroflex-api/internal/domain"
	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

// Fakes em memória. O runner desfaz estoque, movimentações e pedidos quando a
// função devolve erro, espelhando o Rollback do runner real.

type fakeStockRepo struct {
	stocks map[string]*entity.Stock
}

func (f *fakeStockRepo) GetOrCreateForUpdate(_ context.Context, productID string) (*entity.Stock, error) {
	s, ok := f.stocks[productID]
	if !ok {
		s = &entity.Stock{ID: uuid.New().String(), ProductID: productID, Current: decimal.Zero, Reserved: decimal.Zero}
		f.stocks[productID] = s
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStockRepo) Update(_ context.Context, stock *entity.Stock) error {
	cp := *stock
	f.stocks[stock.ProductID] = &cp
	return nil
}

func (f *fakeStockRepo) GetByID(context.Context, string) (*repository.StockItem, error) {
	return nil, nil
}

func (f *fakeStockRepo) GetByProduct(_ context.Context, productID string) (*entity.Stock, error) {
	s, ok := f.stocks[productID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStockRepo) List(context.Context, repository.StockFilter) ([]repository.StockItem, error) {
	return nil, nil
}

func (f *fakeStockRepo) ListBelowMinimum(context.Context, int, int) ([]repository.StockItem, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	items []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeMovementRepo) GetByID(context.Context, string) (*entity.StockMovement, error) {
	return nil, nil
}

func (f *fakeMovementRepo) List(context.Context, repository.MovementFilter) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (f *fakeMovementRepo) Totals(context.Context, repository.MovementFilter) (repository.MovementTotals, error) {
	return repository.MovementTotals{}, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	count  int
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	cp := *order
	cp.Items = nil
	f.orders[order.ID] = &cp
	f.count++
	return nil
}

func (f *fakeOrderRepo) CreateItem(_ context.Context, item *entity.OrderItem) error {
	o, ok := f.orders[item.OrderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Items = append(o.Items, *item)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) List(context.Context, int, int) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByCode(context.Context, string) (*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Update(context.Context, *entity.Product) error { return nil }

func (f *fakeProductRepo) List(context.Context, int, int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeOrderTxRunner struct {
	mu        sync.Mutex
	stockRepo *fakeStockRepo
	movRepo   *fakeMovementRepo
	orderRepo *fakeOrderRepo
}

func (r *fakeOrderTxRunner) RunOrder(_ context.Context, fn func(
	repository.StockRepository,
	repository.StockMovementRepository,
	repository.OrderRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapStocks := make(map[string]entity.Stock, len(r.stockRepo.stocks))
	for k, v := range r.stockRepo.stocks {
		snapStocks[k] = *v
	}
	snapMovs := len(r.movRepo.items)
	snapOrders := make(map[string]*entity.Order, len(r.orderRepo.orders))
	for k, v := range r.orderRepo.orders {
		snapOrders[k] = v
	}
	if err := fn(r.stockRepo, r.movRepo, r.orderRepo); err != nil {
		r.stockRepo.stocks = make(map[string]*entity.Stock, len(snapStocks))
		for k, v := range snapStocks {
			cp := v
			r.stockRepo.stocks[k] = &cp
		}
		r.movRepo.items = r.movRepo.items[:snapMovs]
		r.orderRepo.orders = snapOrders
		return err
	}
	return nil
}

// adjustTxRunner adapta o fakeOrderTxRunner para o TxRunner do pacote inventory.
type adjustTxRunner struct{ r *fakeOrderTxRunner }

func (a adjustTxRunner) Run(ctx context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	return a.r.RunOrder(ctx, func(s repository.StockRepository, m repository.StockMovementRepository, _ repository.OrderRepository) error {
		return fn(s, m)
	})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	uc     *orders.CreateOrderUseCase
	runner *fakeOrderTxRunner
}

func newFixture(products ...*entity.Product) fixture {
	runner := &fakeOrderTxRunner{
		stockRepo: &fakeStockRepo{stocks: make(map[string]*entity.Stock)},
		movRepo:   &fakeMovementRepo{},
		orderRepo: &fakeOrderRepo{orders: make(map[string]*entity.Order)},
	}
	productRepo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}
	inventoryUC := inventory.NewAdjustStockUseCase(adjustTxRunner{runner}, productRepo)
	return fixture{
		uc:     orders.NewCreateOrderUseCase(runner, inventoryUC, productRepo, runner.orderRepo),
		runner: runner,
	}
}

func product(id, price string) *entity.Product {
	return &entity.Product{
		ID:           id,
		Code:         "MH-" + id,
		Name:         "Mangueira " + id,
		Unit:         "m",
		Price:        dec(price),
		MinimumStock: dec("5.00"),
		Active:       true,
		CreatedAt:    time.Now(),
	}
}

func TestCreateOrder_DebitaEstoqueEGravaLedger(t *testing.T) {
	fx := newFixture(product("p1", "25.90"), product("p2", "12.00"))
	fx.runner.stockRepo.stocks["p1"] = &entity.Stock{ID: "s1", ProductID: "p1", Current: dec("20.00")}
	fx.runner.stockRepo.stocks["p2"] = &entity.Stock{ID: "s2", ProductID: "p2", Current: dec("10.00")}

	resp, err := fx.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerName: "Oficina do Zé",
		Channel:      entity.OrderChannelPDV,
		Items: []dto.OrderItemRequest{
			{ProductID: "p2", Quantity: dec("2.00")},
			{ProductID: "p1", Quantity: dec("3.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCreated, resp.Status)
	assert.True(t, resp.Total.Equal(dec("101.70")), "3*25.90 + 2*12.00")
	require.Len(t, resp.Items, 2)

	assert.True(t, fx.runner.stockRepo.stocks["p1"].Current.Equal(dec("17.00")))
	assert.True(t, fx.runner.stockRepo.stocks["p2"].Current.Equal(dec("8.00")))

	require.Len(t, fx.runner.movRepo.items, 2)
	for _, mov := range fx.runner.movRepo.items {
		assert.Equal(t, entity.MovementKindExit, mov.Kind)
		assert.Equal(t, entity.MovementOriginSale, mov.Origin, "canal pdv origina venda")
		assert.Equal(t, entity.ReferenceKindOrder, mov.ReferenceKind)
		require.NotNil(t, mov.ReferenceID)
		assert.Equal(t, resp.ID, *mov.ReferenceID)
		require.NotNil(t, mov.ActorID)
		assert.Equal(t, "vend-1", *mov.ActorID)
	}
	// baixas em ordem crescente de product_id, independente da ordem do body
	assert.Equal(t, "p1", fx.runner.movRepo.items[0].ProductID)
	assert.Equal(t, "p2", fx.runner.movRepo.items[1].ProductID)
}

func TestCreateOrder_CanalOnlineOriginaOnlineOrder(t *testing.T) {
	fx := newFixture(product("p1", "25.90"))
	fx.runner.stockRepo.stocks["p1"] = &entity.Stock{ID: "s1", ProductID: "p1", Current: dec("20.00")}

	_, err := fx.uc.CreateOrder(context.Background(), "cli-1", dto.CreateOrderRequest{
		CustomerName: "Cliente Web",
		Channel:      entity.OrderChannelOnline,
		Items:        []dto.OrderItemRequest{{ProductID: "p1", Quantity: dec("1.00")}},
	})
	require.NoError(t, err)

	require.Len(t, fx.runner.movRepo.items, 1)
	assert.Equal(t, entity.MovementOriginOnlineOrder, fx.runner.movRepo.items[0].Origin)
}

func TestCreateOrder_SemSaldoDesfazTudo(t *testing.T) {
	fx := newFixture(product("p1", "25.90"), product("p2", "12.00"))
	fx.runner.stockRepo.stocks["p1"] = &entity.Stock{ID: "s1", ProductID: "p1", Current: dec("20.00")}
	fx.runner.stockRepo.stocks["p2"] = &entity.Stock{ID: "s2", ProductID: "p2", Current: dec("1.00")}

	_, err := fx.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerName: "Oficina do Zé",
		Channel:      entity.OrderChannelPDV,
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: dec("3.00")},
			{ProductID: "p2", Quantity: dec("2.00")}, // estoura na segunda linha
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, fx.runner.stockRepo.stocks["p1"].Current.Equal(dec("20.00")), "rollback devolve a primeira linha")
	assert.True(t, fx.runner.stockRepo.stocks["p2"].Current.Equal(dec("1.00")))
	assert.Empty(t, fx.runner.movRepo.items, "nenhuma movimentação sobrevive ao rollback")
	assert.Empty(t, fx.runner.orderRepo.orders, "pedido não é criado pela metade")
}

func TestCreateOrder_PrecoZeroUsaCatalogo(t *testing.T) {
	fx := newFixture(product("p1", "25.90"))
	fx.runner.stockRepo.stocks["p1"] = &entity.Stock{ID: "s1", ProductID: "p1", Current: dec("20.00")}

	resp, err := fx.uc.CreateOrder(context.Background(), "vend-1", dto.CreateOrderRequest{
		CustomerName: "Balcão",
		Channel:      entity.OrderChannelPDV,
		Items:        []dto.OrderItemRequest{{ProductID: "p1", Quantity: dec("2.00")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Items[0].UnitPrice.Equal(dec("25.90")))
	assert.True(t, resp.Total.Equal(dec("51.80")))
}

func TestCreateOrder_Validacao(t *testing.T) {
	fx := newFixture(product("p1", "25.90"))
	ctx := context.Background()

	_, err := fx.uc.CreateOrder(ctx, "u", dto.CreateOrderRequest{
		Channel: "telefone",
		Items:   []dto.OrderItemRequest{{ProductID: "p1", Quantity: dec("1.00")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.CreateOrder(ctx, "u", dto.CreateOrderRequest{
		CustomerName: "Oficina", Channel: entity.OrderChannelPDV,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "pedido sem itens")

	_, err = fx.uc.CreateOrder(ctx, "u", dto.CreateOrderRequest{
		Channel: entity.OrderChannelPDV,
		Items:   []dto.OrderItemRequest{{ProductID: "p1", Quantity: dec("1.00")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "nome do cliente obrigatório")

	_, err = fx.uc.CreateOrder(ctx, "u", dto.CreateOrderRequest{
		CustomerName: "Oficina",
		Channel:      entity.OrderChannelPDV,
		Items:        []dto.OrderItemRequest{{ProductID: "nao-existe", Quantity: dec("1.00")}},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = fx.uc.CreateOrder(ctx, "u", dto.CreateOrderRequest{
		CustomerName: "Oficina",
		Channel:      entity.OrderChannelPDV,
		Items:        []dto.OrderItemRequest{{ProductID: "p1", Quantity: dec("0.00")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.CreateOrder(ctx, "u", dto.CreateOrderRequest{
		CustomerName: "Oficina",
		Channel:      entity.OrderChannelPDV,
		Items:        []dto.OrderItemRequest{{ProductID: "p1", Quantity: dec("1.00"), UnitPrice: dec("-5.00")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
