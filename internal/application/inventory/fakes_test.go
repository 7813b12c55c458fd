package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

// Fakes em memória com a mesma semântica transacional do Postgres que o
// TxRunner real entrega: mutação só visível após Commit, Rollback descarta
// tudo e o lock serializa escritores concorrentes.

type fakeStockRepo struct {
	stocks map[string]*entity.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stocks: make(map[string]*entity.Stock)}
}

func (f *fakeStockRepo) GetOrCreateForUpdate(_ context.Context, productID string) (*entity.Stock, error) {
	s, ok := f.stocks[productID]
	if !ok {
		s = &entity.Stock{
			ID:        uuid.New().String(),
			ProductID: productID,
			Current:   decimal.Zero,
			Reserved:  decimal.Zero,
		}
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

func (f *fakeStockRepo) GetByID(_ context.Context, id string) (*repository.StockItem, error) {
	for _, s := range f.stocks {
		if s.ID == id {
			return &repository.StockItem{Stock: *s}, nil
		}
	}
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

func (f *fakeStockRepo) List(_ context.Context, _ repository.StockFilter) ([]repository.StockItem, error) {
	out := make([]repository.StockItem, 0, len(f.stocks))
	for _, s := range f.stocks {
		out = append(out, repository.StockItem{Stock: *s})
	}
	return out, nil
}

func (f *fakeStockRepo) ListBelowMinimum(_ context.Context, _, _ int) ([]repository.StockItem, error) {
	return nil, nil
}

func (f *fakeStockRepo) snapshot() map[string]entity.Stock {
	snap := make(map[string]entity.Stock, len(f.stocks))
	for k, v := range f.stocks {
		snap[k] = *v
	}
	return snap
}

func (f *fakeStockRepo) restore(snap map[string]entity.Stock) {
	f.stocks = make(map[string]*entity.Stock, len(snap))
	for k, v := range snap {
		cp := v
		f.stocks[k] = &cp
	}
}

type fakeMovementRepo struct {
	items []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	cp := *movement
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	for _, m := range f.items {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) matches(m *entity.StockMovement, filter repository.MovementFilter) bool {
	if filter.ProductID != "" && m.ProductID != filter.ProductID {
		return false
	}
	if filter.Kind != "" && m.Kind != filter.Kind {
		return false
	}
	if filter.Origin != "" && m.Origin != filter.Origin {
		return false
	}
	if filter.From != nil && m.OccurredAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && m.OccurredAt.After(*filter.To) {
		return false
	}
	return true
}

func (f *fakeMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.items {
		if f.matches(m, filter) {
			cp := *m
			out = append(out, &cp)
		}
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeMovementRepo) Totals(_ context.Context, filter repository.MovementFilter) (repository.MovementTotals, error) {
	filter.Limit = 0
	totals := repository.MovementTotals{Entries: decimal.Zero, Exits: decimal.Zero}
	for _, m := range f.items {
		if !f.matches(m, filter) {
			continue
		}
		switch m.Kind {
		case entity.MovementKindEntry:
			totals.Entries = totals.Entries.Add(m.Quantity)
		case entity.MovementKindExit:
			totals.Exits = totals.Exits.Add(m.Quantity)
		}
	}
	return totals, nil
}

// fakeTxRunner serializa transações com um mutex e desfaz as escritas quando
// a função devolve erro, igual ao Rollback do runner real.
type fakeTxRunner struct {
	mu        sync.Mutex
	stockRepo *fakeStockRepo
	movRepo   *fakeMovementRepo
}

func newFakeTxRunner() *fakeTxRunner {
	return &fakeTxRunner{stockRepo: newFakeStockRepo(), movRepo: &fakeMovementRepo{}}
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapStocks := r.stockRepo.snapshot()
	snapMovs := len(r.movRepo.items)
	if err := fn(r.stockRepo, r.movRepo); err != nil {
		r.stockRepo.restore(snapStocks)
		r.movRepo.items = r.movRepo.items[:snapMovs]
		return err
	}
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	f.products[product.ID] = product
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

func (f *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(id string, minimum string) *entity.Product {
	return &entity.Product{
		ID:           id,
		Code:         "MH-" + id,
		Name:         "Mangueira hidráulica " + id,
		Category:     "mangueiras",
		Unit:         "m",
		Price:        dec("25.90"),
		MinimumStock: dec(minimum),
		Active:       true,
		CreatedAt:    time.Now(),
	}
}
