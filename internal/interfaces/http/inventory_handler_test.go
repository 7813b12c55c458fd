package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	"github.com/hidroflex/hidroflex-api/internal/application/inventory"
	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
	apphttp "github.com/hidroflex/hidroflex-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória para os testes de handler. Sem concorrência aqui: os testes
// de atomicidade e corrida vivem na camada de aplicação.
// ──────────────────────────────────────────────────────────────────────────────

type memStockRepo struct {
	byProduct map[string]*entity.Stock
	products  map[string]*entity.Product
}

func (r *memStockRepo) GetOrCreateForUpdate(_ context.Context, productID string) (*entity.Stock, error) {
	if s, ok := r.byProduct[productID]; ok {
		cp := *s
		return &cp, nil
	}
	s := &entity.Stock{ID: "stk-" + productID, ProductID: productID}
	r.byProduct[productID] = s
	cp := *s
	return &cp, nil
}

func (r *memStockRepo) Update(_ context.Context, stock *entity.Stock) error {
	cp := *stock
	r.byProduct[stock.ProductID] = &cp
	return nil
}

func (r *memStockRepo) GetByID(_ context.Context, id string) (*repository.StockItem, error) {
	for pid, s := range r.byProduct {
		if s.ID == id {
			return r.item(pid, s), nil
		}
	}
	return nil, nil
}

func (r *memStockRepo) GetByProduct(_ context.Context, productID string) (*entity.Stock, error) {
	s, ok := r.byProduct[productID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memStockRepo) List(_ context.Context, _ repository.StockFilter) ([]repository.StockItem, error) {
	items := make([]repository.StockItem, 0, len(r.byProduct))
	for pid, s := range r.byProduct {
		items = append(items, *r.item(pid, s))
	}
	return items, nil
}

func (r *memStockRepo) ListBelowMinimum(_ context.Context, _, _ int) ([]repository.StockItem, error) {
	var items []repository.StockItem
	for pid, s := range r.byProduct {
		p := r.products[pid]
		if p != nil && s.Available().LessThan(p.MinimumStock) {
			items = append(items, *r.item(pid, s))
		}
	}
	return items, nil
}

func (r *memStockRepo) item(productID string, s *entity.Stock) *repository.StockItem {
	cp := *s
	item := &repository.StockItem{Stock: cp}
	if p := r.products[productID]; p != nil {
		item.ProductCode = p.Code
		item.ProductName = p.Name
		item.Category = p.Category
		item.Unit = p.Unit
		item.MinimumStock = p.MinimumStock
		item.Active = p.Active
	}
	return item
}

type memMovementRepo struct {
	rows    []*entity.StockMovement
	failGet error
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	for _, m := range r.rows {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0, len(r.rows))
	for _, m := range r.rows {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memMovementRepo) Totals(_ context.Context, _ repository.MovementFilter) (repository.MovementTotals, error) {
	var t repository.MovementTotals
	for _, m := range r.rows {
		switch m.Kind {
		case entity.MovementKindEntry:
			t.Entries = t.Entries.Add(m.Quantity)
		case entity.MovementKindExit:
			t.Exits = t.Exits.Add(m.Quantity)
		}
	}
	return t, nil
}

type memProductRepo struct {
	byID map[string]*entity.Product
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// memTxRunner entrega os repositórios em memória ao callback; os handlers só
// observam o código HTTP, então não simulamos rollback aqui.
type memTxRunner struct {
	stockRepo *memStockRepo
	movRepo   *memMovementRepo
}

func (r *memTxRunner) Run(ctx context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	return fn(r.stockRepo, r.movRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Montagem da app de teste
// ──────────────────────────────────────────────────────────────────────────────

type inventoryTestEnv struct {
	app       *fiber.App
	stockRepo *memStockRepo
	movRepo   *memMovementRepo
}

func newInventoryTestEnv(t *testing.T) *inventoryTestEnv {
	t.Helper()

	products := map[string]*entity.Product{
		"prod-1": {
			ID:           "prod-1",
			Code:         "MGH-1/4-2T",
			Name:         "Mangueira hidráulica 1/4 2 tramas",
			Category:     "mangueiras",
			Unit:         "m",
			Price:        decimal.RequireFromString("28.50"),
			MinimumStock: decimal.RequireFromString("10.00"),
			Active:       true,
		},
		"prod-2": {
			ID:           "prod-2",
			Code:         "TER-5/8-90",
			Name:         "Terminal 90 graus 5/8 (fora de linha)",
			Category:     "terminais",
			Unit:         "un",
			Price:        decimal.RequireFromString("18.00"),
			MinimumStock: decimal.RequireFromString("20.00"),
			Active:       false,
		},
	}
	stockRepo := &memStockRepo{byProduct: map[string]*entity.Stock{}, products: products}
	movRepo := &memMovementRepo{}
	productRepo := &memProductRepo{byID: products}
	runner := &memTxRunner{stockRepo: stockRepo, movRepo: movRepo}

	adjustUC := inventory.NewAdjustStockUseCase(runner, productRepo)
	queryUC := inventory.NewStockQueryUseCase(stockRepo, movRepo)
	reportUC := inventory.NewMovementReportUseCase(movRepo, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AdjustUC:   adjustUC,
		StockQuery: queryUC,
		ReportUC:   reportUC,
		JWTSecret:  testJWTSecret,
	})
	return &inventoryTestEnv{app: app, stockRepo: stockRepo, movRepo: movRepo}
}

func (e *inventoryTestEnv) post(t *testing.T, role, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *inventoryTestEnv) get(t *testing.T, role, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAjusteEstoque_EntradaRetorna201(t *testing.T) {
	env := newInventoryTestEnv(t)

	resp := env.post(t, "vendedor", "/api/inventory/ajuste-estoque", dto.AdjustStockRequest{
		ProductID: "prod-1",
		Kind:      entity.MovementKindEntry,
		Origin:    entity.MovementOriginPurchase,
		Quantity:  decimal.RequireFromString("50.00"),
		Document:  "NF-1001",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.AdjustStockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "prod-1", body.Estoque.ProductID)
	assert.True(t, body.Estoque.Current.Equal(decimal.RequireFromString("50.00")),
		"current deve refletir a entrada")
	assert.Equal(t, entity.MovementKindEntry, body.Movimentacao.Kind)
	assert.Equal(t, "NF-1001", body.Movimentacao.Document)
	assert.Equal(t, testUserID, *body.Movimentacao.ActorID,
		"actor vem do token, não do body")
	require.Len(t, env.movRepo.rows, 1, "exatamente uma linha no livro-razão")
}

func TestAjusteEstoque_SaidaInsuficienteRetorna400(t *testing.T) {
	env := newInventoryTestEnv(t)
	env.stockRepo.byProduct["prod-1"] = &entity.Stock{
		ID: "stk-prod-1", ProductID: "prod-1",
		Current: decimal.RequireFromString("3.00"),
	}

	resp := env.post(t, "admin", "/api/inventory/ajuste-estoque", dto.AdjustStockRequest{
		ProductID: "prod-1",
		Kind:      entity.MovementKindExit,
		Origin:    entity.MovementOriginSale,
		Quantity:  decimal.RequireFromString("5.00"),
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Detail, "insufficient")
}

func TestAjusteEstoque_ProdutoInexistenteRetorna404(t *testing.T) {
	env := newInventoryTestEnv(t)

	resp := env.post(t, "admin", "/api/inventory/ajuste-estoque", dto.AdjustStockRequest{
		ProductID: "prod-999",
		Kind:      entity.MovementKindEntry,
		Origin:    entity.MovementOriginPurchase,
		Quantity:  decimal.RequireFromString("1.00"),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAjusteEstoque_KindInvalidoRetorna400(t *testing.T) {
	env := newInventoryTestEnv(t)

	resp := env.post(t, "admin", "/api/inventory/ajuste-estoque", dto.AdjustStockRequest{
		ProductID: "prod-1",
		Kind:      "transfer",
		Origin:    entity.MovementOriginManual,
		Quantity:  decimal.RequireFromString("1.00"),
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestInventory_ClienteRecebe403(t *testing.T) {
	env := newInventoryTestEnv(t)

	resp := env.get(t, "cliente", "/api/inventory/estoque")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"rotas de inventário são só da equipe")

	resp2 := env.post(t, "cliente", "/api/inventory/ajuste-estoque", dto.AdjustStockRequest{
		ProductID: "prod-1",
		Kind:      entity.MovementKindEntry,
		Origin:    entity.MovementOriginPurchase,
		Quantity:  decimal.RequireFromString("1.00"),
	})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
}

func TestErroNaoMapeadoRetorna500ComDetalhe(t *testing.T) {
	env := newInventoryTestEnv(t)
	env.movRepo.failGet = errors.New("conexão recusada pelo banco")

	resp := env.get(t, "admin", "/api/inventory/movimentacoes/mov-1")
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Contains(t, body.Detail, "conexão recusada",
		"o detalhe carrega a mensagem do erro subjacente")
}

func TestRelatorio_DataInvalidaRetorna400(t *testing.T) {
	env := newInventoryTestEnv(t)

	resp := env.get(t, "admin", "/api/inventory/relatorio-movimentacoes?data_inicio=31-01-2026")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRelatorio_TotaisIgnoramAjustes(t *testing.T) {
	env := newInventoryTestEnv(t)

	seed := func(kind, origin, qty string) {
		resp := env.post(t, "admin", "/api/inventory/ajuste-estoque", dto.AdjustStockRequest{
			ProductID: "prod-1",
			Kind:      kind,
			Origin:    origin,
			Quantity:  decimal.RequireFromString(qty),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	seed(entity.MovementKindEntry, entity.MovementOriginPurchase, "100.00")
	seed(entity.MovementKindExit, entity.MovementOriginSale, "30.00")
	seed(entity.MovementKindAdjustment, entity.MovementOriginManual, "65.00")

	resp := env.get(t, "vendedor", "/api/inventory/relatorio-movimentacoes")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report dto.MovementReportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "100.00", report.TotalEntries)
	assert.Equal(t, "30.00", report.TotalExits)
	assert.Equal(t, "70.00", report.Net)
	assert.Len(t, report.Movimentacoes, 3, "o ajuste aparece nas linhas, só não entra nos totais")
	assert.Nil(t, report.Periodo.Inicio)
	assert.NotEmpty(t, report.Periodo.Fim)
}

func TestBaixoEstoque_ListaSomenteAbaixoDoMinimo(t *testing.T) {
	env := newInventoryTestEnv(t)
	env.stockRepo.byProduct["prod-1"] = &entity.Stock{
		ID: "stk-prod-1", ProductID: "prod-1",
		Current: decimal.RequireFromString("4.00"),
	}
	// produto delistado com saldo remanescente baixo entra na projeção
	env.stockRepo.byProduct["prod-2"] = &entity.Stock{
		ID: "stk-prod-2", ProductID: "prod-2",
		Current: decimal.RequireFromString("1.00"),
	}

	resp := env.get(t, "vendedor", "/api/inventory/produtos-baixo-estoque")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []dto.StockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	byProduct := map[string]dto.StockResponse{}
	for _, item := range list {
		byProduct[item.ProductID] = item
	}
	assert.Equal(t, entity.StockStatusLow, byProduct["prod-1"].Status)
	assert.Equal(t, "TER-5/8-90", byProduct["prod-2"].ProductCode,
		"delistar o produto não o tira da lista de baixo estoque")
}
