package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementação de StockRepository sobre PostgreSQL (usável com pool ou tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository constrói o adaptador de estoque. Passar pool ou tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockItemColumns = `
	s.id, s.product_id, s.current, s.reserved, s.last_updated,
	p.code, p.name, p.category, p.unit, p.minimum_stock, p.active`

// GetOrCreateForUpdate busca o registro do produto bloqueando a fila
// (SELECT FOR UPDATE). Se o produto nunca teve estoque, insere a fila zerada
// antes; o ON CONFLICT absorve a corrida entre dois primeiros ajustes.
func (r *StockRepo) GetOrCreateForUpdate(ctx context.Context, productID string) (*entity.Stock, error) {
	insert := `
		INSERT INTO inventory_stock (id, product_id, current, reserved, last_updated)
		VALUES ($1, $2, 0, 0, now())
		ON CONFLICT (product_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), productID); err != nil {
		return nil, fmt.Errorf("create stock row: %w", err)
	}

	query := `
		SELECT id, product_id, current, reserved, last_updated
		FROM inventory_stock WHERE product_id = $1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&s.ID, &s.ProductID, &s.Current, &s.Reserved, &s.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Update grava current, reserved e last_updated do registro.
func (r *StockRepo) Update(ctx context.Context, stock *entity.Stock) error {
	query := `
		UPDATE inventory_stock
		SET current = $2, reserved = $3, last_updated = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, stock.ID, stock.Current, stock.Reserved, stock.LastUpdated)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock: fila %s não existe", stock.ID)
	}
	return nil
}

// GetByID busca um registro de estoque com os campos do produto.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*repository.StockItem, error) {
	query := `
		SELECT` + stockItemColumns + `
		FROM inventory_stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.id = $1`
	item, err := scanStockItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return item, nil
}

// GetByProduct busca o registro de estoque de um produto, sem lock.
func (r *StockRepo) GetByProduct(ctx context.Context, productID string) (*entity.Stock, error) {
	query := `
		SELECT id, product_id, current, reserved, last_updated
		FROM inventory_stock WHERE product_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&s.ID, &s.ProductID, &s.Current, &s.Reserved, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock by product: %w", err)
	}
	return &s, nil
}

// List lista registros de estoque com filtros de produto.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]repository.StockItem, error) {
	query := `
		SELECT` + stockItemColumns + `
		FROM inventory_stock s
		JOIN products p ON p.id = s.product_id
		WHERE 1=1`
	var args []any
	pos := 1
	if filter.Active != nil {
		query += fmt.Sprintf(" AND p.active = $%d", pos)
		args = append(args, *filter.Active)
		pos++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND p.category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.code ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	switch filter.OrderBy {
	case "current":
		query += " ORDER BY s.current DESC"
	case "last_updated":
		query += " ORDER BY s.last_updated DESC"
	default:
		query += " ORDER BY p.name ASC"
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

// ListBelowMinimum devolve os registros com available abaixo do estoque mínimo
// do produto, inclusive de produtos delistados (o saldo remanescente continua
// precisando de atenção). available se deriva na consulta, nunca se persiste.
func (r *StockRepo) ListBelowMinimum(ctx context.Context, limit, offset int) ([]repository.StockItem, error) {
	query := `
		SELECT` + stockItemColumns + `
		FROM inventory_stock s
		JOIN products p ON p.id = s.product_id
		WHERE GREATEST(s.current - s.reserved, 0) < p.minimum_stock
		ORDER BY p.name ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

func scanStockItem(row pgx.Row) (*repository.StockItem, error) {
	var it repository.StockItem
	err := row.Scan(
		&it.Stock.ID, &it.Stock.ProductID, &it.Stock.Current, &it.Stock.Reserved, &it.Stock.LastUpdated,
		&it.ProductCode, &it.ProductName, &it.Category, &it.Unit, &it.MinimumStock, &it.Active,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func collectStockItems(rows pgx.Rows) ([]repository.StockItem, error) {
	var list []repository.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, *it)
	}
	return list, rows.Err()
}
