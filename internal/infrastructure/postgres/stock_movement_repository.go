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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação do livro-razão sobre PostgreSQL (usável com
// pool ou tx). Append-only: não existem UPDATE nem DELETE nesta tabela.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `
	m.id, m.product_id, m.kind, m.origin, m.quantity, m.unit_value,
	m.document, m.note, m.actor_id, m.reference_id, m.reference_kind, m.occurred_at`

// Create persiste uma movimentação.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movement (id, product_id, kind, origin, quantity, unit_value, document, note, actor_id, reference_id, reference_kind, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	document := nullable(movement.Document)
	note := nullable(movement.Note)
	referenceKind := nullable(movement.ReferenceKind)
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Kind, movement.Origin,
		movement.Quantity, movement.UnitValue, document, note,
		movement.ActorID, movement.ReferenceID, referenceKind, movement.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID busca uma movimentação pelo ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `
		SELECT` + movementColumns + `
		FROM inventory_movement m WHERE m.id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// buildWhere monta a cláusula WHERE comum a List e Totals.
func buildWhere(filter repository.MovementFilter) (string, []any, int) {
	where := " WHERE 1=1"
	var args []any
	pos := 1
	if filter.ProductID != "" {
		where += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.Kind != "" {
		where += fmt.Sprintf(" AND m.kind = $%d", pos)
		args = append(args, filter.Kind)
		pos++
	}
	if filter.Origin != "" {
		where += fmt.Sprintf(" AND m.origin = $%d", pos)
		args = append(args, filter.Origin)
		pos++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND m.occurred_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND m.occurred_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (m.document ILIKE $%d OR m.note ILIKE $%d
			OR EXISTS (SELECT 1 FROM products p WHERE p.id = m.product_id AND (p.name ILIKE $%d OR p.code ILIKE $%d)))`,
			pos, pos, pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	return where, args, pos
}

// List lista movimentações com os filtros informados.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	where, args, pos := buildWhere(filter)
	query := `
		SELECT` + movementColumns + `
		FROM inventory_movement m` + where
	if filter.OrderBy == "product_name" {
		query += " ORDER BY (SELECT p.name FROM products p WHERE p.id = m.product_id) ASC, m.occurred_at DESC"
	} else {
		query += " ORDER BY m.occurred_at DESC"
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Totals soma entradas e saídas do recorte filtrado. adjustment fica de fora
// dos dois lados.
func (r *StockMovementRepo) Totals(ctx context.Context, filter repository.MovementFilter) (repository.MovementTotals, error) {
	filter.Limit = 0
	filter.Offset = 0
	where, args, _ := buildWhere(filter)
	query := `
		SELECT
			COALESCE(SUM(m.quantity) FILTER (WHERE m.kind = 'entry'), 0),
			COALESCE(SUM(m.quantity) FILTER (WHERE m.kind = 'exit'), 0)
		FROM inventory_movement m` + where

	var totals repository.MovementTotals
	err := r.q.QueryRow(ctx, query, args...).Scan(&totals.Entries, &totals.Exits)
	if err != nil {
		return repository.MovementTotals{}, fmt.Errorf("movement totals: %w", err)
	}
	return totals, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var document, note, referenceKind *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Kind, &m.Origin, &m.Quantity, &m.UnitValue,
		&document, &note, &m.ActorID, &m.ReferenceID, &referenceKind, &m.OccurredAt,
	)
	if err != nil {
		return nil, err
	}
	if document != nil {
		m.Document = *document
	}
	if note != nil {
		m.Note = *note
	}
	if referenceKind != nil {
		m.ReferenceKind = *referenceKind
	}
	return &m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
