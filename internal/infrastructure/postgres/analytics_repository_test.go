package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAnalyticsRepo(t *testing.T) (*AnalyticsRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewAnalyticsRepository(mock), mock
}

func TestAnalyticsRepo_CountLowStock_SemFiltroDeAtivo(t *testing.T) {
	repo, mock := setupAnalyticsRepo(t)
	defer mock.Close()

	// O contador usa só o predicado de disponibilidade; produto delistado com
	// saldo baixo entra na conta do dashboard.
	mock.ExpectQuery(`WHERE GREATEST\(s\.current - s\.reserved, 0\) < p\.minimum_stock`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountLowStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepo_InventoryValue(t *testing.T) {
	repo, mock := setupAnalyticsRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(s\.current \* p\.price\), 0\)`).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).
			AddRow(decimal.RequireFromString("12345.67")))

	v, err := repo.InventoryValue(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.RequireFromString("12345.67")))
	require.NoError(t, mock.ExpectationsWereMet())
}
