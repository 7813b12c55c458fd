// Package analytics contém os casos de uso de leitura agregada para o resumo
// do back-office.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

// DashboardUseCase gera o resumo do dia: totais de catálogo, itens abaixo do
// mínimo, movimentações de hoje e valor do inventário.
//
// Fonte de dados: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary monta o DashboardSummaryDTO.
//
// Quatro consultas em paralelo:
//  1. CountProducts          → TotalProducts
//  2. CountLowStock          → LowStockItems
//  3. CountMovements(hoje)   → MovementsToday
//  4. InventoryValue         → InventoryValue
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	type countResult struct {
		n   int
		err error
	}
	type valueResult struct {
		v   decimal.Decimal
		err error
	}

	productsCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	movsCh := make(chan countResult, 1)
	valueCh := make(chan valueResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountLowStock(ctx)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountMovements(ctx, todayStart, todayEnd)
		movsCh <- countResult{n, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.InventoryValue(ctx)
		valueCh <- valueResult{v, err}
	}()

	products := <-productsCh
	low := <-lowCh
	movs := <-movsCh
	value := <-valueCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: total de produtos: %w", products.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: itens abaixo do mínimo: %w", low.err)
	}
	if movs.err != nil {
		return nil, fmt.Errorf("dashboard: movimentações de hoje: %w", movs.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor do inventário: %w", value.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:  products.n,
		LowStockItems:  low.n,
		MovementsToday: movs.n,
		InventoryValue: value.v.StringFixed(2),
	}, nil
}
