package dto

// DashboardSummaryDTO resumo do dia para a tela inicial do back-office.
type DashboardSummaryDTO struct {
	TotalProducts  int    `json:"total_products"`
	LowStockItems  int    `json:"low_stock_items"`
	MovementsToday int    `json:"movements_today"`
	InventoryValue string `json:"inventory_value"` // soma current * price, duas casas
}
