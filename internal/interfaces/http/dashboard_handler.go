package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hidroflex/hidroflex-api/internal/application/analytics"
)

// DashboardHandler atende o resumo do back-office (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary devolve totais de catálogo, baixo estoque, movimentações de hoje e
// valor do inventário.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
