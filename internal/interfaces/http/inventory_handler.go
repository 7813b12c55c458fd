package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	"github.com/hidroflex/hidroflex-api/internal/application/inventory"
	"github.com/hidroflex/hidroflex-api/internal/domain"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// InventoryHandler atende as rotas de estoque, movimentações e relatório (protegido).
type InventoryHandler struct {
	adjustUC *inventory.AdjustStockUseCase
	queryUC  *inventory.StockQueryUseCase
	reportUC *inventory.MovementReportUseCase
}

// NewInventoryHandler constrói o handler.
func NewInventoryHandler(
	adjustUC *inventory.AdjustStockUseCase,
	queryUC *inventory.StockQueryUseCase,
	reportUC *inventory.MovementReportUseCase,
) *InventoryHandler {
	return &InventoryHandler{adjustUC: adjustUC, queryUC: queryUC, reportUC: reportUC}
}

// AdjustStock godoc
// @Summary      Aplicar ajuste de estoque
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, kind (entry|exit|adjustment), origin, quantity"
// @Success      201   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/ajuste-estoque [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "corpo inválido", Code: "INVALID_BODY"})
	}
	result, err := h.adjustUC.Adjust(c.Context(), inventory.AdjustInput{
		ProductID:     in.ProductID,
		Kind:          in.Kind,
		Origin:        in.Origin,
		Quantity:      in.Quantity,
		UnitValue:     in.UnitValue,
		Document:      in.Document,
		Note:          in.Note,
		ReferenceID:   in.ReferenceID,
		ReferenceKind: in.ReferenceKind,
		ActorID:       GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AdjustStockResponse{
		Estoque:      inventory.StockEntityResponse(result.Stock, result.Product),
		Movimentacao: inventory.MovementItemResponse(&result.Movement),
	})
}

// ListStock godoc
// @Summary      Listar registros de estoque
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        active    query  bool    false  "filtra pelo flag ativo do produto"
// @Param        category  query  string  false  "categoria exata"
// @Param        search    query  string  false  "nome ou código do produto"
// @Param        order_by  query  string  false  "name (padrão), current, last_updated"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventory/estoque [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "parâmetros inválidos", Code: "VALIDATION"})
	}
	page.Normalize()

	filter := repository.StockFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		OrderBy:  c.Query("order_by"),
		Limit:    page.PageSize,
		Offset:   page.Offset(),
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.Active = &active
	}

	list, err := h.queryUC.ListStock(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetStock devolve um registro de estoque pelo ID.
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	item, err := h.queryUC.GetStock(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// LowStock godoc
// @Summary      Produtos abaixo do estoque mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventory/produtos-baixo-estoque [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "parâmetros inválidos", Code: "VALIDATION"})
	}
	list, err := h.queryUC.ListLowStock(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListMovements lista o livro-razão com filtros.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "parâmetros inválidos", Code: "VALIDATION"})
	}
	page.Normalize()

	filter := repository.MovementFilter{
		ProductID: c.Query("product_id"),
		Kind:      c.Query("kind"),
		Origin:    c.Query("origin"),
		Search:    c.Query("search"),
		OrderBy:   c.Query("order_by"),
		Limit:     page.PageSize,
		Offset:    page.Offset(),
	}
	from, to, err := parseDateWindow(c)
	if err != nil {
		return respondError(c, err)
	}
	filter.From = from
	filter.To = to

	list, err := h.queryUC.ListMovements(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetMovement devolve uma linha do livro-razão pelo ID.
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.queryUC.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mov)
}

// MovementReport godoc
// @Summary      Relatório de movimentações com totais
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "filtra por produto"
// @Param        kind         query  string  false  "entry, exit, adjustment"
// @Param        origin       query  string  false  "origem de negócio"
// @Param        data_inicio  query  string  false  "AAAA-MM-DD"
// @Param        data_fim     query  string  false  "AAAA-MM-DD (padrão: hoje)"
// @Success      200  {object}  dto.MovementReportResponse
// @Router       /api/inventory/relatorio-movimentacoes [get]
func (h *InventoryHandler) MovementReport(c *fiber.Ctx) error {
	input, err := reportInput(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.reportUC.Generate(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// MovementReportPDF devolve o mesmo relatório renderizado em PDF.
func (h *InventoryHandler) MovementReportPDF(c *fiber.Ctx) error {
	input, err := reportInput(c)
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.reportUC.GeneratePDF(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio-movimentacoes.pdf"`)
	return c.Send(pdfBytes)
}

func reportInput(c *fiber.Ctx) (inventory.ReportInput, error) {
	input := inventory.ReportInput{
		ProductID: c.Query("product_id"),
		Kind:      c.Query("kind"),
		Origin:    c.Query("origin"),
	}
	if raw := c.Query("data_inicio"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return inventory.ReportInput{}, domain.ErrInvalidInput
		}
		input.DateStart = &t
	}
	if raw := c.Query("data_fim"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return inventory.ReportInput{}, domain.ErrInvalidInput
		}
		input.DateEnd = &t
	}
	return input, nil
}

// parseDateWindow lê data_inicio/data_fim como limites inclusivos de dia.
func parseDateWindow(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if raw := c.Query("data_inicio"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		from = &t
	}
	if raw := c.Query("data_fim"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
