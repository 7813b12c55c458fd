package inventory

import (
	"context"
	"time"

	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	"github.com/hidroflex/hidroflex-api/internal/domain"
	"github.com/hidroflex/hidroflex-api/internal/domain/entity"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

const reportDateLayout = "2006-01-02"

// reportMaxRows teto de linhas devolvidas num relatório.
const reportMaxRows = 500

// MovementReportUseCase gera o relatório de movimentações: recorte filtrado do
// livro-razão + totais de entradas, saídas e líquido.
type MovementReportUseCase struct {
	movRepo repository.StockMovementRepository
	pdfGen  ReportPDFGenerator
}

// NewMovementReportUseCase constrói o caso de uso. pdfGen pode ser nil quando
// a exportação em PDF não é usada.
func NewMovementReportUseCase(movRepo repository.StockMovementRepository, pdfGen ReportPDFGenerator) *MovementReportUseCase {
	return &MovementReportUseCase{movRepo: movRepo, pdfGen: pdfGen}
}

// ReportInput filtros do relatório. Datas são dias (sem hora); DateEnd assume
// o dia de hoje quando nula.
type ReportInput struct {
	ProductID string
	Kind      string
	Origin    string
	DateStart *time.Time
	DateEnd   *time.Time
}

// Generate monta o relatório. Os totais consideram o mesmo recorte das linhas
// listadas e contam só entry e exit; adjustment não soma em nenhum lado.
func (uc *MovementReportUseCase) Generate(ctx context.Context, input ReportInput) (*dto.MovementReportResponse, error) {
	if input.Kind != "" && !entity.IsValidKind(input.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if input.Origin != "" && !entity.IsValidOrigin(input.Origin) {
		return nil, domain.ErrInvalidInput
	}

	end := time.Now()
	if input.DateEnd != nil {
		end = *input.DateEnd
	}
	endStart := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	endOfDay := endStart.Add(24*time.Hour - time.Nanosecond)

	filter := repository.MovementFilter{
		ProductID: input.ProductID,
		Kind:      input.Kind,
		Origin:    input.Origin,
		To:        &endOfDay,
		Limit:     reportMaxRows,
	}

	periodo := dto.ReportPeriod{Fim: endStart.Format(reportDateLayout)}
	if input.DateStart != nil {
		s := *input.DateStart
		start := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, s.Location())
		if start.After(endOfDay) {
			return nil, domain.ErrInvalidInput
		}
		filter.From = &start
		inicio := start.Format(reportDateLayout)
		periodo.Inicio = &inicio
	}

	movs, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	totals, err := uc.movRepo.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, MovementItemResponse(m))
	}
	return &dto.MovementReportResponse{
		Movimentacoes: out,
		TotalEntries:  totals.Entries.StringFixed(2),
		TotalExits:    totals.Exits.StringFixed(2),
		Net:           totals.Net().StringFixed(2),
		Periodo:       periodo,
	}, nil
}

// GeneratePDF monta o relatório e o renderiza em PDF.
func (uc *MovementReportUseCase) GeneratePDF(ctx context.Context, input ReportInput) ([]byte, error) {
	report, err := uc.Generate(ctx, input)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateMovementReportPDF(ctx, report)
}
