// Package pdf implementa a exportação do relatório de movimentações em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hidroflex + Relatório de Movimentações + período   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Data | Produto | Tipo | Origem | Qtd | Documento   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Entradas / Saídas / Líquido                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	appinventory "github.com/hidroflex/hidroflex-api/internal/application/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appinventory.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa inventory.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMovementReportPDF gera o PDF e devolve seus bytes.
func (g *MarotoReportGenerator) GenerateMovementReportPDF(_ context.Context, report *dto.MovementReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Movimentações de Estoque", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report.Periodo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, mov := range report.Movimentacoes {
		m.AddRows(movementRow(mov))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(periodo dto.ReportPeriod) core.Row {
	inicio := "—"
	if periodo.Inicio != nil {
		inicio = *periodo.Inicio
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Hidroflex Mangueiras Hidráulicas", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Relatório de Movimentações de Estoque", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s a %s", inicio, periodo.Fim), props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
		}))
	}
	return row.New(6).Add(
		header("Data", 2),
		header("Produto", 3),
		header("Tipo", 2),
		header("Origem", 2),
		header("Qtd", 1),
		header("Documento", 2),
	)
}

func movementRow(mov dto.MovementResponse) core.Row {
	cell := func(value string, size int, alignment align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: alignment}))
	}
	return row.New(5).Add(
		cell(mov.OccurredAt.Format("02/01/2006 15:04"), 2, align.Left),
		cell(mov.ProductID, 3, align.Left),
		cell(mov.Kind, 2, align.Left),
		cell(mov.Origin, 2, align.Left),
		cell(mov.Quantity.StringFixed(2), 1, align.Right),
		cell(mov.Document, 2, align.Left),
	)
}

func totalsRow(report *dto.MovementReportResponse) core.Row {
	label := func(name, value string) []core.Col {
		return []core.Col{
			col.New(2).Add(text.New(name, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right})),
			col.New(2).Add(text.New(value, props.Text{Size: 9, Align: align.Right})),
		}
	}
	var cols []core.Col
	cols = append(cols, label("Entradas:", report.TotalEntries)...)
	cols = append(cols, label("Saídas:", report.TotalExits)...)
	cols = append(cols, label("Líquido:", report.Net)...)
	return row.New(8).Add(cols...)
}
