package inventory

import (
	"context"

	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	"github.com/hidroflex/hidroflex-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação serializável e
// entrega repositórios ligados a essa transação.
type TxRunner interface {
	Run(ctx context.Context, fn func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) error) error
}

// ReportPDFGenerator gera o PDF do relatório de movimentações.
type ReportPDFGenerator interface {
	GenerateMovementReportPDF(ctx context.Context, report *dto.MovementReportResponse) ([]byte, error)
}
