package usecase

import (
	"context"
	"errors"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
	"github.com/gastosuy/statement-analyzer/internal/core/ports"
)

type BuildReportUseCase struct {
	renderer ports.ReportRenderer
}

func NewBuildReportUseCase(renderer ports.ReportRenderer) *BuildReportUseCase {
	return &BuildReportUseCase{renderer: renderer}
}

// Build renders a fresh spreadsheet for a previously returned analysis.
// The input comes back from the client, so its shape is re-checked.
func (uc *BuildReportUseCase) Build(_ context.Context, result *domain.AnalisisResultado) ([]byte, error) {
	if result == nil || result.Movimientos == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "build report", errors.New("missing movimientos"))
	}
	if result.Moneda == "" {
		result.Moneda = domain.DefaultCurrency
	}
	return uc.renderer.Render(result)
}
