package bootstrap

import (
	"context"
	"fmt"

	"github.com/gastosuy/statement-analyzer/internal/config"
	"github.com/gastosuy/statement-analyzer/internal/core/ports"
	"github.com/gastosuy/statement-analyzer/internal/core/usecase"
	"github.com/gastosuy/statement-analyzer/internal/infrastructure/extractor/pdftext"
	"github.com/gastosuy/statement-analyzer/internal/infrastructure/llm/gemini"
	"github.com/gastosuy/statement-analyzer/internal/infrastructure/report/excel"
	"github.com/gastosuy/statement-analyzer/internal/infrastructure/resilience"
)

type App struct {
	Config config.Config

	AnalyzeUC ports.StatementAnalyzer
	ReportUC  ports.ReportBuilder
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	executor := resilience.NewExecutor(resilience.Config{
		BreakerEnabled:          cfg.BreakerEnabled,
		BreakerMinRequests:      uint32(cfg.BreakerMinRequests),
		BreakerFailureRatio:     cfg.BreakerFailureRatio,
		BreakerOpenTimeout:      cfg.BreakerOpenTimeout,
		BreakerHalfOpenMaxCalls: uint32(cfg.BreakerHalfOpenMaxCalls),
	})

	categorizer, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, executor)
	if err != nil {
		return nil, fmt.Errorf("init categorization client: %w", err)
	}

	analyzeUC := usecase.NewAnalyzeStatementUseCase(
		pdftext.New(),
		categorizer,
		cfg.AnalysisMode,
		cfg.MaxUploadBytes,
		cfg.PipelineTimeout,
		cfg.DefaultCurrency,
		cfg.SummaryRecompute,
	)
	reportUC := usecase.NewBuildReportUseCase(excel.New())

	return &App{
		Config:    cfg,
		AnalyzeUC: analyzeUC,
		ReportUC:  reportUC,
	}, nil
}
