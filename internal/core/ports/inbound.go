package ports

import (
	"context"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
)

// StatementUpload is the validated upload boundary payload.
type StatementUpload struct {
	Filename string
	MimeType string
	Data     []byte
}

// StatementAnalyzer is the inbound contract for the analysis pipeline:
// extract, categorize, validate, aggregate.
type StatementAnalyzer interface {
	Analyze(ctx context.Context, upload StatementUpload) (*domain.AnalisisResultado, error)
}

// ReportBuilder is the inbound contract for the report download boundary.
type ReportBuilder interface {
	Build(ctx context.Context, result *domain.AnalisisResultado) ([]byte, error)
}
