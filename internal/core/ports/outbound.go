package ports

import (
	"context"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
)

// TextExtractor turns raw PDF bytes into one text blob, pages separated
// by newlines.
type TextExtractor interface {
	Extract(ctx context.Context, pdfBytes []byte) (string, error)
}

// Categorizer is the contract with the external categorization service.
// Both operations return the raw textual response, which downstream
// validation treats as untrusted.
type Categorizer interface {
	CategorizeText(ctx context.Context, statementText string) (string, error)
	CategorizeDocument(ctx context.Context, pdfBytes []byte) (string, error)
}

// ReportRenderer turns a canonical result into spreadsheet bytes.
type ReportRenderer interface {
	Render(result *domain.AnalisisResultado) ([]byte, error)
}
