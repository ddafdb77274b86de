package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
	"github.com/gastosuy/statement-analyzer/internal/core/ports"
)

const (
	// AnalysisModeText extracts the text layer locally and sends it to
	// the categorization service.
	AnalysisModeText = "text"
	// AnalysisModeNative sends the raw PDF bytes for the service to read
	// itself, skipping local extraction.
	AnalysisModeNative = "native"
)

const pdfMimeType = "application/pdf"

type AnalyzeStatementUseCase struct {
	extractor   ports.TextExtractor
	categorizer ports.Categorizer

	mode             string
	maxUploadBytes   int64
	timeout          time.Duration
	defaultCurrency  string
	recomputeSummary bool
}

func NewAnalyzeStatementUseCase(
	extractor ports.TextExtractor,
	categorizer ports.Categorizer,
	mode string,
	maxUploadBytes int64,
	timeout time.Duration,
	defaultCurrency string,
	recomputeSummary bool,
) *AnalyzeStatementUseCase {
	if mode != AnalysisModeNative {
		mode = AnalysisModeText
	}
	return &AnalyzeStatementUseCase{
		extractor:        extractor,
		categorizer:      categorizer,
		mode:             mode,
		maxUploadBytes:   maxUploadBytes,
		timeout:          timeout,
		defaultCurrency:  defaultCurrency,
		recomputeSummary: recomputeSummary,
	}
}

// Analyze runs the full pipeline for one upload: extraction (or
// passthrough), categorization, validation, aggregation. Steps are
// strictly sequential and share one wall-clock budget.
func (uc *AnalyzeStatementUseCase) Analyze(ctx context.Context, upload ports.StatementUpload) (*domain.AnalisisResultado, error) {
	if err := uc.checkUpload(upload); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	raw, err := uc.categorize(ctx, upload.Data)
	if err != nil {
		return nil, err
	}

	result, err := ParseAnalysis(raw, uc.defaultCurrency)
	if err != nil {
		return nil, err
	}

	if uc.recomputeSummary {
		local := ComputeResumen(result.Movimientos)
		for _, mismatch := range summaryMismatches(local, result.Resumen) {
			slog.Warn("summary_mismatch", "detail", mismatch)
		}
		result.Resumen = local
	}

	return result, nil
}

func (uc *AnalyzeStatementUseCase) checkUpload(upload ports.StatementUpload) error {
	if len(upload.Data) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "check upload", errors.New("empty file"))
	}
	if uc.maxUploadBytes > 0 && int64(len(upload.Data)) > uc.maxUploadBytes {
		return domain.WrapError(domain.ErrInvalidInput, "check upload",
			fmt.Errorf("file exceeds %d bytes", uc.maxUploadBytes))
	}
	if mediaType(upload.MimeType) != pdfMimeType {
		return domain.WrapError(domain.ErrInvalidInput, "check upload",
			fmt.Errorf("unsupported media type %q", upload.MimeType))
	}
	return nil
}

func (uc *AnalyzeStatementUseCase) categorize(ctx context.Context, pdfBytes []byte) (string, error) {
	if uc.mode == AnalysisModeNative {
		raw, err := uc.categorizer.CategorizeDocument(ctx, pdfBytes)
		if err != nil {
			return "", timeoutOr(ctx, "categorize document", err)
		}
		return raw, nil
	}

	text, err := uc.extractor.Extract(ctx, pdfBytes)
	if err != nil {
		return "", timeoutOr(ctx, "extract text", err)
	}
	raw, err := uc.categorizer.CategorizeText(ctx, text)
	if err != nil {
		return "", timeoutOr(ctx, "categorize text", err)
	}
	return raw, nil
}

// timeoutOr converts deadline expiry of the pipeline budget into the
// timeout kind; any other failure keeps its own kind.
func timeoutOr(ctx context.Context, operation string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrTimeout, operation, err)
	}
	return err
}

func mediaType(mimeType string) string {
	mt := strings.TrimSpace(strings.ToLower(mimeType))
	if idx := strings.IndexByte(mt, ';'); idx >= 0 {
		mt = strings.TrimSpace(mt[:idx])
	}
	return mt
}
