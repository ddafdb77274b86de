package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
	"github.com/gastosuy/statement-analyzer/internal/core/ports"
)

type extractorFake struct {
	text  string
	err   error
	calls int
}

func (f *extractorFake) Extract(context.Context, []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type categorizerFake struct {
	raw string
	err error

	textCalls int
	docCalls  int
	gotText   string
	gotBytes  []byte
}

func (f *categorizerFake) CategorizeText(ctx context.Context, statementText string) (string, error) {
	f.textCalls++
	f.gotText = statementText
	if f.err != nil {
		return "", f.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.raw, nil
}

func (f *categorizerFake) CategorizeDocument(ctx context.Context, pdfBytes []byte) (string, error) {
	f.docCalls++
	f.gotBytes = pdfBytes
	if f.err != nil {
		return "", f.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.raw, nil
}

func newAnalyzeUC(extractor *extractorFake, categorizer *categorizerFake, mode string) *AnalyzeStatementUseCase {
	return NewAnalyzeStatementUseCase(extractor, categorizer, mode, 10<<20, time.Minute, domain.DefaultCurrency, true)
}

func pdfUpload(data []byte) ports.StatementUpload {
	return ports.StatementUpload{
		Filename: "estado.pdf",
		MimeType: "application/pdf",
		Data:     data,
	}
}

func TestAnalyzeTextModeSuccess(t *testing.T) {
	extractor := &extractorFake{text: "01/03/2025 SUELDO ACME 50000"}
	categorizer := &categorizerFake{raw: "```json\n" + fixtureResponse + "\n```"}
	uc := newAnalyzeUC(extractor, categorizer, AnalysisModeText)

	result, err := uc.Analyze(context.Background(), pdfUpload([]byte("%PDF-1.4 fake")))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if extractor.calls != 1 || categorizer.textCalls != 1 || categorizer.docCalls != 0 {
		t.Fatalf("unexpected call counts: extract=%d text=%d doc=%d", extractor.calls, categorizer.textCalls, categorizer.docCalls)
	}
	if categorizer.gotText != extractor.text {
		t.Fatalf("categorizer received %q, want extracted text", categorizer.gotText)
	}
	if result.Resumen.Balance != 41500 {
		t.Fatalf("expected recomputed balance 41500, got %v", result.Resumen.Balance)
	}
}

func TestAnalyzeNativeModeSkipsExtraction(t *testing.T) {
	extractor := &extractorFake{text: "should not be used"}
	categorizer := &categorizerFake{raw: fixtureResponse}
	uc := newAnalyzeUC(extractor, categorizer, AnalysisModeNative)

	data := []byte("%PDF-1.4 fake")
	if _, err := uc.Analyze(context.Background(), pdfUpload(data)); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if extractor.calls != 0 {
		t.Fatalf("extractor must not run in native mode")
	}
	if categorizer.docCalls != 1 || string(categorizer.gotBytes) != string(data) {
		t.Fatalf("expected raw bytes passthrough, got %d calls", categorizer.docCalls)
	}
}

func TestAnalyzeRejectsNonPDFBeforeCategorization(t *testing.T) {
	extractor := &extractorFake{}
	categorizer := &categorizerFake{}
	uc := newAnalyzeUC(extractor, categorizer, AnalysisModeText)

	_, err := uc.Analyze(context.Background(), ports.StatementUpload{
		Filename: "foto.png",
		MimeType: "image/png",
		Data:     []byte("png bytes"),
	})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input kind, got %v", err)
	}
	if extractor.calls != 0 || categorizer.textCalls != 0 {
		t.Fatalf("pipeline must stop before extraction on bad media type")
	}
}

func TestAnalyzeRejectsOversizedUpload(t *testing.T) {
	uc := NewAnalyzeStatementUseCase(&extractorFake{}, &categorizerFake{}, AnalysisModeText, 4, time.Minute, domain.DefaultCurrency, true)

	_, err := uc.Analyze(context.Background(), pdfUpload([]byte("12345")))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input kind, got %v", err)
	}
}

func TestAnalyzePropagatesEmptyDocument(t *testing.T) {
	extractor := &extractorFake{err: domain.WrapError(domain.ErrEmptyDocument, "extract pdf text", errors.New("no text layer"))}
	categorizer := &categorizerFake{}
	uc := newAnalyzeUC(extractor, categorizer, AnalysisModeText)

	_, err := uc.Analyze(context.Background(), pdfUpload([]byte("%PDF-1.4 scanned")))
	if !domain.IsKind(err, domain.ErrEmptyDocument) {
		t.Fatalf("expected empty-document kind, got %v", err)
	}
	if categorizer.textCalls != 0 {
		t.Fatalf("categorizer must not run when extraction fails")
	}
}

func TestAnalyzePropagatesServiceUnavailable(t *testing.T) {
	extractor := &extractorFake{text: "texto"}
	categorizer := &categorizerFake{err: domain.WrapError(domain.ErrServiceUnavailable, "categorize_text", errors.New("502"))}
	uc := newAnalyzeUC(extractor, categorizer, AnalysisModeText)

	_, err := uc.Analyze(context.Background(), pdfUpload([]byte("%PDF-1.4 fake")))
	if !domain.IsKind(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected service-unavailable kind, got %v", err)
	}
}

func TestAnalyzeMapsDeadlineToTimeout(t *testing.T) {
	extractor := &extractorFake{text: "texto"}
	categorizer := &categorizerFake{raw: fixtureResponse}
	uc := NewAnalyzeStatementUseCase(extractor, categorizer, AnalysisModeText, 10<<20, time.Nanosecond, domain.DefaultCurrency, true)

	// The nanosecond budget expires before the categorization call, and
	// the fake reports the context error like a real client would.
	_, err := uc.Analyze(context.Background(), pdfUpload([]byte("%PDF-1.4 fake")))
	if !domain.IsKind(err, domain.ErrTimeout) {
		t.Fatalf("expected timeout kind, got %v", err)
	}
}

func TestAnalyzeRejectsMalformedServiceResponse(t *testing.T) {
	extractor := &extractorFake{text: "texto"}
	categorizer := &categorizerFake{raw: "lo siento, no pude procesar el documento"}
	uc := newAnalyzeUC(extractor, categorizer, AnalysisModeText)

	_, err := uc.Analyze(context.Background(), pdfUpload([]byte("%PDF-1.4 fake")))
	if !domain.IsKind(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected malformed-response kind, got %v", err)
	}
}
