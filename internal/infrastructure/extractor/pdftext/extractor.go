package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
)

// Extractor pulls the embedded text layer out of a PDF. All state is
// scoped to a single Extract call; there is no pool and no shared
// document handle.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract returns all page text in page order, pages separated by a
// newline, text items within a page joined by single spaces. A PDF that
// parses but carries no text layer (a scanned image) fails with the
// empty-document kind so callers can diagnose it separately from a
// corrupt or encrypted file.
func (e *Extractor) Extract(ctx context.Context, pdfBytes []byte) (text string, err error) {
	// The pdf library panics on some hostile inputs instead of
	// returning an error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.WrapError(domain.ErrExtraction, "extract pdf text", fmt.Errorf("parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "extract pdf text", err)
	}

	var pages []string
	fonts := make(map[string]*pdf.Font)
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			return "", domain.WrapError(domain.ErrExtraction, "extract pdf text", err)
		}
		// Show operators carry no layout, so collapse runs of
		// whitespace into single spaces.
		pageText = strings.Join(strings.Fields(pageText), " ")
		if pageText != "" {
			pages = append(pages, pageText)
		}
	}

	text = strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		return "", domain.WrapError(domain.ErrEmptyDocument, "extract pdf text",
			fmt.Errorf("no text layer in %d pages", reader.NumPage()))
	}
	return text, nil
}
