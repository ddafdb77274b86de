package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
)

// buildPDF assembles a minimal but structurally valid PDF, one page per
// entry. Each entry is a list of text items shown with separate Tj
// operators; an empty list produces a page with an empty content
// stream, mimicking a scanned page with no text layer.
func buildPDF(t *testing.T, pages [][]string) []byte {
	t.Helper()

	n := len(pages)
	objCount := 3 + 2*n // catalog, pages, font, plus page+content per page
	offsets := make([]int, objCount+1)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	kids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+i))
	}
	fontObj := 3 + 2*n

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	for i, items := range pages {
		pageObj := 3 + i
		contentObj := 3 + n + i
		writeObj(pageObj, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, contentObj))

		var stream strings.Builder
		if len(items) > 0 {
			stream.WriteString("BT /F1 12 Tf 72 720 Td")
			for _, item := range items {
				// The trailing space inside the literal keeps
				// adjacent show strings from running together.
				fmt.Fprintf(&stream, " (%s ) Tj 0 -20 Td", item)
			}
			stream.WriteString(" ET")
		}
		writeObj(contentObj, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", stream.Len(), stream.String()))
	}

	writeObj(fontObj, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= objCount; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xrefOffset)

	return buf.Bytes()
}

func TestExtractReturnsPageTextInOrder(t *testing.T) {
	pdfBytes := buildPDF(t, [][]string{
		{"BANCO ITAU", "Estado de cuenta"},
		{"01/03/2025 SUELDO 50000"},
	})

	text, err := New().Extract(context.Background(), pdfBytes)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 page lines, got %d: %q", len(lines), text)
	}
	if lines[0] != "BANCO ITAU Estado de cuenta" {
		t.Fatalf("unexpected first page text: %q", lines[0])
	}
	if lines[1] != "01/03/2025 SUELDO 50000" {
		t.Fatalf("unexpected second page text: %q", lines[1])
	}
}

func TestExtractFailsWithEmptyDocumentOnMissingTextLayer(t *testing.T) {
	pdfBytes := buildPDF(t, [][]string{{}, {}})

	_, err := New().Extract(context.Background(), pdfBytes)
	if !domain.IsKind(err, domain.ErrEmptyDocument) {
		t.Fatalf("expected empty-document kind, got %v", err)
	}
}

func TestExtractFailsWithExtractionErrorOnGarbage(t *testing.T) {
	cases := map[string][]byte{
		"not a pdf":    []byte("definitely not a pdf"),
		"header only":  []byte("%PDF-1.4\ngarbage without xref"),
		"empty input":  {},
		"cut off xref": buildPDF(t, [][]string{{"hola"}})[:40],
	}
	for name, data := range cases {
		if _, err := New().Extract(context.Background(), data); !domain.IsKind(err, domain.ErrExtraction) {
			t.Fatalf("%s: expected extraction kind, got %v", name, err)
		}
	}
}

func TestExtractHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, buildPDF(t, [][]string{{"hola"}}))
	if err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}
