package usecase

import (
	"reflect"
	"testing"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
)

const fixtureResponse = `{
  "movimientos": [
    {"fecha": "01/03/2025", "descripcion": "SUELDO ACME SA", "categoria": "Ingresos", "emoji": "💰", "monto": 50000.00},
    {"fecha": "03/03/2025", "descripcion": "TIENDA INGLESA POCITOS", "categoria": "Supermercado", "emoji": "🛒", "monto": -8500.00}
  ],
  "resumen": {
    "total_ingresos": 50000.00,
    "total_gastos": -8500.00,
    "balance": 41500.00,
    "por_categoria": [
      {"categoria": "🛒 Supermercado", "total": -8500.00, "porcentaje": 100.0}
    ]
  },
  "moneda": "UYU"
}`

func TestParseAnalysisAcceptsPlainJSON(t *testing.T) {
	result, err := ParseAnalysis(fixtureResponse, domain.DefaultCurrency)
	if err != nil {
		t.Fatalf("ParseAnalysis() error = %v", err)
	}
	if len(result.Movimientos) != 2 {
		t.Fatalf("expected 2 movimientos, got %d", len(result.Movimientos))
	}
	if result.Movimientos[1].Categoria != "Supermercado" || result.Movimientos[1].Emoji != "🛒" {
		t.Fatalf("unexpected categoria: %+v", result.Movimientos[1])
	}
	if result.Moneda != "UYU" {
		t.Fatalf("expected moneda UYU, got %q", result.Moneda)
	}
}

func TestParseAnalysisStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + fixtureResponse + "\n```"
	plain, err := ParseAnalysis(fixtureResponse, domain.DefaultCurrency)
	if err != nil {
		t.Fatalf("plain parse error = %v", err)
	}
	wrapped, err := ParseAnalysis(fenced, domain.DefaultCurrency)
	if err != nil {
		t.Fatalf("fenced parse error = %v", err)
	}
	if !reflect.DeepEqual(plain, wrapped) {
		t.Fatalf("fenced result differs from plain result")
	}
}

func TestParseAnalysisStripsSurroundingProse(t *testing.T) {
	wrapped := "Acá está el resultado:\n```json\n" + fixtureResponse + "\n```\nEspero que te sirva."
	result, err := ParseAnalysis(wrapped, domain.DefaultCurrency)
	if err != nil {
		t.Fatalf("ParseAnalysis() error = %v", err)
	}
	if len(result.Movimientos) != 2 {
		t.Fatalf("expected 2 movimientos, got %d", len(result.Movimientos))
	}
}

func TestParseAnalysisRejectsNonJSON(t *testing.T) {
	_, err := ParseAnalysis("no pude procesar el documento", domain.DefaultCurrency)
	if !domain.IsKind(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected malformed-response kind, got %v", err)
	}
}

func TestParseAnalysisRejectsMissingSections(t *testing.T) {
	cases := map[string]string{
		"missing movimientos": `{"resumen": {"total_ingresos": 0, "total_gastos": 0, "balance": 0}}`,
		"missing resumen":     `{"movimientos": []}`,
	}
	for name, raw := range cases {
		if _, err := ParseAnalysis(raw, domain.DefaultCurrency); !domain.IsKind(err, domain.ErrSchema) {
			t.Fatalf("%s: expected schema kind, got %v", name, err)
		}
	}
}

func TestParseAnalysisCoercesUnknownCategory(t *testing.T) {
	raw := `{
	  "movimientos": [{"fecha": "02/03/2025", "descripcion": "PAGO VARIOS", "categoria": "Criptomonedas", "emoji": "🪙", "monto": -100}],
	  "resumen": {"total_ingresos": 0, "total_gastos": -100, "balance": -100, "por_categoria": []}
	}`
	result, err := ParseAnalysis(raw, domain.DefaultCurrency)
	if err != nil {
		t.Fatalf("ParseAnalysis() error = %v", err)
	}
	mov := result.Movimientos[0]
	if mov.Categoria != domain.CategoryOther.Label || mov.Emoji != domain.CategoryOther.Emoji {
		t.Fatalf("expected coercion to Otros, got %+v", mov)
	}
}

func TestParseAnalysisNormalizesGlyphPrefixedCategory(t *testing.T) {
	raw := `{
	  "movimientos": [{"fecha": "02/03/2025", "descripcion": "DISCO 21", "categoria": "🛒 Supermercado", "monto": -250}],
	  "resumen": {"total_ingresos": 0, "total_gastos": -250, "balance": -250, "por_categoria": []}
	}`
	result, err := ParseAnalysis(raw, domain.DefaultCurrency)
	if err != nil {
		t.Fatalf("ParseAnalysis() error = %v", err)
	}
	if result.Movimientos[0].Categoria != "Supermercado" || result.Movimientos[0].Emoji != "🛒" {
		t.Fatalf("expected normalized categoria, got %+v", result.Movimientos[0])
	}
}

func TestParseAnalysisRejectsEmptyDescription(t *testing.T) {
	raw := `{
	  "movimientos": [{"fecha": "02/03/2025", "descripcion": "   ", "categoria": "Otros", "monto": -100}],
	  "resumen": {"total_ingresos": 0, "total_gastos": -100, "balance": -100, "por_categoria": []}
	}`
	if _, err := ParseAnalysis(raw, domain.DefaultCurrency); !domain.IsKind(err, domain.ErrSchema) {
		t.Fatalf("expected schema kind, got %v", err)
	}
}

func TestParseAnalysisDefaultsCurrency(t *testing.T) {
	raw := `{"movimientos": [], "resumen": {"total_ingresos": 0, "total_gastos": 0, "balance": 0, "por_categoria": []}}`
	result, err := ParseAnalysis(raw, "UYU")
	if err != nil {
		t.Fatalf("ParseAnalysis() error = %v", err)
	}
	if result.Moneda != "UYU" {
		t.Fatalf("expected default moneda, got %q", result.Moneda)
	}
}

func TestCleanServiceResponseVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"plain", `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```"},
		{"fenced no tag", "```\n{\"a\": 1}\n```"},
		{"inline fence", "```json {\"a\": 1} ```"},
		{"prose", "El resultado es: {\"a\": 1} ...saludos"},
	}
	for _, tc := range cases {
		if got := cleanServiceResponse(tc.raw); got != `{"a": 1}` {
			t.Fatalf("%s: cleanServiceResponse() = %q", tc.name, got)
		}
	}
}
