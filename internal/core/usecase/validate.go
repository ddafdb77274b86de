package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
)

// ParseAnalysis turns the raw categorization response into a canonical
// result. The response is untrusted: it may be wrapped in code fences or
// surrounded by prose. Validation is all-or-nothing at the document
// level; only the per-transaction category may be coerced.
func ParseAnalysis(raw, defaultCurrency string) (*domain.AnalisisResultado, error) {
	cleaned := cleanServiceResponse(raw)

	var payload struct {
		Movimientos *[]domain.Movimiento `json:"movimientos"`
		Resumen     *domain.Resumen      `json:"resumen"`
		Moneda      string               `json:"moneda"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, domain.WrapError(domain.ErrMalformedResponse, "parse analysis", err)
	}
	if payload.Movimientos == nil {
		return nil, domain.WrapError(domain.ErrSchema, "parse analysis", errors.New("missing movimientos"))
	}
	if payload.Resumen == nil {
		return nil, domain.WrapError(domain.ErrSchema, "parse analysis", errors.New("missing resumen"))
	}

	movimientos := make([]domain.Movimiento, 0, len(*payload.Movimientos))
	for i, mov := range *payload.Movimientos {
		mov.Descripcion = strings.TrimSpace(mov.Descripcion)
		if mov.Descripcion == "" {
			return nil, domain.WrapError(domain.ErrSchema, "parse analysis",
				fmt.Errorf("movimiento %d has empty descripcion", i))
		}
		if !isFinite(mov.Monto) {
			return nil, domain.WrapError(domain.ErrSchema, "parse analysis",
				fmt.Errorf("movimiento %d has non-finite monto", i))
		}

		cat, ok := domain.FindCategory(mov.Categoria)
		if !ok {
			slog.Warn("unknown_category_coerced",
				"categoria", mov.Categoria,
				"descripcion", mov.Descripcion,
			)
			cat = domain.CategoryOther
		}
		mov.Categoria = cat.Label
		mov.Emoji = cat.Emoji
		movimientos = append(movimientos, mov)
	}

	if err := validateResumen(*payload.Resumen); err != nil {
		return nil, domain.WrapError(domain.ErrSchema, "parse analysis", err)
	}

	moneda := strings.TrimSpace(payload.Moneda)
	if moneda == "" {
		moneda = defaultCurrency
	}

	return &domain.AnalisisResultado{
		Movimientos: movimientos,
		Resumen:     *payload.Resumen,
		Moneda:      moneda,
	}, nil
}

func validateResumen(r domain.Resumen) error {
	for name, v := range map[string]float64{
		"total_ingresos": r.TotalIngresos,
		"total_gastos":   r.TotalGastos,
		"balance":        r.Balance,
	} {
		if !isFinite(v) {
			return fmt.Errorf("resumen field %s is non-finite", name)
		}
	}
	for i, cat := range r.PorCategoria {
		if !isFinite(cat.Total) || !isFinite(cat.Porcentaje) {
			return fmt.Errorf("por_categoria entry %d has non-finite values", i)
		}
	}
	return nil
}

// cleanServiceResponse performs the minimal syntactic cleanup before
// structural validation: a leading fence with optional language tag, a
// trailing fence, and any prose around the outermost JSON object.
func cleanServiceResponse(raw string) string {
	s := strings.TrimSpace(raw)

	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && isFenceTag(s[:nl]) {
			s = s[nl+1:]
		}
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.IndexByte(s, '{'); start >= 0 {
		if end := strings.LastIndexByte(s, '}'); end > start {
			s = s[start : end+1]
		}
	}
	return strings.TrimSpace(s)
}

func isFenceTag(line string) bool {
	tag := strings.TrimSpace(line)
	return tag == "" || tag == "json" || tag == "JSON"
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
