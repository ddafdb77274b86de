package usecase

import (
	"fmt"
	"math"
	"sort"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
)

// summaryTolerance is the per-figure drift allowed between the service's
// resumen and the locally recomputed one, in currency units.
const summaryTolerance = 0.02

// ComputeResumen recomputes the summary from the transaction list.
// Income is the sum of non-negative amounts, expense the sum of negative
// ones (itself negative). The per-category breakdown covers expense
// transactions only, ordered by descending absolute total with ties
// broken by the fixed category order.
func ComputeResumen(movimientos []domain.Movimiento) domain.Resumen {
	var ingresos, gastos float64
	expenseByCategory := make(map[string]float64)

	for _, mov := range movimientos {
		if mov.EsIngreso() {
			ingresos += mov.Monto
			continue
		}
		gastos += mov.Monto
		expenseByCategory[mov.Categoria] += mov.Monto
	}

	porCategoria := make([]domain.CategoriaResumen, 0, len(expenseByCategory))
	totalAbs := math.Abs(gastos)
	for label, total := range expenseByCategory {
		porcentaje := 0.0
		if totalAbs > 0 {
			porcentaje = math.Round(math.Abs(total)/totalAbs*1000) / 10
		}
		cat, ok := domain.FindCategory(label)
		display := label
		if ok {
			display = cat.Display()
		}
		porCategoria = append(porCategoria, domain.CategoriaResumen{
			Categoria:  display,
			Total:      total,
			Porcentaje: porcentaje,
		})
	}

	sort.SliceStable(porCategoria, func(i, j int) bool {
		absI, absJ := math.Abs(porCategoria[i].Total), math.Abs(porCategoria[j].Total)
		if absI != absJ {
			return absI > absJ
		}
		return domain.CategoryRank(porCategoria[i].Categoria) < domain.CategoryRank(porCategoria[j].Categoria)
	})

	return domain.Resumen{
		TotalIngresos: ingresos,
		TotalGastos:   gastos,
		Balance:       ingresos + gastos,
		PorCategoria:  porCategoria,
	}
}

// summaryMismatches cross-checks the service-provided resumen against the
// local recomputation. Mismatches are diagnostics, never hard failures.
func summaryMismatches(local, service domain.Resumen) []string {
	var mismatches []string

	check := func(name string, localV, serviceV float64) {
		if math.Abs(localV-serviceV) > summaryTolerance {
			mismatches = append(mismatches,
				fmt.Sprintf("%s: service reported %.2f, recomputed %.2f", name, serviceV, localV))
		}
	}
	check("total_ingresos", local.TotalIngresos, service.TotalIngresos)
	check("total_gastos", local.TotalGastos, service.TotalGastos)
	check("balance", local.Balance, service.Balance)

	serviceTotals := make(map[string]float64, len(service.PorCategoria))
	for _, cat := range service.PorCategoria {
		serviceTotals[categoryKey(cat.Categoria)] = cat.Total
	}
	for _, cat := range local.PorCategoria {
		check("categoria "+cat.Categoria, cat.Total, serviceTotals[categoryKey(cat.Categoria)])
	}
	return mismatches
}

func categoryKey(label string) string {
	if cat, ok := domain.FindCategory(label); ok {
		return cat.Label
	}
	return label
}
