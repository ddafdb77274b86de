package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
)

const (
	SheetMovimientos = "Movimientos"
	SheetResumen     = "Resumen"

	colorHeaderFill = "0F172A"
	colorHeaderLine = "334155"
	colorWhite      = "FFFFFF"
	colorIncome     = "10B981"
	colorExpense    = "EF4444"
	colorSubtitle   = "64748B"

	amountNumFmt  = "#,##0.00;[Red]-#,##0.00"
	percentNumFmt = "0.0%"
)

// Renderer builds the two-sheet report workbook. Every call starts from
// a fresh file; nothing is cached or mutated between requests, so the
// same result always produces the same cell content.
type Renderer struct{}

func New() *Renderer {
	return &Renderer{}
}

type sheetStyles struct {
	header        int
	amountIncome  int
	amountExpense int
	tipoIncome    int
	tipoExpense   int
	title         int
	subtitle      int
	catHeader     int
	catTotal      int
	catPercent    int
	totalLabel    int
	totalPositive int
	totalNegative int
}

func (r *Renderer) Render(result *domain.AnalisisResultado) (out []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = domain.WrapError(domain.ErrRender, "close workbook", closeErr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetMovimientos); err != nil {
		return nil, domain.WrapError(domain.ErrRender, "create movimientos sheet", err)
	}
	if _, err := f.NewSheet(SheetResumen); err != nil {
		return nil, domain.WrapError(domain.ErrRender, "create resumen sheet", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Creator: "GastosUY"}); err != nil {
		return nil, domain.WrapError(domain.ErrRender, "set doc props", err)
	}

	styles, err := buildStyles(f)
	if err != nil {
		return nil, domain.WrapError(domain.ErrRender, "build styles", err)
	}
	if err := writeMovimientos(f, styles, result); err != nil {
		return nil, domain.WrapError(domain.ErrRender, "write movimientos", err)
	}
	if err := writeResumen(f, styles, result); err != nil {
		return nil, domain.WrapError(domain.ErrRender, "write resumen", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, domain.WrapError(domain.ErrRender, "serialize workbook", err)
	}
	return buf.Bytes(), nil
}

func buildStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	amountFmt := amountNumFmt
	percentFmt := percentNumFmt

	if s.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorHeaderFill}},
		Font:      &excelize.Font{Bold: true, Size: 11, Color: colorWhite},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    []excelize.Border{{Type: "bottom", Style: 1, Color: colorHeaderLine}},
	}); err != nil {
		return s, err
	}
	if s.amountIncome, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &amountFmt,
		Font:         &excelize.Font{Color: colorIncome},
	}); err != nil {
		return s, err
	}
	if s.amountExpense, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &amountFmt,
		Font:         &excelize.Font{Color: colorExpense},
	}); err != nil {
		return s, err
	}
	if s.tipoIncome, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: colorIncome},
	}); err != nil {
		return s, err
	}
	if s.tipoExpense, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: colorExpense},
	}); err != nil {
		return s, err
	}
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: colorHeaderFill},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11, Color: colorSubtitle},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.catHeader, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorHeaderFill}},
		Font:      &excelize.Font{Bold: true, Color: colorWhite},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.catTotal, err = f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt}); err != nil {
		return s, err
	}
	if s.catPercent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt}); err != nil {
		return s, err
	}
	if s.totalLabel, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	}); err != nil {
		return s, err
	}
	if s.totalPositive, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &amountFmt,
		Font:         &excelize.Font{Bold: true, Size: 12, Color: colorIncome},
	}); err != nil {
		return s, err
	}
	if s.totalNegative, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &amountFmt,
		Font:         &excelize.Font{Bold: true, Size: 12, Color: colorExpense},
	}); err != nil {
		return s, err
	}

	return s, nil
}

func writeMovimientos(f *excelize.File, styles sheetStyles, result *domain.AnalisisResultado) error {
	widths := []struct {
		col   string
		width float64
	}{
		{"A", 14}, {"B", 40}, {"C", 22}, {"D", 16}, {"E", 12},
	}
	for _, w := range widths {
		if err := f.SetColWidth(SheetMovimientos, w.col, w.col, w.width); err != nil {
			return err
		}
	}

	headers := []string{"Fecha", "Descripción", "Categoría", "Monto", "Tipo"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetMovimientos, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetMovimientos, "A1", "E1", styles.header); err != nil {
		return err
	}
	if err := f.SetRowHeight(SheetMovimientos, 1, 28); err != nil {
		return err
	}

	for i, mov := range result.Movimientos {
		row := i + 2
		tipo := "Gasto"
		amountStyle, tipoStyle := styles.amountExpense, styles.tipoExpense
		if mov.EsIngreso() {
			tipo = "Ingreso"
			amountStyle, tipoStyle = styles.amountIncome, styles.tipoIncome
		}

		values := []any{mov.Fecha, mov.Descripcion, mov.Emoji + " " + mov.Categoria, mov.Monto, tipo}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetMovimientos, cell, v); err != nil {
				return err
			}
		}

		montoCell := fmt.Sprintf("D%d", row)
		if err := f.SetCellStyle(SheetMovimientos, montoCell, montoCell, amountStyle); err != nil {
			return err
		}
		tipoCell := fmt.Sprintf("E%d", row)
		if err := f.SetCellStyle(SheetMovimientos, tipoCell, tipoCell, tipoStyle); err != nil {
			return err
		}
	}

	// Height 1 (headers only) when there are no transactions.
	filterRange := fmt.Sprintf("A1:E%d", len(result.Movimientos)+1)
	return f.AutoFilter(SheetMovimientos, filterRange, nil)
}

func writeResumen(f *excelize.File, styles sheetStyles, result *domain.AnalisisResultado) error {
	for col, width := range map[string]float64{"B": 28, "C": 18, "D": 14} {
		if err := f.SetColWidth(SheetResumen, col, col, width); err != nil {
			return err
		}
	}

	if err := f.MergeCell(SheetResumen, "A1", "D1"); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetResumen, "A1", "Resumen de Gastos - GastosUY"); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetResumen, "A1", "A1", styles.title); err != nil {
		return err
	}

	if err := f.MergeCell(SheetResumen, "A2", "D2"); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetResumen, "A2", "Moneda: "+result.Moneda); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetResumen, "A2", "A2", styles.subtitle); err != nil {
		return err
	}

	// Row 3 stays blank; the category table starts at row 4.
	catHeaders := map[string]string{"B4": "Categoría", "C4": "Total", "D4": "Porcentaje"}
	for cell, v := range catHeaders {
		if err := f.SetCellValue(SheetResumen, cell, v); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetResumen, "B4", "D4", styles.catHeader); err != nil {
		return err
	}

	row := 5
	for _, cat := range result.Resumen.PorCategoria {
		if err := f.SetCellValue(SheetResumen, fmt.Sprintf("B%d", row), cat.Categoria); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetResumen, fmt.Sprintf("C%d", row), cat.Total); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetResumen, fmt.Sprintf("D%d", row), cat.Porcentaje/100); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetResumen, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), styles.catTotal); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetResumen, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), styles.catPercent); err != nil {
			return err
		}
		row++
	}

	// One blank separator row before the final totals.
	row++
	totals := []struct {
		label string
		value float64
	}{
		{"Total Ingresos", result.Resumen.TotalIngresos},
		{"Total Gastos", result.Resumen.TotalGastos},
		{"Balance", result.Resumen.Balance},
	}
	for _, t := range totals {
		labelCell := fmt.Sprintf("B%d", row)
		valueCell := fmt.Sprintf("C%d", row)
		if err := f.SetCellValue(SheetResumen, labelCell, t.label); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetResumen, valueCell, t.value); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetResumen, labelCell, labelCell, styles.totalLabel); err != nil {
			return err
		}
		valueStyle := styles.totalNegative
		if t.value >= 0 {
			valueStyle = styles.totalPositive
		}
		if err := f.SetCellStyle(SheetResumen, valueCell, valueCell, valueStyle); err != nil {
			return err
		}
		row++
	}

	return nil
}
