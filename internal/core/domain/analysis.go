package domain

// Movimiento is a single statement transaction as categorized by the
// service. Monto is signed: positive amounts are income, negative are
// expenses.
type Movimiento struct {
	Fecha       string  `json:"fecha"`
	Descripcion string  `json:"descripcion"`
	Categoria   string  `json:"categoria"`
	Emoji       string  `json:"emoji"`
	Monto       float64 `json:"monto"`
}

func (m Movimiento) EsIngreso() bool {
	return m.Monto >= 0
}

// CategoriaResumen is one row of the per-category expense breakdown.
// Porcentaje is 0-100 with one decimal, computed over the absolute
// expense total.
type CategoriaResumen struct {
	Categoria  string  `json:"categoria"`
	Total      float64 `json:"total"`
	Porcentaje float64 `json:"porcentaje"`
}

type Resumen struct {
	TotalIngresos float64            `json:"total_ingresos"`
	TotalGastos   float64            `json:"total_gastos"`
	Balance       float64            `json:"balance"`
	PorCategoria  []CategoriaResumen `json:"por_categoria"`
}

// AnalisisResultado is the canonical analysis of one uploaded statement.
// It is built once per request and never mutated afterwards.
type AnalisisResultado struct {
	Movimientos []Movimiento `json:"movimientos"`
	Resumen     Resumen      `json:"resumen"`
	Moneda      string       `json:"moneda"`
}

const DefaultCurrency = "UYU"
