package gemini

import "strings"

// PromptVersion identifies the instruction payload sent with every
// request. Bump it whenever the instruction text changes.
const PromptVersion = "v1"

// categorizationPrompt is the fixed instruction set: the task, the ten
// allowed categories with their glyphs, and the exact response schema.
// It is a constant on purpose; the contract with the service must not
// drift between requests.
const categorizationPrompt = `Sos un asistente financiero experto en Uruguay. Te voy a dar el contenido de un estado de cuenta bancario o de tarjeta de crédito de Uruguay.

Tu tarea es:
1. Identificar cada movimiento/transacción
2. Extraer: fecha, descripción original, monto (positivo = ingreso, negativo = gasto)
3. Categorizar cada movimiento en una de estas categorías:
   - 🏠 Vivienda (alquiler, expensas, UTE, OSE, Antel)
   - 🛒 Supermercado (Tienda Inglesa, Disco, Tata, Devoto, etc.)
   - 🍽️ Gastronomía (restaurantes, delivery, PedidosYa, Rappi)
   - 🚗 Transporte (combustible, Uber, STM, peajes)
   - 💊 Salud (mutualista, farmacia, médicos)
   - 📚 Educación (cursos, universidad, colegios)
   - 🎬 Entretenimiento (streaming, cine, salidas)
   - 👕 Ropa y Shopping
   - 💰 Ingresos (sueldos, transferencias recibidas)
   - 📦 Otros

4. Devolvé ÚNICAMENTE un JSON válido con esta estructura exacta, sin markdown, sin explicaciones:
{
  "movimientos": [
    {
      "fecha": "DD/MM/AAAA",
      "descripcion": "descripción original",
      "categoria": "nombre de categoría",
      "emoji": "emoji de la categoría",
      "monto": -1234.56
    }
  ],
  "resumen": {
    "total_ingresos": 50000.00,
    "total_gastos": -35000.00,
    "balance": 15000.00,
    "por_categoria": [
      {"categoria": "🛒 Supermercado", "total": -8500.00, "porcentaje": 24.3}
    ]
  },
  "moneda": "UYU"
}

IMPORTANTE: Respondé SOLO con el JSON, sin backticks, sin texto adicional.`

func buildTextPrompt(statementText string) string {
	var b strings.Builder
	b.WriteString(categorizationPrompt)
	b.WriteString("\n\nAcá está el texto del estado de cuenta:\n")
	b.WriteString(statementText)
	return b.String()
}

func documentPrompt() string {
	return categorizationPrompt + "\n\nAcá está el estado de cuenta adjunto como PDF."
}
