package httpadapter

import (
	"net/http"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
)

// mapError turns a pipeline error kind into an HTTP status and the
// user-facing message. The diagnostic detail stays in the log.
func mapError(err error) (int, string) {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "El archivo debe ser un PDF."
	case domain.IsKind(err, domain.ErrExtraction):
		return http.StatusBadRequest, "No se pudo leer el PDF. Verificá que no esté dañado o protegido con contraseña."
	case domain.IsKind(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest, "No se pudo extraer texto del PDF. Asegurate de que no sea un PDF escaneado (imagen)."
	case domain.IsKind(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, "El análisis tardó demasiado. Intentá de nuevo."
	case domain.IsKind(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, "El servicio de categorización no está disponible. Intentá de nuevo más tarde."
	case domain.IsKind(err, domain.ErrMalformedResponse), domain.IsKind(err, domain.ErrSchema):
		return http.StatusBadGateway, "No se pudo interpretar la respuesta del servicio. Intentá de nuevo."
	case domain.IsKind(err, domain.ErrConfiguration):
		return http.StatusInternalServerError, "El servicio no está configurado correctamente."
	case domain.IsKind(err, domain.ErrRender):
		return http.StatusInternalServerError, "Error generando el archivo Excel."
	default:
		return http.StatusInternalServerError, "Error inesperado procesando el archivo."
	}
}
