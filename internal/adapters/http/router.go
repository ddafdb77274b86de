package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
	"github.com/gastosuy/statement-analyzer/internal/core/ports"
	"github.com/gastosuy/statement-analyzer/internal/observability/metrics"
)

const (
	serviceName = "api"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	reportFilename  = "GastosUY_Resumen.xlsx"

	// Slack on top of the upload limit for multipart framing overhead.
	multipartOverhead = 64 << 10
)

type Router struct {
	analyzer ports.StatementAnalyzer
	reports  ports.ReportBuilder
	metrics  *metrics.HTTPServerMetrics

	maxUploadBytes int64
	limiter        *rate.Limiter
}

func NewRouter(
	analyzer ports.StatementAnalyzer,
	reports ports.ReportBuilder,
	m *metrics.HTTPServerMetrics,
	maxUploadBytes int64,
	limitRPS float64,
	limitBurst int,
) *Router {
	var limiter *rate.Limiter
	if limitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(limitRPS), limitBurst)
	}
	return &Router{
		analyzer:       analyzer,
		reports:        reports,
		metrics:        m,
		maxUploadBytes: maxUploadBytes,
		limiter:        limiter,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/v1/statements/analyze", rateLimitMiddleware(rt.limiter, http.HandlerFunc(rt.analyzeStatement)))
	mux.HandleFunc("/v1/statements/report", rt.downloadReport)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) analyzeStatement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes+multipartOverhead)

	file, fileHeader, err := r.FormFile("pdf")
	if err != nil {
		rt.recordAnalysis("rejected", 0, start)
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusBadRequest, errorBody("El archivo supera el tamaño máximo de 10 MB."))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody("No se recibió ningún archivo PDF."))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		rt.recordAnalysis("rejected", 0, start)
		writeJSON(w, http.StatusBadRequest, errorBody("No se pudo leer el archivo."))
		return
	}

	result, err := rt.analyzer.Analyze(r.Context(), ports.StatementUpload{
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		rt.recordAnalysis("error", 0, start)
		rt.writeError(r, w, "analyze statement", err)
		return
	}

	rt.recordAnalysis("ok", len(result.Movimientos), start)
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) downloadReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}

	var result domain.AnalisisResultado
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		rt.recordReport("rejected")
		writeJSON(w, http.StatusBadRequest, errorBody("Datos de análisis inválidos."))
		return
	}

	artifact, err := rt.reports.Build(r.Context(), &result)
	if err != nil {
		rt.recordReport("error")
		rt.writeError(r, w, "build report", err)
		return
	}

	rt.recordReport("ok")
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+reportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

func (rt *Router) writeError(r *http.Request, w http.ResponseWriter, operation string, err error) {
	status, message := mapError(err)
	slog.Error("pipeline_error",
		"request_id", requestIDFromContext(r.Context()),
		"operation", operation,
		"status", status,
		"error", err,
	)
	writeJSON(w, status, errorBody(message))
}

func (rt *Router) recordAnalysis(status string, transactions int, start time.Time) {
	if rt.metrics != nil {
		rt.metrics.RecordAnalysis(serviceName, status, transactions, time.Since(start))
	}
}

func (rt *Router) recordReport(status string) {
	if rt.metrics != nil {
		rt.metrics.RecordReport(serviceName, status)
	}
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
