package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/gastosuy/statement-analyzer/internal/adapters/http"
	"github.com/gastosuy/statement-analyzer/internal/bootstrap"
	"github.com/gastosuy/statement-analyzer/internal/config"
	"github.com/gastosuy/statement-analyzer/internal/observability/logging"
	"github.com/gastosuy/statement-analyzer/internal/observability/metrics"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("api", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	m := metrics.NewHTTPServerMetrics("api")
	router := httpadapter.NewRouter(
		app.AnalyzeUC,
		app.ReportUC,
		m,
		cfg.MaxUploadBytes,
		cfg.RateLimitRPS,
		cfg.RateLimitBurst,
	).Handler()

	server := &http.Server{
		Addr:        ":" + cfg.APIPort,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// The analyze pipeline may legitimately run up to its own
		// wall-clock budget before responding.
		WriteTimeout: cfg.PipelineTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort, "mode", cfg.AnalysisMode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown_error", "error", err)
	}
}
