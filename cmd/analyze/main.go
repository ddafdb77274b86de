package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/gastosuy/statement-analyzer/internal/bootstrap"
	"github.com/gastosuy/statement-analyzer/internal/config"
	"github.com/gastosuy/statement-analyzer/internal/core/ports"
	"github.com/gastosuy/statement-analyzer/internal/observability/logging"
)

// One-shot analysis without the HTTP layer: PDF path in, result JSON on
// stdout, optionally the xlsx report on disk.
func main() {
	pdfPath := flag.String("pdf", "", "path to the statement PDF")
	outPath := flag.String("out", "", "optional path for the xlsx report")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -pdf statement.pdf [-out report.xlsx]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("analyze", cfg.LogLevel))

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	data, err := os.ReadFile(*pdfPath)
	if err != nil {
		log.Fatalf("read pdf: %v", err)
	}

	result, err := app.AnalyzeUC.Analyze(ctx, ports.StatementUpload{
		Filename: *pdfPath,
		MimeType: "application/pdf",
		Data:     data,
	})
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatalf("encode result: %v", err)
	}

	if *outPath != "" {
		artifact, err := app.ReportUC.Build(ctx, result)
		if err != nil {
			log.Fatalf("build report: %v", err)
		}
		if err := os.WriteFile(*outPath, artifact, 0o644); err != nil {
			log.Fatalf("write report: %v", err)
		}
		slog.Info("report_written", "path", *outPath, "bytes", len(artifact))
	}
}
