package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
)

type Config struct {
	APIPort  string
	LogLevel string

	GeminiAPIKey string
	GeminiModel  string

	AnalysisMode     string
	MaxUploadBytes   int64
	PipelineTimeout  time.Duration
	DefaultCurrency  string
	SummaryRecompute bool

	RateLimitRPS   float64
	RateLimitBurst int

	BreakerEnabled          bool
	BreakerMinRequests      int
	BreakerFailureRatio     float64
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		GeminiAPIKey: mustEnv("GEMINI_API_KEY", ""),
		GeminiModel:  mustEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		AnalysisMode:     mustEnv("ANALYSIS_MODE", "text"),
		MaxUploadBytes:   int64(mustEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		PipelineTimeout:  time.Duration(mustEnvInt("PIPELINE_TIMEOUT_SECONDS", 60)) * time.Second,
		DefaultCurrency:  mustEnv("DEFAULT_CURRENCY", domain.DefaultCurrency),
		SummaryRecompute: mustEnvBool("SUMMARY_RECOMPUTE", true),

		RateLimitRPS:   mustEnvFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst: mustEnvInt("RATE_LIMIT_BURST", 5),

		BreakerEnabled:          mustEnvBool("BREAKER_ENABLED", true),
		BreakerMinRequests:      mustEnvInt("BREAKER_MIN_REQUESTS", 10),
		BreakerFailureRatio:     mustEnvFloat("BREAKER_FAILURE_RATIO", 0.5),
		BreakerOpenTimeout:      time.Duration(mustEnvInt("BREAKER_OPEN_TIMEOUT_SECONDS", 30)) * time.Second,
		BreakerHalfOpenMaxCalls: mustEnvInt("BREAKER_HALF_OPEN_MAX_CALLS", 2),
	}
}

// Validate catches a missing credential at startup, before any upload
// can trigger a network call.
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return domain.WrapError(domain.ErrConfiguration, "validate config",
			errors.New("GEMINI_API_KEY is required"))
	}
	return nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
