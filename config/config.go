package config

import (
	"os"
	"strings"
	"time"
)

// AnalyzerMode selects how match analysis is performed.
type AnalyzerMode string

const (
	ModeLive AnalyzerMode = "live"
	ModeMock AnalyzerMode = "mock"
)

const defaultAnalysisTimeout = 45 * time.Second

// Config is read once at startup; nothing reads the environment afterwards.
type Config struct {
	Port            string
	DBDSN           string
	GeminiAPIKey    string
	GeminiModel     string
	RabbitMQURL     string
	AnalysisTimeout time.Duration
	AnalyzerMode    AnalyzerMode
}

// Load builds the configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		Port:            envOr("PORT", "5000"),
		DBDSN:           os.Getenv("DB_DSN"),
		GeminiAPIKey:    strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
		AnalysisTimeout: defaultAnalysisTimeout,
	}

	if d, err := time.ParseDuration(os.Getenv("ANALYSIS_TIMEOUT")); err == nil && d > 0 {
		cfg.AnalysisTimeout = d
	}

	cfg.AnalyzerMode = ResolveAnalyzerMode(cfg.GeminiAPIKey)
	return cfg
}

// ResolveAnalyzerMode forces mock mode when no credential is configured or
// the credential is a recognizable placeholder/test value.
func ResolveAnalyzerMode(apiKey string) AnalyzerMode {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" || strings.Contains(apiKey, "test-key") || apiKey == "YOUR_GOOGLE_API_KEY_HERE" {
		return ModeMock
	}
	return ModeLive
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
