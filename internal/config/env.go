package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Compression methods accepted by COMPRESSION_METHOD.
const (
	MethodAuto     = "auto"
	MethodRebuild  = "rebuild"
	MethodFallback = "fallback"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AxiomConfig holds Axiom logging configuration.
type AxiomConfig struct {
	Send          bool
	APIKey        string
	OrgID         string
	Dataset       string
	FlushInterval time.Duration
}

// CompressionConfig defines how pages are re-encoded.
// Quality is JPEG quality 1-100; values >= 90 switch text-dominant pages to
// PNG. DPI applies to text-dominant rendering only.
type CompressionConfig struct {
	Method  string
	Quality int
	DPI     int
}

// PathsConfig defines where input PDFs are read from and outputs written to.
type PathsConfig struct {
	InputDir  string
	OutputDir string
}

// MetricsConfig defines optional end-of-run metrics push.
type MetricsConfig struct {
	PushURL string
	Job     string
}

// Config is the top-level configuration.
type Config struct {
	Logging     LoggingConfig
	Axiom       AxiomConfig
	Compression CompressionConfig
	Paths       PathsConfig
	Metrics     MetricsConfig
}

// FromEnv loads configuration from environment with sensible defaults.
// A .env file in the working directory is honored when present.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Config{}

	// Logging defaults
	cfg.Logging = LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
		File:       getEnv("LOG_FILE", "logs/pdfcompressor.log"),
		MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
		MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
		MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
		Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
	}

	// Axiom defaults
	baseDataset := getEnv("AXIOM_DATASET", "dev")
	cfg.Axiom = AxiomConfig{
		Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
		APIKey:        getEnv("AXIOM_API_KEY", ""),
		OrgID:         getEnv("AXIOM_ORG_ID", ""),
		Dataset:       baseDataset + "_pdfcompressor",
		FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
	}

	// Compression defaults
	cfg.Compression = CompressionConfig{
		Method:  normalizeMethod(getEnv("COMPRESSION_METHOD", MethodAuto)),
		Quality: parseInt(getEnv("COMPRESSION_QUALITY", "80"), 80),
		DPI:     parseInt(getEnv("COMPRESSION_DPI", "300"), 300),
	}
	if cfg.Compression.Quality < 1 || cfg.Compression.Quality > 100 {
		log.Warn().Int("quality", cfg.Compression.Quality).Int("default", 80).Msg("COMPRESSION_QUALITY out of range, using default")
		cfg.Compression.Quality = 80
	}
	if cfg.Compression.DPI <= 0 {
		log.Warn().Int("dpi", cfg.Compression.DPI).Int("default", 300).Msg("COMPRESSION_DPI not positive, using default")
		cfg.Compression.DPI = 300
	}

	// Paths defaults
	cfg.Paths = PathsConfig{
		InputDir:  getEnv("INPUT_DIR", "."),
		OutputDir: getEnv("OUTPUT_DIR", ""),
	}
	if cfg.Paths.OutputDir == "" {
		cfg.Paths.OutputDir = filepath.Join(cfg.Paths.InputDir, "compressed_pdfs")
	}

	// Metrics defaults
	cfg.Metrics = MetricsConfig{
		PushURL: getEnv("PUSHGATEWAY_URL", ""),
		Job:     getEnv("METRICS_JOB", "pdf_compressor"),
	}

	return cfg
}

func normalizeMethod(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case MethodRebuild:
		return MethodRebuild
	case MethodFallback:
		return MethodFallback
	default:
		return MethodAuto
	}
}

// Helpers
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func devDefaultPretty() string {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if env == "dev" || env == "development" || env == "local" {
		return "true"
	}
	return "false"
}
