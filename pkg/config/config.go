package config

import (
	"fmt"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Observability ObservabilityConfig
	Markers       MarkersConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	RateLimitPerSecond int
	RateLimitBurst     int
	MaxUploadBytes     int64
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// MarkersConfig carries the statement-locale marker literals and the
// coercion hardening switches. Defaults target the Hong Kong retail
// statement layout; overriding them supports format variants without a
// rebuild.
type MarkersConfig struct {
	Section             string
	ColumnHeader        string
	Subtotal            string
	NextSection         string
	BuyKeyword          string
	SellKeyword         string
	StrictFieldOrder    bool
	RejectUnknownAction bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 10),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 20),
			MaxUploadBytes:     int64(getEnvAsInt("MAX_UPLOAD_BYTES", 20<<20)),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
		Markers: MarkersConfig{
			Section:             getEnv("MARKER_SECTION", "交易-股票和股票期權"),
			ColumnHeader:        getEnv("MARKER_COLUMN_HEADER", "淨變動"),
			Subtotal:            getEnv("MARKER_SUBTOTAL", "小計"),
			NextSection:         getEnv("MARKER_NEXT_SECTION", "現金結餘"),
			BuyKeyword:          getEnv("MARKER_BUY_KEYWORD", "買入開倉"),
			SellKeyword:         getEnv("MARKER_SELL_KEYWORD", "賣出平倉"),
			StrictFieldOrder:    getEnvAsBool("STRICT_FIELD_ORDER", false),
			RejectUnknownAction: getEnvAsBool("REJECT_UNKNOWN_ACTION", false),
		},
	}

	if cfg.Markers.Section == "" {
		return nil, fmt.Errorf("MARKER_SECTION must not be empty")
	}
	if cfg.Markers.BuyKeyword == "" || cfg.Markers.SellKeyword == "" {
		return nil, fmt.Errorf("action keyword markers must not be empty")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
