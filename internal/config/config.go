package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	GeminiAPIKey string
	GeminiModel  string

	// InsightInterval controls how often the scheduler runs the pipeline.
	InsightInterval time.Duration

	// InsightWindowSize bounds the reading window analyzed per run.
	InsightWindowSize int

	// GenerationTimeout bounds a single generator call.
	GenerationTimeout time.Duration

	// In-memory reading store retention.
	StoreMaxHistory int           // max number of readings (0 = unlimited)
	StoreMaxAge     time.Duration // max age of readings (0 = unlimited)

	// Optional RabbitMQ ingestion; disabled when RabbitURL is empty.
	RabbitURL   string
	RabbitQueue string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	cfg.GeminiModel = getenvDefault("GEMINI_MODEL", "gemini-2.5-flash")

	intervalStr := getenvDefault("INSIGHT_INTERVAL", "1h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid INSIGHT_INTERVAL: %w", err)
	}
	cfg.InsightInterval = interval

	cfg.InsightWindowSize = getenvInt("INSIGHT_WINDOW_SIZE", 48)

	timeoutStr := getenvDefault("GENERATION_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GENERATION_TIMEOUT: %w", err)
	}
	cfg.GenerationTimeout = timeout

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96)

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.RabbitURL = os.Getenv("RABBITMQ_URL")
	cfg.RabbitQueue = getenvDefault("RABBITMQ_QUEUE", "weather_readings")

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
