package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultUsaceURL    = "https://www.swl-wc.usace.army.mil/pages/data/tabular/htm/norfork.htm"
	defaultSwpaBaseURL = "https://www.energy.gov/swpa/"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr    string
	UsaceURL    string
	SwpaBaseURL string

	CacheTTL        time.Duration
	FetchTimeout    time.Duration
	ShutdownTimeout time.Duration
	RefreshCron     string

	LogLevel  string
	LogFormat string

	// Kafka publishing is optional. The publisher is wired only when
	// KAFKA_BROKERS is set.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cacheTTL, err := parseDuration("CACHE_TTL", "15m")
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "20s")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		UsaceURL:        envOrDefault("USACE_URL", defaultUsaceURL),
		SwpaBaseURL:     envOrDefault("SWPA_BASE_URL", defaultSwpaBaseURL),
		CacheTTL:        cacheTTL,
		FetchTimeout:    fetchTimeout,
		ShutdownTimeout: shutdownTimeout,
		RefreshCron:     envOrDefault("REFRESH_CRON", "*/15 * * * *"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		KafkaBrokers:    brokers,
		KafkaTopic:      envOrDefault("KAFKA_TOPIC", "lake-reports"),
		KafkaEnabled:    len(brokers) > 0,
	}

	if cfg.UsaceURL == "" {
		return nil, errors.New("USACE_URL is required")
	}
	if cfg.SwpaBaseURL == "" {
		return nil, errors.New("SWPA_BASE_URL is required")
	}
	if !strings.HasSuffix(cfg.SwpaBaseURL, "/") {
		cfg.SwpaBaseURL += "/"
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if b := strings.TrimSpace(p); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
