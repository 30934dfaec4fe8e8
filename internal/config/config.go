// Package config centralises configuration parsing for the activities service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration values for the activities service.
type Config struct {
	HTTPAddress        string
	StaticDir          string
	SeedFile           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutdownTimeout    time.Duration
	KafkaBrokers       []string // empty disables roster event publishing
	RosterEventsTopic  string
	OutboxBufferSize   int
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	ConsumerGroup      string
	MetricsAddress     string
}

// Load reads environment variables into Config, applying sensible defaults
// for local dev.
func Load() Config {
	cfg := Config{
		HTTPAddress:        getEnv("HTTP_ADDRESS", ":8000"),
		StaticDir:          getEnv("STATIC_DIR", "static"),
		SeedFile:           getEnv("SEED_FILE", ""),
		ReadTimeout:        getDurationEnv("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:       getDurationEnv("WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:        getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:    getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
		RosterEventsTopic:  getEnv("ROSTER_EVENTS_TOPIC", "roster_events"),
		OutboxBufferSize:   getIntEnv("OUTBOX_BUFFER_SIZE", 1024),
		OutboxPollInterval: getDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond),
		OutboxBatchSize:    getIntEnv("OUTBOX_BATCH_SIZE", 64),
		ConsumerGroup:      getEnv("CONSUMER_GROUP_ID", "activities-roster-consumer"),
		MetricsAddress:     getEnv("METRICS_ADDRESS", ":9102"),
	}

	cfg.KafkaBrokers = splitAndTrim(getEnv("KAFKA_BROKERS", ""))
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
