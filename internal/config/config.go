package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mskarstad/benchboss/internal/platform/logging"
)

// Config stores runtime configuration for the library. Everything has a
// sensible default so an embedding app can run with zero environment.
type Config struct {
	LogLevel logging.Level

	// Save persistence.
	SaveFilePath string
	SaveDBURL    string

	// Narrative text provider (optional).
	NarratorEnabled         bool
	NarratorBaseURL         string
	NarratorTimeout         time.Duration
	NarratorCircuitEnabled  bool
	NarratorCircuitFailures int
	NarratorCircuitOpenFor  time.Duration
	NarratorCircuitHalfOpen int

	// Simulation tunables.
	AutoSimWorkers int
	TickInterval   time.Duration
}

func Load() (Config, error) {
	logLevel, err := parseLogLevel(getEnv("BENCHBOSS_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	narratorEnabled, err := parseBool("BENCHBOSS_NARRATOR_ENABLED", "false")
	if err != nil {
		return Config{}, err
	}
	narratorTimeout, err := parseDuration("BENCHBOSS_NARRATOR_TIMEOUT", "5s")
	if err != nil {
		return Config{}, err
	}
	circuitEnabled, err := parseBool("BENCHBOSS_NARRATOR_CIRCUIT_ENABLED", "true")
	if err != nil {
		return Config{}, err
	}
	circuitFailures, err := parseInt("BENCHBOSS_NARRATOR_CIRCUIT_FAILURES", "3")
	if err != nil {
		return Config{}, err
	}
	circuitOpenFor, err := parseDuration("BENCHBOSS_NARRATOR_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	circuitHalfOpen, err := parseInt("BENCHBOSS_NARRATOR_CIRCUIT_HALF_OPEN_MAX", "1")
	if err != nil {
		return Config{}, err
	}
	workers, err := parseInt("BENCHBOSS_AUTOSIM_WORKERS", "4")
	if err != nil {
		return Config{}, err
	}
	if workers < 1 {
		workers = 1
	}
	tickInterval, err := parseDuration("BENCHBOSS_TICK_INTERVAL", "50ms")
	if err != nil {
		return Config{}, err
	}

	return Config{
		LogLevel:                logLevel,
		SaveFilePath:            getEnv("BENCHBOSS_SAVE_PATH", "benchboss_save.json"),
		SaveDBURL:               getEnv("BENCHBOSS_SAVE_DB_URL", ""),
		NarratorEnabled:         narratorEnabled,
		NarratorBaseURL:         strings.TrimRight(getEnv("BENCHBOSS_NARRATOR_URL", ""), "/"),
		NarratorTimeout:         narratorTimeout,
		NarratorCircuitEnabled:  circuitEnabled,
		NarratorCircuitFailures: circuitFailures,
		NarratorCircuitOpenFor:  circuitOpenFor,
		NarratorCircuitHalfOpen: circuitHalfOpen,
		AutoSimWorkers:          workers,
		TickInterval:            tickInterval,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseBool(key, fallback string) (bool, error) {
	value, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func parseInt(key, fallback string) (int, error) {
	value, err := strconv.Atoi(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func parseLogLevel(raw string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return logging.LevelDebug, nil
	case "info", "":
		return logging.LevelInfo, nil
	case "warn", "warning":
		return logging.LevelWarn, nil
	case "error":
		return logging.LevelError, nil
	default:
		return logging.LevelInfo, fmt.Errorf("unknown log level: %q", raw)
	}
}
