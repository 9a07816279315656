package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries all runtime settings, loaded from the environment.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL string
	DataDir  string

	// PointsPerScenario is the fixed award for the first correct completion
	// of a scenario.
	PointsPerScenario int
	// DwellTime is how long the final message must stay continuously
	// visible before decision options unlock.
	DwellTime time.Duration
	// VisibilityThreshold is the minimum visible fraction of the final
	// message, 0..1.
	VisibilityThreshold float64

	DefaultLanguage string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		LogLevel:            parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:            getEnv("REDIS_URL", "localhost:6379"),
		DataDir:             getEnv("DATA_DIR", "./data"),
		PointsPerScenario:   20,
		DwellTime:           time.Second,
		VisibilityThreshold: 0.8,
		DefaultLanguage:     getEnv("DEFAULT_LANGUAGE", "en"),
	}

	if v := os.Getenv("POINTS_PER_SCENARIO"); v != "" {
		points, err := strconv.Atoi(v)
		if err != nil || points < 0 {
			return nil, fmt.Errorf("invalid POINTS_PER_SCENARIO %q", v)
		}
		cfg.PointsPerScenario = points
	}

	if v := os.Getenv("DWELL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid DWELL_MS %q", v)
		}
		cfg.DwellTime = time.Duration(ms) * time.Millisecond
	}

	if v := os.Getenv("VISIBILITY_THRESHOLD"); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil || ratio <= 0 || ratio > 1 {
			return nil, fmt.Errorf("invalid VISIBILITY_THRESHOLD %q", v)
		}
		cfg.VisibilityThreshold = ratio
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
