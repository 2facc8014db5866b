package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"hypotest/domain/stattest"
	"hypotest/internal"
	"hypotest/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig
	Engine   EngineConfig
	Server   ServerConfig
	Database DatabaseConfig
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// EngineConfig holds execution driver settings
type EngineConfig struct {
	Confidence float64
	Workers    int
	BatchSize  int
	RunTimeout time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional result store connection.
// An empty URL keeps runs in memory.
type DatabaseConfig struct {
	URL     string
	MaxConn int
}

// Enabled reports whether a Postgres result store is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	level := internal.LogLevelInfo
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		parsed, ok := internal.ParseLogLevel(raw)
		if !ok {
			return nil, errors.ConfigInvalid(fmt.Sprintf("LOG_LEVEL %q is not one of ERROR, WARN, INFO, DEBUG, TRACE", raw))
		}
		level = parsed
	}

	config := &Config{
		Log:      LogConfig{Level: level},
		Engine:   loadEngineConfig(),
		Server:   loadServerConfig(),
		Database: loadDatabaseConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadEngineConfig() EngineConfig {
	return EngineConfig{
		Confidence: getEnvFloatOrDefault("HYPOTEST_CONFIDENCE", stattest.DefaultConfidence),
		Workers:    getEnvIntOrDefault("HYPOTEST_WORKERS", 1),
		BatchSize:  getEnvIntOrDefault("HYPOTEST_BATCH_SIZE", 4096),
		RunTimeout: getEnvDurationOrDefault("HYPOTEST_RUN_TIMEOUT", 5*time.Minute),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("API_PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:     getEnvOrDefault("DATABASE_URL", ""),
		MaxConn: getEnvIntOrDefault("DB_MAX_CONN", 4),
	}
}

func validateConfig(config *Config) error {
	c := config.Engine.Confidence
	if c < stattest.MinConfidence || c > stattest.MaxConfidence {
		return errors.ConfigInvalid(fmt.Sprintf("HYPOTEST_CONFIDENCE must be within [%.2f, %.2f], got %v",
			stattest.MinConfidence, stattest.MaxConfidence, c))
	}
	if config.Engine.Workers < 1 {
		return errors.ConfigInvalid("HYPOTEST_WORKERS must be at least 1")
	}
	if config.Engine.BatchSize < 1 {
		return errors.ConfigInvalid("HYPOTEST_BATCH_SIZE must be at least 1")
	}
	if config.Engine.RunTimeout <= 0 {
		return errors.ConfigInvalid("HYPOTEST_RUN_TIMEOUT must be positive")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("API_PORT is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
