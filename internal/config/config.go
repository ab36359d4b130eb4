package config

import (
	"os"
	"strconv"

	"dimcheck/domain/spec"
	"dimcheck/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Vision   VisionConfig
	Server   ServerConfig
	Database DatabaseConfig
	Sheet    SheetConfig
}

// VisionConfig holds settings for the vision extraction model
type VisionConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	TimeoutMs   int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds optional batch-history storage settings
type DatabaseConfig struct {
	URL string
}

// SheetConfig holds the reference spreadsheet source and the user-editable
// dimension column range
type SheetConfig struct {
	FilePath    string
	StartColumn string
	EndColumn   string
}

// Load reads configuration from environment variables. Only the pieces a
// given entrypoint needs are validated, via the Require* helpers.
func Load() *Config {
	return &Config{
		Vision: VisionConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			Model:       getEnvOrDefault("VISION_MODEL", "gpt-4o"),
			BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 1000),
			Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.0),
			TimeoutMs:   getEnvIntOrDefault("VISION_TIMEOUT_MS", 120000),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Sheet: SheetConfig{
			FilePath:    os.Getenv("REFERENCE_FILE"),
			StartColumn: os.Getenv("DIM_START_COLUMN"),
			EndColumn:   os.Getenv("DIM_END_COLUMN"),
		},
	}
}

// RequireVision validates the settings needed before any extraction call
func (c *Config) RequireVision() error {
	if c.Vision.APIKey == "" {
		return errors.ConfigInvalid("OPENAI_API_KEY is required for dimension extraction")
	}
	return nil
}

// ColumnRange returns the configured dimension column range, or nil when no
// range is set and the reserved-header heuristic should apply.
func (c *SheetConfig) ColumnRange() *spec.ColumnRange {
	if c.StartColumn == "" && c.EndColumn == "" {
		return nil
	}
	return &spec.ColumnRange{Start: c.StartColumn, End: c.EndColumn}
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
