package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joseph-ayodele/order-intake/constants"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Transcript TranscriptConfig
	Ledger     LedgerConfig
	LLM        LLMConfig
	Intake     IntakeConfig
}

// ServerConfig holds webhook server configuration
type ServerConfig struct {
	HTTPAddr string
}

// TranscriptConfig holds transcript store configuration
type TranscriptConfig struct {
	DBPath string
}

// LedgerConfig holds order ledger configuration
type LedgerConfig struct {
	WorkbookPath string
}

// LLMConfig holds LLM collaborator configuration
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// IntakeConfig holds order-intake conventions
type IntakeConfig struct {
	DefaultRegion string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		Transcript: TranscriptConfig{
			DBPath: getEnv("TRANSCRIPT_DB_PATH", "./data/transcripts.db"),
		},
		Ledger: LedgerConfig{
			WorkbookPath: getEnv("LEDGER_WORKBOOK_PATH", "./data/orders.xlsx"),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Intake: IntakeConfig{
			DefaultRegion: getEnv("DEFAULT_REGION", constants.DefaultRegionCode),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Transcript.DBPath == "" {
		return NewAppError("CONFIG_ERROR", "TRANSCRIPT_DB_PATH is required", ErrInvalidInput)
	}
	if c.Ledger.WorkbookPath == "" {
		return NewAppError("CONFIG_ERROR", "LEDGER_WORKBOOK_PATH is required", ErrInvalidInput)
	}
	return nil
}
