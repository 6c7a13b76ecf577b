package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

type Config struct {
	Port              string
	Environment       string
	LogLevel          slog.Level
	LLMProvider       string
	ModelName         string
	GeminiAPIKey      string
	AnthropicAPIKey   string
	RedisURL          string // empty keeps the hunt in memory only
	HuntKey           string
	CatalogFile       string // empty uses the built-in catalog
	GenerationTimeout time.Duration
	ContentFilter     bool
}

// Load reads configuration from the environment. A .env file in the working
// directory, if present, is loaded first and never overrides real variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("GENERATION_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GENERATION_TIMEOUT: %w", err)
	}
	contentFilter, err := strconv.ParseBool(getEnv("CONTENT_FILTER", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONTENT_FILTER: %w", err)
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini))
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:       provider,
		ModelName:         getEnv("MODEL_NAME", defaultModel(provider)),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		RedisURL:          os.Getenv("REDIS_URL"),
		HuntKey:           getEnv("HUNT_KEY", "default"),
		CatalogFile:       os.Getenv("CATALOG_FILE"),
		GenerationTimeout: timeout,
		ContentFilter:     contentFilter,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected provider can be constructed.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when using the gemini provider")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required when using the anthropic provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q (supported: %s, %s, %s)",
			c.LLMProvider, ProviderGemini, ProviderAnthropic, ProviderMock)
	}
	if c.GenerationTimeout <= 0 {
		return errors.New("GENERATION_TIMEOUT must be positive")
	}
	if c.HuntKey == "" {
		return errors.New("HUNT_KEY cannot be empty")
	}
	return nil
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	case ProviderMock:
		return "mock"
	default:
		return "gemini-2.5-flash"
	}
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
