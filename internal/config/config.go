package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel    slog.Level

	LLMProvider         string        `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMBaseURL          string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMAPIKey           string        `env:"LLM_API_KEY"`
	AnthropicAPIKey     string        `env:"ANTHROPIC_API_KEY"`
	ModelName           string        `env:"MODEL_NAME" envDefault:"Llama31-70B-Instruct"`
	ClassifierModelName string        `env:"CLASSIFIER_MODEL_NAME"`
	LLMTimeout          time.Duration `env:"LLM_TIMEOUT" envDefault:"90s"`
	LLMMaxTries         uint          `env:"LLM_MAX_TRIES" envDefault:"3"`

	RedisURL   string        `env:"REDIS_URL"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"6h"`

	SystemPrompt     string `env:"SYSTEM_PROMPT" envDefault:"default"`
	FallbackResponse string `env:"FALLBACK_RESPONSE" envDefault:"no comment"`
	WolfCount        int    `env:"WOLF_COUNT" envDefault:"2"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if cfg.ClassifierModelName == "" {
		cfg.ClassifierModelName = cfg.ModelName
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	if c.LLMProvider == "anthropic" {
		return c.AnthropicAPIKey
	}
	return c.LLMAPIKey
}

func (c *Config) validate() error {
	switch c.LLMProvider {
	case "openai":
		if c.LLMAPIKey == "" {
			return errors.New("LLM_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %s", c.LLMProvider)
	}
	if c.ModelName == "" {
		return errors.New("MODEL_NAME is required")
	}
	if c.WolfCount < 1 {
		return fmt.Errorf("WOLF_COUNT must be at least 1, got %d", c.WolfCount)
	}
	return nil
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
