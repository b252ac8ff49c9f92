package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("Expected info level, got %v", cfg.LogLevel)
	}
	if cfg.ModelName != "Llama31-70B-Instruct" {
		t.Errorf("Unexpected default model %s", cfg.ModelName)
	}
	if cfg.ClassifierModelName != cfg.ModelName {
		t.Errorf("Expected classifier model to fall back to %s, got %s", cfg.ModelName, cfg.ClassifierModelName)
	}
	if cfg.LLMTimeout != 90*time.Second || cfg.SessionTTL != 6*time.Hour {
		t.Errorf("Unexpected durations: %v %v", cfg.LLMTimeout, cfg.SessionTTL)
	}
	if cfg.LLMMaxTries != 3 || cfg.WolfCount != 2 {
		t.Errorf("Unexpected numeric defaults: %d %d", cfg.LLMMaxTries, cfg.WolfCount)
	}
	if cfg.FallbackResponse != "no comment" {
		t.Errorf("Unexpected fallback %q", cfg.FallbackResponse)
	}
	if cfg.APIKey() != "test-key" {
		t.Errorf("Expected openai key, got %q", cfg.APIKey())
	}
}

func TestLoadAnthropic(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "ant-key")
	t.Setenv("CLASSIFIER_MODEL_NAME", "claude-haiku")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLMProvider != "anthropic" || cfg.APIKey() != "ant-key" {
		t.Errorf("Unexpected provider config: %s %s", cfg.LLMProvider, cfg.APIKey())
	}
	if cfg.ClassifierModelName != "claude-haiku" {
		t.Errorf("Expected explicit classifier model, got %s", cfg.ClassifierModelName)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("Expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing key", env: map[string]string{}, want: "LLM_API_KEY"},
		{name: "unknown provider", env: map[string]string{"LLM_PROVIDER": "ollama", "LLM_API_KEY": "k"}, want: "unsupported"},
		{name: "bad duration", env: map[string]string{"LLM_API_KEY": "k", "LLM_TIMEOUT": "soon"}, want: "parse env:"},
		{name: "no wolves", env: map[string]string{"LLM_API_KEY": "k", "WOLF_COUNT": "0"}, want: "WOLF_COUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LLM_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
