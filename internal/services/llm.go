package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/werewolf-agent/pkg/chat"
)

// Provider names accepted by NewLLMService.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ErrNoChoices is returned when a provider answers without any completion.
var ErrNoChoices = errors.New("no choices returned from API")

// LLMService defines the interface for interacting with the LLM API
type LLMService interface {
	// InitModel initializes the LLM model on startup
	InitModel(ctx context.Context, modelName string) error

	// Chat generates the agent's conversational reply
	Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// Classify turns a game message into action records, using the
	// classifier model at zero temperature
	Classify(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}

// APIError is a non-200 answer from a provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether repeating the request could succeed.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ProviderConfig carries everything needed to construct a provider.
type ProviderConfig struct {
	Provider            string
	BaseURL             string
	APIKey              string
	ModelName           string
	ClassifierModelName string
	Timeout             time.Duration
}

// NewLLMService builds the provider named in cfg.
func NewLLMService(cfg ProviderConfig, logger *slog.Logger) (LLMService, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIService(cfg.BaseURL, cfg.APIKey, cfg.ModelName, cfg.ClassifierModelName, cfg.Timeout, logger), nil
	case ProviderAnthropic:
		svc := NewAnthropicService(cfg.APIKey, cfg.ModelName, cfg.ClassifierModelName, logger)
		if cfg.Timeout > 0 {
			svc.httpClient.Timeout = cfg.Timeout
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
