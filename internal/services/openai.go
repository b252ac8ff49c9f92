package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/jwebster45206/werewolf-agent/pkg/chat"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	DefaultChatTemperature = 0.7
	DefaultChatMaxTokens   = 512
	ClassifierMaxTokens    = 1024
	classifierTemperature  = 0.0
	defaultOpenAITimeout   = 90 * time.Second
)

// OpenAIService implements LLMService for any OpenAI-compatible chat
// completions endpoint, including self-hosted inference servers.
type OpenAIService struct {
	apiKey           string
	baseURL          string
	modelName        string
	backendModelName string
	httpClient       *http.Client
	logger           *slog.Logger
}

// OpenAIChatRequest is the chat completions request body.
type OpenAIChatRequest struct {
	Model       string             `json:"model"`
	Messages    []chat.ChatMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
	Stream      bool               `json:"stream"`
}

// NewOpenAIService creates a new OpenAI-compatible service.
func NewOpenAIService(baseURL, apiKey, modelName, backendModelName string, timeout time.Duration, logger *slog.Logger) *OpenAIService {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if timeout <= 0 {
		timeout = defaultOpenAITimeout
	}
	return &OpenAIService{
		apiKey:           apiKey,
		baseURL:          strings.TrimRight(baseURL, "/"),
		modelName:        modelName,
		backendModelName: backendModelName,
		httpClient:       &http.Client{Timeout: timeout},
		logger:           logger,
	}
}

// InitModel is a no-op; hosted endpoints load models on demand.
func (o *OpenAIService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

// chatCompletion makes a chat completion request with the specified model
func (o *OpenAIService) chatCompletion(ctx context.Context, messages []chat.ChatMessage, modelName string, temperature float64, maxTokens int) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}

	reqBody, err := json.Marshal(OpenAIChatRequest{
		Model:       modelName,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = string(body)
		}
		return "", &APIError{StatusCode: resp.StatusCode, Body: msg}
	}

	if apiErr := gjson.GetBytes(body, "error.message"); apiErr.Exists() {
		return "", fmt.Errorf("API error: %s", apiErr.String())
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return "", ErrNoChoices
	}

	if o.logger != nil {
		o.logger.Debug("Chat completion finished",
			"model", modelName,
			"duration", time.Since(start),
			"total_tokens", gjson.GetBytes(body, "usage.total_tokens").Int())
	}

	return content.String(), nil
}

// Chat generates the agent's reply with the conversational model.
func (o *OpenAIService) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	content, err := o.chatCompletion(ctx, messages, o.modelName, DefaultChatTemperature, DefaultChatMaxTokens)
	if err != nil {
		return nil, err
	}
	return &chat.ChatResponse{Message: content, Model: o.modelName}, nil
}

// Classify runs the classifier prompt, preferring the backend model.
func (o *OpenAIService) Classify(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	modelToUse := o.modelName
	if o.backendModelName != "" {
		modelToUse = o.backendModelName
	}

	content, err := o.chatCompletion(ctx, messages, modelToUse, classifierTemperature, ClassifierMaxTokens)
	if err != nil {
		return nil, err
	}
	return &chat.ChatResponse{Message: content, Model: modelToUse}, nil
}
