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
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"

	DefaultAnthropicTemperature = 0.7
	DefaultAnthropicMaxTokens   = 1024
)

// AnthropicService implements LLMService for Anthropic Claude
type AnthropicService struct {
	apiKey           string
	baseURL          string
	modelName        string
	backendModelName string
	httpClient       *http.Client
	logger           *slog.Logger
}

type AnthropicChatRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature *float64           `json:"temperature,omitempty"`
	Messages    []chat.ChatMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Stream      bool               `json:"stream,omitempty"`
}

func NewAnthropicService(apiKey string, modelName string, backendModelName string, logger *slog.Logger) *AnthropicService {
	return &AnthropicService{
		apiKey:           apiKey,
		baseURL:          anthropicBaseURL,
		modelName:        modelName,
		backendModelName: backendModelName,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

func (a *AnthropicService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

// splitChatMessages extracts and combines all system messages into a single system prompt
// and returns the remaining non-system messages
func (a *AnthropicService) splitChatMessages(messages []chat.ChatMessage) (string, []chat.ChatMessage) {
	var systemParts []string
	var nonSystemMessages []chat.ChatMessage

	for _, msg := range messages {
		if msg.Role == chat.ChatRoleSystem {
			systemParts = append(systemParts, msg.Content)
		} else {
			nonSystemMessages = append(nonSystemMessages, msg)
		}
	}

	systemPrompt := strings.Join(systemParts, "\n\n")
	return systemPrompt, nonSystemMessages
}

// chatCompletion makes a messages request to Anthropic with the specified model
func (a *AnthropicService) chatCompletion(ctx context.Context, messages []chat.ChatMessage, modelName string, temperature float64) (string, error) {
	systemPrompt, conversationMessages := a.splitChatMessages(messages)

	// The messages API needs at least one user turn; classifier prompts
	// arrive as a lone system message.
	if len(conversationMessages) == 0 {
		if systemPrompt == "" {
			return "", fmt.Errorf("no messages provided")
		}
		conversationMessages = []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: systemPrompt}}
		systemPrompt = ""
	}

	anthropicReq := AnthropicChatRequest{
		Model:       modelName,
		MaxTokens:   DefaultAnthropicMaxTokens,
		Temperature: &temperature,
		Messages:    conversationMessages,
		System:      systemPrompt,
	}

	reqBody, err := json.Marshal(anthropicReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/messages", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set required Anthropic headers
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := a.httpClient.Do(req)
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

	var responseText strings.Builder
	for _, block := range gjson.GetBytes(body, `content.#(type=="text")#.text`).Array() {
		responseText.WriteString(block.String())
	}
	if responseText.Len() == 0 {
		return "", ErrNoChoices
	}

	return responseText.String(), nil
}

func (a *AnthropicService) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	content, err := a.chatCompletion(ctx, messages, a.modelName, DefaultAnthropicTemperature)
	if err != nil {
		return nil, err
	}

	return &chat.ChatResponse{
		Message: content,
		Model:   a.modelName,
	}, nil
}

// Classify runs the classifier prompt at zero temperature.
func (a *AnthropicService) Classify(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	// Determine which model to use for classification
	modelToUse := a.modelName
	if a.backendModelName != "" {
		modelToUse = a.backendModelName
	}

	content, err := a.chatCompletion(ctx, messages, modelToUse, 0)
	if err != nil {
		return nil, err
	}

	return &chat.ChatResponse{
		Message: content,
		Model:   modelToUse,
	}, nil
}
