package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/werewolf-agent/pkg/chat"
)

// MockLLMAPI is a mock implementation of LLMService for testing
type MockLLMAPI struct {
	InitModelFunc func(ctx context.Context, modelName string) error
	ChatFunc      func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
	ClassifyFunc  func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// Track calls for testing
	InitModelCalls []string
	ChatCalls      []MessagesCall
	ClassifyCalls  []MessagesCall

	mu sync.Mutex // protects all fields above
}

type MessagesCall struct {
	Messages []chat.ChatMessage
}

var _ LLMService = (*MockLLMAPI)(nil)

// NewMockLLMAPI creates a new mock LLM service
func NewMockLLMAPI() *MockLLMAPI {
	return &MockLLMAPI{
		InitModelCalls: make([]string, 0),
		ChatCalls:      make([]MessagesCall, 0),
		ClassifyCalls:  make([]MessagesCall, 0),
	}
}

// InitModel mocks model initialization
func (m *MockLLMAPI) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	m.InitModelCalls = append(m.InitModelCalls, modelName)
	fn := m.InitModelFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, modelName)
	}
	return nil
}

// Chat mocks reply generation
func (m *MockLLMAPI) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, MessagesCall{Messages: messages})
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}
	return &chat.ChatResponse{Message: "Mock response"}, nil
}

// Classify mocks action classification. By default nothing is detected.
func (m *MockLLMAPI) Classify(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	m.ClassifyCalls = append(m.ClassifyCalls, MessagesCall{Messages: messages})
	fn := m.ClassifyFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}
	return &chat.ChatResponse{Message: "[]"}, nil
}

// Reset clears all call tracking
func (m *MockLLMAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = make([]string, 0)
	m.ChatCalls = make([]MessagesCall, 0)
	m.ClassifyCalls = make([]MessagesCall, 0)
}

// SetInitModelError sets up the mock to return an error on InitModel
func (m *MockLLMAPI) SetInitModelError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelFunc = func(ctx context.Context, modelName string) error {
		return err
	}
}

// SetChatError sets up the mock to return an error on Chat
func (m *MockLLMAPI) SetChatError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// SetChatResponse sets up the mock to reply with text
func (m *MockLLMAPI) SetChatResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return &chat.ChatResponse{Message: text}, nil
	}
}

// SetClassifyResponse sets up the mock to classify every message as text
func (m *MockLLMAPI) SetClassifyResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClassifyFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return &chat.ChatResponse{Message: text}, nil
	}
}

// SetClassifyError sets up the mock to return an error on Classify
func (m *MockLLMAPI) SetClassifyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClassifyFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// GetCalls returns a copy of the call tracking data in a thread-safe way
func (m *MockLLMAPI) GetCalls() ([]MessagesCall, []MessagesCall) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chatCalls := make([]MessagesCall, len(m.ChatCalls))
	copy(chatCalls, m.ChatCalls)

	classifyCalls := make([]MessagesCall, len(m.ClassifyCalls))
	copy(classifyCalls, m.ClassifyCalls)

	return chatCalls, classifyCalls
}
