package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/werewolf-agent/pkg/chat"
	"github.com/jwebster45206/werewolf-agent/pkg/state"
)

// Session is everything one agent knows about one game. It is what the
// store persists between requests.
type Session struct {
	ID          uuid.UUID          `json:"id"`
	AgentName   string             `json:"agent_name"`
	Description string             `json:"description,omitempty"`
	Policy      string             `json:"policy,omitempty"`
	History     []chat.ChatMessage `json:"history"`
	GameState   *state.GameState   `json:"gamestate"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// New creates a session for agentName playing with the given roster.
func New(agentName, description string, players []string, wolfCount int) (*Session, error) {
	if agentName == "" {
		return nil, errors.New("agent name is required")
	}
	gs, err := state.NewGameState(players, wolfCount)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:          uuid.New(),
		AgentName:   agentName,
		Description: description,
		History:     make([]chat.ChatMessage, 0),
		GameState:   gs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Append adds a message to the history.
func (s *Session) Append(role, content string) {
	s.History = append(s.History, chat.ChatMessage{Role: role, Content: content})
	s.UpdatedAt = time.Now()
}
