package chat

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	ChatRoleUser   = "user"      // Other players and the moderator
	ChatRoleAgent  = "assistant" // This agent
	ChatRoleSystem = "system"    // Prompts and game summaries
)

// ChatMessage represents a single chat message in the conversation.
// Role tagging follows the OpenAI chat completions format and is part of
// the contract with every provider.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is a single completion returned by an LLM provider.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
	Model   string `json:"model,omitempty"`
}

// Channel types used by the host game runner.
const (
	ChannelTypeDirect = "direct"
	ChannelTypeGroup  = "group"
)

// Message is an inbound notification from the host game runner: either
// the moderator or another player speaking on some channel.
type Message struct {
	ID          uuid.UUID `json:"id,omitempty"`
	Sender      string    `json:"sender"`
	Channel     string    `json:"channel"`
	ChannelType string    `json:"channel_type,omitempty"`
	Text        string    `json:"text"`
}

// Validate checks the fields the agent cannot work without.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Sender) == "" {
		return fmt.Errorf("sender cannot be empty")
	}
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}

// HistoryEntry renders the message the way it is stored in chat history.
func (m *Message) HistoryEntry() string {
	return fmt.Sprintf("[From - %s| %s]: %s", m.Sender, m.Channel, m.Text)
}

// ReplyEntry renders one of the agent's own replies for chat history.
func ReplyEntry(agentName, channel, reply string) string {
	return fmt.Sprintf("[From %s (me) | %s]: %s", agentName, channel, reply)
}

// Response is the reply returned to the host game runner.
type Response struct {
	Text string `json:"response"`
}
