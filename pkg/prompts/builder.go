package prompts

import (
	"fmt"

	"github.com/jwebster45206/werewolf-agent/pkg/chat"
	"github.com/jwebster45206/werewolf-agent/pkg/state"
)

// Builder assembles the response prompt using a fluent interface. The
// order is fixed: system prompt, game summary, suspicion instructions,
// inbound message.
type Builder struct {
	systemPrompt string
	gs           *state.GameState
	inbound      *chat.Message
	messages     []chat.ChatMessage
}

// New creates an empty prompt builder.
func New() *Builder {
	return &Builder{
		messages: make([]chat.ChatMessage, 0),
	}
}

// WithSystemPrompt sets the agent's fixed system prompt.
func (b *Builder) WithSystemPrompt(prompt string) *Builder {
	b.systemPrompt = prompt
	return b
}

// WithGameState sets the ledger rendered into the game summary.
func (b *Builder) WithGameState(gs *state.GameState) *Builder {
	b.gs = gs
	return b
}

// WithInboundMessage sets the message the agent is replying to.
func (b *Builder) WithInboundMessage(msg chat.Message) *Builder {
	b.inbound = &msg
	return b
}

// Build constructs and returns the final message array for LLM consumption.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.systemPrompt == "" {
		return nil, fmt.Errorf("system prompt is required")
	}
	if b.inbound == nil {
		return nil, fmt.Errorf("inbound message is required")
	}

	b.messages = make([]chat.ChatMessage, 0, 4)

	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: b.systemPrompt,
	})

	b.addGameSummary()

	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: SuspicionDetectionPrompt,
	})

	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleUser,
		Content: b.inbound.HistoryEntry(),
	})

	return b.messages, nil
}

// addGameSummary adds the rendered ledger, if there is anything to say.
func (b *Builder) addGameSummary() {
	narrative := state.NarrativeText(b.gs)
	if narrative == "" {
		return
	}
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: GameSummaryHeader + "\n" + narrative,
	})
}

// BuildMessages is a convenience function for the common case.
func BuildMessages(systemPrompt string, gs *state.GameState, msg chat.Message) ([]chat.ChatMessage, error) {
	return New().
		WithSystemPrompt(systemPrompt).
		WithGameState(gs).
		WithInboundMessage(msg).
		Build()
}

// ClassifierMessages builds the single-message prompt that asks the
// classifier model to turn one game message into action records.
func ClassifierMessages(fromModerator bool, text string) []chat.ChatMessage {
	prompt := UserParsePrompt.Substitute(text)
	if fromModerator {
		prompt = ModeratorParsePrompt.Substitute(text)
	}
	return []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: prompt},
	}
}
