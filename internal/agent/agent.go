package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jwebster45206/werewolf-agent/internal/services"
	"github.com/jwebster45206/werewolf-agent/pkg/actions"
	"github.com/jwebster45206/werewolf-agent/pkg/chat"
	"github.com/jwebster45206/werewolf-agent/pkg/prompts"
	"github.com/jwebster45206/werewolf-agent/pkg/session"
	"github.com/jwebster45206/werewolf-agent/pkg/state"
)

const DefaultFallbackResponse = "no comment"

// Options configures an Agent.
type Options struct {
	// Policy names the system prompt; empty selects the default.
	Policy string
	// FallbackResponse is returned when the LLM cannot produce a reply.
	FallbackResponse string
}

// Agent plays one game. It handles one request at a time.
type Agent struct {
	mu           sync.Mutex
	sess         *session.Session
	llm          services.LLMService
	systemPrompt string
	fallback     string
	logger       *slog.Logger
}

// New creates an agent around an existing session. A fresh session gets
// its history seeded with the system prompt.
func New(sess *session.Session, llm services.LLMService, opts Options, logger *slog.Logger) (*Agent, error) {
	if sess == nil || sess.GameState == nil {
		return nil, fmt.Errorf("session with a game state is required")
	}
	if llm == nil {
		return nil, fmt.Errorf("llm service is required")
	}

	policyName := opts.Policy
	if policyName == "" {
		policyName = sess.Policy
	}
	policy, err := prompts.Policy(policyName)
	if err != nil {
		return nil, err
	}
	if policyName == "" {
		policyName = prompts.DefaultPolicy
	}
	sess.Policy = policyName

	fallback := opts.FallbackResponse
	if fallback == "" {
		fallback = DefaultFallbackResponse
	}

	a := &Agent{
		sess:         sess,
		llm:          llm,
		systemPrompt: policy(sess.AgentName),
		fallback:     fallback,
		logger:       logger.With("game_id", sess.ID.String(), "agent", sess.AgentName),
	}
	if len(sess.History) == 0 {
		sess.Append(chat.ChatRoleSystem, a.systemPrompt)
	}
	return a, nil
}

// Notify records an inbound message and updates the ledger from it.
// Classification and parse failures are logged and otherwise ignored.
func (a *Agent) Notify(ctx context.Context, msg chat.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.sess.Append(chat.ChatRoleUser, msg.HistoryEntry())
	a.classify(ctx, msg)
	return nil
}

func (a *Agent) classify(ctx context.Context, msg chat.Message) {
	fromModerator := actions.IsModerator(msg.Sender)
	resp, err := a.llm.Classify(ctx, prompts.ClassifierMessages(fromModerator, msg.Text))
	if err != nil {
		a.logger.Warn("Message classification failed", "sender", msg.Sender, "error", err)
		return
	}

	parsed := actions.Parse(resp.Message)
	if len(parsed) == 0 {
		a.logger.Debug("No actions detected", "sender", msg.Sender, "output", resp.Message)
		return
	}

	if err := actions.ApplyAll(a.sess.GameState, msg.Sender, parsed); err != nil {
		a.logger.Warn("Some actions could not be applied", "sender", msg.Sender, "error", err)
	}
	a.logger.Debug("Actions applied", "sender", msg.Sender, "count", len(parsed))
}

// Respond rebuilds the prompt from the ledger and asks the LLM for a
// reply. When the LLM fails the configured fallback is returned instead.
func (a *Agent) Respond(ctx context.Context, msg chat.Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	messages, err := prompts.BuildMessages(a.systemPrompt, a.sess.GameState, msg)
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}
	a.sess.History = messages

	reply := a.fallback
	resp, err := a.llm.Chat(ctx, messages)
	switch {
	case err != nil:
		a.logger.Warn("LLM reply failed, using fallback", "error", err)
	case strings.TrimSpace(resp.Message) == "":
		a.logger.Warn("LLM returned an empty reply, using fallback")
	default:
		reply = strings.TrimRight(resp.Message, "\n")
	}

	a.sess.Append(chat.ChatRoleAgent, chat.ReplyEntry(a.sess.AgentName, msg.Channel, reply))
	return reply, nil
}

// View calls fn with the session while holding the agent's lock.
func (a *Agent) View(fn func(*session.Session) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.sess)
}

// Narrative renders the current ledger.
func (a *Agent) Narrative() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return state.Narrate(a.sess.GameState)
}
