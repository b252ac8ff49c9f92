package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/werewolf-agent/internal/services"
	"github.com/jwebster45206/werewolf-agent/internal/storage"
	"github.com/jwebster45206/werewolf-agent/pkg/chat"
	"github.com/jwebster45206/werewolf-agent/pkg/session"
)

// ErrGameNotFound is returned for game IDs with no stored session.
var ErrGameNotFound = errors.New("game not found")

// CreateRequest describes a new game as seen by one agent.
type CreateRequest struct {
	AgentName   string
	Description string
	Players     []string
	WolfCount   int
}

// Manager owns one Agent per game and persists each session after every
// call, so a restarted process picks up where it left off.
type Manager struct {
	mu        sync.Mutex
	agents    map[uuid.UUID]*Agent
	store     storage.Store
	llm       services.LLMService
	opts      Options
	wolfCount int
	logger    *slog.Logger
}

// NewManager creates a manager. wolfCount is used when a create request
// does not name one.
func NewManager(store storage.Store, llm services.LLMService, opts Options, wolfCount int, logger *slog.Logger) *Manager {
	return &Manager{
		agents:    make(map[uuid.UUID]*Agent),
		store:     store,
		llm:       llm,
		opts:      opts,
		wolfCount: wolfCount,
		logger:    logger,
	}
}

// ActiveGames returns the number of games loaded in this process.
func (m *Manager) ActiveGames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.agents)
}

// Create starts a new game and returns its ID.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (uuid.UUID, error) {
	wolves := req.WolfCount
	if wolves <= 0 {
		wolves = m.wolfCount
	}

	sess, err := session.New(req.AgentName, req.Description, req.Players, wolves)
	if err != nil {
		return uuid.Nil, err
	}

	a, err := New(sess, m.llm, m.opts, m.logger)
	if err != nil {
		return uuid.Nil, err
	}

	if err := m.store.SaveSession(ctx, sess); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save session: %w", err)
	}

	m.mu.Lock()
	m.agents[sess.ID] = a
	m.mu.Unlock()

	m.logger.Info("Game created", "game_id", sess.ID.String(), "agent", req.AgentName, "players", len(req.Players), "wolves", wolves)
	return sess.ID, nil
}

// Get returns the agent for a game, loading its session from the store
// when it is not already in memory.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.agents[id]; ok {
		return a, nil
	}

	sess, err := m.store.LoadSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		return nil, ErrGameNotFound
	}

	// The stored policy wins over the process default.
	opts := m.opts
	opts.Policy = sess.Policy
	a, err := New(sess, m.llm, opts, m.logger)
	if err != nil {
		return nil, err
	}
	m.agents[id] = a
	return a, nil
}

// Delete forgets a game.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := m.Get(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.agents, id)
	m.mu.Unlock()

	if err := m.store.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.logger.Info("Game deleted", "game_id", id.String())
	return nil
}

// Notify delivers a message that needs no reply.
func (m *Manager) Notify(ctx context.Context, id uuid.UUID, msg chat.Message) error {
	a, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := a.Notify(ctx, msg); err != nil {
		return err
	}
	return m.save(ctx, a)
}

// Respond delivers a message and returns the agent's reply.
func (m *Manager) Respond(ctx context.Context, id uuid.UUID, msg chat.Message) (string, error) {
	a, err := m.Get(ctx, id)
	if err != nil {
		return "", err
	}
	reply, err := a.Respond(ctx, msg)
	if err != nil {
		return "", err
	}
	if err := m.save(ctx, a); err != nil {
		return "", err
	}
	return reply, nil
}

func (m *Manager) save(ctx context.Context, a *Agent) error {
	return a.View(func(s *session.Session) error {
		if err := m.store.SaveSession(ctx, s); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}
