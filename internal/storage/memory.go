package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/werewolf-agent/pkg/session"
)

// MemoryStore keeps sessions in process memory. It is used when no Redis
// URL is configured, and in tests.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID][]byte
	pingError error
}

// Ensure MemoryStore implements Store interface
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID][]byte),
	}
}

// SetPingError configures the store to fail on ping with the given error
func (m *MemoryStore) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MemoryStore) Close() error {
	return nil
}

// SaveSession stores a snapshot, so later changes to s are not visible
// until the next save.
func (m *MemoryStore) SaveSession(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = data
	return nil
}

func (m *MemoryStore) LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	m.mu.RLock()
	data, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (m *MemoryStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
