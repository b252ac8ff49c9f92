package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/werewolf-agent/pkg/session"
)

// Store persists game sessions between requests.
type Store interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	SaveSession(ctx context.Context, s *session.Session) error
	// LoadSession returns nil, nil when the session does not exist.
	LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
