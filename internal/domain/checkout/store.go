package checkout

import (
	"context"

	"github.com/google/uuid"
)

// SessionStore keeps sessions for a bounded time. Expired sessions are not found.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
