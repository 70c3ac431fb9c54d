package ports

import (
	"context"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
)

// SessionStore maps opaque session tokens to session records. Operations on a
// single token must appear atomic to concurrent callers.
//
// Get returns (nil, nil) for a missing, malformed, or expired token — an
// unresolvable session is an expected outcome, never an error.
type SessionStore interface {
	Put(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Remove(ctx context.Context, token string) error
}
