package ports

import (
	"context"

	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
)

// SessionStore keeps per-user application state between requests.
type SessionStore interface {
	// Get returns the session, or a fresh initial one when id is unknown.
	Get(ctx context.Context, id string) (domain.Session, error)
	// Update applies fn atomically and stores the result. When fn returns an
	// error nothing is written.
	Update(ctx context.Context, id string, fn func(*domain.Session) error) (domain.Session, error)
}
