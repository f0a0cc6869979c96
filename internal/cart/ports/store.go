package ports

import (
	"context"
	"errors"

	"github.com/dejobratic/vitrine/internal/cart/domain"
)

// CartStore persists one cart per browsing session. Implementations must
// treat a missing session as an empty cart, never as an error.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var (
	// ErrSessionRequired is returned when an operation is invoked without a session id.
	ErrSessionRequired = errors.New("session id is required")
)
