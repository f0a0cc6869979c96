package memory

import (
	"context"
	"sync"

	"github.com/dejobratic/vitrine/internal/cart/domain"
)

// Store keeps carts in process memory, one per session. Useful for local
// development and tests; carts do not survive a restart.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewStore constructs a new in-memory cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*domain.Cart)}
}

// Get returns a copy of the session's cart, or an empty cart when the
// session has none yet.
func (s *Store) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[sessionID]
	if !ok {
		return domain.New(), nil
	}
	return cart.Clone(), nil
}

// Save stores a copy of the cart for the session.
func (s *Store) Save(_ context.Context, sessionID string, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = cart.Clone()
	return nil
}

// Delete discards the session's cart.
func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
