package memory

import (
	"context"
	"sync"

	"github.com/dejobratic/vitrine/internal/idempotency"
)

// Store retains consumed form tokens for replaying duplicate submissions.
type Store struct {
	mu    sync.RWMutex
	items map[string]idempotency.Submission
}

// NewStore creates a new in-memory idempotency store.
func NewStore() *Store {
	return &Store{items: make(map[string]idempotency.Submission)}
}

// Get returns the stored submission for a given token if present.
func (s *Store) Get(_ context.Context, token string) (*idempotency.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[token]
	if !ok {
		return nil, nil
	}
	copy := value
	return &copy, nil
}

// Save stores or overwrites the submission for a token.
func (s *Store) Save(_ context.Context, token string, submission idempotency.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[token] = submission
	return nil
}
