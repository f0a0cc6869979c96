package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dejobratic/vitrine/internal/uploads/ports"
)

// Store keeps uploaded objects in process memory. Useful for tests and
// running the admin UI without object storage.
type Store struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string][]byte
}

// NewStore constructs an in-memory blob store issuing URLs under baseURL.
func NewStore(baseURL string) *Store {
	return &Store{baseURL: baseURL, objects: make(map[string][]byte)}
}

// Put stores the object and returns its URL.
func (s *Store) Put(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read object: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = data

	return s.baseURL + "/" + objectName, nil
}

// Delete removes the object if present.
func (s *Store) Delete(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[objectName]; !ok {
		return ports.ErrNotFound
	}
	delete(s.objects, objectName)
	return nil
}

// Len reports the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
