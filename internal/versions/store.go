package versions

import (
	"context"
	"sync"
)

// Store persists the user-saved versions as one ordered list. Writes replace
// the whole list, matching the widget's array-at-a-time persistence; seed
// entries never reach the store.
type Store interface {
	List(ctx context.Context) ([]DesignVersion, error)
	Replace(ctx context.Context, entries []DesignVersion) error
}

// InMemoryStore keeps versions in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []DesignVersion
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// List returns a copy of the stored entries.
func (s *InMemoryStore) List(ctx context.Context) ([]DesignVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DesignVersion, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Replace swaps the stored list.
func (s *InMemoryStore) Replace(ctx context.Context, entries []DesignVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]DesignVersion, len(entries))
	copy(s.entries, entries)
	return nil
}
