package storage

import (
	"context"
	"sync"

	"janken/game"
)

// MemoryStore keeps tallies for the lifetime of the process.
type MemoryStore struct {
	mu      sync.Mutex
	tallies map[string]game.Tally
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tallies: make(map[string]game.Tally)}
}

// Load returns the tally stored under key.
func (s *MemoryStore) Load(_ context.Context, key string) (game.Tally, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tallies[key]
	return t, ok, nil
}

// Save stores tally under key.
func (s *MemoryStore) Save(_ context.Context, key string, tally game.Tally) error {
	if err := tally.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tallies[key] = tally
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
