package repository

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.Mutex
	visits map[string]int
}

// NewMemoryStore is used when no Redis is configured. Counters are lost on
// restart.
func NewMemoryStore() Store {
	return &memoryStore{visits: make(map[string]int)}
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visits[sessionID], nil
}

func (s *memoryStore) Set(_ context.Context, sessionID string, visits int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits[sessionID] = visits
	return nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.visits, sessionID)
	return nil
}
