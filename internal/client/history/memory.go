package history

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStore returns an in-process history store. Used in demo mode and
// in tests.
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memoryStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range Keys {
		delete(s.data, key)
	}
	return nil
}
