// Package memory provides an in-memory ActionStore, mainly for tests and
// short-lived processes.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// Store implements ports.ActionStore in memory.
// Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	calls []domain.SerializedActionCall
}

// NewStore creates a new empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Append adds the call to the log.
func (s *Store) Append(ctx context.Context, call domain.SerializedActionCall) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	return nil
}

// List returns a copy of the log in append order.
func (s *Store) List(ctx context.Context) ([]domain.SerializedActionCall, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SerializedActionCall, len(s.calls))
	copy(out, s.calls)
	return out, nil
}

// Clear empties the log.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
	return nil
}
