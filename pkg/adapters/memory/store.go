package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/errfix/pkg/domain"
	"github.com/google/uuid"
)

// Store implements ports.WalkStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Walk
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Walk),
	}
}

// Save persists a copy of the walk in memory.
func (s *Store) Save(ctx context.Context, w *domain.Walk) (string, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[w.ID] = w.Clone()
	return w.ID, nil
}

// Load retrieves a copy of the walk, so callers can't mutate the stored one.
func (s *Store) Load(ctx context.Context, id string) (*domain.Walk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.data[id]
	if !ok {
		return nil, domain.ErrWalkNotFound
	}
	return w.Clone(), nil
}

// Delete removes the walk.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored walk IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
