package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/justify/pkg/errors"
)

// MemoryStore keeps galleries in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	galleries map[string]Gallery
	now       func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		galleries: make(map[string]Gallery),
		now:       time.Now,
	}
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, g Gallery) (Gallery, error) {
	g, err := prepare(g, s.now())
	if err != nil {
		return Gallery{}, err
	}
	g.Items = slices.Clone(g.Items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.galleries[g.ID] = g
	return g, nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (Gallery, error) {
	if err := errors.ValidateGalleryID(id); err != nil {
		return Gallery{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.galleries[id]
	if !ok {
		return Gallery{}, notFound(id)
	}
	return g, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context, limit int) ([]Gallery, error) {
	s.mu.RLock()
	all := make([]Gallery, 0, len(s.galleries))
	for _, g := range s.galleries {
		all = append(all, g)
	}
	s.mu.RUnlock()

	slices.SortFunc(all, func(a, b Gallery) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit = listLimit(limit); len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if err := errors.ValidateGalleryID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.galleries[id]; !ok {
		return notFound(id)
	}
	delete(s.galleries, id)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
