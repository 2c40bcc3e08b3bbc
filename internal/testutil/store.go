package testutil

import (
	"context"
	"sort"
	"sync"

	ierr "github.com/coachportal/portalproxy/internal/errors"
)

// FilterFunc selects the items a List call returns
type FilterFunc[T any] func(ctx context.Context, item T) bool

// SortFunc reports whether i sorts before j
type SortFunc[T any] func(i, j T) bool

// InMemoryStore keeps items by id in insertion order. Ids are write-once.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	ids   map[string]struct{}
	items []T
}

func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		ids: make(map[string]struct{}),
	}
}

// Create appends item, failing with ErrAlreadyExists when id was used before
func (s *InMemoryStore[T]) Create(_ context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[id]; exists {
		return ierr.NewErrorf("item %s already exists", id).
			Mark(ierr.ErrAlreadyExists)
	}

	s.ids[id] = struct{}{}
	s.items = append(s.items, item)
	return nil
}

// List returns the items accepted by filterFn in insertion order, re-ordered
// by sortFn when one is given
func (s *InMemoryStore[T]) List(ctx context.Context, filterFn FilterFunc[T], sortFn SortFunc[T]) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item) {
			result = append(result, item)
		}
	}

	if sortFn != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}

	return result, nil
}

func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
	s.items = nil
}
