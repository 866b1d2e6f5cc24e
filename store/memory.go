package store

import (
	"context"
	"iter"
	"sync"

	"github.com/jacentio/items/item"
)

// MemoryStore keeps items in process memory. It satisfies the same contract
// as DynamoStore and is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]item.Item
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{items: make(map[string]item.Item)}
}

// Put stores it under id, failing with item.ErrConflict when ifNotExists is
// set and id is taken.
func (s *MemoryStore) Put(_ context.Context, id string, it item.Item, ifNotExists bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists && ifNotExists {
		return item.ErrConflict
	}
	it.ID = id
	s.items[id] = it
	return nil
}

// Get returns a copy of the item stored under id.
func (s *MemoryStore) Get(_ context.Context, id string) (item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return item.Item{}, &item.NotFoundError{ID: id}
	}
	return it, nil
}

// Replace overwrites an existing item.
func (s *MemoryStore) Replace(_ context.Context, id string, it item.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return &item.NotFoundError{ID: id}
	}
	it.ID = id
	s.items[id] = it
	return nil
}

// Delete removes an existing item.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return &item.NotFoundError{ID: id}
	}
	delete(s.items, id)
	return nil
}

// ScanAll yields a snapshot of the items taken when iteration starts.
func (s *MemoryStore) ScanAll(ctx context.Context) iter.Seq2[item.Item, error] {
	return func(yield func(item.Item, error) bool) {
		s.mu.RLock()
		snapshot := make([]item.Item, 0, len(s.items))
		for _, it := range s.items {
			snapshot = append(snapshot, it)
		}
		s.mu.RUnlock()

		for _, it := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(item.Item{}, err)
				return
			}
			if !yield(it, nil) {
				return
			}
		}
	}
}

// Len returns the number of stored items.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
