package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemStore is an ephemeral in-process Store.
type MemStore struct {
	mu    sync.RWMutex
	items map[string]Item
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{items: make(map[string]Item)}
}

func (s *MemStore) GetItem(_ context.Context, ns string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[ns]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ns)
	}
	return it.Blob, nil
}

func (s *MemStore) SetItem(_ context.Context, ns, blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.items[ns]
	it.NS = ns
	it.Blob = blob
	it.Version++
	it.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	s.items[ns] = it
	return nil
}

func (s *MemStore) RemoveItem(_ context.Context, ns string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, ns)
	return nil
}

func (s *MemStore) Items(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].NS < items[j].NS })
	return items, nil
}

func (s *MemStore) Close() error {
	return nil
}
