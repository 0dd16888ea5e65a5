package catalog

import (
	"context"
	"sync"
)

// MemSnapshotStore keeps the snapshot in process memory. Used in tests and
// as the memory-only driver.
type MemSnapshotStore struct {
	mu    sync.RWMutex
	data  []Product
	saved bool

	// Saves counts Save calls; handy in tests.
	saves int
}

func NewMemSnapshotStore() *MemSnapshotStore {
	return &MemSnapshotStore{}
}

func (s *MemSnapshotStore) Ping(ctx context.Context) error { return nil }

func (s *MemSnapshotStore) Save(ctx context.Context, products []Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = cloneAll(products)
	s.saved = true
	s.saves++
	return nil
}

func (s *MemSnapshotStore) Load(ctx context.Context) ([]Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return nil, false, nil
	}
	return cloneAll(s.data), true, nil
}

func (s *MemSnapshotStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
