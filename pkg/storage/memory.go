package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps snapshots in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	latest    string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]Snapshot),
	}
}

// Put stores the snapshot and marks it as the latest run.
func (s *MemoryStore) Put(ctx context.Context, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snapshot.ID] = snapshot
	s.latest = snapshot.ID
	return nil
}

// Get returns the snapshot with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[id]
	return snapshot, ok, nil
}

// GetLatest returns the most recently stored snapshot.
func (s *MemoryStore) GetLatest(ctx context.Context) (Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == "" {
		return Snapshot{}, false, nil
	}
	snapshot, ok := s.snapshots[s.latest]
	return snapshot, ok, nil
}
