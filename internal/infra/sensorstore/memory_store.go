package sensorstore

import (
	"context"
	"sync"
	"time"

	"github.com/skylens/photogenic-sky/internal/domain/sensor"
)

type entry struct {
	snap      sensor.Snapshot
	expiresAt time.Time
}

// MemoryStore is the in-process snapshot store for tests and single-node
// deployments.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]entry
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]entry)}
}

// Save stores a snapshot with an optional TTL.
func (s *MemoryStore) Save(_ context.Context, snap sensor.Snapshot, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.LocationID] = entry{snap: snap, expiresAt: exp}
	return nil
}

// Get returns the latest unexpired snapshot for a location.
func (s *MemoryStore) Get(_ context.Context, locationID string) (sensor.Snapshot, bool, error) {
	s.mu.RLock()
	e, ok := s.snaps[locationID]
	s.mu.RUnlock()
	if !ok {
		return sensor.Snapshot{}, false, nil
	}
	if hasExpired(e.expiresAt) {
		s.mu.Lock()
		delete(s.snaps, locationID)
		s.mu.Unlock()
		return sensor.Snapshot{}, false, nil
	}
	return e.snap, true, nil
}

// Delete drops a location's snapshot.
func (s *MemoryStore) Delete(_ context.Context, locationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, locationID)
	return nil
}

func hasExpired(expiresAt time.Time) bool {
	return !expiresAt.IsZero() && time.Now().After(expiresAt)
}

var _ sensor.SnapshotStore = (*MemoryStore)(nil)
