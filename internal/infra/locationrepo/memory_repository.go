package locationrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/skylens/photogenic-sky/internal/domain/sensor"
)

// MemoryRepository keeps locations in process memory for tests and
// DSN-less deployments.
type MemoryRepository struct {
	mu   sync.RWMutex
	locs map[string]sensor.Location
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{locs: make(map[string]sensor.Location)}
}

func (r *MemoryRepository) Save(_ context.Context, loc sensor.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locs[loc.ID] = loc
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (sensor.Location, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc, ok := r.locs[id]
	return loc, ok, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]sensor.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]sensor.Location, 0, len(r.locs))
	for _, loc := range r.locs {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locs, id)
	return nil
}

var _ sensor.LocationRepository = (*MemoryRepository)(nil)
