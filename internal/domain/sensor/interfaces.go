package sensor

import (
	"context"
	"time"

	"github.com/skylens/photogenic-sky/internal/domain/scoring"
)

// Geocoder resolves a free-text place query to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (Place, error)
}

// WeatherClient fetches current conditions for a coordinate pair.
type WeatherClient interface {
	Current(ctx context.Context, latitude, longitude float64) (scoring.Observation, error)
}

// SunCalculator provides the sun's elevation for the scoring engine.
type SunCalculator interface {
	ElevationAt(t time.Time, latitude, longitude float64) float64
}

// LocationRepository persists registered locations.
type LocationRepository interface {
	Save(ctx context.Context, loc Location) error
	Get(ctx context.Context, id string) (Location, bool, error)
	List(ctx context.Context) ([]Location, error)
	Delete(ctx context.Context, id string) error
}

// SnapshotStore keeps the latest reading per location.
type SnapshotStore interface {
	Save(ctx context.Context, snap Snapshot, ttl time.Duration) error
	Get(ctx context.Context, locationID string) (Snapshot, bool, error)
	Delete(ctx context.Context, locationID string) error
}
