package sensor

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skylens/photogenic-sky/internal/domain/scoring"
	apperrors "github.com/skylens/photogenic-sky/pkg/errors"
	"github.com/skylens/photogenic-sky/pkg/util"
)

// Service exposes location management and the sensor reading surface.
type Service interface {
	AddLocation(ctx context.Context, query string) (Location, error)
	ListLocations(ctx context.Context) ([]Location, error)
	GetLocation(ctx context.Context, id string) (Location, error)
	RemoveLocation(ctx context.Context, id string) error
	Refresh(ctx context.Context, id string) (Reading, error)
	RefreshAll(ctx context.Context) error
	Reading(ctx context.Context, id string) (Reading, error)
	Readings(ctx context.Context) ([]Reading, error)
}

// Config tunes the sensor domain.
type Config struct {
	SnapshotTTL time.Duration
}

type service struct {
	cfg      Config
	geocoder Geocoder
	weather  WeatherClient
	sun      SunCalculator
	repo     LocationRepository
	store    SnapshotStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the sensor domain.
func NewService(cfg Config, geocoder Geocoder, weather WeatherClient, sun SunCalculator, repo LocationRepository, store SnapshotStore, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		geocoder: geocoder,
		weather:  weather,
		sun:      sun,
		repo:     repo,
		store:    store,
		logger:   logger.With("component", "sensor.service"),
		now:      util.NowUTC,
	}
}

func (s *service) AddLocation(ctx context.Context, query string) (Location, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return Location{}, apperrors.Wrap("invalid_input", "location query cannot be empty", nil)
	}

	place, err := s.geocoder.Resolve(ctx, trimmed)
	if err != nil {
		if apperrors.IsCode(err, "location_unresolved") {
			return Location{}, err
		}
		return Location{}, apperrors.Wrap("geocode_error", "failed to resolve location", err)
	}

	loc := Location{
		ID:        uuid.NewString(),
		Query:     trimmed,
		Name:      place.Name,
		Country:   place.Country,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Timezone:  place.Timezone,
		CreatedAt: s.now(),
	}
	if err := s.repo.Save(ctx, loc); err != nil {
		return Location{}, apperrors.Wrap("storage_error", "failed to store location", err)
	}
	s.logger.Info("location registered", "id", loc.ID, "name", loc.Name, "lat", loc.Latitude, "lon", loc.Longitude)

	// First refresh happens inline so the sensor is readable immediately.
	// A failed fetch is not fatal: the collector retries on its next cycle.
	if _, err := s.refreshLocation(ctx, loc); err != nil {
		s.logger.Warn("initial refresh failed", "id", loc.ID, "error", err)
	}
	return loc, nil
}

func (s *service) ListLocations(ctx context.Context) ([]Location, error) {
	locs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list locations", err)
	}
	return locs, nil
}

func (s *service) GetLocation(ctx context.Context, id string) (Location, error) {
	return s.lookup(ctx, id)
}

func (s *service) RemoveLocation(ctx context.Context, id string) error {
	loc, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, loc.ID); err != nil {
		return apperrors.Wrap("storage_error", "failed to delete location", err)
	}
	if err := s.store.Delete(ctx, loc.ID); err != nil {
		s.logger.Warn("failed to drop snapshot", "id", loc.ID, "error", err)
	}
	s.logger.Info("location removed", "id", loc.ID, "name", loc.Name)
	return nil
}

func (s *service) Refresh(ctx context.Context, id string) (Reading, error) {
	loc, err := s.lookup(ctx, id)
	if err != nil {
		return Reading{}, err
	}
	snap, err := s.refreshLocation(ctx, loc)
	if err != nil {
		return Reading{}, err
	}
	return NewReading(loc, snap), nil
}

func (s *service) RefreshAll(ctx context.Context) error {
	locs, err := s.repo.List(ctx)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to list locations", err)
	}

	var wg sync.WaitGroup
	for _, loc := range locs {
		wg.Add(1)
		go func(loc Location) {
			defer wg.Done()
			if _, err := s.refreshLocation(ctx, loc); err != nil {
				s.logger.Error("refresh failed", "id", loc.ID, "name", loc.Name, "error", err)
			}
		}(loc)
	}
	wg.Wait()
	return nil
}

func (s *service) Reading(ctx context.Context, id string) (Reading, error) {
	loc, err := s.lookup(ctx, id)
	if err != nil {
		return Reading{}, err
	}
	snap, found, err := s.store.Get(ctx, loc.ID)
	if err != nil {
		return Reading{}, apperrors.Wrap("storage_error", "failed to load snapshot", err)
	}
	if !found {
		// Cold cache: fetch on demand rather than serving nothing.
		snap, err = s.refreshLocation(ctx, loc)
		if err != nil {
			return Reading{}, err
		}
	}
	return NewReading(loc, snap), nil
}

func (s *service) Readings(ctx context.Context) ([]Reading, error) {
	locs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list locations", err)
	}
	readings := make([]Reading, 0, len(locs))
	for _, loc := range locs {
		snap, found, err := s.store.Get(ctx, loc.ID)
		if err != nil {
			return nil, apperrors.Wrap("storage_error", "failed to load snapshot", err)
		}
		if !found {
			continue
		}
		readings = append(readings, NewReading(loc, snap))
	}
	return readings, nil
}

func (s *service) lookup(ctx context.Context, id string) (Location, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return Location{}, apperrors.Wrap("invalid_input", "location id cannot be empty", nil)
	}
	if _, err := uuid.Parse(trimmed); err != nil {
		return Location{}, apperrors.Wrap("invalid_input", "location id must be a UUID", err)
	}
	loc, found, err := s.repo.Get(ctx, trimmed)
	if err != nil {
		return Location{}, apperrors.Wrap("storage_error", "failed to load location", err)
	}
	if !found {
		return Location{}, apperrors.Wrap("location_not_found", "location not found", nil)
	}
	return loc, nil
}

func (s *service) refreshLocation(ctx context.Context, loc Location) (Snapshot, error) {
	obs, err := s.weather.Current(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return Snapshot{}, apperrors.Wrap("weather_data_error", "failed to fetch weather data", err)
	}

	now := s.now()
	elevation := s.sun.ElevationAt(now, loc.Latitude, loc.Longitude)
	eval := scoring.Evaluate(obs, elevation)

	snap := snapshotFrom(loc, obs, elevation, eval, now)
	if err := s.store.Save(ctx, snap, s.cfg.SnapshotTTL); err != nil {
		return Snapshot{}, apperrors.Wrap("storage_error", "failed to store snapshot", err)
	}
	s.logger.Info("sensor refreshed", "id", loc.ID, "name", loc.Name, "score", snap.Score, "condition", snap.Condition)
	return snap, nil
}
