package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/skylens/photogenic-sky/internal/collector"
	"github.com/skylens/photogenic-sky/internal/domain/sensor"
	"github.com/skylens/photogenic-sky/internal/infra/config"
	geoopenmeteo "github.com/skylens/photogenic-sky/internal/infra/geo/openmeteo"
	"github.com/skylens/photogenic-sky/internal/infra/locationrepo"
	"github.com/skylens/photogenic-sky/internal/infra/sensorstore"
	"github.com/skylens/photogenic-sky/internal/infra/weather/openmeteo"
)

func provideSensorConfig(cfg *config.Config) sensor.Config {
	return sensor.Config{
		SnapshotTTL: cfg.Snapshots.TTL,
	}
}

func provideGeocoder(cfg *config.Config) sensor.Geocoder {
	return geoopenmeteo.NewClient(cfg.Weather.GeocodingBaseURL, cfg.Weather.RequestTimeout)
}

func provideWeatherClient(cfg *config.Config) sensor.WeatherClient {
	client := openmeteo.NewClient(cfg.Weather.ForecastBaseURL, cfg.Weather.RequestTimeout)
	return openmeteo.NewRateLimitedClient(client, cfg.Weather.RequestsPerSecond, cfg.Weather.Burst)
}

func provideCollector(cfg *config.Config, svc sensor.Service, logger *slog.Logger) *collector.Collector {
	return collector.New(svc, cfg.Refresh.Interval, cfg.Refresh.CycleTimeout, logger)
}

func provideLocationRepository(cfg *config.Config, logger *slog.Logger) sensor.LocationRepository {
	fallback := locationrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Locations.Postgres.DSN)
	if dsn == "" {
		logger.Info("locations postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Locations.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Locations.Postgres.MaxConns
	}
	if cfg.Locations.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Locations.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	repo := locationrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure locations schema, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("locations postgres repository enabled")
	return repo
}

func provideSnapshotStore(cfg *config.Config, logger *slog.Logger) sensor.SnapshotStore {
	if cfg.Snapshots.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return sensorstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return sensorstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("snapshot valkey store enabled", "addr", cfg.Snapshots.Valkey.Addr)
			return sensorstore.NewValkeyStore(client, "photogenic")
		}
	}
	return sensorstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Snapshots.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Snapshots.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Snapshots.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
