package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Weather   WeatherConfig   `yaml:"weather"`
	Refresh   RefreshConfig   `yaml:"refresh"`
	Snapshots SnapshotsConfig `yaml:"snapshots"`
	Locations LocationsConfig `yaml:"locations"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Auth         AuthConfig      `yaml:"auth"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AuthConfig guards the mutating location endpoints.
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Secret  string `yaml:"secret"`
}

// WeatherConfig points at the Open-Meteo APIs.
type WeatherConfig struct {
	ForecastBaseURL   string        `yaml:"forecastBaseUrl"`
	GeocodingBaseURL  string        `yaml:"geocodingBaseUrl"`
	RequestTimeout    time.Duration `yaml:"requestTimeout"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	Burst             int           `yaml:"burst"`
}

// RefreshConfig drives the background collector.
type RefreshConfig struct {
	Interval     time.Duration `yaml:"interval"`
	CycleTimeout time.Duration `yaml:"cycleTimeout"`
}

// SnapshotsConfig controls how long sensor readings stay servable.
type SnapshotsConfig struct {
	TTL    time.Duration `yaml:"ttl"`
	Valkey ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared snapshot store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LocationsConfig covers persistence and optional startup seeding.
type LocationsConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Seed     []string       `yaml:"seed"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTrue(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_AUTH_ENABLED"); v != "" {
		cfg.HTTP.Auth.Enabled = isTrue(v)
	}
	if v := os.Getenv("HTTP_AUTH_SECRET"); v != "" {
		cfg.HTTP.Auth.Secret = v
	}
	if v := os.Getenv("WEATHER_FORECAST_BASE_URL"); v != "" {
		cfg.Weather.ForecastBaseURL = v
	}
	if v := os.Getenv("WEATHER_GEOCODING_BASE_URL"); v != "" {
		cfg.Weather.GeocodingBaseURL = v
	}
	if v := os.Getenv("WEATHER_REQUEST_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.RequestTimeout = parsed
		}
	}
	if v := os.Getenv("WEATHER_RPS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weather.RequestsPerSecond = parsed
		}
	}
	if v := os.Getenv("WEATHER_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Weather.Burst = parsed
		}
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Refresh.Interval = parsed
		}
	}
	if v := os.Getenv("REFRESH_CYCLE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Refresh.CycleTimeout = parsed
		}
	}
	if v := os.Getenv("SNAPSHOT_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Snapshots.TTL = parsed
		}
	}
	if v := os.Getenv("SNAPSHOT_VALKEY_ENABLED"); v != "" {
		cfg.Snapshots.Valkey.Enabled = isTrue(v)
	}
	if v := os.Getenv("SNAPSHOT_VALKEY_ADDR"); v != "" {
		cfg.Snapshots.Valkey.Addr = v
	}
	if v := os.Getenv("LOCATIONS_POSTGRES_DSN"); v != "" {
		cfg.Locations.Postgres.DSN = v
	}
	if v := os.Getenv("LOCATIONS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Locations.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("LOCATIONS_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Locations.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("LOCATIONS_SEED"); v != "" {
		seed := make([]string, 0)
		for _, part := range strings.Split(v, ";") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				seed = append(seed, trimmed)
			}
		}
		cfg.Locations.Seed = seed
	}
}

func isTrue(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Weather: WeatherConfig{
			ForecastBaseURL:  "https://api.open-meteo.com",
			GeocodingBaseURL: "https://geocoding-api.open-meteo.com",
			RequestTimeout:   10 * time.Second,
			// Open-Meteo's free tier tolerates modest traffic; one call per
			// second with a small burst covers the refresh fan-out.
			RequestsPerSecond: 1.0,
			Burst:             5,
		},
		Refresh: RefreshConfig{
			Interval:     15 * time.Minute,
			CycleTimeout: 2 * time.Minute,
		},
		Snapshots: SnapshotsConfig{
			// Twice the refresh interval: a dead collector surfaces as a
			// stale sensor instead of serving hours-old readings forever.
			TTL: 30 * time.Minute,
		},
		Locations: LocationsConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Auth.Enabled && strings.TrimSpace(c.HTTP.Auth.Secret) == "" {
		return errors.New("http.auth.secret cannot be empty when auth is enabled")
	}
	if c.Weather.ForecastBaseURL == "" {
		return errors.New("weather.forecastBaseUrl cannot be empty")
	}
	if c.Weather.GeocodingBaseURL == "" {
		return errors.New("weather.geocodingBaseUrl cannot be empty")
	}
	if c.Weather.RequestsPerSecond <= 0 {
		return errors.New("weather.requestsPerSecond must be positive")
	}
	if c.Weather.Burst <= 0 {
		return errors.New("weather.burst must be positive")
	}
	if c.Refresh.Interval <= 0 {
		return errors.New("refresh.interval must be positive")
	}
	if c.Snapshots.TTL < 0 {
		return errors.New("snapshots.ttl cannot be negative")
	}
	if c.Snapshots.Valkey.Enabled && strings.TrimSpace(c.Snapshots.Valkey.Addr) == "" {
		return errors.New("snapshots.valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
