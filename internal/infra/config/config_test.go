package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 15*time.Minute, cfg.Refresh.Interval)
	require.Equal(t, 30*time.Minute, cfg.Snapshots.TTL)
	require.Equal(t, "https://api.open-meteo.com", cfg.Weather.ForecastBaseURL)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("WEATHER_RPS", "0.5")
	t.Setenv("LOCATIONS_SEED", "Bergen; Reykjavik ;")
	t.Setenv("HTTP_AUTH_ENABLED", "true")
	t.Setenv("HTTP_AUTH_SECRET", "s3cret")

	cfg := defaultConfig()
	applyEnvOverrides(cfg)

	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 5*time.Minute, cfg.Refresh.Interval)
	require.Equal(t, 0.5, cfg.Weather.RequestsPerSecond)
	require.Equal(t, []string{"Bergen", "Reykjavik"}, cfg.Locations.Seed)
	require.True(t, cfg.HTTP.Auth.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsAuthWithoutSecret(t *testing.T) {
	cfg := defaultConfig()
	cfg.HTTP.Auth.Enabled = true
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsValkeyWithoutAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.Snapshots.Valkey.Enabled = true
	require.Error(t, cfg.Validate())
}
