package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Coordinates for central London.
const (
	lat = 51.5074
	lon = -0.1278
)

func TestElevationAtNoonIsPositive(t *testing.T) {
	calc := NewCalculator()
	noon := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)

	elevation := calc.ElevationAt(noon, lat, lon)

	require.Greater(t, elevation, 40.0)
	require.LessOrEqual(t, elevation, 90.0)
}

func TestElevationAtMidnightIsNegative(t *testing.T) {
	calc := NewCalculator()
	midnight := time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)

	elevation := calc.ElevationAt(midnight, lat, lon)

	require.Less(t, elevation, -6.0)
	require.GreaterOrEqual(t, elevation, -90.0)
}

func TestElevationVariesWithLatitude(t *testing.T) {
	calc := NewCalculator()
	noon := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	equator := calc.ElevationAt(noon, 0, 0)
	arctic := calc.ElevationAt(noon, 78, 0)

	require.Greater(t, equator, arctic)
}
