package astro

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// Calculator derives the sun's position for a coordinate pair. The scoring
// engine only needs elevation; azimuth is discarded.
type Calculator struct{}

// NewCalculator builds the solar position calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// ElevationAt returns the sun's elevation above the horizon in degrees at
// the given instant. Negative values mean the sun is below the horizon.
func (c *Calculator) ElevationAt(t time.Time, latitude, longitude float64) float64 {
	pos := suncalc.GetPosition(t, latitude, longitude)
	return pos.Altitude * 180 / math.Pi
}
