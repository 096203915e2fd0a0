package openmeteo

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/skylens/photogenic-sky/internal/domain/scoring"
	"github.com/skylens/photogenic-sky/internal/domain/sensor"
)

// RateLimitedClient throttles forecast calls so the refresh fan-out stays
// inside Open-Meteo's courtesy limit regardless of how many locations are
// registered.
type RateLimitedClient struct {
	inner   sensor.WeatherClient
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps a weather client with a token bucket.
// rps may be fractional for slower-than-one-per-second budgets.
func NewRateLimitedClient(inner sensor.WeatherClient, rps float64, burst int) *RateLimitedClient {
	return &RateLimitedClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Current waits for limiter headroom, then forwards to the wrapped client.
func (r *RateLimitedClient) Current(ctx context.Context, latitude, longitude float64) (scoring.Observation, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return scoring.Observation{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.inner.Current(ctx, latitude, longitude)
}

var _ sensor.WeatherClient = (*RateLimitedClient)(nil)
