package scoring

import "time"

// CloudCover holds the per-layer cloud percentages reported by the weather
// provider. Layers matter more than the total: high wispy cloud makes a
// sunset, low stratus kills it.
type CloudCover struct {
	Low  float64
	Mid  float64
	High float64
}

// Observation is a normalized snapshot of current conditions for one place.
type Observation struct {
	Clouds          CloudCover
	PrecipitationMM float64
	WindKPH         float64
	HumidityPct     float64
	FeelsLikeC      float64
	UVIndex         float64
	TemperatureC    float64
	Sunrise         time.Time
	Sunset          time.Time
	ObservedAt      time.Time
}

// Evaluation is the engine's verdict for one observation.
type Evaluation struct {
	Score     int
	Condition Condition
	Summary   string
}
