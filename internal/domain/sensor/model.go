package sensor

import (
	"fmt"
	"math"
	"time"

	"github.com/skylens/photogenic-sky/internal/domain/scoring"
)

// Location is a place the service watches. Each one backs exactly one sensor.
type Location struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
}

// Place is a geocoding result before it becomes a stored Location.
type Place struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
	Timezone  string
}

// Snapshot is the latest scored observation for a location.
type Snapshot struct {
	LocationID      string    `json:"locationId"`
	Score           int       `json:"score"`
	Condition       string    `json:"condition"`
	Summary         string    `json:"summary"`
	SunElevation    float64   `json:"sunElevation"`
	CloudLow        float64   `json:"cloudLow"`
	CloudMid        float64   `json:"cloudMid"`
	CloudHigh       float64   `json:"cloudHigh"`
	UVIndex         float64   `json:"uvIndex"`
	PrecipitationMM float64   `json:"precipitationMm"`
	WindKPH         float64   `json:"windKph"`
	HumidityPct     float64   `json:"humidityPct"`
	FeelsLikeC      float64   `json:"feelsLikeC"`
	Sunrise         time.Time `json:"sunrise"`
	Sunset          time.Time `json:"sunset"`
	ObservedAt      time.Time `json:"observedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Reading is the sensor surface serialized to API consumers: the score as
// state plus the attribute set dashboards consume.
type Reading struct {
	LocationID string     `json:"locationId"`
	Name       string     `json:"name"`
	State      int        `json:"state"`
	Unit       string     `json:"unit"`
	Attributes Attributes `json:"attributes"`
}

// Attributes mirrors the documented sensor attribute names.
type Attributes struct {
	PhotogenicSummary string  `json:"photogenic_summary"`
	LightingCondition string  `json:"lighting_condition"`
	SunElevation      float64 `json:"sun_elevation"`
	CloudCoverLow     string  `json:"cloud_cover_low"`
	CloudCoverMid     string  `json:"cloud_cover_mid"`
	CloudCoverHigh    string  `json:"cloud_cover_high"`
	UVIndex           float64 `json:"uv_index"`
	PrecipitationMM   float64 `json:"precipitation_mm"`
	WindKPH           float64 `json:"wind_kph"`
	Humidity          string  `json:"humidity"`
	FeelsLikeC        string  `json:"feels_like_c"`
	Sunrise           string  `json:"sunrise"`
	Sunset            string  `json:"sunset"`
	LastUpdated       string  `json:"last_updated"`
}

// NewReading formats a snapshot into the sensor surface for a location.
func NewReading(loc Location, snap Snapshot) Reading {
	return Reading{
		LocationID: loc.ID,
		Name:       loc.Name,
		State:      snap.Score,
		Unit:       "%",
		Attributes: Attributes{
			PhotogenicSummary: snap.Summary,
			LightingCondition: snap.Condition,
			SunElevation:      round2(snap.SunElevation),
			CloudCoverLow:     percent(snap.CloudLow),
			CloudCoverMid:     percent(snap.CloudMid),
			CloudCoverHigh:    percent(snap.CloudHigh),
			UVIndex:           snap.UVIndex,
			PrecipitationMM:   snap.PrecipitationMM,
			WindKPH:           round1(snap.WindKPH),
			Humidity:          percent(snap.HumidityPct),
			FeelsLikeC:        fmt.Sprintf("%.1f°C", snap.FeelsLikeC),
			Sunrise:           formatTime(snap.Sunrise),
			Sunset:            formatTime(snap.Sunset),
			LastUpdated:       formatTime(snap.ObservedAt),
		},
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// snapshotFrom folds an observation and its evaluation into a snapshot.
func snapshotFrom(loc Location, obs scoring.Observation, elevation float64, eval scoring.Evaluation, now time.Time) Snapshot {
	return Snapshot{
		LocationID:      loc.ID,
		Score:           eval.Score,
		Condition:       eval.Condition.String(),
		Summary:         eval.Summary,
		SunElevation:    elevation,
		CloudLow:        obs.Clouds.Low,
		CloudMid:        obs.Clouds.Mid,
		CloudHigh:       obs.Clouds.High,
		UVIndex:         obs.UVIndex,
		PrecipitationMM: obs.PrecipitationMM,
		WindKPH:         obs.WindKPH,
		HumidityPct:     obs.HumidityPct,
		FeelsLikeC:      obs.FeelsLikeC,
		Sunrise:         obs.Sunrise,
		Sunset:          obs.Sunset,
		ObservedAt:      obs.ObservedAt,
		UpdatedAt:       now,
	}
}
