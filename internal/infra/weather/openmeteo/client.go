package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/skylens/photogenic-sky/internal/domain/scoring"
)

const defaultBaseURL = "https://api.open-meteo.com"

// currentParams is the exact variable set the scoring engine consumes.
const currentParams = "temperature_2m,relativehumidity_2m,apparent_temperature," +
	"precipitation,weathercode,cloudcover,cloudcover_low,cloudcover_mid," +
	"cloudcover_high,windspeed_10m,winddirection_10m,uv_index"

// Client fetches current conditions from the Open-Meteo forecast API.
// Open-Meteo needs no API key.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a forecast API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(url, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Current retrieves and normalizes the latest observation for a coordinate pair.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (scoring.Observation, error) {
	endpoint := fmt.Sprintf("%s/v1/forecast?latitude=%.4f&longitude=%.4f&current=%s&daily=sunrise,sunset&timezone=auto",
		c.baseURL, latitude, longitude, currentParams)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return scoring.Observation{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return scoring.Observation{}, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return scoring.Observation{}, fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return scoring.Observation{}, fmt.Errorf("read forecast response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return scoring.Observation{}, fmt.Errorf("decode forecast response: %w", err)
	}
	if raw.Error {
		return scoring.Observation{}, fmt.Errorf("forecast api error: %s", raw.Reason)
	}

	return normalize(raw), nil
}

type apiResponse struct {
	Error            bool    `json:"error"`
	Reason           string  `json:"reason"`
	Timezone         string  `json:"timezone"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds"`
	Current          current `json:"current"`
	Daily            daily   `json:"daily"`
}

type current struct {
	Time             string   `json:"time"`
	Temperature      float64  `json:"temperature_2m"`
	RelativeHumidity float64  `json:"relativehumidity_2m"`
	ApparentTemp     float64  `json:"apparent_temperature"`
	Precipitation    float64  `json:"precipitation"`
	CloudCoverLow    *float64 `json:"cloudcover_low"`
	CloudCoverMid    *float64 `json:"cloudcover_mid"`
	CloudCoverHigh   *float64 `json:"cloudcover_high"`
	WindSpeed        float64  `json:"windspeed_10m"`
	UVIndex          float64  `json:"uv_index"`
}

type daily struct {
	Sunrise []string `json:"sunrise"`
	Sunset  []string `json:"sunset"`
}

// normalize maps the wire payload onto a scoring observation. Missing cloud
// layers are treated as fully overcast so a partial payload can never inflate
// the score.
func normalize(raw apiResponse) scoring.Observation {
	loc := time.FixedZone(raw.Timezone, raw.UTCOffsetSeconds)
	return scoring.Observation{
		Clouds: scoring.CloudCover{
			Low:  cloudLayer(raw.Current.CloudCoverLow),
			Mid:  cloudLayer(raw.Current.CloudCoverMid),
			High: cloudLayer(raw.Current.CloudCoverHigh),
		},
		PrecipitationMM: raw.Current.Precipitation,
		WindKPH:         raw.Current.WindSpeed,
		HumidityPct:     raw.Current.RelativeHumidity,
		FeelsLikeC:      raw.Current.ApparentTemp,
		UVIndex:         raw.Current.UVIndex,
		TemperatureC:    raw.Current.Temperature,
		Sunrise:         parseLocalTime(first(raw.Daily.Sunrise), loc),
		Sunset:          parseLocalTime(first(raw.Daily.Sunset), loc),
		ObservedAt:      parseLocalTime(raw.Current.Time, loc),
	}
}

func cloudLayer(v *float64) float64 {
	if v == nil {
		return 100
	}
	return *v
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Open-Meteo returns zone-local timestamps without an offset.
const localTimeLayout = "2006-01-02T15:04"

func parseLocalTime(value string, loc *time.Location) time.Time {
	if strings.TrimSpace(value) == "" {
		return time.Time{}
	}
	ts, err := time.ParseInLocation(localTimeLayout, value, loc)
	if err != nil {
		return time.Time{}
	}
	return ts
}
