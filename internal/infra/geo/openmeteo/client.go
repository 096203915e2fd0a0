package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skylens/photogenic-sky/internal/domain/sensor"
	apperrors "github.com/skylens/photogenic-sky/pkg/errors"
)

const defaultBaseURL = "https://geocoding-api.open-meteo.com"

// Client resolves place names and postal codes using the Open-Meteo
// geocoding API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a geocoding client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(u, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Resolve returns the best match for a free-text query. A query the upstream
// cannot match yields a location_unresolved error so callers can distinguish
// user error from upstream failure.
func (c *Client) Resolve(ctx context.Context, query string) (sensor.Place, error) {
	endpoint := fmt.Sprintf("%s/v1/search?name=%s&count=1&language=en&format=json",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return sensor.Place{}, fmt.Errorf("build geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sensor.Place{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return sensor.Place{}, fmt.Errorf("geocoding request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return sensor.Place{}, fmt.Errorf("decode geocoding response: %w", err)
	}
	if len(raw.Results) == 0 {
		return sensor.Place{}, apperrors.Wrap("location_unresolved", "no match for location query", nil)
	}

	best := raw.Results[0]
	name := best.Name
	if best.Admin1 != "" && !strings.EqualFold(best.Admin1, best.Name) {
		name = best.Name + ", " + best.Admin1
	}
	return sensor.Place{
		Name:      name,
		Country:   best.Country,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
		Timezone:  best.Timezone,
	}, nil
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Timezone  string  `json:"timezone"`
}

var _ sensor.Geocoder = (*Client)(nil)
