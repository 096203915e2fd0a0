package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/skylens/photogenic-sky/internal/domain/sensor"
	"github.com/skylens/photogenic-sky/internal/infra/config"
	apperrors "github.com/skylens/photogenic-sky/pkg/errors"
)

func TestRouter_CreateLocationSuccess(t *testing.T) {
	loc := sensor.Location{ID: "0b4c5a52-31a0-4f0a-8a37-6f2aa0a0c001", Query: "Bergen", Name: "Bergen"}
	svc := &stubSensorService{
		addFn: func(ctx context.Context, query string) (sensor.Location, error) {
			require.Equal(t, "Bergen", query)
			return loc, nil
		},
	}

	recorder := performRequest(t, newRouterUnderTest(t, svc, nil), http.MethodPost, "/api/v1/locations", `{"query":"Bergen"}`, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var got sensor.Location
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, loc, got)
}

func TestRouter_CreateLocationUnresolved(t *testing.T) {
	svc := &stubSensorService{
		addFn: func(ctx context.Context, query string) (sensor.Location, error) {
			return sensor.Location{}, apperrors.Wrap("location_unresolved", "no match for location query", nil)
		},
	}

	recorder := performRequest(t, newRouterUnderTest(t, svc, nil), http.MethodPost, "/api/v1/locations", `{"query":"xyzzy"}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "location_unresolved", errBody["error"]["code"])
}

func TestRouter_CreateLocationInvalidJSON(t *testing.T) {
	svc := &stubSensorService{}

	recorder := performRequest(t, newRouterUnderTest(t, svc, nil), http.MethodPost, "/api/v1/locations", `{"query":123}`, "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_GetLocation(t *testing.T) {
	loc := sensor.Location{ID: "0b4c5a52-31a0-4f0a-8a37-6f2aa0a0c001", Name: "Bergen"}
	svc := &stubSensorService{
		getFn: func(ctx context.Context, id string) (sensor.Location, error) {
			require.Equal(t, loc.ID, id)
			return loc, nil
		},
	}

	recorder := performRequest(t, newRouterUnderTest(t, svc, nil), http.MethodGet, "/api/v1/locations/"+loc.ID, "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var got sensor.Location
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, loc, got)
}

func TestRouter_GetSensorSuccess(t *testing.T) {
	reading := sensor.Reading{
		LocationID: "0b4c5a52-31a0-4f0a-8a37-6f2aa0a0c001",
		Name:       "Bergen",
		State:      72,
		Unit:       "%",
		Attributes: sensor.Attributes{
			PhotogenicSummary: "Golden Hour: Stunning sunset potential! High clouds are catching the light.",
			LightingCondition: "Golden Hour",
			CloudCoverLow:     "10%",
		},
	}
	svc := &stubSensorService{
		readingFn: func(ctx context.Context, id string) (sensor.Reading, error) {
			require.Equal(t, reading.LocationID, id)
			return reading, nil
		},
	}

	recorder := performRequest(t, newRouterUnderTest(t, svc, nil), http.MethodGet, "/api/v1/sensors/"+reading.LocationID, "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var got sensor.Reading
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, reading, got)
	require.Contains(t, recorder.Body.String(), `"photogenic_summary"`)
	require.Contains(t, recorder.Body.String(), `"lighting_condition"`)
}

func TestRouter_GetSensorNotFound(t *testing.T) {
	svc := &stubSensorService{
		readingFn: func(ctx context.Context, id string) (sensor.Reading, error) {
			return sensor.Reading{}, apperrors.Wrap("location_not_found", "location not found", nil)
		},
	}

	recorder := performRequest(t, newRouterUnderTest(t, svc, nil), http.MethodGet, "/api/v1/sensors/unknown", "", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRouter_GetSensorWeatherFailure(t *testing.T) {
	svc := &stubSensorService{
		readingFn: func(ctx context.Context, id string) (sensor.Reading, error) {
			return sensor.Reading{}, apperrors.Wrap("weather_data_error", "failed to fetch weather data", nil)
		},
	}

	recorder := performRequest(t, newRouterUnderTest(t, svc, nil), http.MethodGet, "/api/v1/sensors/any", "", "")
	require.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestRouter_ListSensors(t *testing.T) {
	svc := &stubSensorService{
		readingsFn: func(ctx context.Context) ([]sensor.Reading, error) {
			return []sensor.Reading{{Name: "Bergen", State: 50}}, nil
		},
	}

	recorder := performRequest(t, newRouterUnderTest(t, svc, nil), http.MethodGet, "/api/v1/sensors", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"sensors"`)
}

func TestRouter_DeleteLocation(t *testing.T) {
	var deleted string
	svc := &stubSensorService{
		removeFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	recorder := performRequest(t, newRouterUnderTest(t, svc, nil), http.MethodDelete, "/api/v1/locations/abc", "", "")
	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Equal(t, "abc", deleted)
}

func TestRouter_AuthGuardsMutatingRoutes(t *testing.T) {
	authCfg := &config.AuthConfig{Enabled: true, Secret: "test-secret"}
	svc := &stubSensorService{
		addFn: func(ctx context.Context, query string) (sensor.Location, error) {
			return sensor.Location{Name: query}, nil
		},
		readingsFn: func(ctx context.Context) ([]sensor.Reading, error) {
			return nil, nil
		},
	}
	router := newRouterUnderTest(t, svc, authCfg)

	// No token: rejected.
	recorder := performRequest(t, router, http.MethodPost, "/api/v1/locations", `{"query":"Bergen"}`, "")
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Wrong secret: rejected.
	recorder = performRequest(t, router, http.MethodPost, "/api/v1/locations", `{"query":"Bergen"}`, signToken(t, "other-secret"))
	require.Equal(t, http.StatusForbidden, recorder.Code)

	// Valid token: accepted.
	recorder = performRequest(t, router, http.MethodPost, "/api/v1/locations", `{"query":"Bergen"}`, signToken(t, "test-secret"))
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Read routes stay open.
	recorder = performRequest(t, router, http.MethodGet, "/api/v1/sensors", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_Healthz(t *testing.T) {
	recorder := performRequest(t, newRouterUnderTest(t, &stubSensorService{}, nil), http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
}

func newRouterUnderTest(t *testing.T, svc sensor.Service, auth *config.AuthConfig) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.HTTP.Address = ":0"
	cfg.HTTP.ReadTimeout = time.Second
	cfg.HTTP.WriteTimeout = time.Second
	if auth != nil {
		cfg.HTTP.Auth = *auth
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := NewRouter(cfg, NewHandler(svc, logger))
	return server.Handler
}

func performRequest(t *testing.T, handler http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func decodeErrorBody(t *testing.T, payload []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(payload, &body))
	return body
}

type stubSensorService struct {
	addFn      func(ctx context.Context, query string) (sensor.Location, error)
	listFn     func(ctx context.Context) ([]sensor.Location, error)
	getFn      func(ctx context.Context, id string) (sensor.Location, error)
	removeFn   func(ctx context.Context, id string) error
	refreshFn  func(ctx context.Context, id string) (sensor.Reading, error)
	readingFn  func(ctx context.Context, id string) (sensor.Reading, error)
	readingsFn func(ctx context.Context) ([]sensor.Reading, error)
}

func (s *stubSensorService) AddLocation(ctx context.Context, query string) (sensor.Location, error) {
	if s.addFn == nil {
		return sensor.Location{}, nil
	}
	return s.addFn(ctx, query)
}

func (s *stubSensorService) ListLocations(ctx context.Context) ([]sensor.Location, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s *stubSensorService) GetLocation(ctx context.Context, id string) (sensor.Location, error) {
	if s.getFn == nil {
		return sensor.Location{}, nil
	}
	return s.getFn(ctx, id)
}

func (s *stubSensorService) RemoveLocation(ctx context.Context, id string) error {
	if s.removeFn == nil {
		return nil
	}
	return s.removeFn(ctx, id)
}

func (s *stubSensorService) Refresh(ctx context.Context, id string) (sensor.Reading, error) {
	if s.refreshFn == nil {
		return sensor.Reading{}, nil
	}
	return s.refreshFn(ctx, id)
}

func (s *stubSensorService) RefreshAll(ctx context.Context) error {
	return nil
}

func (s *stubSensorService) Reading(ctx context.Context, id string) (sensor.Reading, error) {
	if s.readingFn == nil {
		return sensor.Reading{}, nil
	}
	return s.readingFn(ctx, id)
}

func (s *stubSensorService) Readings(ctx context.Context) ([]sensor.Reading, error) {
	if s.readingsFn == nil {
		return nil, nil
	}
	return s.readingsFn(ctx)
}
