package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skylens/photogenic-sky/internal/domain/sensor"
	apperrors "github.com/skylens/photogenic-sky/pkg/errors"
)

// Handler wires the HTTP transport to the sensor domain.
type Handler struct {
	sensorSvc sensor.Service
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(sensorSvc sensor.Service, logger *slog.Logger) *Handler {
	return &Handler{
		sensorSvc: sensorSvc,
		logger:    logger.With("component", "http.handler"),
	}
}

type createLocationRequest struct {
	Query string `json:"query"`
}

// CreateLocation registers a new watched location from a free-text query.
func (h *Handler) CreateLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	loc, err := h.sensorSvc.AddLocation(c.Request.Context(), req.Query)
	if err != nil {
		abortWithError(c, locationError(err, "create_location_failed"))
		return
	}

	c.JSON(http.StatusCreated, loc)
}

// ListLocations returns every registered location.
func (h *Handler) ListLocations(c *gin.Context) {
	locs, err := h.sensorSvc.ListLocations(c.Request.Context())
	if err != nil {
		abortWithError(c, locationError(err, "list_locations_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locs})
}

// GetLocation returns one registered location.
func (h *Handler) GetLocation(c *gin.Context) {
	loc, err := h.sensorSvc.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, locationError(err, "get_location_failed"))
		return
	}
	c.JSON(http.StatusOK, loc)
}

// DeleteLocation removes a location and its snapshot.
func (h *Handler) DeleteLocation(c *gin.Context) {
	if err := h.sensorSvc.RemoveLocation(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, locationError(err, "delete_location_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

// RefreshLocation forces an immediate fetch-and-score for one location.
func (h *Handler) RefreshLocation(c *gin.Context) {
	reading, err := h.sensorSvc.Refresh(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, locationError(err, "refresh_failed"))
		return
	}
	c.JSON(http.StatusOK, reading)
}

// GetSensor returns one sensor reading.
func (h *Handler) GetSensor(c *gin.Context) {
	reading, err := h.sensorSvc.Reading(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, locationError(err, "sensor_read_failed"))
		return
	}
	c.JSON(http.StatusOK, reading)
}

// ListSensors returns every sensor reading; the dashboard surface.
func (h *Handler) ListSensors(c *gin.Context) {
	readings, err := h.sensorSvc.Readings(c.Request.Context())
	if err != nil {
		abortWithError(c, locationError(err, "sensor_read_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"sensors": readings})
}

// Healthz is the liveness probe.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// locationError maps domain error codes onto HTTP statuses.
func locationError(err error, fallbackCode string) *HTTPError {
	status := http.StatusInternalServerError
	code := fallbackCode
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "location_unresolved"):
		status = http.StatusUnprocessableEntity
		code = "location_unresolved"
	case apperrors.IsCode(err, "location_not_found"):
		status = http.StatusNotFound
		code = "location_not_found"
	case apperrors.IsCode(err, "geocode_error"), apperrors.IsCode(err, "weather_data_error"):
		status = http.StatusBadGateway
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
