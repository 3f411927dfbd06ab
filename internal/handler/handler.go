// internal/handler/handler.go

// Package handler exposes the discovery operations over HTTP.
package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	cerrors "discovery-service/internal/common/errors"
	"discovery-service/internal/common/logger"
	"discovery-service/internal/discovery"
	"discovery-service/internal/discovery/filter"
	"discovery-service/internal/geocode"
	"discovery-service/internal/models"
	"discovery-service/pkg/registry"
)

// Handler binds the discovery facade, geocoder and category registry to the
// HTTP surface.
type Handler struct {
	svc      *discovery.Service
	geocoder *geocode.Client
	registry *registry.CategoryRegistry
	logger   logger.Logger
}

func New(svc *discovery.Service, geocoder *geocode.Client, reg *registry.CategoryRegistry, log logger.Logger) *Handler {
	return &Handler{
		svc:      svc,
		geocoder: geocoder,
		registry: reg,
		logger:   log.WithFields(map[string]interface{}{"component": "handler"}),
	}
}

// envelope is the uniform response wrapper.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Retryable bool   `json:"retryable"`
}

// Nearby handles GET /api/v1/discovery/nearby.
func (h *Handler) Nearby(c echo.Context) error {
	center, err := requireCenter(c)
	if err != nil {
		return h.fail(c, err)
	}
	opts, err := parseFilterOptions(c)
	if err != nil {
		return h.fail(c, err)
	}

	page, err := h.svc.NearbySearch(c.Request().Context(), center, opts)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Data: page})
}

// Search handles GET /api/v1/discovery/search.
func (h *Handler) Search(c echo.Context) error {
	opts, err := parseFilterOptions(c)
	if err != nil {
		return h.fail(c, err)
	}

	var center *models.LocationReading
	if c.QueryParam("lat") != "" || c.QueryParam("lng") != "" {
		loc, err := requireCenter(c)
		if err != nil {
			return h.fail(c, err)
		}
		center = &loc
	}

	records, err := h.svc.TextSearch(c.Request().Context(), c.QueryParam("q"), center, opts)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Data: records})
}

// Featured handles GET /api/v1/discovery/featured.
func (h *Handler) Featured(c echo.Context) error {
	var center *models.LocationReading
	if c.QueryParam("lat") != "" || c.QueryParam("lng") != "" {
		loc, err := requireCenter(c)
		if err != nil {
			return h.fail(c, err)
		}
		center = &loc
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return h.fail(c, cerrors.NewInvalidArgumentError("limit must be an integer"))
		}
		limit = v
	}

	records, err := h.svc.FeaturedBusinesses(c.Request().Context(), center, limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Data: records})
}

// Categories handles GET /api/v1/categories and serves the active category
// reference data in display order.
func (h *Handler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: h.registry.Active()})
}

// Geocode handles GET /api/v1/geocode.
func (h *Handler) Geocode(c echo.Context) error {
	loc, err := h.geocoder.Resolve(c.Request().Context(), c.QueryParam("label"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Data: loc})
}

// Health handles GET /health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) fail(c echo.Context, err error) error {
	status := statusFor(err)
	body := &apiError{
		Code:      string(cerrors.ErrCodeInvalidArgument),
		Message:   err.Error(),
		Retryable: false,
	}

	var se *cerrors.StandardError
	if stderrors.As(err, &se) {
		body.Code = string(se.Code)
		body.Message = se.Message
		body.Details = se.Details
		body.Retryable = se.Retryable
	} else {
		body.Code = "INTERNAL"
		body.Message = "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", map[string]interface{}{
			"path":   c.Path(),
			"status": status,
			"error":  err.Error(),
		})
	}

	return c.JSON(status, envelope{Success: false, Error: body})
}

func statusFor(err error) int {
	switch cerrors.CodeOf(err) {
	case cerrors.ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case cerrors.ErrCodeCatalogUnavailable, cerrors.ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	case cerrors.ErrCodeGeocodeFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// requireCenter parses the mandatory lat and lng query parameters.
func requireCenter(c echo.Context) (models.LocationReading, error) {
	var zero models.LocationReading

	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return zero, cerrors.NewInvalidArgumentError("lat must be a number")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return zero, cerrors.NewInvalidArgumentError("lng must be a number")
	}

	return models.LocationReading{Latitude: lat, Longitude: lng}, nil
}

// parseFilterOptions reads the optional filter parameters shared by nearby
// and text search.
func parseFilterOptions(c echo.Context) (filter.Options, error) {
	var opts filter.Options

	if raw := c.QueryParam("radiusKm"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, cerrors.NewInvalidArgumentError("radiusKm must be a number")
		}
		opts.RadiusKm = v
	}
	if raw := c.QueryParam("type"); raw != "" {
		opts.InteractionType = models.InteractionType(raw)
	}
	opts.Category = c.QueryParam("category")
	if raw := c.QueryParam("openNow"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, cerrors.NewInvalidArgumentError("openNow must be a boolean")
		}
		opts.OpenNow = v
	}
	if raw := c.QueryParam("minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, cerrors.NewInvalidArgumentError("minRating must be a number")
		}
		opts.MinRating = v
	}
	if raw := c.QueryParam("delivery"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, cerrors.NewInvalidArgumentError("delivery must be a boolean")
		}
		opts.SupportsDelivery = &v
	}
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return opts, cerrors.NewInvalidArgumentError("limit must be an integer")
		}
		opts.Limit = v
	}
	if raw := c.QueryParam("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return opts, cerrors.NewInvalidArgumentError("offset must be an integer")
		}
		opts.Offset = v
	}

	return opts, nil
}
