// internal/handler/routes.go
package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"discovery-service/internal/common/logger"
)

// NewServer builds the echo instance with middleware and routes wired.
func NewServer(h *Handler, log logger.Logger, requestTimeout time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	if requestTimeout > 0 {
		e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Timeout: requestTimeout,
		}))
	}

	e.GET("/health", h.Health)

	v1 := e.Group("/api/v1")
	v1.GET("/categories", h.Categories)
	v1.GET("/geocode", h.Geocode)

	disc := v1.Group("/discovery")
	disc.GET("/nearby", h.Nearby)
	disc.GET("/search", h.Search)
	disc.GET("/featured", h.Featured)

	return e
}

// requestLogger logs one line per request with the generated request id.
func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			log.Info("http request", map[string]interface{}{
				"requestId":  c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     c.Response().Status,
				"durationMs": time.Since(start).Milliseconds(),
			})
			return err
		}
	}
}
