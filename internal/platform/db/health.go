package db

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// GraphPinger reports whether the graph database is reachable.
type GraphPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger reports whether the cache backing store is reachable.
type CachePinger interface {
	Ping(ctx context.Context) bool
}

// HealthHandler returns the readiness endpoint. The graph database must be
// reachable for the service to report healthy. The cache is best effort, so
// a down cache is reported but never fails the check.
func HealthHandler(graph GraphPinger, cache CachePinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		body := map[string]any{
			"status":  "healthy",
			"service": "ccdi-federation-service",
		}

		if err := graph.Ping(ctx); err != nil {
			body["status"] = "unhealthy"
			body["graph"] = "down"
			body["error"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		body["graph"] = "up"

		if cache != nil {
			if cache.Ping(ctx) {
				body["cache"] = "up"
			} else {
				body["cache"] = "down"
			}
		}

		return c.JSON(http.StatusOK, body)
	}
}
