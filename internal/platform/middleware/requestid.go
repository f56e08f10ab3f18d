package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader is the canonical request ID header.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a request ID to every request. An inbound X-Request-ID
// is propagated unchanged, otherwise a new one is generated. The ID is stored
// on the echo context for the logger and recovery middleware and echoed back
// in the response headers.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set("request_id", rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}
