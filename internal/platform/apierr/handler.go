package apierr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler returns an echo error handler that renders every error as the
// federation error envelope. *Error values pass through with their kind and
// status, echo HTTP errors (unknown routes, rate limits, oversized bodies)
// keep their status under a mapped kind, and anything else is logged and
// collapsed into a generic InternalServerError.
func Handler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var apiErr *Error
		if !errors.As(err, &apiErr) {
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				apiErr = fromHTTPError(httpErr)
			} else {
				log.Error().
					Err(err).
					Str("method", c.Request().Method).
					Str("path", c.Request().URL.Path).
					Msg("unhandled error")
				apiErr = Internal()
			}
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(apiErr.Status()); err != nil {
				log.Error().Err(err).Msg("write error response")
			}
			return
		}
		if err := c.JSON(apiErr.Status(), Envelope{Errors: []*Error{apiErr}}); err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}

func fromHTTPError(httpErr *echo.HTTPError) *Error {
	message := http.StatusText(httpErr.Code)
	if s, ok := httpErr.Message.(string); ok && s != "" {
		message = s
	}

	kind := KindInvalidParameters
	switch {
	case httpErr.Code == http.StatusNotFound:
		kind = KindNotFound
	case httpErr.Code >= http.StatusInternalServerError:
		kind = KindInternalServerError
	}

	return &Error{Kind: kind, Message: message, status: httpErr.Code}
}
