package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func callHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subject", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	Handler(zerolog.Nop())(err, c)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if len(env.Errors) != 1 {
		t.Fatalf("expected one error, got %d", len(env.Errors))
	}
	return env
}

func TestHandlerRendersAPIError(t *testing.T) {
	rec := callHandler(t, UnsupportedField("bogus", "file"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Errors[0].Kind != KindUnsupportedField {
		t.Errorf("kind = %s", env.Errors[0].Kind)
	}
	if env.Errors[0].Field != "bogus" {
		t.Errorf("field = %q", env.Errors[0].Field)
	}
}

func TestHandlerWrapsUnknownErrors(t *testing.T) {
	rec := callHandler(t, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Errors[0].Kind != KindInternalServerError {
		t.Errorf("kind = %s", env.Errors[0].Kind)
	}
	if env.Errors[0].Message != "An internal error occurred." {
		t.Errorf("internal detail leaked: %q", env.Errors[0].Message)
	}
}

func TestHandlerMapsEchoErrors(t *testing.T) {
	rec := callHandler(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Errors[0].Kind != KindNotFound {
		t.Errorf("kind = %s", env.Errors[0].Kind)
	}

	rec = callHandler(t, echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"))
	env = decodeEnvelope(t, rec)
	if rec.Code != http.StatusTooManyRequests || env.Errors[0].Kind != KindInvalidParameters {
		t.Errorf("status/kind = %d/%s", rec.Code, env.Errors[0].Kind)
	}
}

func TestHandlerSkipsCommittedResponses(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := c.NoContent(http.StatusOK); err != nil {
		t.Fatalf("commit response: %v", err)
	}

	Handler(zerolog.Nop())(Internal(), c)
	if rec.Code != http.StatusOK {
		t.Errorf("committed response overwritten: %d", rec.Code)
	}
}
