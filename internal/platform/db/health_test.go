package db

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakeGraph struct {
	err error
}

func (f *fakeGraph) Ping(ctx context.Context) error { return f.err }

type fakeCache struct {
	up bool
}

func (f *fakeCache) Ping(ctx context.Context) bool { return f.up }

func callHealth(t *testing.T, graph GraphPinger, cache CachePinger) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := HealthHandler(graph, cache)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec, body
}

func TestHealthHandler_Healthy(t *testing.T) {
	rec, body := callHealth(t, &fakeGraph{}, &fakeCache{up: true})

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected status healthy, got %v", body["status"])
	}
	if body["service"] != "ccdi-federation-service" {
		t.Errorf("expected service name, got %v", body["service"])
	}
	if body["graph"] != "up" {
		t.Errorf("expected graph up, got %v", body["graph"])
	}
	if body["cache"] != "up" {
		t.Errorf("expected cache up, got %v", body["cache"])
	}
}

func TestHealthHandler_GraphDown(t *testing.T) {
	rec, body := callHealth(t, &fakeGraph{err: errors.New("connection refused")}, &fakeCache{up: true})

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
	if body["status"] != "unhealthy" {
		t.Errorf("expected status unhealthy, got %v", body["status"])
	}
	if body["graph"] != "down" {
		t.Errorf("expected graph down, got %v", body["graph"])
	}
}

func TestHealthHandler_CacheDownStillHealthy(t *testing.T) {
	rec, body := callHealth(t, &fakeGraph{}, &fakeCache{up: false})

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 with cache down, got %d", rec.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected status healthy, got %v", body["status"])
	}
	if body["cache"] != "down" {
		t.Errorf("expected cache down, got %v", body["cache"])
	}
}

func TestHealthHandler_NoCacheConfigured(t *testing.T) {
	rec, body := callHealth(t, &fakeGraph{}, nil)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if _, present := body["cache"]; present {
		t.Error("cache key should be absent when no cache is configured")
	}
}
