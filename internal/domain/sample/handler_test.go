package sample

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ccdi/federation/internal/domain/entity"
	"github.com/ccdi/federation/internal/platform/apierr"
	"github.com/ccdi/federation/internal/platform/graph"
)

type fakeGraph struct {
	rows    []map[string]any
	queries []string
	params  []map[string]any
}

func (f *fakeGraph) ReadQuery(_ context.Context, query string, params map[string]any) ([]map[string]any, error) {
	f.queries = append(f.queries, query)
	f.params = append(f.params, params)
	return f.rows, nil
}

func newTestServer(exec entity.Executor) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apierr.Handler(zerolog.Nop())
	cfg := entity.Config{
		DefaultPerPage:     100,
		MaxPerPage:         1000,
		CountTTL:           time.Minute,
		SummaryTTL:         time.Minute,
		ShareLineLevelData: true,
	}
	h := NewHandler(exec, nil, cfg, zerolog.Nop())
	h.RegisterRoutes(e.Group("/api/v1"))
	return e
}

func TestFromProps(t *testing.T) {
	s := FromProps(map[string]any{
		"id":               "samp-1",
		"identifiers":      []any{"org.ns.samp-1"},
		"disease_phase":    "Initial Diagnosis",
		"anatomical_sites": "Bone Marrow",
		"diagnosis":        "AML",
		"age_at_diagnosis": int64(9),
	})

	if s.ID != "samp-1" || s.DiseasePhase != "Initial Diagnosis" || s.Diagnosis != "AML" {
		t.Fatalf("harmonized fields not mapped: %+v", s)
	}
	if len(s.AnatomicalSites) != 1 || s.AnatomicalSites[0] != "Bone Marrow" {
		t.Fatalf("scalar anatomical_sites not coerced to list: %v", s.AnatomicalSites)
	}
	if s.AgeAtDiagnosis != int64(9) {
		t.Fatalf("age_at_diagnosis = %#v", s.AgeAtDiagnosis)
	}
	if s.Metadata != nil || s.AdditionalFields != nil {
		t.Fatalf("no extras expected: %+v", s)
	}

	empty := FromProps(map[string]any{"id": "samp-2"})
	if empty.AnatomicalSites == nil || len(empty.AnatomicalSites) != 0 {
		t.Fatalf("absent anatomical_sites should default to an empty list, got %#v", empty.AnatomicalSites)
	}
}

func TestListEnvelopeAndFilters(t *testing.T) {
	fake := &fakeGraph{rows: []map[string]any{
		{"s": map[string]any{"id": "samp-1", "disease_phase": "Relapse"}},
	}}
	e := newTestServer(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sample?disease_phase=Relapse", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	samples, ok := body["samples"].([]any)
	if !ok || len(samples) != 1 {
		t.Fatalf("samples envelope missing: %v", body)
	}

	query := fake.queries[0]
	if !strings.Contains(query, "MATCH (s:Sample)") {
		t.Fatalf("query does not target Sample nodes: %s", query)
	}
	if !strings.Contains(query, "s.disease_phase") {
		t.Fatalf("disease_phase filter not translated: %s", query)
	}
}

func TestDiagnosisSearchTargetsDiagnosisField(t *testing.T) {
	fake := &fakeGraph{}
	e := newTestServer(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sample/diagnosis/search?search=neuroblastoma", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	query := fake.queries[0]
	if !strings.Contains(query, "s.diagnosis") {
		t.Fatalf("diagnosis predicate does not target s.diagnosis: %s", query)
	}
	if fake.params[0][graph.DiagnosisParam] != "neuroblastoma" {
		t.Fatalf("search term not bound: %v", fake.params[0])
	}
}

func TestCountByUnknownFieldRejected(t *testing.T) {
	fake := &fakeGraph{}
	e := newTestServer(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sample/by/sex/count", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(fake.queries) != 0 {
		t.Fatalf("rejected field should not reach the graph, ran %v", fake.queries)
	}
}
