package file

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
)

type fakeGraph struct {
	rows    []map[string]any
	queries []string
}

func (f *fakeGraph) ReadQuery(_ context.Context, query string, _ map[string]any) ([]map[string]any, error) {
	f.queries = append(f.queries, query)
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
	f := FromProps(map[string]any{
		"id":          "file-1.bam",
		"identifiers": []any{"org.ns.file-1.bam"},
		"type":        "BAM",
		"size":        int64(123456789),
		"checksums":   map[string]any{"md5": "0123456789abcdef0123456789abcdef"},
	})

	if f.ID != "file-1.bam" || f.Type != "BAM" || f.Size != int64(123456789) {
		t.Fatalf("fields not mapped: %+v", f)
	}
	if f.Checksums["md5"] != "0123456789abcdef0123456789abcdef" {
		t.Fatalf("checksums not mapped: %v", f.Checksums)
	}

	empty := FromProps(map[string]any{"id": "file-2"})
	if empty.Checksums == nil || len(empty.Checksums) != 0 {
		t.Fatalf("absent checksums should default to an empty object, got %#v", empty.Checksums)
	}
}

func TestFileRoutes(t *testing.T) {
	fake := &fakeGraph{rows: []map[string]any{
		{"f": map[string]any{"id": "file-1.bam", "type": "BAM"}},
	}}
	e := newTestServer(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/file", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	files, ok := body["files"].([]any)
	if !ok || len(files) != 1 {
		t.Fatalf("files envelope missing: %v", body)
	}
	if !strings.Contains(fake.queries[0], "MATCH (f:File)") {
		t.Fatalf("query does not target File nodes: %s", fake.queries[0])
	}
}

// Files carry no diagnosis field, so the search routes must not exist.
func TestNoDiagnosisRoutes(t *testing.T) {
	e := newTestServer(&fakeGraph{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/file/diagnosis/search", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("diagnosis search should not be routed for files, got %d", rec.Code)
	}
}
