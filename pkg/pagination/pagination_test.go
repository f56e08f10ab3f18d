package pagination

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ccdi/federation/internal/platform/apierr"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		perPage    int
		max        int
		wantErr    bool
		wantParams []string
	}{
		{"zero page", 0, 10, 100, true, []string{"page"}},
		{"negative page", -3, 10, 100, true, []string{"page"}},
		{"zero per_page", 1, 0, 100, true, []string{"per_page"}},
		{"per_page over max", 1, 101, 100, true, []string{"per_page"}},
		{"both invalid", 0, 0, 100, true, []string{"page", "per_page"}},
		{"valid", 2, 10, 100, false, nil},
		{"per_page at max", 1, 100, 100, false, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := Validate(tc.page, tc.perPage, tc.max)
			if tc.wantErr {
				var apiErr *apierr.Error
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected *apierr.Error, got %v", err)
				}
				if apiErr.Kind != apierr.KindInvalidParameters {
					t.Errorf("kind = %s", apiErr.Kind)
				}
				if !reflect.DeepEqual(apiErr.Parameters, tc.wantParams) {
					t.Errorf("parameters = %v, want %v", apiErr.Parameters, tc.wantParams)
				}
				if apiErr.Reason != "Unable to calculate offset." {
					t.Errorf("reason = %q", apiErr.Reason)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Page != tc.page || req.PerPage != tc.perPage {
				t.Errorf("request = %+v", req)
			}
		})
	}
}

func TestOffsetLimit(t *testing.T) {
	r := Request{Page: 2, PerPage: 10}
	if r.Offset() != 10 || r.Limit() != 10 {
		t.Errorf("offset/limit = %d/%d", r.Offset(), r.Limit())
	}
	first := Request{Page: 1, PerPage: 100}
	if first.Offset() != 0 {
		t.Errorf("first page offset = %d", first.Offset())
	}
}

func TestFromContext(t *testing.T) {
	e := echo.New()
	ctx := func(query string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/subject"+query, nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("defaults", func(t *testing.T) {
		r, err := FromContext(ctx(""), 100, 1000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Page != 1 || r.PerPage != 100 {
			t.Errorf("request = %+v", r)
		}
	})

	t.Run("explicit", func(t *testing.T) {
		r, err := FromContext(ctx("?page=3&per_page=25"), 100, 1000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Page != 3 || r.PerPage != 25 {
			t.Errorf("request = %+v", r)
		}
	})

	t.Run("non numeric page", func(t *testing.T) {
		_, err := FromContext(ctx("?page=abc"), 100, 1000)
		var apiErr *apierr.Error
		if !errors.As(err, &apiErr) || len(apiErr.Parameters) == 0 || apiErr.Parameters[0] != "page" {
			t.Fatalf("expected page error, got %v", err)
		}
	})

	t.Run("per_page over max", func(t *testing.T) {
		if _, err := FromContext(ctx("?per_page=2000"), 100, 1000); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestInfoForPageHeuristic(t *testing.T) {
	full := InfoForPage(Request{Page: 2, PerPage: 10}, 10)
	if full.HasNext == nil || !*full.HasNext {
		t.Error("full page should report has_next")
	}
	if !full.HasPrev {
		t.Error("page 2 should report has_prev")
	}
	if full.TotalPages != nil || full.TotalItems != nil {
		t.Error("heuristic info must not invent totals")
	}

	short := InfoForPage(Request{Page: 1, PerPage: 10}, 3)
	if short.HasNext == nil || *short.HasNext {
		t.Error("short page should not report has_next")
	}
	if short.HasPrev {
		t.Error("page 1 should not report has_prev")
	}
}

func TestInfoFromTotal(t *testing.T) {
	info := InfoFromTotal(Request{Page: 2, PerPage: 10}, 45)
	if info.TotalPages == nil || *info.TotalPages != 5 {
		t.Fatalf("total_pages = %v", info.TotalPages)
	}
	if info.TotalItems == nil || *info.TotalItems != 45 {
		t.Fatalf("total_items = %v", info.TotalItems)
	}
	if info.HasNext == nil || !*info.HasNext || !info.HasPrev {
		t.Errorf("has_next/has_prev = %v/%v", info.HasNext, info.HasPrev)
	}

	last := InfoFromTotal(Request{Page: 5, PerPage: 10}, 45)
	if *last.HasNext {
		t.Error("last page should not report has_next")
	}
}

func TestLinkHeaderAllRels(t *testing.T) {
	info := InfoFromTotal(Request{Page: 2, PerPage: 10}, 45)
	header := LinkHeader("https://x/api/v1/subject", url.Values{}, info)

	entries := strings.Split(header, ", ")
	if len(entries) != 4 {
		t.Fatalf("expected 4 links, got %d: %s", len(entries), header)
	}

	wantPages := map[string]string{
		`rel="first"`: "page=1",
		`rel="last"`:  "page=5",
		`rel="prev"`:  "page=1",
		`rel="next"`:  "page=3",
	}
	for rel, page := range wantPages {
		found := false
		for _, entry := range entries {
			if strings.Contains(entry, rel) {
				found = true
				if !strings.Contains(entry, page) {
					t.Errorf("%s link has wrong page: %s", rel, entry)
				}
				if !strings.Contains(entry, "per_page=10") {
					t.Errorf("%s link missing per_page: %s", rel, entry)
				}
			}
		}
		if !found {
			t.Errorf("missing %s in %s", rel, header)
		}
	}
}

func TestLinkHeaderOmitsUnknowable(t *testing.T) {
	hasNext := true
	info := Info{Page: 1, PerPage: 10, HasNext: &hasNext}
	header := LinkHeader("https://x/api/v1/file", url.Values{}, info)

	if strings.Contains(header, `rel="last"`) {
		t.Errorf("last must be omitted without total_pages: %s", header)
	}
	if strings.Contains(header, `rel="prev"`) {
		t.Errorf("prev must be omitted on page 1: %s", header)
	}
	if !strings.Contains(header, `rel="first"`) || !strings.Contains(header, `rel="next"`) {
		t.Errorf("expected first and next: %s", header)
	}
}

func TestLinkHeaderPreservesQuery(t *testing.T) {
	query := url.Values{}
	query.Set("sex", "F")
	query.Set("page", "2")

	info := InfoForPage(Request{Page: 2, PerPage: 10}, 10)
	header := LinkHeader("https://x/api/v1/subject", query, info)

	for _, entry := range strings.Split(header, ", ") {
		if !strings.Contains(entry, "sex=F") {
			t.Errorf("filter parameter dropped: %s", entry)
		}
		if strings.Count(entry, "page=") != 2 {
			// one page= plus one per_page=
			t.Errorf("unexpected page params in %s", entry)
		}
	}
}
