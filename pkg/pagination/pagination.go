package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ccdi/federation/internal/platform/apierr"
)

const (
	DefaultPerPage = 100
	MaxPerPage     = 1000
)

// offsetReason is the reason string attached to every pagination validation
// error.
const offsetReason = "Unable to calculate offset."

// Request holds a validated, 1-based pagination window.
type Request struct {
	Page    int
	PerPage int
}

// Validate checks a pagination window. Out-of-range values are an error,
// never silently clamped: page and per_page must be at least 1 and per_page
// must not exceed maxPerPage.
func Validate(page, perPage, maxPerPage int) (Request, error) {
	var bad []string
	if page < 1 {
		bad = append(bad, "page")
	}
	if perPage < 1 || perPage > maxPerPage {
		bad = append(bad, "per_page")
	}
	if len(bad) > 0 {
		return Request{}, apierr.InvalidParameters(bad, offsetReason)
	}
	return Request{Page: page, PerPage: perPage}, nil
}

// FromContext reads page and per_page query parameters, applies defaults for
// absent ones, and validates the result. Non-numeric input fails the same
// way as an out-of-range value.
func FromContext(c echo.Context, defaultPerPage, maxPerPage int) (Request, error) {
	page, err := intParam(c, "page", 1)
	if err != nil {
		return Request{}, apierr.InvalidParameters([]string{"page"}, offsetReason)
	}
	perPage, err := intParam(c, "per_page", defaultPerPage)
	if err != nil {
		return Request{}, apierr.InvalidParameters([]string{"per_page"}, offsetReason)
	}
	return Validate(page, perPage, maxPerPage)
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// Offset returns the number of records to skip for this window.
func (r Request) Offset() int {
	return (r.Page - 1) * r.PerPage
}

// Limit returns the maximum number of records for this window.
func (r Request) Limit() int {
	return r.PerPage
}

// Info is the pagination block attached to list responses.
type Info struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	TotalPages *int   `json:"total_pages,omitempty"`
	TotalItems *int64 `json:"total_items,omitempty"`
	HasNext    *bool  `json:"has_next,omitempty"`
	HasPrev    bool   `json:"has_prev"`
}

// InfoForPage derives Info from a returned page without a count query.
// has_next is the "page came back full" heuristic: it can report one extra
// page when the total is an exact multiple of per_page, which is the price
// of not counting on every list request.
func InfoForPage(r Request, returned int) Info {
	hasNext := returned == r.PerPage
	return Info{
		Page:    r.Page,
		PerPage: r.PerPage,
		HasNext: &hasNext,
		HasPrev: r.Page > 1,
	}
}

// InfoFromTotal derives exact Info for callers that have run a count query.
func InfoFromTotal(r Request, totalItems int64) Info {
	totalPages := int((totalItems + int64(r.PerPage) - 1) / int64(r.PerPage))
	hasNext := r.Page < totalPages
	return Info{
		Page:       r.Page,
		PerPage:    r.PerPage,
		TotalPages: &totalPages,
		TotalItems: &totalItems,
		HasNext:    &hasNext,
		HasPrev:    r.Page > 1,
	}
}

// LinkHeader assembles the RFC 5988 Link header for a page: first always,
// last only when total_pages is known (guessing it without a count would be
// wrong), prev when a previous page exists, next when has_next reports one.
// Every link preserves the request's other query parameters and sets page
// and per_page explicitly.
func LinkHeader(baseURL string, query url.Values, info Info) string {
	params := url.Values{}
	for name, values := range query {
		if name == "page" {
			continue
		}
		params[name] = values
	}
	params.Set("per_page", strconv.Itoa(info.PerPage))

	link := func(page int, rel string) string {
		params.Set("page", strconv.Itoa(page))
		return fmt.Sprintf("<%s?%s>; rel=%q", baseURL, params.Encode(), rel)
	}

	links := []string{link(1, "first")}
	if info.TotalPages != nil {
		links = append(links, link(*info.TotalPages, "last"))
	}
	if info.HasPrev {
		links = append(links, link(info.Page-1, "prev"))
	}
	if info.HasNext != nil && *info.HasNext {
		links = append(links, link(info.Page+1, "next"))
	}
	return strings.Join(links, ", ")
}
