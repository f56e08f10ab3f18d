package entity

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/ccdi/federation/internal/platform/graph"
	"github.com/ccdi/federation/pkg/pagination"
)

// Handler serves the HTTP routes of one entity kind. The subject, sample
// and file handlers are instances of this one implementation; kinds without
// diagnosis search simply never register the diagnosis routes.
type Handler[T any] struct {
	svc *Service[T]
	def graph.Definition
	cfg Config
}

func NewHandler[T any](svc *Service[T], cfg Config) *Handler[T] {
	return &Handler[T]{svc: svc, def: svc.def, cfg: cfg}
}

// Routes registers the core entity routes on g. The static segments must
// stay registered alongside the identifier route; echo prefers static
// segments, so /summary and /by/... never capture as identifiers.
func (h *Handler[T]) Routes(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/summary", h.Summary)
	g.GET("/by/:field/count", h.CountByField)
	g.GET("/:org/:ns/:name", h.Get)
}

// DiagnosisRoutes registers the diagnosis search routes on g.
func (h *Handler[T]) DiagnosisRoutes(g *echo.Group) {
	g.GET("/diagnosis/search", h.DiagnosisSearch)
	g.GET("/diagnosis/by/:field/count", h.DiagnosisCountByField)
	g.GET("/diagnosis/summary", h.DiagnosisSummary)
}

// -- Endpoints --

func (h *Handler[T]) List(c echo.Context) error {
	return h.listPage(c, false)
}

func (h *Handler[T]) DiagnosisSearch(c echo.Context) error {
	return h.listPage(c, true)
}

func (h *Handler[T]) Get(c echo.Context) error {
	id := Identifier{
		Organization: c.Param("org"),
		Namespace:    c.Param("ns"),
		Name:         c.Param("name"),
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler[T]) CountByField(c echo.Context) error {
	return h.count(c, false)
}

func (h *Handler[T]) DiagnosisCountByField(c echo.Context) error {
	return h.count(c, true)
}

func (h *Handler[T]) Summary(c echo.Context) error {
	return h.summarize(c, false)
}

func (h *Handler[T]) DiagnosisSummary(c echo.Context) error {
	return h.summarize(c, true)
}

// -- Shared endpoint bodies --

func (h *Handler[T]) listPage(c echo.Context, search bool) error {
	page, err := pagination.FromContext(c, h.cfg.DefaultPerPage, h.cfg.MaxPerPage)
	if err != nil {
		return err
	}
	filters := h.filters(c, search)

	items, info, err := h.svc.List(c.Request().Context(), filters, page)
	if err != nil {
		return err
	}

	c.Response().Header().Set("Link", pagination.LinkHeader(baseURL(c), c.QueryParams(), info))
	return c.JSON(http.StatusOK, ListEnvelope[T]{
		Key:        h.def.Plural,
		Items:      items,
		Pagination: info,
	})
}

func (h *Handler[T]) count(c echo.Context, search bool) error {
	resp, err := h.svc.CountByField(c.Request().Context(), c.Param("field"), h.filters(c, search))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler[T]) summarize(c echo.Context, search bool) error {
	resp, err := h.svc.Summary(c.Request().Context(), h.filters(c, search))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// filters harvests the filterable query parameters: the kind's harmonized
// fields in declaration order, then every remaining non-control parameter
// in sorted order, so the derived query text and cache keys do not depend
// on query-string ordering. Repeated parameters become list-valued IN
// filters. Unknown parameters are forwarded, never dropped: the translator
// rejects them with UnsupportedField downstream. Only the pagination and
// search controls are withheld.
func (h *Handler[T]) filters(c echo.Context, search bool) *graph.FilterSet {
	filters := graph.NewFilterSet()
	params := c.QueryParams()

	if search {
		if term := c.QueryParam("search"); term != "" {
			filters.Set(graph.DiagnosisSearchKey, graph.Scalar(term))
		}
	}

	for _, field := range graph.HarmonizedFields(h.def.Kind) {
		if values, ok := params[field]; ok && len(values) > 0 {
			filters.Set(field, filterValue(values))
		}
	}

	var rest []string
	for name := range params {
		if isControlParam(name) {
			continue
		}
		if _, ok := filters.Get(name); ok {
			continue
		}
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		filters.Set(name, filterValue(params[name]))
	}

	return filters
}

// isControlParam reports whether a query parameter steers the request
// itself rather than naming a metadata field.
func isControlParam(name string) bool {
	switch name {
	case "page", "per_page", "search":
		return true
	}
	return false
}

func filterValue(values []string) graph.FilterValue {
	if len(values) > 1 {
		return graph.List(values...)
	}
	return graph.Scalar(values[0])
}

func baseURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host + c.Request().URL.Path
}

// ListEnvelope is the list and search response body. The entity array is
// keyed by the kind's plural name, so the envelope marshals itself instead
// of declaring three near-identical response structs.
type ListEnvelope[T any] struct {
	Key        string
	Items      []T
	Gateways   Gateways
	Pagination pagination.Info
}

func (e ListEnvelope[T]) MarshalJSON() ([]byte, error) {
	items := e.Items
	if items == nil {
		items = []T{}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	name, err := json.Marshal(e.Key)
	if err != nil {
		return nil, err
	}
	buf.Write(name)
	buf.WriteByte(':')

	body, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	buf.Write(body)

	if len(e.Gateways) > 0 {
		buf.WriteString(`,"gateways":`)
		if body, err = json.Marshal(e.Gateways); err != nil {
			return nil, err
		}
		buf.Write(body)
	}

	buf.WriteString(`,"pagination":`)
	if body, err = json.Marshal(e.Pagination); err != nil {
		return nil, err
	}
	buf.Write(body)

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
