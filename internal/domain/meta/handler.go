package meta

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ccdi/federation/internal/platform/graph"
)

// Handler serves the metadata field dictionaries and the node information
// endpoint.
type Handler struct {
	svc  *Service
	info Information
}

func NewHandler(svc *Service, info Information) *Handler {
	return &Handler{svc: svc, info: info}
}

// RegisterRoutes mounts the metadata routes under api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/info", h.Info)

	g := api.Group("/metadata/fields")
	g.GET("/subject", h.SubjectFields)
	g.GET("/sample", h.SampleFields)
	g.GET("/file", h.FileFields)
}

// -- Endpoints --

// Info returns static information about this federation node.
func (h *Handler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, InformationResponse{Information: h.info})
}

// SubjectFields returns the filterable fields for subjects.
func (h *Handler) SubjectFields(c echo.Context) error {
	return h.fields(c, graph.KindSubject)
}

// SampleFields returns the filterable fields for samples.
func (h *Handler) SampleFields(c echo.Context) error {
	return h.fields(c, graph.KindSample)
}

// FileFields returns the filterable fields for files.
func (h *Handler) FileFields(c echo.Context) error {
	return h.fields(c, graph.KindFile)
}

func (h *Handler) fields(c echo.Context, kind graph.Kind) error {
	resp, err := h.svc.FieldsFor(c.Request().Context(), kind)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
