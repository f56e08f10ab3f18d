package namespace

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves the namespace discovery endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the namespace routes under api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/namespace")
	g.GET("", h.ListNamespaces)
	g.GET("/:organization/:namespace", h.GetNamespace)
}

// -- Endpoints --

// ListNamespaces returns every organization/namespace pair present in the
// graph as a bare array.
func (h *Handler) ListNamespaces(c echo.Context) error {
	namespaces, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, namespaces)
}

// GetNamespace returns the detail for one namespace.
func (h *Handler) GetNamespace(c echo.Context) error {
	detail, err := h.svc.Get(c.Request().Context(), c.Param("organization"), c.Param("namespace"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}
