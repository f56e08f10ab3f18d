package subject

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ccdi/federation/internal/domain/entity"
	"github.com/ccdi/federation/internal/platform/graph"
)

// Handler serves the subject endpoints, including free-text diagnosis
// search over associated diagnoses.
type Handler struct {
	*entity.Handler[Subject]
}

// NewHandler wires the subject repository and service onto the shared
// entity handler.
func NewHandler(exec entity.Executor, c entity.Cache, cfg entity.Config, log zerolog.Logger) *Handler {
	repo := entity.NewRepository(graph.KindSubject, exec, FromProps, log)
	svc := entity.NewService[Subject](graph.KindSubject, repo, c, cfg, log)
	return &Handler{entity.NewHandler(svc, cfg)}
}

// RegisterRoutes mounts the subject routes under api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/subject")
	h.Routes(g)
	h.DiagnosisRoutes(g)
}
