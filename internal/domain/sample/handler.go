package sample

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ccdi/federation/internal/domain/entity"
	"github.com/ccdi/federation/internal/platform/graph"
)

// Handler serves the sample endpoints, including free-text diagnosis
// search over the harmonized diagnosis field.
type Handler struct {
	*entity.Handler[Sample]
}

// NewHandler wires the sample repository and service onto the shared
// entity handler.
func NewHandler(exec entity.Executor, c entity.Cache, cfg entity.Config, log zerolog.Logger) *Handler {
	repo := entity.NewRepository(graph.KindSample, exec, FromProps, log)
	svc := entity.NewService[Sample](graph.KindSample, repo, c, cfg, log)
	return &Handler{entity.NewHandler(svc, cfg)}
}

// RegisterRoutes mounts the sample routes under api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/sample")
	h.Routes(g)
	h.DiagnosisRoutes(g)
}
