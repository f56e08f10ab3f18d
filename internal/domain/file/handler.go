package file

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ccdi/federation/internal/domain/entity"
	"github.com/ccdi/federation/internal/platform/graph"
)

// Handler serves the file endpoints. Files have no harmonized diagnosis
// field, so the diagnosis search routes are not registered for them.
type Handler struct {
	*entity.Handler[File]
}

// NewHandler wires the file repository and service onto the shared
// entity handler.
func NewHandler(exec entity.Executor, c entity.Cache, cfg entity.Config, log zerolog.Logger) *Handler {
	repo := entity.NewRepository(graph.KindFile, exec, FromProps, log)
	svc := entity.NewService[File](graph.KindFile, repo, c, cfg, log)
	return &Handler{entity.NewHandler(svc, cfg)}
}

// RegisterRoutes mounts the file routes under api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	h.Routes(api.Group("/file"))
}
