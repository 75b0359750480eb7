// Package dashboard provides the admin dashboard module.
package dashboard

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "wholesale_portal_backend/internal/http"
	"wholesale_portal_backend/internal/dashboard/handler"
	"wholesale_portal_backend/internal/dashboard/repository"
	"wholesale_portal_backend/internal/dashboard/service"
	"wholesale_portal_backend/platform/logger"
)

// Module is the dashboard module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the dashboard module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	return &Module{handler: handler.New(service.New(repository.New(pool), log))}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts dashboard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/dashboard/stats", m.handler.Stats)
}

var _ apphttp.Module = (*Module)(nil)
