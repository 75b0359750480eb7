// Package dealers provides the dealer accounts bounded context module.
package dealers

import (
	"wholesale_portal_backend/internal/dealers/handler"
	"wholesale_portal_backend/internal/dealers/repository"
	"wholesale_portal_backend/internal/dealers/service"
	apphttp "wholesale_portal_backend/internal/http"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the dealers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the dealers module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dealers"
}

// Service returns the dealer service for adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts dealer routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Dealer.GET("/dealer/profile", m.handler.GetProfile)
	ctx.Dealer.PATCH("/dealer/profile", m.handler.UpdateProfile)
}

var _ apphttp.Module = (*Module)(nil)
