// Package inquiries provides the dealer inquiry bounded context module.
package inquiries

import (
	"wholesale_portal_backend/internal/events"
	apphttp "wholesale_portal_backend/internal/http"
	"wholesale_portal_backend/internal/inquiries/handler"
	"wholesale_portal_backend/internal/inquiries/repository"
	"wholesale_portal_backend/internal/inquiries/service"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the inquiries bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the inquiries module.
func NewModule(
	pool *pgxpool.Pool,
	parser service.Parser,
	pricer service.Pricer,
	contacts service.DealerContacts,
	eventBus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	svc := service.New(repository.New(pool), parser, pricer, contacts, eventBus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "inquiries"
}

// Service returns the inquiry service for adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts inquiry routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Dealer.POST("/inquiries", m.handler.Submit)
	ctx.Protected.POST("/inquiries/:id/pricing", m.handler.Price)
	ctx.Protected.GET("/inquiries/:id", m.handler.Get)
	ctx.Dealer.GET("/dealer/inquiries", m.handler.ListMine)

	ctx.Admin.GET("/inquiries", m.handler.List)
	ctx.Admin.PATCH("/inquiries/:id/status", m.handler.UpdateStatus)
}

var _ apphttp.Module = (*Module)(nil)
