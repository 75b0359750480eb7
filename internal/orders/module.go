// Package orders provides the order bounded context module.
package orders

import (
	"wholesale_portal_backend/internal/events"
	apphttp "wholesale_portal_backend/internal/http"
	"wholesale_portal_backend/internal/orders/handler"
	"wholesale_portal_backend/internal/orders/repository"
	"wholesale_portal_backend/internal/orders/service"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the orders bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the orders module.
func NewModule(
	pool *pgxpool.Pool,
	catalog service.ProductLookup,
	inquiries service.InquiryLedger,
	dealers service.DealerContacts,
	eventBus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	svc := service.New(repository.New(pool), catalog, inquiries, dealers, eventBus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "orders"
}

// Service returns the order service for wiring documents and adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts order routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Dealer.POST("/orders/from-inquiry", m.handler.CreateFromInquiry)
	ctx.Dealer.POST("/orders/direct", m.handler.CreateDirect)
	ctx.Dealer.GET("/dealer/orders", m.handler.ListMine)
	ctx.Protected.GET("/orders/:id", m.handler.Get)

	ctx.Public.POST("/orders", m.handler.CreatePublic)
	ctx.Public.GET("/orders/number/:number", m.handler.GetByNumber)
	ctx.Public.GET("/orders/email/:email", m.handler.ListByEmail)

	ctx.Admin.GET("/orders", m.handler.List)
	ctx.Admin.GET("/orders/do-history", m.handler.DeliveryOrderHistory)
	ctx.Admin.PATCH("/orders/:id/status", m.handler.UpdateStatus)
	ctx.Admin.POST("/orders/:id/confirm", m.handler.Confirm)
	ctx.Admin.POST("/orders/:id/delivery-order", m.handler.GenerateDeliveryOrder)
	ctx.Admin.GET("/orders/:id/delivery-order/download", m.handler.DownloadDeliveryOrder)
}

var _ apphttp.Module = (*Module)(nil)
