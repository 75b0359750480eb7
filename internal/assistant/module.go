// Package assistant provides the dealer ordering assistant module.
package assistant

import (
	"wholesale_portal_backend/internal/assistant/handler"
	"wholesale_portal_backend/internal/assistant/service"
	apphttp "wholesale_portal_backend/internal/http"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/validator"
)

// Module is the assistant module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the assistant module. A nil responder keeps the route
// mounted and answers every chat with the apology message.
func NewModule(catalog service.ProductLister, responder service.Responder, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(catalog, responder, log)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assistant"
}

// RegisterRoutes mounts assistant routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Dealer.POST("/assistant/chat", m.handler.Chat)
}

var _ apphttp.Module = (*Module)(nil)
