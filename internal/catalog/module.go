// Package catalog provides the catalog bounded context module.
package catalog

import (
	"wholesale_portal_backend/internal/catalog/handler"
	"wholesale_portal_backend/internal/catalog/repository"
	"wholesale_portal_backend/internal/catalog/service"
	apphttp "wholesale_portal_backend/internal/http"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	return newModule(repository.New(pool), val, log)
}

func newModule(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	products := ctx.V1.Group("/products")
	products.GET("", m.handler.ListProducts)
	products.GET("/category/:category", m.handler.ListByCategory)
	products.GET("/search", m.handler.SearchProducts)
	products.GET("/smart-search", m.handler.SmartSearch)
	products.GET("/sku/:sku", m.handler.GetBySKU)

	adminGroup := ctx.Admin.Group("/products")
	adminGroup.GET("", m.handler.AdminListProducts)
	adminGroup.PATCH("/:sku/price", m.handler.UpdatePrice)
	adminGroup.PATCH("/:sku/stock", m.handler.UpdateStock)
	adminGroup.PATCH("/:sku/lead-time", m.handler.UpdateLeadTime)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
