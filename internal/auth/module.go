// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	"context"

	"wholesale_portal_backend/internal/auth/handler"
	"wholesale_portal_backend/internal/auth/repository"
	"wholesale_portal_backend/internal/auth/service"
	apphttp "wholesale_portal_backend/internal/http"
	"wholesale_portal_backend/platform/config"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	cfg     config.AuthServiceConfig
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, dealers service.DealerDirectory, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), dealers, cfg, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		cfg:     cfg,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service.
func (m *Module) Service() *service.Service {
	return m.service
}

// Bootstrap seeds demo accounts when enabled.
func (m *Module) Bootstrap(ctx context.Context) error {
	if !m.cfg.ShouldSeedDemoAccounts() {
		return nil
	}
	return m.service.SeedDemoAccounts(ctx)
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.GET("/users/me", m.handler.GetMe)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
