// Package service assembles admin dashboard figures.
package service

import (
	"context"

	"wholesale_portal_backend/internal/dashboard/repository"
	"wholesale_portal_backend/internal/dashboard/transport"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/money"
)

// Service handles dashboard queries.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new dashboard service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Stats returns totals, pending counts and revenue from confirmed orders.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.log.DatabaseError("dashboard stats", err)
		return transport.StatsResponse{}, err
	}
	return transport.StatsResponse{
		TotalInquiries:   stats.TotalInquiries,
		TotalOrders:      stats.TotalOrders,
		PendingInquiries: stats.PendingInquiries,
		PendingOrders:    stats.PendingOrders,
		Revenue:          money.NewAmount(money.Round2(stats.Revenue)),
	}, nil
}
