// Package repository reads aggregate figures for the admin dashboard.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"wholesale_portal_backend/platform/money"
)

// Stats are the headline counters shown to admins.
type Stats struct {
	TotalInquiries   int
	TotalOrders      int
	PendingInquiries int
	PendingOrders    int
	Revenue          decimal.Decimal
}

// Repository defines dashboard data access.
type Repository interface {
	Stats(ctx context.Context) (Stats, error)
}

// Repo implements Repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dashboard repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const statsQuery = `
	SELECT
		(SELECT COUNT(*) FROM inquiries),
		(SELECT COUNT(*) FROM orders),
		(SELECT COUNT(*) FROM inquiries WHERE status = 'pending'),
		(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
		(SELECT COALESCE(SUM(total), 0)::text FROM orders WHERE status = 'confirmed')`

// Stats computes all counters in one round trip.
func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	var revenue string
	if err := r.pool.QueryRow(ctx, statsQuery).Scan(
		&s.TotalInquiries, &s.TotalOrders, &s.PendingInquiries, &s.PendingOrders, &revenue,
	); err != nil {
		return Stats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	s.Revenue = money.Parse(revenue)
	return s, nil
}
