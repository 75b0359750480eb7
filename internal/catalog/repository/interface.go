// Package repository provides data access for the catalog domain.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a wholesale catalog entry.
type Product struct {
	ID               uuid.UUID
	SKU              string
	Name             string
	Description      *string
	Category         string
	UnitPrice        decimal.Decimal
	Unit             string
	StockQuantity    int
	MinOrderQuantity int
	LeadTimeDays     int
	ImageURL         *string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ProductWithOrderCount is a product plus the number of open orders
// (pending, confirmed, processing) that contain it.
type ProductWithOrderCount struct {
	Product
	ActiveOrderCount int
}

// Repository defines catalog data access.
type Repository interface {
	ListActive(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	GetBySKU(ctx context.Context, sku string) (Product, error)
	ListWithOrderCounts(ctx context.Context) ([]ProductWithOrderCount, error)
	UpdatePrice(ctx context.Context, sku string, unitPrice decimal.Decimal) (Product, error)
	UpdateStock(ctx context.Context, sku string, stockQuantity int) (Product, error)
	UpdateLeadTime(ctx context.Context, sku string, leadTimeDays int) (Product, error)
}
