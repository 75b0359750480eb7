package transport

import (
	"github.com/google/uuid"

	"wholesale_portal_backend/platform/money"
)

// Products

type SearchProductsRequest struct {
	Query string `form:"q" validate:"required,min=1,max=200"`
}

type UpdatePriceRequest struct {
	UnitPrice money.Amount `json:"unitPrice"`
}

type UpdateStockRequest struct {
	StockQuantity *int `json:"stockQuantity" validate:"required,min=0"`
}

type UpdateLeadTimeRequest struct {
	LeadTimeDays *int `json:"leadTimeDays" validate:"required,min=0,max=365"`
}

type ProductResponse struct {
	ID               uuid.UUID    `json:"id"`
	SKU              string       `json:"sku"`
	Name             string       `json:"name"`
	Description      *string      `json:"description,omitempty"`
	Category         string       `json:"category"`
	UnitPrice        money.Amount `json:"unitPrice"`
	Unit             string       `json:"unit"`
	StockQuantity    int          `json:"stockQuantity"`
	MinOrderQuantity int          `json:"minOrderQuantity"`
	LeadTimeDays     int          `json:"leadTimeDays"`
	ImageURL         *string      `json:"imageUrl,omitempty"`
	IsActive         bool         `json:"isActive"`
	CreatedAt        string       `json:"createdAt"`
	UpdatedAt        string       `json:"updatedAt"`
}

type AdminProductResponse struct {
	ProductResponse
	ActiveOrderCount int `json:"activeOrderCount"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

type AdminProductListResponse struct {
	Items []AdminProductResponse `json:"items"`
	Total int                    `json:"total"`
}
