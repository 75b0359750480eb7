package transport

import (
	"time"

	"github.com/google/uuid"

	"wholesale_portal_backend/internal/agent"
	"wholesale_portal_backend/platform/money"
)

// ItemRequest selects a catalog SKU and quantity.
type ItemRequest struct {
	SKU      string `json:"sku" validate:"required,max=50"`
	Quantity int    `json:"quantity" validate:"required,gt=0,lte=100000"`
}

// CreateFromInquiryRequest converts a quoted inquiry into an order.
// Items narrows the quote; when empty every resolved, available line is ordered.
type CreateFromInquiryRequest struct {
	InquiryID             uuid.UUID     `json:"inquiryId" validate:"required"`
	Items                 []ItemRequest `json:"items,omitempty" validate:"omitempty,max=200,dive"`
	DeliveryAddress       *string       `json:"deliveryAddress,omitempty" validate:"omitempty,max=500"`
	RequestedDeliveryDate *string       `json:"requestedDeliveryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes                 *string       `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CreateDirectRequest places a dealer order straight from the catalog.
type CreateDirectRequest struct {
	Items                 []ItemRequest `json:"items" validate:"required,min=1,max=200,dive"`
	DeliveryAddress       string        `json:"deliveryAddress" validate:"required,min=1,max=500"`
	RequestedDeliveryDate *string       `json:"requestedDeliveryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes                 *string       `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CreatePublicRequest is an anonymous checkout.
type CreatePublicRequest struct {
	SessionID             string        `json:"sessionId" validate:"required,min=1,max=100"`
	CompanyName           *string       `json:"companyName,omitempty" validate:"omitempty,max=200"`
	Email                 *string       `json:"email,omitempty" validate:"omitempty,email"`
	ContactNumber         *string       `json:"contactNumber,omitempty" validate:"omitempty,max=50"`
	DeliveryAddress       string        `json:"deliveryAddress" validate:"required,min=1,max=500"`
	RequestedDeliveryDate string        `json:"requestedDeliveryDate" validate:"required,datetime=2006-01-02"`
	Notes                 *string       `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Items                 []ItemRequest `json:"items" validate:"required,min=1,max=200,dive"`
}

type ListOrdersRequest struct {
	Status    string `form:"status" validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	Search    string `form:"search" validate:"max=200"`
	StartDate string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed processing shipped delivered cancelled"`
}

type PlaceOrderResponse struct {
	OrderID     uuid.UUID    `json:"orderId"`
	OrderNumber string       `json:"orderNumber"`
	InquiryID   *uuid.UUID   `json:"inquiryId,omitempty"`
	ItemCount   int          `json:"itemCount"`
	Total       money.Amount `json:"total"`
}

type OrderItemResponse struct {
	ID          uuid.UUID    `json:"id"`
	ProductID   *uuid.UUID   `json:"productId,omitempty"`
	SKU         string       `json:"sku"`
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	UnitPrice   money.Amount `json:"unitPrice"`
	LineTotal   money.Amount `json:"lineTotal"`
	Notes       *string      `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID                    uuid.UUID           `json:"id"`
	OrderNumber           string              `json:"orderNumber"`
	InquiryID             *uuid.UUID          `json:"inquiryId,omitempty"`
	DealerID              *uuid.UUID          `json:"dealerId,omitempty"`
	CompanyName           *string             `json:"companyName,omitempty"`
	ContactNumber         *string             `json:"contactNumber,omitempty"`
	DealerName            *string             `json:"dealerName,omitempty"`
	DealerEmail           *string             `json:"dealerEmail,omitempty"`
	DealerPhone           *string             `json:"dealerPhone,omitempty"`
	DeliveryAddress       *string             `json:"deliveryAddress,omitempty"`
	RequestedDeliveryDate *string             `json:"requestedDeliveryDate,omitempty"`
	Subtotal              money.Amount        `json:"subtotal"`
	Tax                   money.Amount        `json:"tax"`
	Total                 money.Amount        `json:"total"`
	Status                string              `json:"status"`
	Notes                 *string             `json:"notes,omitempty"`
	DOGeneratedAt         *time.Time          `json:"doGeneratedAt,omitempty"`
	HasDocument           bool                `json:"hasDocument"`
	CreatedAt             time.Time           `json:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
	Items                 []OrderItemResponse `json:"items,omitempty"`
}

type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
}

type DeliveryOrderResponse struct {
	Data        agent.DeliveryOrderData `json:"data"`
	DocumentURL *string                 `json:"documentUrl,omitempty"`
}

type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
