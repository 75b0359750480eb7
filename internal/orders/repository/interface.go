// Package repository provides data access for orders and their items.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ErrDuplicateOrderNumber is returned by Create when the order number is taken.
var ErrDuplicateOrderNumber = errors.New("order number already exists")

// Order is a placed order header.
type Order struct {
	ID                    uuid.UUID
	OrderNumber           string
	InquiryID             *uuid.UUID
	UserID                *uuid.UUID
	DealerID              *uuid.UUID
	PublicSessionID       *string
	CompanyName           *string
	ContactNumber         *string
	DealerName            *string
	DealerEmail           *string
	DealerPhone           *string
	DeliveryAddress       *string
	RequestedDeliveryDate *time.Time
	Subtotal              decimal.Decimal
	Tax                   decimal.Decimal
	Total                 decimal.Decimal
	Status                string
	Notes                 *string
	DOGeneratedAt         *time.Time
	DOURL                 *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Item is one order line. Prices are fixed at placement.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   *uuid.UUID
	SKU         string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	Notes       *string
	CreatedAt   time.Time
}

// CreateItemParams is one line of a new order.
type CreateItemParams struct {
	ProductID   *uuid.UUID
	SKU         string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	Notes       *string
}

// CreateParams holds a new order with its lines.
type CreateParams struct {
	OrderNumber           string
	InquiryID             *uuid.UUID
	UserID                *uuid.UUID
	DealerID              *uuid.UUID
	PublicSessionID       *string
	CompanyName           *string
	ContactNumber         *string
	DealerName            *string
	DealerEmail           *string
	DealerPhone           *string
	DeliveryAddress       *string
	RequestedDeliveryDate *time.Time
	Subtotal              decimal.Decimal
	Tax                   decimal.Decimal
	Total                 decimal.Decimal
	Notes                 *string
	Items                 []CreateItemParams
}

// ListParams filters order listings. Zero values are ignored.
type ListParams struct {
	Status    string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	DealerID  *uuid.UUID
	Email     string
}

// Repository defines order data access.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Order, []Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (Order, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]Item, error)
	List(ctx context.Context, params ListParams) ([]Order, error)
	ListWithDeliveryOrders(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Order, error)
	StampDeliveryOrder(ctx context.Context, id uuid.UUID, documentKey *string) (Order, error)
}
