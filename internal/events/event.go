// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"wholesale_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// Event names, shared with the notification module and task payloads.
const (
	NameOrderPlaced            = "orders.order.placed"
	NameOrderStatusChanged     = "orders.order.status_changed"
	NameDeliveryOrderGenerated = "orders.delivery_order.generated"
	NameInquiryParsed          = "inquiries.inquiry.parsed"
)

// =============================================================================
// Orders Domain Events
// =============================================================================

// OrderPlaced is published after an order and its items are committed.
type OrderPlaced struct {
	BaseEvent
	OrderID      uuid.UUID  `json:"orderId"`
	OrderNumber  string     `json:"orderNumber"`
	DealerID     *uuid.UUID `json:"dealerId,omitempty"`
	InquiryID    *uuid.UUID `json:"inquiryId,omitempty"`
	CompanyName  string     `json:"companyName"`
	ContactEmail string     `json:"contactEmail,omitempty"`
	ItemCount    int        `json:"itemCount"`
	Total        string     `json:"total"`
	Channel      string     `json:"channel"` // inquiry, direct or public
}

func (e OrderPlaced) EventName() string { return NameOrderPlaced }

// OrderStatusChanged is published when an admin moves an order along its lifecycle.
type OrderStatusChanged struct {
	BaseEvent
	OrderID      uuid.UUID  `json:"orderId"`
	OrderNumber  string     `json:"orderNumber"`
	DealerID     *uuid.UUID `json:"dealerId,omitempty"`
	CompanyName  string     `json:"companyName"`
	ContactEmail string     `json:"contactEmail,omitempty"`
	OldStatus    string     `json:"oldStatus"`
	NewStatus    string     `json:"newStatus"`
}

func (e OrderStatusChanged) EventName() string { return NameOrderStatusChanged }

// DeliveryOrderGenerated is published once a delivery-order document is stamped on an order.
type DeliveryOrderGenerated struct {
	BaseEvent
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	DocumentKey string    `json:"documentKey,omitempty"`
}

func (e DeliveryOrderGenerated) EventName() string { return NameDeliveryOrderGenerated }

// =============================================================================
// Inquiries Domain Events
// =============================================================================

// InquiryParsed is published after a submitted inquiry has been parsed and stored.
type InquiryParsed struct {
	BaseEvent
	InquiryID   uuid.UUID `json:"inquiryId"`
	DealerID    uuid.UUID `json:"dealerId"`
	ParseSource string    `json:"parseSource"`
	ItemCount   int       `json:"itemCount"`
	Confidence  float64   `json:"confidence"`
}

func (e InquiryParsed) EventName() string { return NameInquiryParsed }
