// Package agent turns free-text dealer inquiries into priced, orderable data.
//
// It holds the inquiry parser (model path plus deterministic fallback), the
// pricing and availability reconciler, the delivery-order data builder and
// the smart catalog search. Storage, transport and rendering stay outside;
// the package only talks to the catalog through the Catalog port.
package agent

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"wholesale_portal_backend/platform/money"
)

// NotFoundSKU marks a pricing line that could not be matched to the catalog.
const NotFoundSKU = "NOT_FOUND"

// DefaultUnit is used when neither the catalog nor the inquiry names a unit.
const DefaultUnit = "pcs"

const dateLayout = "2006-01-02"

// Product is the catalog view consumed by parsing, pricing and search.
type Product struct {
	ID               uuid.UUID
	SKU              string
	Name             string
	Description      string
	Category         string
	UnitPrice        decimal.Decimal
	Unit             string
	StockQuantity    int
	MinOrderQuantity int
	LeadTimeDays     int
}

// Availability is the live stock answer for a SKU and requested quantity.
type Availability struct {
	Available         bool
	AvailableQuantity int
	LeadTimeDays      int
}

// Catalog is the read port onto the product store.
// FindBySKU returns an apperr NotFound error when the SKU is unknown or inactive.
type Catalog interface {
	FindBySKU(ctx context.Context, sku string) (Product, error)
	SearchByText(ctx context.Context, text string) ([]Product, error)
	ListActive(ctx context.Context) ([]Product, error)
	CheckAvailability(ctx context.Context, sku string, quantity int) (Availability, error)
}

// TextSearcher is the subset of Catalog used by SmartSearch.
type TextSearcher interface {
	SearchByText(ctx context.Context, text string) ([]Product, error)
}

// ParsedInquiryItem is one structured product request line.
type ParsedInquiryItem struct {
	ProductName string  `json:"productName"`
	ProductSKU  *string `json:"productSku,omitempty"`
	Quantity    int     `json:"quantity"`
	Unit        *string `json:"unit,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ParsedInquiry is the structured form of a raw inquiry.
// Items is never nil and Confidence is always within [0, 1].
type ParsedInquiry struct {
	DealerName            *string             `json:"dealerName,omitempty"`
	DealerEmail           *string             `json:"dealerEmail,omitempty"`
	DealerPhone           *string             `json:"dealerPhone,omitempty"`
	Items                 []ParsedInquiryItem `json:"items"`
	RequestedDeliveryDate *string             `json:"requestedDeliveryDate,omitempty"`
	DeliveryAddress       *string             `json:"deliveryAddress,omitempty"`
	GeneralNotes          *string             `json:"generalNotes,omitempty"`
	Confidence            float64             `json:"confidence"`
}

// PricingItem is one reconciled line of a quote.
type PricingItem struct {
	ProductName       string       `json:"productName"`
	ProductSKU        string       `json:"productSku"`
	RequestedQuantity int          `json:"requestedQuantity"`
	AvailableQuantity int          `json:"availableQuantity"`
	IsAvailable       bool         `json:"isAvailable"`
	UnitPrice         money.Amount `json:"unitPrice"`
	Unit              string       `json:"unit"`
	LineTotal         money.Amount `json:"lineTotal"`
	LeadTimeDays      int          `json:"leadTimeDays"`
	MinOrderQuantity  int          `json:"minOrderQuantity"`
	Notes             *string      `json:"notes,omitempty"`
}

// Resolved reports whether the line was matched to a catalog product.
func (i PricingItem) Resolved() bool {
	return i.ProductSKU != NotFoundSKU
}

// PricingResponse is the quote computed for a ParsedInquiry.
type PricingResponse struct {
	Items                []PricingItem `json:"items"`
	Subtotal             money.Amount  `json:"subtotal"`
	EstimatedTax         money.Amount  `json:"estimatedTax"`
	Total                money.Amount  `json:"total"`
	EarliestDeliveryDate string        `json:"earliestDeliveryDate"`
	AllItemsAvailable    bool          `json:"allItemsAvailable"`
	Message              string        `json:"message"`
}

// Option configures the clock used by the parser, pricer and DO builder.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides time.Now, making derived dates deterministic.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// today returns the current UTC date offset by days, as YYYY-MM-DD.
func (o options) today(days int) string {
	return o.now().UTC().AddDate(0, 0, days).Format(dateLayout)
}

func strPtr(s string) *string {
	return &s
}
