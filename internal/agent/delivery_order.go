package agent

import (
	"github.com/shopspring/decimal"

	"wholesale_portal_backend/platform/money"
)

// DeliveryOrderLine is a confirmed order line handed to the DO builder.
// Totals are never accepted from the caller.
type DeliveryOrderLine struct {
	SKU         string
	ProductName string
	Quantity    int
	Unit        string
	UnitPrice   decimal.Decimal
}

// DeliveryOrderInput carries the confirmed order fields.
type DeliveryOrderInput struct {
	OrderNumber           string
	DealerName            string
	DealerEmail           *string
	DealerPhone           *string
	DeliveryAddress       *string
	RequestedDeliveryDate *string
	Items                 []DeliveryOrderLine
	Notes                 *string
}

// DeliveryOrderItem is one printed DO line.
type DeliveryOrderItem struct {
	SKU         string       `json:"sku"`
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	Unit        string       `json:"unit"`
	UnitPrice   money.Amount `json:"unitPrice"`
	LineTotal   money.Amount `json:"lineTotal"`
}

// DeliveryOrderData is ready for document rendering.
type DeliveryOrderData struct {
	OrderNumber           string              `json:"orderNumber"`
	OrderDate             string              `json:"orderDate"`
	DealerName            string              `json:"dealerName"`
	DealerEmail           *string             `json:"dealerEmail,omitempty"`
	DealerPhone           *string             `json:"dealerPhone,omitempty"`
	DeliveryAddress       *string             `json:"deliveryAddress,omitempty"`
	RequestedDeliveryDate *string             `json:"requestedDeliveryDate,omitempty"`
	Items                 []DeliveryOrderItem `json:"items"`
	Subtotal              money.Amount        `json:"subtotal"`
	Tax                   money.Amount        `json:"tax"`
	Total                 money.Amount        `json:"total"`
	Notes                 *string             `json:"notes,omitempty"`
}

// BuildDeliveryOrder recomputes every total from the lines and stamps today's date.
func BuildDeliveryOrder(in DeliveryOrderInput, opts ...Option) DeliveryOrderData {
	o := applyOptions(opts)

	items := make([]DeliveryOrderItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for _, line := range in.Items {
		unit := line.Unit
		if unit == "" {
			unit = DefaultUnit
		}
		lineTotal := money.LineTotal(line.UnitPrice, line.Quantity)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, DeliveryOrderItem{
			SKU:         line.SKU,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Unit:        unit,
			UnitPrice:   money.NewAmount(line.UnitPrice),
			LineTotal:   money.NewAmount(lineTotal),
		})
	}
	tax := money.Tax(subtotal)

	return DeliveryOrderData{
		OrderNumber:           in.OrderNumber,
		OrderDate:             o.today(0),
		DealerName:            in.DealerName,
		DealerEmail:           in.DealerEmail,
		DealerPhone:           in.DealerPhone,
		DeliveryAddress:       in.DeliveryAddress,
		RequestedDeliveryDate: in.RequestedDeliveryDate,
		Items:                 items,
		Subtotal:              money.NewAmount(subtotal),
		Tax:                   money.NewAmount(tax),
		Total:                 money.NewAmount(subtotal.Add(tax)),
		Notes:                 in.Notes,
	}
}
