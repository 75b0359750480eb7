package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/money"
)

const (
	notFoundNote     = "Product not found in catalog. Please contact sales for assistance."
	noProductsMsg    = "No products were identified in your inquiry. Please specify the products and quantities you need."
	deliveryBuffer   = 1
	minLeadTimeDays  = 1
	allAvailableTmpl = "Great news! All %d item(s) are available. Your order total is %s with earliest delivery on %s."
	partialTmpl      = "%d of %d items are available. Some items have availability issues: %s. Please review the details below."
)

// Pricer reconciles parsed items against the live catalog.
type Pricer struct {
	catalog Catalog
	log     *logger.Logger
	opts    options
}

// NewPricer creates a pricer reading from catalog.
func NewPricer(catalog Catalog, log *logger.Logger, opts ...Option) *Pricer {
	return &Pricer{catalog: catalog, log: log, opts: applyOptions(opts)}
}

// Price builds a fresh quote. Catalog failures degrade individual lines and
// never fail the quote as a whole.
func (p *Pricer) Price(ctx context.Context, inquiry ParsedInquiry) PricingResponse {
	items := make([]PricingItem, 0, len(inquiry.Items))
	subtotal := decimal.Zero
	maxLead := 0
	allAvailable := true

	for _, requested := range inquiry.Items {
		product, ok := p.resolve(ctx, requested)
		if !ok {
			items = append(items, unresolvedItem(requested))
			allAvailable = false
			continue
		}

		item := p.pricedItem(ctx, product, requested.Quantity)
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal.Decimal)
		maxLead = max(maxLead, product.LeadTimeDays)
		if !item.IsAvailable {
			allAvailable = false
		}
	}

	tax := money.Tax(subtotal)
	total := subtotal.Add(tax)
	earliest := p.opts.today(max(maxLead, minLeadTimeDays) + deliveryBuffer)

	return PricingResponse{
		Items:                items,
		Subtotal:             money.NewAmount(subtotal),
		EstimatedTax:         money.NewAmount(tax),
		Total:                money.NewAmount(total),
		EarliestDeliveryDate: earliest,
		AllItemsAvailable:    allAvailable,
		Message:              pricingMessage(items, allAvailable, total, earliest),
	}
}

// resolve tries the SKU first, then the first text-search hit for the name.
func (p *Pricer) resolve(ctx context.Context, item ParsedInquiryItem) (Product, bool) {
	if item.ProductSKU != nil && strings.TrimSpace(*item.ProductSKU) != "" {
		product, err := p.catalog.FindBySKU(ctx, strings.TrimSpace(*item.ProductSKU))
		if err == nil {
			return product, true
		}
		if !apperr.Is(err, apperr.KindNotFound) {
			p.log.CatalogDegraded("find_by_sku", err)
		}
	}

	name := strings.TrimSpace(item.ProductName)
	if name == "" {
		return Product{}, false
	}
	results, err := p.catalog.SearchByText(ctx, name)
	if err != nil {
		p.log.CatalogDegraded("search_by_text", err)
		return Product{}, false
	}
	if len(results) == 0 {
		return Product{}, false
	}
	return results[0], true
}

func (p *Pricer) pricedItem(ctx context.Context, product Product, quantity int) PricingItem {
	availability, err := p.catalog.CheckAvailability(ctx, product.SKU, quantity)
	if err != nil {
		p.log.CatalogDegraded("check_availability", err)
		availability = Availability{
			Available:         false,
			AvailableQuantity: product.StockQuantity,
			LeadTimeDays:      product.LeadTimeDays,
		}
	}

	unit := product.Unit
	if unit == "" {
		unit = DefaultUnit
	}

	item := PricingItem{
		ProductName:       product.Name,
		ProductSKU:        product.SKU,
		RequestedQuantity: quantity,
		AvailableQuantity: availability.AvailableQuantity,
		IsAvailable:       availability.Available,
		UnitPrice:         money.NewAmount(product.UnitPrice),
		Unit:              unit,
		LineTotal:         money.NewAmount(money.LineTotal(product.UnitPrice, quantity)),
		LeadTimeDays:      product.LeadTimeDays,
		MinOrderQuantity:  product.MinOrderQuantity,
	}
	// Advisory only; the line is still priced and may still be available.
	if quantity < product.MinOrderQuantity {
		item.Notes = strPtr(fmt.Sprintf("Minimum order quantity is %d", product.MinOrderQuantity))
	}
	return item
}

func unresolvedItem(requested ParsedInquiryItem) PricingItem {
	unit := DefaultUnit
	if requested.Unit != nil && strings.TrimSpace(*requested.Unit) != "" {
		unit = strings.TrimSpace(*requested.Unit)
	}
	return PricingItem{
		ProductName:       requested.ProductName,
		ProductSKU:        NotFoundSKU,
		RequestedQuantity: requested.Quantity,
		AvailableQuantity: 0,
		IsAvailable:       false,
		UnitPrice:         money.NewAmount(decimal.Zero),
		Unit:              unit,
		LineTotal:         money.NewAmount(decimal.Zero),
		Notes:             strPtr(notFoundNote),
	}
}

func pricingMessage(items []PricingItem, allAvailable bool, total decimal.Decimal, earliest string) string {
	if len(items) == 0 {
		return noProductsMsg
	}
	if allAvailable {
		return fmt.Sprintf(allAvailableTmpl, len(items), money.Dollars(total), earliest)
	}

	unavailable := make([]string, 0, len(items))
	for _, item := range items {
		if !item.IsAvailable {
			unavailable = append(unavailable, item.ProductName)
		}
	}
	return fmt.Sprintf(partialTmpl, len(items)-len(unavailable), len(items), strings.Join(unavailable, ", "))
}
