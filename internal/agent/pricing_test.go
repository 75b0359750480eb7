package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/money"
)

func newTestPricer(catalog Catalog) *Pricer {
	return NewPricer(catalog, logger.Discard(), WithClock(fixedClock))
}

func requestItem(name, sku string, qty int) ParsedInquiryItem {
	item := ParsedInquiryItem{ProductName: name, Quantity: qty}
	if sku != "" {
		item.ProductSKU = strPtr(sku)
	}
	return item
}

func assertAmount(t *testing.T, label string, got money.Amount, want string) {
	t.Helper()
	if money.Fixed(got.Decimal) != want {
		t.Fatalf("%s: expected %s, got %s", label, want, money.Fixed(got.Decimal))
	}
}

func TestPriceLEDScenario(t *testing.T) {
	catalog := newFakeCatalog()
	parsed := newTestParser(nil, catalog).Parse(context.Background(), "I need 50 LED lights").Inquiry

	resp := newTestPricer(catalog).Price(context.Background(), parsed)

	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(resp.Items))
	}
	assertAmount(t, "line total", resp.Items[0].LineTotal, "2250.00")
	assertAmount(t, "subtotal", resp.Subtotal, "2250.00")
	assertAmount(t, "tax", resp.EstimatedTax, "180.00")
	assertAmount(t, "total", resp.Total, "2430.00")
	if resp.EarliestDeliveryDate != "2026-03-14" {
		t.Fatalf("expected earliest delivery 2026-03-14, got %s", resp.EarliestDeliveryDate)
	}
	if !resp.AllItemsAvailable {
		t.Fatal("expected all items available")
	}
	want := "Great news! All 1 item(s) are available. Your order total is $2430.00 with earliest delivery on 2026-03-14."
	if resp.Message != want {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestPriceEmptyInquiry(t *testing.T) {
	resp := newTestPricer(newFakeCatalog()).Price(context.Background(), ParsedInquiry{Items: []ParsedInquiryItem{}})

	if resp.Message != noProductsMsg {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if !resp.Subtotal.IsZero() || !resp.Total.IsZero() {
		t.Fatalf("expected zero totals, got %s / %s", resp.Subtotal, resp.Total)
	}
	if resp.EarliestDeliveryDate != "2026-03-12" {
		t.Fatalf("expected minimum lead of one day plus buffer, got %s", resp.EarliestDeliveryDate)
	}
	if resp.Items == nil {
		t.Fatal("expected non-nil items")
	}
}

func TestPriceUnresolvedItem(t *testing.T) {
	resp := newTestPricer(newFakeCatalog()).Price(context.Background(), ParsedInquiry{
		Items: []ParsedInquiryItem{{ProductName: "Unicorn saddle", Quantity: 4, Unit: strPtr("set")}},
	})

	item := resp.Items[0]
	if item.ProductSKU != NotFoundSKU || item.Resolved() {
		t.Fatalf("expected NOT_FOUND line, got %+v", item)
	}
	if item.IsAvailable || item.AvailableQuantity != 0 || item.LeadTimeDays != 0 || item.MinOrderQuantity != 0 {
		t.Fatalf("expected zeroed line, got %+v", item)
	}
	if item.Unit != "set" || item.Notes == nil || *item.Notes != notFoundNote {
		t.Fatalf("unexpected unit or notes %+v", item)
	}
	if resp.AllItemsAvailable {
		t.Fatal("expected NOT_FOUND to force allItemsAvailable false")
	}
	want := "0 of 1 items are available. Some items have availability issues: Unicorn saddle. Please review the details below."
	if resp.Message != want {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestPriceStockShortfallStillPrices(t *testing.T) {
	resp := newTestPricer(newFakeCatalog()).Price(context.Background(), ParsedInquiry{
		Items: []ParsedInquiryItem{requestItem("Pallet Jack", "WH-TOOL-001", 60)},
	})

	item := resp.Items[0]
	if item.IsAvailable || item.AvailableQuantity != 50 {
		t.Fatalf("expected unavailable with stock 50, got %+v", item)
	}
	assertAmount(t, "line total", item.LineTotal, "19200.00")
	if resp.AllItemsAvailable {
		t.Fatal("expected allItemsAvailable false")
	}
	if resp.EarliestDeliveryDate != "2026-03-18" {
		t.Fatalf("expected lead 7 plus buffer, got %s", resp.EarliestDeliveryDate)
	}
}

func TestPriceMinimumOrderQuantityIsAdvisory(t *testing.T) {
	resp := newTestPricer(newFakeCatalog()).Price(context.Background(), ParsedInquiry{
		Items: []ParsedInquiryItem{requestItem("Shipping box", "WH-PACK-001", 10)},
	})

	item := resp.Items[0]
	if !item.IsAvailable {
		t.Fatal("expected MOQ shortfall to stay available")
	}
	if item.Notes == nil || *item.Notes != "Minimum order quantity is 100" {
		t.Fatalf("unexpected notes %v", item.Notes)
	}
	assertAmount(t, "line total", item.LineTotal, "25.00")
}

func TestPriceFallsBackToNameSearch(t *testing.T) {
	resp := newTestPricer(newFakeCatalog()).Price(context.Background(), ParsedInquiry{
		Items: []ParsedInquiryItem{requestItem("Power Strip", "WH-XXXX-999", 20)},
	})

	if resp.Items[0].ProductSKU != "WH-ELEC-002" {
		t.Fatalf("expected name search to resolve WH-ELEC-002, got %s", resp.Items[0].ProductSKU)
	}
	assertAmount(t, "line total", resp.Items[0].LineTotal, "570.00")
}

func TestPriceDegradesOnCatalogErrors(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.availErr = errors.New("stock service down")
	resp := newTestPricer(catalog).Price(context.Background(), ParsedInquiry{
		Items: []ParsedInquiryItem{requestItem("LED", "WH-ELEC-001", 5)},
	})
	if resp.Items[0].IsAvailable || resp.Items[0].AvailableQuantity != 500 {
		t.Fatalf("expected unavailable line with catalog stock, got %+v", resp.Items[0])
	}

	catalog = newFakeCatalog()
	catalog.findErr = errors.New("db down")
	catalog.searchErr = errors.New("db down")
	resp = newTestPricer(catalog).Price(context.Background(), ParsedInquiry{
		Items: []ParsedInquiryItem{requestItem("LED", "WH-ELEC-001", 5)},
	})
	if resp.Items[0].ProductSKU != NotFoundSKU {
		t.Fatalf("expected lookup failure to read as not found, got %+v", resp.Items[0])
	}
}

func TestPriceTotalsIdentity(t *testing.T) {
	resp := newTestPricer(newFakeCatalog()).Price(context.Background(), ParsedInquiry{
		Items: []ParsedInquiryItem{
			requestItem("Power strip", "WH-ELEC-002", 3),
			requestItem("Vest", "WH-SAFE-002", 51),
			requestItem("Gloves", "WH-SAFE-003", 7),
			requestItem("Mystery", "", 2),
			requestItem("Tape", "WH-PACK-003", 999),
		},
	})

	sum := decimal.Zero
	available := true
	for _, item := range resp.Items {
		sum = sum.Add(item.LineTotal.Decimal)
		if !item.LineTotal.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.RequestedQuantity)))) && item.Resolved() {
			t.Fatalf("line total mismatch on %s", item.ProductSKU)
		}
		available = available && item.IsAvailable
	}
	if !resp.Subtotal.Equal(sum) {
		t.Fatalf("subtotal %s != sum %s", resp.Subtotal, sum)
	}
	if !resp.EstimatedTax.Equal(sum.Mul(money.TaxRate).Round(2)) {
		t.Fatalf("unexpected tax %s", resp.EstimatedTax)
	}
	if !resp.Total.Equal(resp.Subtotal.Add(resp.EstimatedTax.Decimal)) {
		t.Fatalf("total %s != subtotal + tax", resp.Total)
	}
	if resp.AllItemsAvailable != available {
		t.Fatalf("allItemsAvailable %v does not match lines", resp.AllItemsAvailable)
	}
	want := "3 of 5 items are available. Some items have availability issues: Mystery, Packing Tape 2in x 110yd (36 rolls). Please review the details below."
	if resp.Message != want {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}
