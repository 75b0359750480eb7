package agent

import (
	"context"
	"errors"
	"testing"
)

func TestSmartSearchWholeQueryHit(t *testing.T) {
	catalog := newFakeCatalog()

	got := SmartSearch(context.Background(), catalog, "pallet jack")

	if len(got) != 1 || got[0].SKU != "WH-TOOL-001" {
		t.Fatalf("unexpected results %+v", got)
	}
	if len(catalog.searchCalls) != 1 {
		t.Fatalf("expected a single search, got %v", catalog.searchCalls)
	}
}

func TestSmartSearchMergesWordResults(t *testing.T) {
	all := seededProducts()
	led, strip, tape := all[0], all[1], all[3]
	catalog := newFakeCatalog()
	catalog.searchByWord = map[string][]Product{
		"led tape xx": nil,
		"led":         {led, strip},
		"tape":        {strip, tape},
	}

	got := SmartSearch(context.Background(), catalog, "led tape xx")

	wantSKUs := []string{led.SKU, strip.SKU, tape.SKU}
	if len(got) != len(wantSKUs) {
		t.Fatalf("expected %d results, got %+v", len(wantSKUs), got)
	}
	for i, sku := range wantSKUs {
		if got[i].SKU != sku {
			t.Fatalf("result %d: expected %s, got %s", i, sku, got[i].SKU)
		}
	}
	for _, call := range catalog.searchCalls {
		if call == "xx" {
			t.Fatal("expected short words to be skipped")
		}
	}
}

func TestSmartSearchTreatsErrorsAsEmpty(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.searchErr = errors.New("db down")

	got := SmartSearch(context.Background(), catalog, "industrial lights")

	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty results, got %+v", got)
	}
}

func TestSmartSearchBlankQuery(t *testing.T) {
	catalog := newFakeCatalog()

	if got := SmartSearch(context.Background(), catalog, "   "); len(got) != 0 {
		t.Fatalf("expected no results, got %+v", got)
	}
	if len(catalog.searchCalls) != 0 {
		t.Fatalf("expected no catalog calls, got %v", catalog.searchCalls)
	}
}
