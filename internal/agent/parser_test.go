package agent

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"wholesale_portal_backend/platform/logger"
)

func newTestParser(llm model.LLM, catalog Catalog) *Parser {
	return NewParser(llm, catalog, logger.Discard(), WithClock(fixedClock))
}

func skuOf(item ParsedInquiryItem) string {
	if item.ProductSKU == nil {
		return ""
	}
	return *item.ProductSKU
}

func TestParsePrimaryNormalizesModelOutput(t *testing.T) {
	llm := textReply("```json\n" + `{
		"dealerName": "Acme Supply",
		"dealerEmail": "buyer@acme.test",
		"dealerPhone": null,
		"items": [
			{"productName": "Industrial LED Panel Light 60W", "productSku": "wh-elec-001", "quantity": 2.3, "unit": "pcs"},
			{"productName": "Packing Tape", "productSku": "WH-PACK-003", "quantity": 0}
		],
		"requestedDeliveryDate": "2026-03-20",
		"confidence": 1.7
	}` + "\n```")
	parser := newTestParser(llm, newFakeCatalog())

	outcome := parser.Parse(context.Background(), "Acme here, need a couple of LED panels by the 20th")

	if outcome.Source != SourcePrimary || outcome.Degraded() {
		t.Fatalf("expected primary outcome, got %s (%s)", outcome.Source, outcome.FallbackReason)
	}
	got := outcome.Inquiry
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item after dropping zero quantity, got %d", len(got.Items))
	}
	if skuOf(got.Items[0]) != "WH-ELEC-001" || got.Items[0].Quantity != 3 {
		t.Fatalf("unexpected item %+v", got.Items[0])
	}
	if got.Confidence != 1 {
		t.Fatalf("expected confidence clamped to 1, got %v", got.Confidence)
	}
	if got.DealerName == nil || *got.DealerName != "Acme Supply" || got.DealerPhone != nil {
		t.Fatalf("unexpected contact fields %+v", got)
	}
	if got.RequestedDeliveryDate == nil || *got.RequestedDeliveryDate != "2026-03-20" {
		t.Fatalf("unexpected delivery date %v", got.RequestedDeliveryDate)
	}
}

func TestParsePromptCarriesCatalog(t *testing.T) {
	llm := textReply(`{"items":[{"productName":"x","productSku":"WH-ELEC-001","quantity":1}],"confidence":0.9}`)
	parser := newTestParser(llm, newFakeCatalog())

	parser.Parse(context.Background(), "1 LED light")

	if len(llm.requests) != 1 {
		t.Fatalf("expected one model request, got %d", len(llm.requests))
	}
	req := llm.requests[0]
	system := req.Config.SystemInstruction.Parts[0].Text
	if !strings.Contains(system, "- WH-ELEC-001: Industrial LED Panel Light 60W (Electronics, $45.00/pcs)") {
		t.Fatalf("system prompt missing catalog line:\n%s", system)
	}
	if !strings.Contains(req.Contents[0].Parts[0].Text, `"1 LED light"`) {
		t.Fatalf("user prompt missing raw inquiry")
	}
}

func TestParseFallsBackWhenModelFails(t *testing.T) {
	parser := newTestParser(failingLLM(), newFakeCatalog())

	outcome := parser.Parse(context.Background(), "I need 50 LED lights")

	if outcome.Source != SourceFallback {
		t.Fatalf("expected fallback, got %s", outcome.Source)
	}
	if !strings.Contains(outcome.FallbackReason, "model call failed") {
		t.Fatalf("unexpected fallback reason %q", outcome.FallbackReason)
	}
	items := outcome.Inquiry.Items
	if len(items) != 1 || skuOf(items[0]) != "WH-ELEC-001" || items[0].Quantity != 50 {
		t.Fatalf("unexpected fallback items %+v", items)
	}
	if outcome.Inquiry.Confidence != fallbackConfidenceHit {
		t.Fatalf("expected confidence %v, got %v", fallbackConfidenceHit, outcome.Inquiry.Confidence)
	}
	if outcome.Inquiry.GeneralNotes == nil || *outcome.Inquiry.GeneralNotes != fallbackNoteHit {
		t.Fatalf("unexpected general notes %v", outcome.Inquiry.GeneralNotes)
	}
}

func TestParseFallsBackOnUnusableReplies(t *testing.T) {
	cases := []struct {
		name   string
		llm    model.LLM
		reason string
	}{
		{name: "no model", llm: nil, reason: errModelDisabled.Error()},
		{name: "malformed json", llm: textReply("Sure! Here are the items: LED x50"), reason: errInvalidJSON.Error()},
		{name: "no text parts", llm: &fakeLLM{resp: &model.LLMResponse{Content: &genai.Content{Role: genai.RoleModel}}}, reason: errUnrecognizedReply.Error()},
		{name: "nil response", llm: &fakeLLM{}, reason: errUnrecognizedReply.Error()},
		{name: "no items", llm: textReply(`{"items":[],"confidence":0.9}`), reason: errNoItems.Error()},
		{name: "oversized quantity", llm: textReply(`{"items":[{"productSku":"WH-ELEC-001","quantity":1e20}]}`), reason: errNoItems.Error()},
	}

	for _, tc := range cases {
		parser := newTestParser(tc.llm, newFakeCatalog())
		outcome := parser.Parse(context.Background(), "Send 20 boxes please")
		if outcome.Source != SourceFallback {
			t.Fatalf("%s: expected fallback, got %s", tc.name, outcome.Source)
		}
		if !strings.HasPrefix(outcome.FallbackReason, tc.reason) {
			t.Fatalf("%s: expected reason %q, got %q", tc.name, tc.reason, outcome.FallbackReason)
		}
		items := outcome.Inquiry.Items
		if len(items) != 1 || skuOf(items[0]) != "WH-PACK-001" || items[0].Quantity != 20 {
			t.Fatalf("%s: unexpected items %+v", tc.name, items)
		}
	}
}

func TestZeroItemFallbackKeepsModelContactFields(t *testing.T) {
	llm := textReply(`{"dealerName":"Acme Supply","dealerPhone":"555-0100","deliveryAddress":"1 Dock Rd","confidence":"high"}`)
	parser := newTestParser(llm, newFakeCatalog())

	outcome := parser.Parse(context.Background(), "We want 20 boxes")

	if outcome.Source != SourceFallback || outcome.FallbackReason != errNoItems.Error() {
		t.Fatalf("expected no-items fallback, got %s %q", outcome.Source, outcome.FallbackReason)
	}
	got := outcome.Inquiry
	if got.DealerName == nil || *got.DealerName != "Acme Supply" {
		t.Fatalf("expected dealer name carried, got %v", got.DealerName)
	}
	if got.DeliveryAddress == nil || *got.DeliveryAddress != "1 Dock Rd" {
		t.Fatalf("expected delivery address carried, got %v", got.DeliveryAddress)
	}
	if len(got.Items) != 1 || got.Confidence != fallbackConfidenceHit {
		t.Fatalf("unexpected fallback result %+v", got)
	}
}

func TestDecodeConfidence(t *testing.T) {
	cases := map[string]float64{
		`{"confidence":0.85}`:   0.85,
		`{"confidence":-2}`:     0,
		`{"confidence":"high"}`: defaultConfidence,
		`{"confidence":null}`:   defaultConfidence,
		`{}`:                    defaultConfidence,
	}
	for input, want := range cases {
		parsed, err := decodeParsedInquiry(input)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", input, err)
		}
		if parsed.Confidence != want {
			t.Fatalf("%s: expected %v, got %v", input, want, parsed.Confidence)
		}
		if parsed.Items == nil {
			t.Fatalf("%s: expected non-nil items", input)
		}
	}
}

func TestDecodeItemsToleratesWrongShape(t *testing.T) {
	parsed, err := decodeParsedInquiry(`{"items":{"productName":"tape"},"confidence":0.4}`)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if parsed.Items == nil || len(parsed.Items) != 0 {
		t.Fatalf("expected empty items, got %+v", parsed.Items)
	}
}

func TestDecodeItemsQuantityBounds(t *testing.T) {
	cases := []struct {
		quantity string
		want     int
	}{
		{quantity: "3", want: 3},
		{quantity: "2.2", want: 3},
		{quantity: "1000000000", want: 1000000000},
		{quantity: "0", want: 0},
		{quantity: "-4", want: 0},
		{quantity: "1000000000.5", want: 0},
		{quantity: "1e20", want: 0},
		{quantity: `"5"`, want: 0},
	}
	for _, tc := range cases {
		raw := `[{"productSku":"wh-elec-001","quantity":` + tc.quantity + `}]`
		items := decodeItems([]byte(raw))
		if tc.want == 0 {
			if len(items) != 0 {
				t.Fatalf("quantity %s: expected line dropped, got %+v", tc.quantity, items)
			}
			continue
		}
		if len(items) != 1 || items[0].Quantity != tc.want {
			t.Fatalf("quantity %s: expected %d, got %+v", tc.quantity, tc.want, items)
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripCodeFence(in); got != want {
			t.Fatalf("stripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFallbackUnknownProduct(t *testing.T) {
	parser := newTestParser(nil, newFakeCatalog())

	got := parser.Parse(context.Background(), "Do you sell 20 unicorn saddles?").Inquiry

	if got.Items == nil || len(got.Items) != 0 {
		t.Fatalf("expected empty items, got %+v", got.Items)
	}
	if got.Confidence != fallbackConfidenceMiss {
		t.Fatalf("expected confidence %v, got %v", fallbackConfidenceMiss, got.Confidence)
	}
	if got.GeneralNotes == nil || *got.GeneralNotes != fallbackNoteMiss {
		t.Fatalf("unexpected general notes %v", got.GeneralNotes)
	}
}

func TestFallbackAssociatesEachQuantityWithItsOwnWords(t *testing.T) {
	parser := newTestParser(nil, newFakeCatalog())

	items := parser.Parse(context.Background(), "Please quote 50 boxes and 10 gloves").Inquiry.Items

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	if skuOf(items[0]) != "WH-PACK-001" || items[0].Quantity != 50 {
		t.Fatalf("unexpected first item %+v", items[0])
	}
	if skuOf(items[1]) != "WH-SAFE-003" || items[1].Quantity != 10 {
		t.Fatalf("unexpected second item %+v", items[1])
	}
	if items[1].Unit == nil || *items[1].Unit != "box" {
		t.Fatalf("expected catalog unit on fallback item, got %v", items[1].Unit)
	}
}

func TestFallbackDiscardsNonPositiveQuantities(t *testing.T) {
	parser := newTestParser(nil, newFakeCatalog())

	items := parser.Parse(context.Background(), "0 boxes and 5 tape").Inquiry.Items

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %+v", items)
	}
	if skuOf(items[0]) != "WH-PACK-003" || items[0].Quantity != 5 {
		t.Fatalf("unexpected item %+v", items[0])
	}
	if items[0].Notes != nil {
		t.Fatalf("expected no default quantity note, got %q", *items[0].Notes)
	}
}

func TestFallbackDiscardsOversizedQuantities(t *testing.T) {
	parser := newTestParser(nil, newFakeCatalog())

	items := parser.Parse(context.Background(), "99999999999 boxes and 5 tape").Inquiry.Items

	if len(items) != 1 || skuOf(items[0]) != "WH-PACK-003" || items[0].Quantity != 5 {
		t.Fatalf("expected only the tape line, got %+v", items)
	}
}

func TestFallbackDeduplicatesSKUs(t *testing.T) {
	parser := newTestParser(nil, newFakeCatalog())

	items := parser.Parse(context.Background(), "10 boxes now, 20 boxes later").Inquiry.Items

	if len(items) != 1 || items[0].Quantity != 10 {
		t.Fatalf("expected a single first-wins item, got %+v", items)
	}
}

func TestFallbackDefaultsQuantityWhenNoneGiven(t *testing.T) {
	parser := newTestParser(nil, newFakeCatalog())

	items := parser.Parse(context.Background(), "Please send safety vests and packing tape").Inquiry.Items

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	wantOrder := []string{"WH-PACK-003", "WH-SAFE-002"}
	for i, item := range items {
		if skuOf(item) != wantOrder[i] || item.Quantity != 1 {
			t.Fatalf("unexpected item %d: %+v", i, item)
		}
		if item.Notes == nil || *item.Notes != defaultQuantityNote {
			t.Fatalf("expected default quantity note on item %d", i)
		}
	}
}

func TestFallbackSkipsSKUsMissingFromCatalog(t *testing.T) {
	catalog := newFakeCatalog(product("WH-ELEC-001", "Industrial LED Panel Light 60W", "Electronics", "45.00", "pcs", 500, 10, 3))
	parser := newTestParser(nil, catalog)

	items := parser.Parse(context.Background(), "2 pallet jacks").Inquiry.Items

	if len(items) != 0 {
		t.Fatalf("expected no items, got %+v", items)
	}
}

func TestFallbackDateCues(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{text: "20 boxes next week", want: "2026-03-17"},
		{text: "20 boxes, deliver by 12/05/2026", want: "2026-03-17"},
		{text: "20 boxes this Friday please", want: "2026-03-17"},
		{text: "20 boxes whenever", want: ""},
	}
	parser := newTestParser(nil, newFakeCatalog())

	for _, tc := range cases {
		got := parser.Parse(context.Background(), tc.text).Inquiry.RequestedDeliveryDate
		switch {
		case tc.want == "" && got != nil:
			t.Fatalf("%q: expected no date, got %s", tc.text, *got)
		case tc.want != "" && (got == nil || *got != tc.want):
			t.Fatalf("%q: expected %s, got %v", tc.text, tc.want, got)
		}
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	parser := newTestParser(failingLLM(), newFakeCatalog())
	text := "Need 30 vests, 5 tape and 200 boxes by next Monday"

	first := parser.Parse(context.Background(), text)
	second := parser.Parse(context.Background(), text)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical outcomes:\n%+v\n%+v", first, second)
	}
}

func TestParseSurvivesCatalogOutage(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.listErr = context.DeadlineExceeded
	parser := newTestParser(nil, catalog)

	got := parser.Parse(context.Background(), "I need 50 LED lights").Inquiry

	if got.Items == nil || len(got.Items) != 0 || got.Confidence != fallbackConfidenceMiss {
		t.Fatalf("expected empty low-confidence parse, got %+v", got)
	}
}

func TestKeywordRulesLoad(t *testing.T) {
	if len(defaultKeywordRules) != 15 {
		t.Fatalf("expected 15 keyword rules, got %d", len(defaultKeywordRules))
	}
	if _, err := loadKeywordRules([]byte("- sku: WH-ELEC-001\n")); err == nil {
		t.Fatal("expected rule without keywords to be rejected")
	}
}
