package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTaxRoundsToCents(t *testing.T) {
	cases := []struct {
		subtotal string
		want     string
	}{
		{"2250.00", "180.00"},
		{"0", "0.00"},
		{"12.34", "0.99"},  // 0.9872
		{"0.06", "0.00"},   // 0.0048
		{"0.07", "0.01"},   // 0.0056
		{"101.25", "8.10"}, // exact
	}
	for _, tc := range cases {
		got := Fixed(Tax(decimal.RequireFromString(tc.subtotal)))
		if got != tc.want {
			t.Fatalf("Tax(%s): expected %s, got %s", tc.subtotal, tc.want, got)
		}
	}
}

func TestLineTotalIsExact(t *testing.T) {
	got := LineTotal(decimal.RequireFromString("28.50"), 3)
	if !got.Equal(decimal.RequireFromString("85.5")) {
		t.Fatalf("expected 85.5, got %s", got)
	}
}

func TestParseAndFormat(t *testing.T) {
	if !Parse("not-a-number").IsZero() {
		t.Fatal("expected malformed input to parse as zero")
	}
	if Dollars(Parse("2430")) != "$2430.00" {
		t.Fatalf("unexpected dollars %s", Dollars(Parse("2430")))
	}
}

func TestAmountJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Total Amount `json:"total"`
	}{Total: NewAmount(decimal.RequireFromString("2430"))})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"total":2430.00}` {
		t.Fatalf("unexpected json %s", raw)
	}

	var decoded struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":12.5,"b":"8.10","c":null}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if Fixed(decoded.A.Decimal) != "12.50" || Fixed(decoded.B.Decimal) != "8.10" || !decoded.C.IsZero() {
		t.Fatalf("unexpected amounts %+v", decoded)
	}
}
