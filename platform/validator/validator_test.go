package validator

import "testing"

type orderLine struct {
	SKU      string `validate:"required,sku"`
	Quantity int    `validate:"gt=0"`
}

func TestSKURule(t *testing.T) {
	val := New()

	if err := val.Struct(orderLine{SKU: "WH-ELEC-001", Quantity: 5}); err != nil {
		t.Fatalf("expected valid line, got %v", err)
	}
	if err := val.Struct(orderLine{SKU: "wh-elec-1", Quantity: 5}); err == nil {
		t.Fatal("expected malformed sku to fail")
	}
	if err := val.Struct(orderLine{SKU: "WH-CLEA-003", Quantity: 0}); err == nil {
		t.Fatal("expected zero quantity to fail")
	}
}

func TestVar(t *testing.T) {
	val := New()
	if err := val.Var("dealer@demo.com", "email"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
	if err := val.Var("nope", "email"); err == nil {
		t.Fatal("expected invalid email to fail")
	}
}
