package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("dealer123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "dealer123" {
		t.Fatal("expected hash to differ from plain text")
	}
	if err := Compare(hash, "dealer123"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := Compare(hash, "admin123"); err == nil {
		t.Fatal("expected mismatch")
	}
}
