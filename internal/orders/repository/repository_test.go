package repository

import (
	"strings"
	"testing"
)

func TestBuildListFilterByEmail(t *testing.T) {
	where, args := buildListFilter(ListParams{Status: StatusPending, Email: "Buyer@Acme.test"})

	clause := strings.Join(where, " AND ")
	if clause != "status = $1 AND lower(dealer_email) = lower($2)" {
		t.Fatalf("unexpected clause %q", clause)
	}
	if len(args) != 2 || args[1] != "Buyer@Acme.test" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestSearchMatchesOrderNumber(t *testing.T) {
	where, _ := buildListFilter(ListParams{Search: "DO2026"})
	if len(where) != 1 || !strings.Contains(where[0], "order_number ILIKE $1") {
		t.Fatalf("expected order number search, got %v", where)
	}
}
