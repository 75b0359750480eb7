package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBuildListFilterNumbersPlaceholders(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dealerID := uuid.New()

	where, args := buildListFilter(ListParams{
		Status:    StatusQuoted,
		Search:    " acme ",
		StartDate: &start,
		DealerID:  &dealerID,
	})

	clause := strings.Join(where, " AND ")
	for _, fragment := range []string{
		"status = $1",
		"dealer_name ILIKE $2 OR dealer_email ILIKE $2 OR raw_inquiry ILIKE $2",
		"created_at >= $3",
		"dealer_id = $4",
	} {
		if !strings.Contains(clause, fragment) {
			t.Fatalf("expected %q in %q", fragment, clause)
		}
	}
	if len(args) != 4 || args[1] != "%acme%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListFilterEmpty(t *testing.T) {
	where, args := buildListFilter(ListParams{Search: "   "})
	if len(where) != 0 || len(args) != 0 {
		t.Fatalf("expected no filters, got %v %v", where, args)
	}
}
