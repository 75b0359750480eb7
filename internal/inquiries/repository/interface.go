// Package repository provides data access for dealer inquiries.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Inquiry statuses.
const (
	StatusPending   = "pending"
	StatusParsed    = "parsed"
	StatusQuoted    = "quoted"
	StatusConverted = "converted"
	StatusRejected  = "rejected"
)

// Inquiry is a stored dealer request. ParsedData and PricingResponse hold
// raw JSONB and are nil until the matching step has run.
type Inquiry struct {
	ID              uuid.UUID
	UserID          *uuid.UUID
	DealerID        *uuid.UUID
	DealerName      *string
	DealerEmail     *string
	DealerPhone     *string
	RawInquiry      string
	ParsedData      []byte
	ParseSource     *string
	PricingResponse []byte
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateParams holds a new inquiry. ParsedData may be set up front for
// inquiries recorded from structured orders.
type CreateParams struct {
	UserID      *uuid.UUID
	DealerID    *uuid.UUID
	DealerName  *string
	DealerEmail *string
	DealerPhone *string
	RawInquiry  string
	ParsedData  []byte
	ParseSource *string
	Status      string
}

// ListParams filters inquiry listings. Zero values are ignored.
type ListParams struct {
	Status    string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	DealerID  *uuid.UUID
}

// Repository defines inquiry data access.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Inquiry, error)
	GetByID(ctx context.Context, id uuid.UUID) (Inquiry, error)
	SavePricing(ctx context.Context, id uuid.UUID, pricing []byte, status string) (Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Inquiry, error)
	ClaimConversion(ctx context.Context, id uuid.UUID) (Inquiry, error)
	List(ctx context.Context, params ListParams) ([]Inquiry, error)
}
