package transport

import (
	"github.com/google/uuid"

	"wholesale_portal_backend/internal/agent"
)

type SubmitInquiryRequest struct {
	RawInquiry  string  `json:"rawInquiry" validate:"required,min=1,max=10000"`
	DealerName  *string `json:"dealerName,omitempty" validate:"omitempty,max=200"`
	DealerEmail *string `json:"dealerEmail,omitempty" validate:"omitempty,email"`
	DealerPhone *string `json:"dealerPhone,omitempty" validate:"omitempty,max=50"`
}

type SubmitInquiryResponse struct {
	InquiryID      uuid.UUID           `json:"inquiryId"`
	ParsedData     agent.ParsedInquiry `json:"parsedData"`
	ParseSource    string              `json:"parseSource"`
	FallbackReason string              `json:"fallbackReason,omitempty"`
}

type ListInquiriesRequest struct {
	Status    string `form:"status" validate:"omitempty,oneof=pending parsed quoted converted rejected"`
	Search    string `form:"search" validate:"max=200"`
	StartDate string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending parsed quoted converted rejected"`
}

type InquiryResponse struct {
	ID              uuid.UUID              `json:"id"`
	UserID          *uuid.UUID             `json:"userId,omitempty"`
	DealerID        *uuid.UUID             `json:"dealerId,omitempty"`
	DealerName      *string                `json:"dealerName,omitempty"`
	DealerEmail     *string                `json:"dealerEmail,omitempty"`
	DealerPhone     *string                `json:"dealerPhone,omitempty"`
	RawInquiry      string                 `json:"rawInquiry"`
	ParsedData      *agent.ParsedInquiry   `json:"parsedData,omitempty"`
	ParseSource     *string                `json:"parseSource,omitempty"`
	PricingResponse *agent.PricingResponse `json:"pricingResponse,omitempty"`
	Status          string                 `json:"status"`
	Notes           *string                `json:"notes,omitempty"`
	CreatedAt       string                 `json:"createdAt"`
	UpdatedAt       string                 `json:"updatedAt"`
}

type InquiryListResponse struct {
	Items []InquiryResponse `json:"items"`
	Total int               `json:"total"`
}
