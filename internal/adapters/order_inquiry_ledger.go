package adapters

import (
	"context"

	"github.com/google/uuid"

	inquirysvc "wholesale_portal_backend/internal/inquiries/service"
	ordersvc "wholesale_portal_backend/internal/orders/service"
)

// OrderInquiryLedger lets orders read quotes from and record conversions on inquiries.
type OrderInquiryLedger struct {
	svc *inquirysvc.Service
}

// NewOrderInquiryLedger creates a new inquiry ledger adapter.
func NewOrderInquiryLedger(svc *inquirysvc.Service) *OrderInquiryLedger {
	return &OrderInquiryLedger{svc: svc}
}

// Quote implements ordersvc.InquiryLedger. Ownership is enforced by the inquiry service.
func (a *OrderInquiryLedger) Quote(ctx context.Context, actor ordersvc.Actor, inquiryID uuid.UUID) (ordersvc.InquiryQuote, error) {
	snap, err := a.svc.Snapshot(ctx, inquirysvc.Actor{
		UserID:   actor.UserID,
		DealerID: actor.DealerID,
		IsAdmin:  actor.IsAdmin,
	}, inquiryID)
	if err != nil {
		return ordersvc.InquiryQuote{}, err
	}
	return ordersvc.InquiryQuote{
		ID:       snap.Inquiry.ID,
		DealerID: snap.Inquiry.DealerID,
		Status:   snap.Inquiry.Status,
		Parsed:   snap.Parsed,
		Pricing:  snap.Pricing,
	}, nil
}

// MarkConverted implements ordersvc.InquiryLedger.
func (a *OrderInquiryLedger) MarkConverted(ctx context.Context, inquiryID uuid.UUID) error {
	return a.svc.MarkConverted(ctx, inquiryID)
}

// ReleaseConversion implements ordersvc.InquiryLedger.
func (a *OrderInquiryLedger) ReleaseConversion(ctx context.Context, inquiryID uuid.UUID, status string) error {
	return a.svc.ReleaseConversion(ctx, inquiryID, status)
}

// RecordDirect implements ordersvc.InquiryLedger.
func (a *OrderInquiryLedger) RecordDirect(ctx context.Context, inquiry ordersvc.DirectInquiry) (uuid.UUID, error) {
	return a.svc.RecordConverted(ctx, inquirysvc.RecordParams{
		UserID:     inquiry.UserID,
		DealerID:   inquiry.DealerID,
		RawInquiry: inquiry.RawInquiry,
		Parsed:     inquiry.Parsed,
	})
}

var _ ordersvc.InquiryLedger = (*OrderInquiryLedger)(nil)
