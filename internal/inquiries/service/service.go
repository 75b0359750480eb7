package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wholesale_portal_backend/internal/agent"
	"wholesale_portal_backend/internal/events"
	"wholesale_portal_backend/internal/inquiries/repository"
	"wholesale_portal_backend/internal/inquiries/transport"
	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/phone"
	"wholesale_portal_backend/platform/sanitize"
)

const dateLayout = "2006-01-02"

const (
	msgEmptyInquiry = "inquiry text is empty"
	msgNotParsed    = "inquiry not parsed yet"
	msgNoAccess     = "inquiry belongs to another dealer"
)

// Parser turns raw inquiry text into structured items.
type Parser interface {
	Parse(ctx context.Context, rawText string) agent.ParseOutcome
}

// Pricer quotes a parsed inquiry against the live catalog.
type Pricer interface {
	Price(ctx context.Context, inquiry agent.ParsedInquiry) agent.PricingResponse
}

// DealerContact is the stored contact block of a dealer.
type DealerContact struct {
	Name  string
	Email *string
	Phone *string
}

// DealerContacts resolves a dealer's contact block.
type DealerContacts interface {
	GetContact(ctx context.Context, dealerID uuid.UUID) (DealerContact, error)
}

// Actor is the caller an inquiry operation runs for.
type Actor struct {
	UserID   uuid.UUID
	DealerID *uuid.UUID
	IsAdmin  bool
}

// Snapshot is an inquiry with its decoded parse and quote.
type Snapshot struct {
	Inquiry repository.Inquiry
	Parsed  *agent.ParsedInquiry
	Pricing *agent.PricingResponse
}

// RecordParams describes an inquiry recorded from a structured order.
type RecordParams struct {
	UserID     uuid.UUID
	DealerID   uuid.UUID
	RawInquiry string
	Parsed     agent.ParsedInquiry
}

// Service orchestrates inquiry intake, parsing and quoting.
type Service struct {
	repo     repository.Repository
	parser   Parser
	pricer   Pricer
	contacts DealerContacts
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new inquiry service.
func New(repo repository.Repository, parser Parser, pricer Pricer, contacts DealerContacts, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, parser: parser, pricer: pricer, contacts: contacts, eventBus: eventBus, log: log}
}

// Submit parses a dealer inquiry and stores it together with the parse in a
// single insert. Dealer profile contact fields fill gaps the parse left open.
func (s *Service) Submit(ctx context.Context, actor Actor, req transport.SubmitInquiryRequest) (transport.SubmitInquiryResponse, error) {
	raw := sanitize.Text(req.RawInquiry)
	if raw == "" {
		return transport.SubmitInquiryResponse{}, apperr.Validation(msgEmptyInquiry)
	}

	name := sanitize.TextPtr(req.DealerName)
	email := req.DealerEmail
	phoneNumber := phone.NormalizePtr(sanitize.TextPtr(req.DealerPhone))
	if actor.DealerID != nil {
		contact, err := s.contacts.GetContact(ctx, *actor.DealerID)
		if err != nil {
			return transport.SubmitInquiryResponse{}, err
		}
		name = &contact.Name
		email = coalesce(contact.Email, email)
		phoneNumber = coalesce(phoneNumber, contact.Phone)
	}

	outcome := s.parser.Parse(ctx, raw)
	parsed := outcome.Inquiry
	parsed.DealerName = coalesce(parsed.DealerName, name)
	parsed.DealerEmail = coalesce(parsed.DealerEmail, email)
	parsed.DealerPhone = coalesce(parsed.DealerPhone, phoneNumber)

	data, err := json.Marshal(parsed)
	if err != nil {
		return transport.SubmitInquiryResponse{}, fmt.Errorf("encode parsed inquiry: %w", err)
	}
	userID := actor.UserID
	source := string(outcome.Source)
	inquiry, err := s.repo.Create(ctx, repository.CreateParams{
		UserID:      &userID,
		DealerID:    actor.DealerID,
		DealerName:  parsed.DealerName,
		DealerEmail: parsed.DealerEmail,
		DealerPhone: parsed.DealerPhone,
		RawInquiry:  raw,
		ParsedData:  data,
		ParseSource: &source,
		Status:      repository.StatusParsed,
	})
	if err != nil {
		return transport.SubmitInquiryResponse{}, err
	}

	s.log.Info("inquiry parsed", "id", inquiry.ID, "source", outcome.Source, "items", len(parsed.Items))
	if actor.DealerID != nil {
		s.eventBus.Publish(ctx, events.InquiryParsed{
			BaseEvent:   events.NewBaseEvent(),
			InquiryID:   inquiry.ID,
			DealerID:    *actor.DealerID,
			ParseSource: string(outcome.Source),
			ItemCount:   len(parsed.Items),
			Confidence:  parsed.Confidence,
		})
	}

	return transport.SubmitInquiryResponse{
		InquiryID:      inquiry.ID,
		ParsedData:     parsed,
		ParseSource:    string(outcome.Source),
		FallbackReason: outcome.FallbackReason,
	}, nil
}

// Price quotes a parsed inquiry against the live catalog and stores the quote.
// Converted and rejected inquiries keep their status.
func (s *Service) Price(ctx context.Context, actor Actor, id uuid.UUID) (agent.PricingResponse, error) {
	snap, err := s.load(ctx, actor, id)
	if err != nil {
		return agent.PricingResponse{}, err
	}
	if snap.Parsed == nil {
		return agent.PricingResponse{}, apperr.BadRequest(msgNotParsed)
	}

	pricing := s.pricer.Price(ctx, *snap.Parsed)
	data, err := json.Marshal(pricing)
	if err != nil {
		return agent.PricingResponse{}, fmt.Errorf("encode pricing: %w", err)
	}

	status := repository.StatusQuoted
	if isTerminal(snap.Inquiry.Status) {
		status = snap.Inquiry.Status
	}
	if _, err := s.repo.SavePricing(ctx, id, data, status); err != nil {
		return agent.PricingResponse{}, err
	}
	s.log.Info("inquiry quoted", "id", id, "total", pricing.Total.StringFixed(2), "allAvailable", pricing.AllItemsAvailable)
	return pricing, nil
}

// Get returns an inquiry owned by the actor's dealer, or any inquiry for admins.
func (s *Service) Get(ctx context.Context, actor Actor, id uuid.UUID) (transport.InquiryResponse, error) {
	snap, err := s.load(ctx, actor, id)
	if err != nil {
		return transport.InquiryResponse{}, err
	}
	return toInquiryResponse(snap), nil
}

// ListForDealer returns a dealer's inquiries, newest first.
func (s *Service) ListForDealer(ctx context.Context, dealerID uuid.UUID) (transport.InquiryListResponse, error) {
	items, err := s.repo.List(ctx, repository.ListParams{DealerID: &dealerID})
	if err != nil {
		return transport.InquiryListResponse{}, err
	}
	return s.toListResponse(items), nil
}

// List returns every inquiry matching the admin filters.
func (s *Service) List(ctx context.Context, req transport.ListInquiriesRequest) (transport.InquiryListResponse, error) {
	params := repository.ListParams{Status: req.Status, Search: req.Search}
	if req.StartDate != "" {
		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return transport.InquiryListResponse{}, apperr.Validation("invalid startDate")
		}
		params.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return transport.InquiryListResponse{}, apperr.Validation("invalid endDate")
		}
		end = end.AddDate(0, 0, 1)
		params.EndDate = &end
	}

	items, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.InquiryListResponse{}, err
	}
	return s.toListResponse(items), nil
}

// UpdateStatus sets an inquiry status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateStatusRequest) (transport.InquiryResponse, error) {
	inquiry, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return transport.InquiryResponse{}, err
	}
	s.log.Info("inquiry status updated", "id", id, "status", inquiry.Status)
	return toInquiryResponse(s.decode(inquiry)), nil
}

// Snapshot returns the decoded inquiry for the actor.
func (s *Service) Snapshot(ctx context.Context, actor Actor, id uuid.UUID) (Snapshot, error) {
	return s.load(ctx, actor, id)
}

// MarkConverted moves an inquiry to converted. It returns a conflict when the
// inquiry was already converted, so only one caller wins the transition.
func (s *Service) MarkConverted(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ClaimConversion(ctx, id); err != nil {
		return err
	}
	s.log.Info("inquiry converted", "id", id)
	return nil
}

// ReleaseConversion puts a claimed inquiry back to status after the order
// it was claimed for could not be placed.
func (s *Service) ReleaseConversion(ctx context.Context, id uuid.UUID, status string) error {
	if _, err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.log.Info("inquiry conversion released", "id", id, "status", status)
	return nil
}

// RecordConverted stores an already-structured request as a converted inquiry.
func (s *Service) RecordConverted(ctx context.Context, params RecordParams) (uuid.UUID, error) {
	contact, err := s.contacts.GetContact(ctx, params.DealerID)
	if err != nil {
		return uuid.Nil, err
	}
	data, err := json.Marshal(params.Parsed)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode parsed inquiry: %w", err)
	}

	userID := params.UserID
	dealerID := params.DealerID
	source := "direct"
	inquiry, err := s.repo.Create(ctx, repository.CreateParams{
		UserID:      &userID,
		DealerID:    &dealerID,
		DealerName:  &contact.Name,
		DealerEmail: contact.Email,
		DealerPhone: contact.Phone,
		RawInquiry:  params.RawInquiry,
		ParsedData:  data,
		ParseSource: &source,
		Status:      repository.StatusConverted,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return inquiry.ID, nil
}

func (s *Service) load(ctx context.Context, actor Actor, id uuid.UUID) (Snapshot, error) {
	inquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	if !canAccess(actor, inquiry) {
		return Snapshot{}, apperr.Forbidden(msgNoAccess)
	}
	return s.decode(inquiry), nil
}

func (s *Service) decode(inquiry repository.Inquiry) Snapshot {
	snap := Snapshot{Inquiry: inquiry}
	if len(inquiry.ParsedData) > 0 {
		var parsed agent.ParsedInquiry
		if err := json.Unmarshal(inquiry.ParsedData, &parsed); err != nil {
			s.log.Warn("stored parse unreadable", "id", inquiry.ID, "error", err)
		} else {
			if parsed.Items == nil {
				parsed.Items = []agent.ParsedInquiryItem{}
			}
			snap.Parsed = &parsed
		}
	}
	if len(inquiry.PricingResponse) > 0 {
		var pricing agent.PricingResponse
		if err := json.Unmarshal(inquiry.PricingResponse, &pricing); err != nil {
			s.log.Warn("stored quote unreadable", "id", inquiry.ID, "error", err)
		} else {
			snap.Pricing = &pricing
		}
	}
	return snap
}

func (s *Service) toListResponse(items []repository.Inquiry) transport.InquiryListResponse {
	resp := make([]transport.InquiryResponse, len(items))
	for i, item := range items {
		resp[i] = toInquiryResponse(s.decode(item))
	}
	return transport.InquiryListResponse{Items: resp, Total: len(resp)}
}

func canAccess(actor Actor, inquiry repository.Inquiry) bool {
	if actor.IsAdmin {
		return true
	}
	if actor.DealerID != nil && inquiry.DealerID != nil && *actor.DealerID == *inquiry.DealerID {
		return true
	}
	return inquiry.UserID != nil && *inquiry.UserID == actor.UserID
}

func isTerminal(status string) bool {
	return status == repository.StatusConverted || status == repository.StatusRejected
}

func coalesce(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

func toInquiryResponse(snap Snapshot) transport.InquiryResponse {
	i := snap.Inquiry
	return transport.InquiryResponse{
		ID:              i.ID,
		UserID:          i.UserID,
		DealerID:        i.DealerID,
		DealerName:      i.DealerName,
		DealerEmail:     i.DealerEmail,
		DealerPhone:     i.DealerPhone,
		RawInquiry:      i.RawInquiry,
		ParsedData:      snap.Parsed,
		ParseSource:     i.ParseSource,
		PricingResponse: snap.Pricing,
		Status:          i.Status,
		Notes:           i.Notes,
		CreatedAt:       i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       i.UpdatedAt.Format(time.RFC3339),
	}
}
