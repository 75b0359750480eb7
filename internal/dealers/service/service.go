package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"wholesale_portal_backend/internal/dealers/repository"
	"wholesale_portal_backend/internal/dealers/transport"
	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/phone"
	"wholesale_portal_backend/platform/sanitize"
)

// Service provides business logic for dealer profiles.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new dealer service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GetProfile returns the dealer profile.
func (s *Service) GetProfile(ctx context.Context, dealerID uuid.UUID) (transport.DealerResponse, error) {
	d, err := s.repo.GetByID(ctx, dealerID)
	if err != nil {
		return transport.DealerResponse{}, err
	}
	return toDealerResponse(d), nil
}

// UpdateProfile applies profile changes. Phone numbers are stored in E.164
// when they parse.
func (s *Service) UpdateProfile(ctx context.Context, dealerID uuid.UUID, req transport.UpdateProfileRequest) (transport.DealerResponse, error) {
	params := repository.UpdateParams{
		Name:          sanitize.TextPtr(req.Name),
		ContactPerson: sanitize.TextPtr(req.ContactPerson),
		Email:         trimPtr(req.Email),
		Phone:         phone.NormalizePtr(sanitize.TextPtr(req.Phone)),
		Address:       sanitize.TextPtr(req.Address),
	}
	if params.Name != nil && *params.Name == "" {
		return transport.DealerResponse{}, apperr.Validation("dealer name cannot be empty")
	}

	d, err := s.repo.Update(ctx, dealerID, params)
	if err != nil {
		return transport.DealerResponse{}, err
	}
	s.log.Info("dealer profile updated", "id", d.ID)
	return toDealerResponse(d), nil
}

// GetDealer returns the raw dealer record for other modules.
func (s *Service) GetDealer(ctx context.Context, dealerID uuid.UUID) (repository.Dealer, error) {
	return s.repo.GetByID(ctx, dealerID)
}

// EnsureDealer returns the dealer with params.Email, creating it when absent.
func (s *Service) EnsureDealer(ctx context.Context, params repository.CreateParams) (repository.Dealer, error) {
	if params.Email != nil {
		d, err := s.repo.GetByEmail(ctx, *params.Email)
		if err == nil {
			return d, nil
		}
		if !apperr.Is(err, apperr.KindNotFound) {
			return repository.Dealer{}, err
		}
	}
	params.Phone = phone.NormalizePtr(params.Phone)
	d, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Dealer{}, err
	}
	s.log.Info("dealer created", "id", d.ID, "name", d.Name)
	return d, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func toDealerResponse(d repository.Dealer) transport.DealerResponse {
	return transport.DealerResponse{
		ID:            d.ID,
		Name:          d.Name,
		ContactPerson: d.ContactPerson,
		Email:         d.Email,
		Phone:         d.Phone,
		Address:       d.Address,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     d.UpdatedAt.Format(time.RFC3339),
	}
}
