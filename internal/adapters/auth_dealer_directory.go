package adapters

import (
	"context"

	"github.com/google/uuid"

	authsvc "wholesale_portal_backend/internal/auth/service"
	dealerrepo "wholesale_portal_backend/internal/dealers/repository"
	dealersvc "wholesale_portal_backend/internal/dealers/service"
)

// AuthDealerDirectory lets the auth module read and provision dealers
// without importing dealer internals into its service.
type AuthDealerDirectory struct {
	svc *dealersvc.Service
}

// NewAuthDealerDirectory creates a new dealer directory adapter.
func NewAuthDealerDirectory(svc *dealersvc.Service) *AuthDealerDirectory {
	return &AuthDealerDirectory{svc: svc}
}

// GetDealer implements authsvc.DealerDirectory.
func (a *AuthDealerDirectory) GetDealer(ctx context.Context, id uuid.UUID) (authsvc.DealerSummary, error) {
	d, err := a.svc.GetDealer(ctx, id)
	if err != nil {
		return authsvc.DealerSummary{}, err
	}
	return authsvc.DealerSummary{
		ID:            d.ID,
		Name:          d.Name,
		ContactPerson: d.ContactPerson,
		Email:         d.Email,
		Phone:         d.Phone,
		Address:       d.Address,
	}, nil
}

// EnsureDealer implements authsvc.DealerDirectory.
func (a *AuthDealerDirectory) EnsureDealer(ctx context.Context, seed authsvc.DealerSeed) (uuid.UUID, error) {
	d, err := a.svc.EnsureDealer(ctx, dealerrepo.CreateParams{
		Name:          seed.Name,
		ContactPerson: optional(seed.ContactPerson),
		Email:         optional(seed.Email),
		Phone:         optional(seed.Phone),
		Address:       optional(seed.Address),
	})
	if err != nil {
		return uuid.Nil, err
	}
	return d.ID, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ authsvc.DealerDirectory = (*AuthDealerDirectory)(nil)
