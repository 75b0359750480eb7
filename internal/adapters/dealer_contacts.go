package adapters

import (
	"context"

	"github.com/google/uuid"

	dealersvc "wholesale_portal_backend/internal/dealers/service"
	inquirysvc "wholesale_portal_backend/internal/inquiries/service"
	ordersvc "wholesale_portal_backend/internal/orders/service"
)

// DealerContacts exposes dealer profiles to inquiries and orders.
type DealerContacts struct {
	svc *dealersvc.Service
}

// NewDealerContacts creates a new dealer contact adapter.
func NewDealerContacts(svc *dealersvc.Service) *DealerContacts {
	return &DealerContacts{svc: svc}
}

// GetContact implements inquirysvc.DealerContacts.
func (a *DealerContacts) GetContact(ctx context.Context, dealerID uuid.UUID) (inquirysvc.DealerContact, error) {
	d, err := a.svc.GetDealer(ctx, dealerID)
	if err != nil {
		return inquirysvc.DealerContact{}, err
	}
	return inquirysvc.DealerContact{Name: d.Name, Email: d.Email, Phone: d.Phone}, nil
}

// OrderContacts returns the same lookup shaped for the order service.
func (a *DealerContacts) OrderContacts() ordersvc.DealerContacts {
	return orderDealerContacts{svc: a.svc}
}

type orderDealerContacts struct {
	svc *dealersvc.Service
}

func (o orderDealerContacts) GetContact(ctx context.Context, dealerID uuid.UUID) (ordersvc.DealerContact, error) {
	d, err := o.svc.GetDealer(ctx, dealerID)
	if err != nil {
		return ordersvc.DealerContact{}, err
	}
	return ordersvc.DealerContact{Name: d.Name, Email: d.Email, Phone: d.Phone, Address: d.Address}, nil
}

var _ inquirysvc.DealerContacts = (*DealerContacts)(nil)
