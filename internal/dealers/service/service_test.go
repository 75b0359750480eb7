package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"wholesale_portal_backend/internal/dealers/repository"
	"wholesale_portal_backend/internal/dealers/transport"
	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/logger"
)

type fakeRepo struct {
	dealers map[uuid.UUID]repository.Dealer
	created int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{dealers: make(map[uuid.UUID]repository.Dealer)}
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Dealer, error) {
	d, ok := f.dealers[id]
	if !ok {
		return repository.Dealer{}, apperr.NotFound("dealer not found")
	}
	return d, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (repository.Dealer, error) {
	for _, d := range f.dealers {
		if d.Email != nil && *d.Email == email {
			return d, nil
		}
	}
	return repository.Dealer{}, apperr.NotFound("dealer not found")
}

func (f *fakeRepo) Create(ctx context.Context, params repository.CreateParams) (repository.Dealer, error) {
	f.created++
	d := repository.Dealer{
		ID: uuid.New(), Name: params.Name, ContactPerson: params.ContactPerson,
		Email: params.Email, Phone: params.Phone, Address: params.Address,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	f.dealers[d.ID] = d
	return d, nil
}

func (f *fakeRepo) Update(ctx context.Context, id uuid.UUID, params repository.UpdateParams) (repository.Dealer, error) {
	d, ok := f.dealers[id]
	if !ok {
		return repository.Dealer{}, apperr.NotFound("dealer not found")
	}
	if params.Name != nil {
		d.Name = *params.Name
	}
	if params.Phone != nil {
		d.Phone = params.Phone
	}
	if params.Address != nil {
		d.Address = params.Address
	}
	f.dealers[id] = d
	return d, nil
}

func ptr(s string) *string { return &s }

func TestEnsureDealerIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.Discard())
	params := repository.CreateParams{Name: "Demo Wholesale Co.", Email: ptr("dealer@demo.com"), Phone: ptr("+1 555-0100")}

	first, err := svc.EnsureDealer(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.EnsureDealer(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID || repo.created != 1 {
		t.Fatalf("expected a single dealer, created %d", repo.created)
	}
}

func TestUpdateProfileSanitizesInput(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.Discard())
	d, _ := repo.Create(context.Background(), repository.CreateParams{Name: "Acme"})

	got, err := svc.UpdateProfile(context.Background(), d.ID, transport.UpdateProfileRequest{
		Name:    ptr("<b>Acme Supply</b>"),
		Phone:   ptr("(201) 555-0123"),
		Address: ptr("  1 Dock Rd  "),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Acme Supply" {
		t.Fatalf("expected markup stripped, got %q", got.Name)
	}
	if got.Phone == nil || *got.Phone != "+12015550123" {
		t.Fatalf("expected E.164 phone, got %v", got.Phone)
	}
	if got.Address == nil || *got.Address != "1 Dock Rd" {
		t.Fatalf("expected trimmed address, got %v", got.Address)
	}
}

func TestUpdateProfileRejectsBlankName(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.Discard())
	d, _ := repo.Create(context.Background(), repository.CreateParams{Name: "Acme"})

	_, err := svc.UpdateProfile(context.Background(), d.ID, transport.UpdateProfileRequest{Name: ptr("   ")})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
