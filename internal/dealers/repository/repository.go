// Package repository provides data access for dealer accounts.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wholesale_portal_backend/platform/apperr"
)

const dealerNotFoundMessage = "dealer not found"

const dealerColumns = `id, name, contact_person, email, phone, address, created_at, updated_at`

// Dealer is a wholesale customer company.
type Dealer struct {
	ID            uuid.UUID
	Name          string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateParams holds the fields of a new dealer.
type CreateParams struct {
	Name          string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

// UpdateParams holds optional profile changes. Nil fields are left as is.
type UpdateParams struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

// Repository defines dealer data access.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Dealer, error)
	GetByEmail(ctx context.Context, email string) (Dealer, error)
	Create(ctx context.Context, params CreateParams) (Dealer, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Dealer, error)
}

// Repo implements Repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dealer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanDealer(row pgx.Row, op string) (Dealer, error) {
	var d Dealer
	if err := row.Scan(&d.ID, &d.Name, &d.ContactPerson, &d.Email, &d.Phone, &d.Address, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dealer{}, apperr.NotFound(dealerNotFoundMessage)
		}
		return Dealer{}, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

// GetByID retrieves a dealer by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Dealer, error) {
	query := `SELECT ` + dealerColumns + ` FROM dealers WHERE id = $1`
	return scanDealer(r.pool.QueryRow(ctx, query, id), "get dealer by id")
}

// GetByEmail retrieves the oldest dealer with the given contact email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (Dealer, error) {
	query := `SELECT ` + dealerColumns + ` FROM dealers WHERE lower(email) = lower($1) ORDER BY created_at LIMIT 1`
	return scanDealer(r.pool.QueryRow(ctx, query, email), "get dealer by email")
}

// Create inserts a dealer.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Dealer, error) {
	query := `
		INSERT INTO dealers (name, contact_person, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + dealerColumns
	return scanDealer(r.pool.QueryRow(ctx, query,
		params.Name, params.ContactPerson, params.Email, params.Phone, params.Address,
	), "create dealer")
}

// Update applies non-nil fields to a dealer.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Dealer, error) {
	query := `
		UPDATE dealers
		SET name = COALESCE($2, name),
			contact_person = COALESCE($3, contact_person),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			address = COALESCE($6, address),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + dealerColumns
	return scanDealer(r.pool.QueryRow(ctx, query,
		id, params.Name, params.ContactPerson, params.Email, params.Phone, params.Address,
	), "update dealer")
}
