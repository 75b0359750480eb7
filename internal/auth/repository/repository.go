// Package repository provides data access for user accounts.
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

const userNotFoundMessage = "user not found"

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleDealer = "dealer"
)

const userColumns = `id, email, name, password_hash, role, dealer_id, last_signed_in, created_at, updated_at`

const getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

const upsertUserQuery = `
	INSERT INTO users (email, name, password_hash, role, dealer_id)
	VALUES (lower($1), $2, $3, $4, $5)
	ON CONFLICT (email) DO UPDATE
	SET name = EXCLUDED.name,
		role = EXCLUDED.role,
		dealer_id = EXCLUDED.dealer_id,
		updated_at = now()
	RETURNING ` + userColumns

// User is an account that can sign in.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         *string
	PasswordHash string
	Role         string
	DealerID     *uuid.UUID
	LastSignedIn *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpsertUserParams describes an account to create or refresh by email.
// The password hash of an existing account is kept.
type UpsertUserParams struct {
	Email        string
	Name         string
	PasswordHash string
	Role         string
	DealerID     *uuid.UUID
}

// Repository defines user data access.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	TouchLastSignedIn(ctx context.Context, id uuid.UUID) error
	UpsertUser(ctx context.Context, params UpsertUserParams) (User, error)
}

// Repo implements Repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Ensure Repo implements Repository
var _ Repository = (*Repo)(nil)

func scanUser(row pgx.Row, op string) (User, error) {
	var u User
	if err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.DealerID,
		&u.LastSignedIn, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (r *Repo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, getUserByEmailQuery, email), "get user by email")
}

// GetUserByID retrieves a user by ID.
func (r *Repo) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id), "get user by id")
}

// TouchLastSignedIn stamps the sign-in time.
func (r *Repo) TouchLastSignedIn(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `UPDATE users SET last_signed_in = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("touch last signed in: %w", err)
	}
	return nil
}

// UpsertUser creates the account or refreshes its name, role and dealer link.
func (r *Repo) UpsertUser(ctx context.Context, params UpsertUserParams) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, upsertUserQuery,
		params.Email, params.Name, params.PasswordHash, params.Role, params.DealerID,
	), "upsert user")
}
