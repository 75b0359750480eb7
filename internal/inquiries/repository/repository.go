package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wholesale_portal_backend/platform/apperr"
)

const (
	inquiryNotFoundMessage  = "inquiry not found"
	inquiryConvertedMessage = "inquiry already converted"
)

const inquiryColumns = `
	id, user_id, dealer_id, dealer_name, dealer_email, dealer_phone,
	raw_inquiry, parsed_data, parse_source, pricing_response, status, notes,
	created_at, updated_at`

// Repo implements Repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new inquiry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanInquiry(row pgx.Row) (Inquiry, error) {
	var i Inquiry
	err := row.Scan(
		&i.ID, &i.UserID, &i.DealerID, &i.DealerName, &i.DealerEmail, &i.DealerPhone,
		&i.RawInquiry, &i.ParsedData, &i.ParseSource, &i.PricingResponse, &i.Status, &i.Notes,
		&i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

func (r *Repo) one(ctx context.Context, op string, query string, args ...any) (Inquiry, error) {
	i, err := scanInquiry(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Inquiry{}, apperr.NotFound(inquiryNotFoundMessage)
		}
		return Inquiry{}, fmt.Errorf("%s: %w", op, err)
	}
	return i, nil
}

// Create inserts an inquiry.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Inquiry, error) {
	query := `
		INSERT INTO inquiries (user_id, dealer_id, dealer_name, dealer_email, dealer_phone, raw_inquiry, parsed_data, parse_source, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9)
		RETURNING ` + inquiryColumns
	return r.one(ctx, "create inquiry", query,
		params.UserID, params.DealerID, params.DealerName, params.DealerEmail, params.DealerPhone,
		params.RawInquiry, nullableJSON(params.ParsedData), params.ParseSource, params.Status,
	)
}

// GetByID retrieves an inquiry by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id = $1`
	return r.one(ctx, "get inquiry by id", query, id)
}

// SavePricing stores a quote and sets status.
func (r *Repo) SavePricing(ctx context.Context, id uuid.UUID, pricing []byte, status string) (Inquiry, error) {
	query := `
		UPDATE inquiries
		SET pricing_response = $2::jsonb, status = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + inquiryColumns
	return r.one(ctx, "save inquiry pricing", query, id, nullableJSON(pricing), status)
}

// UpdateStatus sets the inquiry status.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Inquiry, error) {
	query := `
		UPDATE inquiries
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + inquiryColumns
	return r.one(ctx, "update inquiry status", query, id, status)
}

// ClaimConversion moves an inquiry to converted unless it already is.
// A lost race or a repeat request yields a conflict.
func (r *Repo) ClaimConversion(ctx context.Context, id uuid.UUID) (Inquiry, error) {
	query := `
		UPDATE inquiries
		SET status = '` + StatusConverted + `', updated_at = now()
		WHERE id = $1 AND status <> '` + StatusConverted + `'
		RETURNING ` + inquiryColumns
	i, err := scanInquiry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Inquiry{}, apperr.Conflict(inquiryConvertedMessage)
		}
		return Inquiry{}, fmt.Errorf("claim inquiry conversion: %w", err)
	}
	return i, nil
}

// List returns inquiries matching params, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Inquiry, error) {
	where, args := buildListFilter(params)
	query := `SELECT ` + inquiryColumns + ` FROM inquiries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	items := make([]Inquiry, 0)
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inquiries rows: %w", err)
	}
	return items, nil
}

func buildListFilter(params ListParams) ([]string, []any) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 5)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Status != "" {
		where = append(where, "status = "+next(params.Status))
	}
	if s := strings.TrimSpace(params.Search); s != "" {
		p := next("%" + s + "%")
		where = append(where, "(dealer_name ILIKE "+p+" OR dealer_email ILIKE "+p+" OR raw_inquiry ILIKE "+p+")")
	}
	if params.StartDate != nil {
		where = append(where, "created_at >= "+next(*params.StartDate))
	}
	if params.EndDate != nil {
		where = append(where, "created_at < "+next(*params.EndDate))
	}
	if params.DealerID != nil {
		where = append(where, "dealer_id = "+next(*params.DealerID))
	}
	return where, args
}

// nullableJSON maps an empty payload to SQL NULL.
func nullableJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}
