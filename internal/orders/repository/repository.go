package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/money"
)

const orderNotFoundMessage = "order not found"

const uniqueViolation = "23505"

const orderColumns = `
	id, order_number, inquiry_id, user_id, dealer_id, public_session_id,
	company_name, contact_number, dealer_name, dealer_email, dealer_phone,
	delivery_address, requested_delivery_date, subtotal::text, tax::text, total::text,
	status, notes, do_generated_at, do_url, created_at, updated_at`

const itemColumns = `
	id, order_id, product_id, sku, product_name, quantity, unit_price::text, line_total::text, notes, created_at`

// Repo implements Repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new order repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var subtotal, tax, total string
	if err := row.Scan(
		&o.ID, &o.OrderNumber, &o.InquiryID, &o.UserID, &o.DealerID, &o.PublicSessionID,
		&o.CompanyName, &o.ContactNumber, &o.DealerName, &o.DealerEmail, &o.DealerPhone,
		&o.DeliveryAddress, &o.RequestedDeliveryDate, &subtotal, &tax, &total,
		&o.Status, &o.Notes, &o.DOGeneratedAt, &o.DOURL, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return Order{}, err
	}
	o.Subtotal = money.Parse(subtotal)
	o.Tax = money.Parse(tax)
	o.Total = money.Parse(total)
	return o, nil
}

func scanItem(row pgx.Row) (Item, error) {
	var i Item
	var unitPrice, lineTotal string
	if err := row.Scan(
		&i.ID, &i.OrderID, &i.ProductID, &i.SKU, &i.ProductName, &i.Quantity,
		&unitPrice, &lineTotal, &i.Notes, &i.CreatedAt,
	); err != nil {
		return Item{}, err
	}
	i.UnitPrice = money.Parse(unitPrice)
	i.LineTotal = money.Parse(lineTotal)
	return i, nil
}

func (r *Repo) one(ctx context.Context, op string, query string, args ...any) (Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (r *Repo) many(ctx context.Context, op string, query string, args ...any) ([]Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return items, nil
}

// Create inserts the order and its items in one transaction.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Order, []Item, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, nil, fmt.Errorf("begin create order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	order, err := scanOrder(tx.QueryRow(ctx, `
		INSERT INTO orders (
			order_number, inquiry_id, user_id, dealer_id, public_session_id,
			company_name, contact_number, dealer_name, dealer_email, dealer_phone,
			delivery_address, requested_delivery_date, subtotal, tax, total, status, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::numeric, $14::numeric, $15::numeric, $16, $17)
		RETURNING `+orderColumns,
		params.OrderNumber, params.InquiryID, params.UserID, params.DealerID, params.PublicSessionID,
		params.CompanyName, params.ContactNumber, params.DealerName, params.DealerEmail, params.DealerPhone,
		params.DeliveryAddress, params.RequestedDeliveryDate,
		money.Fixed(params.Subtotal), money.Fixed(params.Tax), money.Fixed(params.Total),
		StatusPending, params.Notes,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Order{}, nil, ErrDuplicateOrderNumber
		}
		return Order{}, nil, fmt.Errorf("insert order: %w", err)
	}

	items := make([]Item, 0, len(params.Items))
	for _, line := range params.Items {
		item, err := scanItem(tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, sku, product_name, quantity, unit_price, line_total, notes)
			VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8)
			RETURNING `+itemColumns,
			order.ID, line.ProductID, line.SKU, line.ProductName, line.Quantity,
			money.Fixed(line.UnitPrice), money.Fixed(line.LineTotal), line.Notes,
		))
		if err != nil {
			return Order{}, nil, fmt.Errorf("insert order item %s: %w", line.SKU, err)
		}
		items = append(items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, nil, fmt.Errorf("commit create order: %w", err)
	}
	return order, items, nil
}

// GetByID retrieves an order by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	return r.one(ctx, "get order by id", `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetByNumber retrieves an order by its DO number.
func (r *Repo) GetByNumber(ctx context.Context, orderNumber string) (Order, error) {
	return r.one(ctx, "get order by number", `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
}

// ListItems lists the lines of an order in insertion order.
func (r *Repo) ListItems(ctx context.Context, orderID uuid.UUID) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM order_items WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list order items rows: %w", err)
	}
	return items, nil
}

// List returns orders matching params, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Order, error) {
	where, args := buildListFilter(params)
	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	return r.many(ctx, "list orders", query, args...)
}

// ListWithDeliveryOrders returns orders with a generated DO, latest DO first.
func (r *Repo) ListWithDeliveryOrders(ctx context.Context) ([]Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE do_generated_at IS NOT NULL
		ORDER BY do_generated_at DESC`
	return r.many(ctx, "list delivery orders", query)
}

// UpdateStatus sets the order status.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Order, error) {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + orderColumns
	return r.one(ctx, "update order status", query, id, status)
}

// StampDeliveryOrder records DO generation time and, when given, the document key.
func (r *Repo) StampDeliveryOrder(ctx context.Context, id uuid.UUID, documentKey *string) (Order, error) {
	query := `
		UPDATE orders
		SET do_generated_at = now(), do_url = COALESCE($2, do_url), updated_at = now()
		WHERE id = $1
		RETURNING ` + orderColumns
	return r.one(ctx, "stamp delivery order", query, id, documentKey)
}

func buildListFilter(params ListParams) ([]string, []any) {
	where := make([]string, 0, 6)
	args := make([]any, 0, 6)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Status != "" {
		where = append(where, "status = "+next(params.Status))
	}
	if s := strings.TrimSpace(params.Search); s != "" {
		p := next("%" + s + "%")
		where = append(where, "(dealer_name ILIKE "+p+" OR order_number ILIKE "+p+" OR dealer_email ILIKE "+p+")")
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
	if params.Email != "" {
		where = append(where, "lower(dealer_email) = lower("+next(params.Email)+")")
	}
	return where, args
}
