package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/money"
)

const productNotFoundMessage = "product not found"

// productColumns selects unit_price as text so it scans into a decimal
// without a pgx numeric codec.
const productColumns = `
	id, sku, name, description, category, unit_price::text, unit,
	stock_quantity, min_order_quantity, lead_time_days, image_url, is_active,
	created_at, updated_at`

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var unitPrice string
	if err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &unitPrice, &p.Unit,
		&p.StockQuantity, &p.MinOrderQuantity, &p.LeadTimeDays, &p.ImageURL, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return Product{}, err
	}
	p.UnitPrice = money.Parse(unitPrice)
	return p, nil
}

func (r *Repo) queryProducts(ctx context.Context, op string, query string, args ...any) ([]Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return items, nil
}

// ListActive lists every active product ordered by SKU.
func (r *Repo) ListActive(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true
		ORDER BY sku`
	return r.queryProducts(ctx, "list active products", query)
}

// ListByCategory lists active products in a category.
func (r *Repo) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true AND lower(category) = lower($1)
		ORDER BY name`
	return r.queryProducts(ctx, "list products by category", query, category)
}

// Search lists active products whose name, SKU, category or description
// contains query, case-insensitively.
func (r *Repo) Search(ctx context.Context, query string) ([]Product, error) {
	sql := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true
		  AND (name ILIKE $1 OR sku ILIKE $1 OR category ILIKE $1 OR COALESCE(description, '') ILIKE $1)
		ORDER BY name`
	return r.queryProducts(ctx, "search products", sql, "%"+escapeLike(query)+"%")
}

// GetBySKU retrieves a product by SKU regardless of its active flag.
func (r *Repo) GetBySKU(ctx context.Context, sku string) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// ListWithOrderCounts lists active products with the number of open
// orders referencing each SKU.
func (r *Repo) ListWithOrderCounts(ctx context.Context) ([]ProductWithOrderCount, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.description, p.category, p.unit_price::text, p.unit,
			p.stock_quantity, p.min_order_quantity, p.lead_time_days, p.image_url, p.is_active,
			p.created_at, p.updated_at,
			COALESCE(c.order_count, 0)
		FROM products p
		LEFT JOIN (
			SELECT oi.sku, COUNT(DISTINCT oi.order_id) AS order_count
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.status IN ('pending', 'confirmed', 'processing')
			GROUP BY oi.sku
		) c ON c.sku = p.sku
		WHERE p.is_active = true
		ORDER BY p.sku`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products with order counts: %w", err)
	}
	defer rows.Close()

	items := make([]ProductWithOrderCount, 0)
	for rows.Next() {
		var item ProductWithOrderCount
		var unitPrice string
		if err := rows.Scan(
			&item.ID, &item.SKU, &item.Name, &item.Description, &item.Category, &unitPrice, &item.Unit,
			&item.StockQuantity, &item.MinOrderQuantity, &item.LeadTimeDays, &item.ImageURL, &item.IsActive,
			&item.CreatedAt, &item.UpdatedAt,
			&item.ActiveOrderCount,
		); err != nil {
			return nil, fmt.Errorf("scan product with order count: %w", err)
		}
		item.UnitPrice = money.Parse(unitPrice)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products with order counts rows: %w", err)
	}
	return items, nil
}

func (r *Repo) updateOne(ctx context.Context, op string, set string, sku string, value any) (Product, error) {
	query := `UPDATE products SET ` + set + `, updated_at = now()
		WHERE sku = $1
		RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, query, sku, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdatePrice sets the unit price of a product.
func (r *Repo) UpdatePrice(ctx context.Context, sku string, unitPrice decimal.Decimal) (Product, error) {
	return r.updateOne(ctx, "update product price", "unit_price = $2::numeric", sku, money.Fixed(unitPrice))
}

// UpdateStock sets the on-hand stock of a product.
func (r *Repo) UpdateStock(ctx context.Context, sku string, stockQuantity int) (Product, error) {
	return r.updateOne(ctx, "update product stock", "stock_quantity = $2", sku, stockQuantity)
}

// UpdateLeadTime sets the lead time in days of a product.
func (r *Repo) UpdateLeadTime(ctx context.Context, sku string, leadTimeDays int) (Product, error) {
	return r.updateOne(ctx, "update product lead time", "lead_time_days = $2", sku, leadTimeDays)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes LIKE wildcards in user input literal.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
