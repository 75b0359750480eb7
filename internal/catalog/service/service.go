package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"wholesale_portal_backend/internal/agent"
	"wholesale_portal_backend/internal/catalog/repository"
	"wholesale_portal_backend/internal/catalog/transport"
	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/money"
)

const productNotFoundMessage = "product not found"

// Service provides business logic for catalog.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListProducts returns every active product.
func (s *Service) ListProducts(ctx context.Context) (transport.ProductListResponse, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return transport.ProductListResponse{}, err
	}
	return toProductListResponse(items), nil
}

// ListByCategory returns active products within a category.
func (s *Service) ListByCategory(ctx context.Context, category string) (transport.ProductListResponse, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return transport.ProductListResponse{}, apperr.Validation("category is required")
	}
	items, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return transport.ProductListResponse{}, err
	}
	return toProductListResponse(items), nil
}

// Search runs a plain substring search over active products.
func (s *Service) Search(ctx context.Context, query string) (transport.ProductListResponse, error) {
	items, err := s.repo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return transport.ProductListResponse{}, err
	}
	return toProductListResponse(items), nil
}

// SmartSearch searches the whole query, then its individual words.
func (s *Service) SmartSearch(ctx context.Context, query string) transport.ProductListResponse {
	searcher := &recordingSearcher{repo: s.repo, seen: make(map[uuid.UUID]repository.Product)}
	hits := agent.SmartSearch(ctx, searcher, query)

	items := make([]repository.Product, 0, len(hits))
	for _, hit := range hits {
		if p, ok := searcher.seen[hit.ID]; ok {
			items = append(items, p)
		}
	}
	return toProductListResponse(items)
}

// GetBySKU returns an active product. Inactive products are not found.
func (s *Service) GetBySKU(ctx context.Context, sku string) (transport.ProductResponse, error) {
	p, err := s.FindActiveBySKU(ctx, sku)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return toProductResponse(p), nil
}

// AdminListProducts returns active products with open order counts.
func (s *Service) AdminListProducts(ctx context.Context) (transport.AdminProductListResponse, error) {
	items, err := s.repo.ListWithOrderCounts(ctx)
	if err != nil {
		return transport.AdminProductListResponse{}, err
	}
	resp := make([]transport.AdminProductResponse, len(items))
	for i, item := range items {
		resp[i] = transport.AdminProductResponse{
			ProductResponse:  toProductResponse(item.Product),
			ActiveOrderCount: item.ActiveOrderCount,
		}
	}
	return transport.AdminProductListResponse{Items: resp, Total: len(resp)}, nil
}

// UpdatePrice sets a product's unit price.
func (s *Service) UpdatePrice(ctx context.Context, sku string, req transport.UpdatePriceRequest) (transport.ProductResponse, error) {
	if !req.UnitPrice.IsPositive() {
		return transport.ProductResponse{}, apperr.Validation("unit price must be greater than zero")
	}
	p, err := s.repo.UpdatePrice(ctx, normalizeSKU(sku), money.Round2(req.UnitPrice.Decimal))
	if err != nil {
		return transport.ProductResponse{}, err
	}
	s.log.Info("product price updated", "sku", p.SKU, "unitPrice", money.Fixed(p.UnitPrice))
	return toProductResponse(p), nil
}

// UpdateStock sets a product's stock quantity.
func (s *Service) UpdateStock(ctx context.Context, sku string, req transport.UpdateStockRequest) (transport.ProductResponse, error) {
	p, err := s.repo.UpdateStock(ctx, normalizeSKU(sku), *req.StockQuantity)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	s.log.Info("product stock updated", "sku", p.SKU, "stockQuantity", p.StockQuantity)
	return toProductResponse(p), nil
}

// UpdateLeadTime sets a product's lead time.
func (s *Service) UpdateLeadTime(ctx context.Context, sku string, req transport.UpdateLeadTimeRequest) (transport.ProductResponse, error) {
	p, err := s.repo.UpdateLeadTime(ctx, normalizeSKU(sku), *req.LeadTimeDays)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	s.log.Info("product lead time updated", "sku", p.SKU, "leadTimeDays", p.LeadTimeDays)
	return toProductResponse(p), nil
}

// FindActiveBySKU returns the active product for sku or a not found error.
func (s *Service) FindActiveBySKU(ctx context.Context, sku string) (repository.Product, error) {
	p, err := s.repo.GetBySKU(ctx, normalizeSKU(sku))
	if err != nil {
		return repository.Product{}, err
	}
	if !p.IsActive {
		return repository.Product{}, apperr.NotFound(productNotFoundMessage)
	}
	return p, nil
}

// ListActive returns the raw active product records.
func (s *Service) ListActive(ctx context.Context) ([]repository.Product, error) {
	return s.repo.ListActive(ctx)
}

// SearchActive returns the raw records matching a substring search.
func (s *Service) SearchActive(ctx context.Context, query string) ([]repository.Product, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query))
}

// CheckAvailability reports whether stock covers quantity for sku.
// Unknown SKUs are reported unavailable with zero stock.
func (s *Service) CheckAvailability(ctx context.Context, sku string, quantity int) (agent.Availability, error) {
	p, err := s.FindActiveBySKU(ctx, sku)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return agent.Availability{}, nil
		}
		return agent.Availability{}, err
	}
	return agent.Availability{
		Available:         p.StockQuantity >= quantity,
		AvailableQuantity: p.StockQuantity,
		LeadTimeDays:      p.LeadTimeDays,
	}, nil
}

// ToAgentProduct converts a catalog record into the agent view.
func ToAgentProduct(p repository.Product) agent.Product {
	description := ""
	if p.Description != nil {
		description = *p.Description
	}
	return agent.Product{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      description,
		Category:         p.Category,
		UnitPrice:        p.UnitPrice,
		Unit:             p.Unit,
		StockQuantity:    p.StockQuantity,
		MinOrderQuantity: p.MinOrderQuantity,
		LeadTimeDays:     p.LeadTimeDays,
	}
}

// recordingSearcher feeds SmartSearch and remembers the full records so
// results can be mapped back without a second query.
type recordingSearcher struct {
	repo repository.Repository
	seen map[uuid.UUID]repository.Product
}

func (r *recordingSearcher) SearchByText(ctx context.Context, text string) ([]agent.Product, error) {
	items, err := r.repo.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	out := make([]agent.Product, len(items))
	for i, item := range items {
		r.seen[item.ID] = item
		out[i] = ToAgentProduct(item)
	}
	return out, nil
}

func normalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func toProductResponse(p repository.Product) transport.ProductResponse {
	return transport.ProductResponse{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		Category:         p.Category,
		UnitPrice:        money.NewAmount(p.UnitPrice),
		Unit:             p.Unit,
		StockQuantity:    p.StockQuantity,
		MinOrderQuantity: p.MinOrderQuantity,
		LeadTimeDays:     p.LeadTimeDays,
		ImageURL:         p.ImageURL,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
}

func toProductListResponse(items []repository.Product) transport.ProductListResponse {
	resp := make([]transport.ProductResponse, len(items))
	for i, item := range items {
		resp[i] = toProductResponse(item)
	}
	return transport.ProductListResponse{Items: resp, Total: len(resp)}
}
