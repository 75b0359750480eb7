package adapters

import (
	"context"
	"fmt"

	"wholesale_portal_backend/internal/agent"
	catalogsvc "wholesale_portal_backend/internal/catalog/service"
)

// AgentCatalog adapts the catalog service to agent.Catalog so the parser,
// pricer and smart search read live products.
type AgentCatalog struct {
	svc *catalogsvc.Service
}

// NewAgentCatalog creates a new agent catalog adapter.
func NewAgentCatalog(svc *catalogsvc.Service) *AgentCatalog {
	return &AgentCatalog{svc: svc}
}

// FindBySKU returns the active product for sku. Unknown or inactive SKUs
// surface as apperr NotFound.
func (a *AgentCatalog) FindBySKU(ctx context.Context, sku string) (agent.Product, error) {
	p, err := a.svc.FindActiveBySKU(ctx, sku)
	if err != nil {
		return agent.Product{}, err
	}
	return catalogsvc.ToAgentProduct(p), nil
}

// SearchByText runs a substring search over active products.
func (a *AgentCatalog) SearchByText(ctx context.Context, text string) ([]agent.Product, error) {
	items, err := a.svc.SearchActive(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("agent catalog: search: %w", err)
	}
	out := make([]agent.Product, len(items))
	for i, item := range items {
		out[i] = catalogsvc.ToAgentProduct(item)
	}
	return out, nil
}

// ListActive returns every active product.
func (a *AgentCatalog) ListActive(ctx context.Context) ([]agent.Product, error) {
	items, err := a.svc.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("agent catalog: list active: %w", err)
	}
	out := make([]agent.Product, len(items))
	for i, item := range items {
		out[i] = catalogsvc.ToAgentProduct(item)
	}
	return out, nil
}

// CheckAvailability reports live stock for sku against quantity.
func (a *AgentCatalog) CheckAvailability(ctx context.Context, sku string, quantity int) (agent.Availability, error) {
	return a.svc.CheckAvailability(ctx, sku, quantity)
}

var _ agent.Catalog = (*AgentCatalog)(nil)
