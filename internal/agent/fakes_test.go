package agent

import (
	"context"
	"errors"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"wholesale_portal_backend/platform/apperr"
)

var fixedNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func product(sku, name, category, price, unit string, stock, moq, lead int) Product {
	return Product{
		ID:               uuid.NewSHA1(uuid.NameSpaceOID, []byte(sku)),
		SKU:              sku,
		Name:             name,
		Category:         category,
		UnitPrice:        decimal.RequireFromString(price),
		Unit:             unit,
		StockQuantity:    stock,
		MinOrderQuantity: moq,
		LeadTimeDays:     lead,
	}
}

func seededProducts() []Product {
	return []Product{
		product("WH-ELEC-001", "Industrial LED Panel Light 60W", "Electronics", "45.00", "pcs", 500, 10, 3),
		product("WH-ELEC-002", "Smart Power Strip 6-Outlet", "Electronics", "28.50", "pcs", 1200, 20, 2),
		product("WH-PACK-001", "Corrugated Shipping Box 18x12x12", "Packaging", "2.50", "pcs", 5000, 100, 2),
		product("WH-PACK-003", "Packing Tape 2in x 110yd (36 rolls)", "Packaging", "42.00", "case", 200, 5, 1),
		product("WH-SAFE-002", "High-Vis Safety Vest Class 2", "Safety", "8.50", "pcs", 2000, 50, 2),
		product("WH-SAFE-003", "Nitrile Gloves Box (100 count)", "Safety", "12.00", "box", 1500, 20, 1),
		product("WH-TOOL-001", "Pallet Jack Manual 5500lb", "Equipment", "320.00", "pcs", 50, 1, 7),
	}
}

// fakeCatalog is an in-memory Catalog. Errors can be injected per operation.
type fakeCatalog struct {
	products     []Product
	findErr      error
	searchErr    error
	listErr      error
	availErr     error
	searchCalls  []string
	searchByWord map[string][]Product
}

func newFakeCatalog(products ...Product) *fakeCatalog {
	if len(products) == 0 {
		products = seededProducts()
	}
	return &fakeCatalog{products: products}
}

func (f *fakeCatalog) FindBySKU(ctx context.Context, sku string) (Product, error) {
	if f.findErr != nil {
		return Product{}, f.findErr
	}
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return Product{}, apperr.NotFound("product not found")
}

func (f *fakeCatalog) SearchByText(ctx context.Context, text string) ([]Product, error) {
	f.searchCalls = append(f.searchCalls, text)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searchByWord != nil {
		return f.searchByWord[text], nil
	}
	needle := strings.ToLower(text)
	var out []Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListActive(ctx context.Context) ([]Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func (f *fakeCatalog) CheckAvailability(ctx context.Context, sku string, quantity int) (Availability, error) {
	if f.availErr != nil {
		return Availability{}, f.availErr
	}
	p, err := f.FindBySKU(ctx, sku)
	if err != nil {
		return Availability{}, err
	}
	return Availability{
		Available:         p.StockQuantity >= quantity,
		AvailableQuantity: p.StockQuantity,
		LeadTimeDays:      p.LeadTimeDays,
	}, nil
}

// fakeLLM answers every request with a fixed response or error.
type fakeLLM struct {
	resp     *model.LLMResponse
	err      error
	requests []*model.LLMRequest
}

func textReply(text string) *fakeLLM {
	return &fakeLLM{resp: &model.LLMResponse{
		Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{genai.NewPartFromText(text)}},
	}}
}

func failingLLM() *fakeLLM {
	return &fakeLLM{err: errors.New("connection refused")}
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	f.requests = append(f.requests, req)
	return func(yield func(*model.LLMResponse, error) bool) {
		yield(f.resp, f.err)
	}
}
