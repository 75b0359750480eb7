package service

import (
	"regexp"
	"strconv"
	"strings"

	"wholesale_portal_backend/internal/agent"
	"wholesale_portal_backend/internal/assistant/transport"
	"wholesale_portal_backend/platform/money"
)

var addPattern = regexp.MustCompile(`(?i)add(?:ing)?\s+(\d+)\s*(?:x|×)?\s*([\w\s]+?)(?:\s+to|$)`)

// cartUpdates scans a reply for "add N product" phrases and resolves each
// to the first product whose name or SKU contains the phrase.
func cartUpdates(reply string, products []agent.Product) []transport.CartUpdate {
	updates := make([]transport.CartUpdate, 0)
	for _, m := range addPattern.FindAllStringSubmatch(reply, -1) {
		quantity, err := strconv.Atoi(m[1])
		if err != nil || quantity <= 0 {
			continue
		}
		phrase := strings.ToLower(strings.TrimSpace(m[2]))
		if phrase == "" {
			continue
		}
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), phrase) || strings.Contains(strings.ToLower(p.SKU), phrase) {
				updates = append(updates, transport.CartUpdate{
					Action:   "add",
					Product:  toProductSummary(p),
					Quantity: quantity,
				})
				break
			}
		}
	}
	return updates
}

func toProductSummary(p agent.Product) transport.ProductSummary {
	return transport.ProductSummary{
		SKU:           p.SKU,
		Name:          p.Name,
		UnitPrice:     money.NewAmount(p.UnitPrice),
		Unit:          p.Unit,
		StockQuantity: p.StockQuantity,
		LeadTimeDays:  p.LeadTimeDays,
	}
}
