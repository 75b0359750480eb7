package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"wholesale_portal_backend/internal/agent"
	"wholesale_portal_backend/internal/assistant/transport"
	"wholesale_portal_backend/platform/money"
)

const defaultDealerName = "Dealer"

func systemInstruction(products []agent.Product, cart []transport.CartItem, dealerName string) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s (SKU: %s, $%s/%s, Stock: %d, Lead: %dd)",
			p.Name, p.SKU, money.Fixed(p.UnitPrice), p.Unit, p.StockQuantity, p.LeadTimeDays))
	}

	return fmt.Sprintf(`You are a helpful wholesale ordering assistant. You help dealers find products, check pricing and availability, and build orders.

Available Products:
%s

%s

Dealer: %s

Guidelines:
1. When asked about products, give accurate pricing and stock from the catalog above.
2. When asked to add items, confirm what you will add, phrased as "adding <qty> <product name> to your cart".
3. Be concise. Use markdown for formatting.
4. If a product is not in the catalog, suggest similar alternatives.
5. Always mention lead times for delivery planning.
6. For order requests, extract products, quantities and any delivery date or location.`,
		strings.Join(lines, "\n"), cartContext(cart), dealerName)
}

func cartContext(cart []transport.CartItem) string {
	if len(cart) == 0 {
		return "Cart is empty."
	}
	var b strings.Builder
	b.WriteString("Current cart:\n")
	total := decimal.Zero
	for _, item := range cart {
		line := money.LineTotal(item.UnitPrice.Decimal, item.Quantity)
		total = total.Add(line)
		fmt.Fprintf(&b, "- %dx %s (%s)\n", item.Quantity, item.Name, money.Dollars(line))
	}
	fmt.Fprintf(&b, "Cart Total: %s", money.Dollars(total))
	return b.String()
}

// transcript flattens the conversation into one user turn. Client system
// messages are dropped.
func transcript(messages []transport.ChatMessage) string {
	var b strings.Builder
	for _, m := range messages {
		content := strings.TrimSpace(m.Content)
		if m.Role == "system" || content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		switch m.Role {
		case "assistant":
			b.WriteString("Assistant: ")
		default:
			b.WriteString("Dealer: ")
		}
		b.WriteString(content)
	}
	return b.String()
}
