package agent

import (
	"fmt"
	"strings"

	"wholesale_portal_backend/platform/money"
)

// catalogContext renders one line per active product for the model prompt.
func catalogContext(products []Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- %s: %s (%s, $%s/%s)", p.SKU, p.Name, p.Category, money.Fixed(p.UnitPrice), p.Unit))
	}
	return strings.Join(lines, "\n")
}

func parserSystemPrompt(products []Product) string {
	return fmt.Sprintf(`You parse wholesale dealer inquiries into structured data.
Extract requested products, quantities, delivery details and contact details from free text.

Products in our catalog:
%s

Rules:
1. Match every product mention to the closest SKU in the catalog above. Never invent SKUs.
2. Extract quantities: look for numbers near product names. Quantities are whole numbers.
3. Use the catalog unit when the inquiry names none; default to "pcs".
4. Extract the dealer name, email, phone number and delivery address when present.
5. Write dates as YYYY-MM-DD.
6. Report a confidence score between 0 and 1 for how clear the inquiry is.
7. Put ambiguities or substitutions in the item notes.

IMPORTANT: return valid JSON only, with no other text.`, catalogContext(products))
}

func parserUserPrompt(rawText string) string {
	return fmt.Sprintf(`Parse this dealer inquiry into structured JSON:

%q

Return JSON in exactly this shape (raw JSON, no markdown):
{
  "dealerName": "string or null",
  "dealerEmail": "string or null",
  "dealerPhone": "string or null",
  "items": [
    {
      "productName": "matched product name from catalog",
      "productSku": "matched SKU from catalog",
      "quantity": 10,
      "unit": "pcs",
      "notes": "any notes"
    }
  ],
  "requestedDeliveryDate": "YYYY-MM-DD or null",
  "deliveryAddress": "string or null",
  "generalNotes": "any additional notes",
  "confidence": 0.85
}

Examples of catalog matching:
- "LED lights" is WH-ELEC-001: Industrial LED Panel Light 60W
- "boxes" or "shipping boxes" is WH-PACK-001: Corrugated Shipping Box
- "tape" or "packing tape" is WH-PACK-003: Packing Tape
- "safety vests" is WH-SAFE-002: High-Visibility Safety Vest
- "gloves" is WH-SAFE-003: Nitrile Gloves`, rawText)
}
