package transport

import "wholesale_portal_backend/platform/money"

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required,max=8000"`
}

type CartItem struct {
	SKU       string       `json:"sku" validate:"required,max=50"`
	Name      string       `json:"name" validate:"required,max=200"`
	Quantity  int          `json:"quantity" validate:"gt=0"`
	UnitPrice money.Amount `json:"unitPrice"`
}

type ChatContext struct {
	DealerName *string    `json:"dealerName,omitempty" validate:"omitempty,max=200"`
	CartItems  []CartItem `json:"cartItems,omitempty" validate:"omitempty,max=200,dive"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,max=50,dive"`
	Context  *ChatContext  `json:"context,omitempty"`
}

type ProductSummary struct {
	SKU           string       `json:"sku"`
	Name          string       `json:"name"`
	UnitPrice     money.Amount `json:"unitPrice"`
	Unit          string       `json:"unit"`
	StockQuantity int          `json:"stockQuantity"`
	LeadTimeDays  int          `json:"leadTimeDays"`
}

type CartUpdate struct {
	Action   string         `json:"action"`
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
}

type ChatResponse struct {
	Message          string       `json:"message"`
	CartUpdates      []CartUpdate `json:"cartUpdates"`
	SuggestedActions []string     `json:"suggestedActions"`
}
