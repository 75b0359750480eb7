// Package service implements the dealer ordering assistant.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"wholesale_portal_backend/internal/agent"
	"wholesale_portal_backend/internal/assistant/transport"
	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/logger"
)

const apologyMessage = "I'm sorry, I encountered an error processing your request. Please try again."

var suggestedActions = []string{"Proceed to Order", "Clear Cart"}

// ProductLister reads the active catalog.
type ProductLister interface {
	ListActive(ctx context.Context) ([]agent.Product, error)
}

// Responder produces one model reply for an instruction and a user turn.
type Responder interface {
	Respond(ctx context.Context, userID, instruction, message string) (string, error)
}

// Service handles assistant chats.
type Service struct {
	catalog   ProductLister
	responder Responder
	log       *logger.Logger
}

// New creates a new assistant service. A nil responder answers with the apology message.
func New(catalog ProductLister, responder Responder, log *logger.Logger) *Service {
	return &Service{catalog: catalog, responder: responder, log: log}
}

// Chat answers the conversation. Model failures return the apology message, not an error.
func (s *Service) Chat(ctx context.Context, userID uuid.UUID, req transport.ChatRequest) (transport.ChatResponse, error) {
	message := transcript(req.Messages)
	if message == "" {
		return transport.ChatResponse{}, apperr.Validation("at least one user message is required")
	}

	products, err := s.catalog.ListActive(ctx)
	if err != nil {
		s.log.CatalogDegraded("assistant_list_active", err)
		products = nil
	}

	dealerName := defaultDealerName
	var cart []transport.CartItem
	if req.Context != nil {
		if req.Context.DealerName != nil && strings.TrimSpace(*req.Context.DealerName) != "" {
			dealerName = strings.TrimSpace(*req.Context.DealerName)
		}
		cart = req.Context.CartItems
	}

	if s.responder == nil {
		return apology(), nil
	}
	reply, err := s.responder.Respond(ctx, userID.String(), systemInstruction(products, cart, dealerName), message)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.log.Warn("assistant reply failed", "user", userID, "error", err)
		return apology(), nil
	}

	updates := cartUpdates(reply, products)
	actions := []string{}
	if len(updates) > 0 {
		actions = append(actions, suggestedActions...)
	}
	return transport.ChatResponse{Message: reply, CartUpdates: updates, SuggestedActions: actions}, nil
}

func apology() transport.ChatResponse {
	return transport.ChatResponse{
		Message:          apologyMessage,
		CartUpdates:      []transport.CartUpdate{},
		SuggestedActions: []string{},
	}
}
