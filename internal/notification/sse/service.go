// Package sse provides Server-Sent Events support for live order updates.
package sse

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wholesale_portal_backend/platform/httpkit"
	"wholesale_portal_backend/platform/logger"
)

// EventType represents different types of SSE events
type EventType string

const (
	EventOrderPlaced            EventType = "order_placed"
	EventOrderStatusChanged     EventType = "order_status_changed"
	EventDeliveryOrderGenerated EventType = "delivery_order_generated"
)

const roleAdmin = "admin"

// Event represents an SSE event payload
type Event struct {
	Type        EventType `json:"type"`
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Message     string    `json:"message,omitempty"`
	Data        any       `json:"data,omitempty"`
}

// client represents a connected SSE client
type client struct {
	userID   uuid.UUID
	dealerID uuid.UUID
	admin    bool
	events   chan Event
}

// Service manages SSE connections and event broadcasting
type Service struct {
	mu        sync.RWMutex
	clients   map[uuid.UUID][]*client // userID -> clients
	dealerMap map[uuid.UUID][]*client // dealerID -> clients
	log       *logger.Logger
}

// New creates a new SSE service
func New(log *logger.Logger) *Service {
	return &Service{
		clients:   make(map[uuid.UUID][]*client),
		dealerMap: make(map[uuid.UUID][]*client),
		log:       log,
	}
}

func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[c.userID] = append(s.clients[c.userID], c)
	if c.dealerID != uuid.Nil {
		s.dealerMap[c.dealerID] = append(s.dealerMap[c.dealerID], c)
	}
}

func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[c.userID] = without(s.clients[c.userID], c)
	if len(s.clients[c.userID]) == 0 {
		delete(s.clients, c.userID)
	}
	if c.dealerID != uuid.Nil {
		s.dealerMap[c.dealerID] = without(s.dealerMap[c.dealerID], c)
		if len(s.dealerMap[c.dealerID]) == 0 {
			delete(s.dealerMap, c.dealerID)
		}
	}
}

func without(list []*client, c *client) []*client {
	for i, cl := range list {
		if cl == c {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func (s *Service) send(targets []*client, event Event) int {
	delivered := 0
	for _, c := range targets {
		select {
		case c.events <- event:
			delivered++
		default:
			s.log.Warn("sse event buffer full", "user", c.userID, "event", event.Type)
		}
	}
	return delivered
}

// PublishToAdmins sends an event to every connected admin.
func (s *Service) PublishToAdmins(event Event) {
	s.mu.RLock()
	targets := make([]*client, 0)
	for _, list := range s.clients {
		for _, c := range list {
			if c.admin {
				targets = append(targets, c)
			}
		}
	}
	s.mu.RUnlock()

	n := s.send(targets, event)
	s.log.Debug("sse published to admins", "event", event.Type, "clients", n)
}

// PublishToDealer sends an event to every connection of one dealer.
func (s *Service) PublishToDealer(dealerID uuid.UUID, event Event) {
	s.mu.RLock()
	targets := make([]*client, len(s.dealerMap[dealerID]))
	copy(targets, s.dealerMap[dealerID])
	s.mu.RUnlock()

	n := s.send(targets, event)
	s.log.Debug("sse published to dealer", "event", event.Type, "dealer", dealerID, "clients", n)
}

// Handler streams events to the authenticated caller.
func (s *Service) Handler(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	cl := &client{
		userID: identity.UserID(),
		admin:  identity.HasRole(roleAdmin),
		events: make(chan Event, 32),
	}
	if dealerID := identity.DealerID(); dealerID != nil {
		cl.dealerID = *dealerID
	}
	s.addClient(cl)
	defer s.removeClient(cl)

	c.Status(http.StatusOK)
	c.SSEvent("connected", gin.H{"userId": cl.userID})
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return
		case event := <-cl.events:
			data, err := json.Marshal(event)
			if err != nil {
				s.log.Error("sse marshal failed", "event", event.Type, "error", err)
				continue
			}
			c.SSEvent(string(event.Type), string(data))
			c.Writer.Flush()
		}
	}
}
