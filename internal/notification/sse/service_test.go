package sse

import (
	"testing"

	"github.com/google/uuid"

	"wholesale_portal_backend/platform/logger"
)

func connect(s *Service, dealerID uuid.UUID, admin bool) *client {
	c := &client{userID: uuid.New(), dealerID: dealerID, admin: admin, events: make(chan Event, 4)}
	s.addClient(c)
	return c
}

func TestPublishTargets(t *testing.T) {
	s := New(logger.Discard())
	dealerA, dealerB := uuid.New(), uuid.New()
	admin := connect(s, uuid.Nil, true)
	a := connect(s, dealerA, false)
	b := connect(s, dealerB, false)

	s.PublishToAdmins(Event{Type: EventOrderPlaced, OrderNumber: "DO1"})
	s.PublishToDealer(dealerA, Event{Type: EventOrderStatusChanged, OrderNumber: "DO1"})

	if len(admin.events) != 1 {
		t.Fatalf("expected admin to receive one event, got %d", len(admin.events))
	}
	if len(a.events) != 1 || (<-a.events).Type != EventOrderStatusChanged {
		t.Fatal("expected dealer A to receive the status event")
	}
	if len(b.events) != 0 {
		t.Fatal("expected dealer B to receive nothing")
	}
}

func TestRemoveClientStopsDelivery(t *testing.T) {
	s := New(logger.Discard())
	dealer := uuid.New()
	c := connect(s, dealer, false)
	s.removeClient(c)

	s.PublishToDealer(dealer, Event{Type: EventOrderPlaced})
	if len(c.events) != 0 {
		t.Fatal("expected no delivery after disconnect")
	}
	if _, ok := s.dealerMap[dealer]; ok {
		t.Fatal("expected dealer entry removed")
	}
}

func TestFullBufferDropsEvent(t *testing.T) {
	s := New(logger.Discard())
	c := connect(s, uuid.Nil, true)
	for i := 0; i < 6; i++ {
		s.PublishToAdmins(Event{Type: EventOrderPlaced})
	}
	if len(c.events) != cap(c.events) {
		t.Fatalf("expected buffer filled to %d, got %d", cap(c.events), len(c.events))
	}
}
