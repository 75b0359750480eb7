package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"wholesale_portal_backend/internal/email"
	"wholesale_portal_backend/internal/events"
	"wholesale_portal_backend/internal/scheduler"
	"wholesale_portal_backend/platform/logger"
)

type testNotificationConfig struct {
	owner string
}

func (testNotificationConfig) GetAppBaseURL() string               { return "https://portal.example.com/" }
func (c testNotificationConfig) GetOwnerNotificationEmail() string { return c.owner }

type sentEmail struct {
	kind string
	to   string
	body any
}

type testSender struct {
	sent []sentEmail
	err  error
}

func (s *testSender) SendOrderPlacedOwnerEmail(_ context.Context, to string, order email.OrderEmail) error {
	s.sent = append(s.sent, sentEmail{kind: "owner", to: to, body: order})
	return s.err
}

func (s *testSender) SendOrderConfirmationEmail(_ context.Context, to string, order email.OrderEmail) error {
	s.sent = append(s.sent, sentEmail{kind: "confirmation", to: to, body: order})
	return s.err
}

func (s *testSender) SendOrderStatusEmail(_ context.Context, to string, update email.StatusEmail) error {
	s.sent = append(s.sent, sentEmail{kind: "status", to: to, body: update})
	return s.err
}

type testEnqueuer struct {
	placed []scheduler.OrderPlacedPayload
	status []scheduler.OrderStatusPayload
	err    error
}

func (q *testEnqueuer) EnqueueOrderPlaced(_ context.Context, p scheduler.OrderPlacedPayload) error {
	q.placed = append(q.placed, p)
	return q.err
}

func (q *testEnqueuer) EnqueueOrderStatus(_ context.Context, p scheduler.OrderStatusPayload) error {
	q.status = append(q.status, p)
	return q.err
}

const testOwnerEmail = "owner@wholesale.example.com"

func placedEvent() events.OrderPlaced {
	dealerID := uuid.New()
	return events.OrderPlaced{
		BaseEvent:    events.NewBaseEvent(),
		OrderID:      uuid.New(),
		OrderNumber:  "DO20260309-0042",
		DealerID:     &dealerID,
		CompanyName:  "Acme Supply",
		ContactEmail: "buyer@acme.example.com",
		ItemCount:    2,
		Total:        "486.00",
		Channel:      "inquiry",
	}
}

func TestOrderPlacedSendsInlineWithoutQueue(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{owner: testOwnerEmail}, logger.Discard())

	if err := m.Handle(context.Background(), placedEvent()); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected owner and confirmation emails, got %+v", sender.sent)
	}
	if sender.sent[0].kind != "owner" || sender.sent[0].to != testOwnerEmail {
		t.Fatalf("unexpected owner email %+v", sender.sent[0])
	}
	order := sender.sent[1].body.(email.OrderEmail)
	if order.Total != "$486.00" || order.TrackURL != "https://portal.example.com/track/DO20260309-0042" {
		t.Fatalf("unexpected order email %+v", order)
	}
}

func TestOrderPlacedWithoutOwnerOnlyConfirms(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{}, logger.Discard())

	if err := m.Handle(context.Background(), placedEvent()); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].kind != "confirmation" {
		t.Fatalf("expected confirmation only, got %+v", sender.sent)
	}
}

func TestOrderPlacedEnqueuesWhenQueueConfigured(t *testing.T) {
	sender := &testSender{}
	queue := &testEnqueuer{}
	m := New(sender, testNotificationConfig{owner: testOwnerEmail}, logger.Discard())
	m.SetEnqueuer(queue)

	event := placedEvent()
	if err := m.Handle(context.Background(), event); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(queue.placed) != 1 || queue.placed[0].OrderID != event.OrderID.String() {
		t.Fatalf("expected one enqueued task, got %+v", queue.placed)
	}
	if len(sender.sent) != 0 {
		t.Fatal("expected no inline send when enqueue succeeds")
	}
}

func TestEnqueueFailureFallsBackInline(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{}, logger.Discard())
	m.SetEnqueuer(&testEnqueuer{err: errors.New("redis down")})

	event := events.OrderStatusChanged{
		BaseEvent:    events.NewBaseEvent(),
		OrderID:      uuid.New(),
		OrderNumber:  "DO20260309-0042",
		CompanyName:  "Acme Supply",
		ContactEmail: "buyer@acme.example.com",
		OldStatus:    "confirmed",
		NewStatus:    "shipped",
	}
	if err := m.Handle(context.Background(), event); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].kind != "status" {
		t.Fatalf("expected inline status email, got %+v", sender.sent)
	}
}

func TestStatusWithoutContactSkipsEmail(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{}, logger.Discard())

	err := m.Handle(context.Background(), events.OrderStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		OrderID:   uuid.New(),
		NewStatus: "shipped",
	})
	if err != nil || len(sender.sent) != 0 {
		t.Fatalf("expected no email, got %v %+v", err, sender.sent)
	}
}

func TestSendFailureSurfaces(t *testing.T) {
	sender := &testSender{err: errors.New("smtp down")}
	m := New(sender, testNotificationConfig{owner: testOwnerEmail}, logger.Discard())

	if err := m.Handle(context.Background(), placedEvent()); err == nil {
		t.Fatal("expected send error")
	}
}
