// Package notification turns order domain events into emails and live
// SSE updates. Domain modules publish events and stay unaware of email
// providers, templates and queues.
package notification

import (
	"context"

	"wholesale_portal_backend/internal/email"
	"wholesale_portal_backend/internal/events"
	apphttp "wholesale_portal_backend/internal/http"
	"wholesale_portal_backend/internal/notification/sse"
	"wholesale_portal_backend/internal/scheduler"
	"wholesale_portal_backend/platform/config"
	"wholesale_portal_backend/platform/logger"
)

// Module handles all notification-related event subscriptions.
type Module struct {
	dispatcher *Dispatcher
	enqueuer   scheduler.NotificationEnqueuer
	sse        *sse.Service
	log        *logger.Logger
}

// New creates a new notification module. Without an enqueuer emails are sent inline.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{
		dispatcher: NewDispatcher(sender, cfg, log),
		sse:        sse.New(log),
		log:        log,
	}
}

// SetEnqueuer routes emails through the asynq worker.
func (m *Module) SetEnqueuer(enqueuer scheduler.NotificationEnqueuer) {
	m.enqueuer = enqueuer
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// RegisterRoutes mounts the live order streams.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/notifications/stream", m.sse.Handler)
	ctx.Dealer.GET("/dealer/notifications/stream", m.sse.Handler)
}

// RegisterHandlers subscribes the module to order events.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.NameOrderPlaced, m)
	bus.Subscribe(events.NameOrderStatusChanged, m)
	bus.Subscribe(events.NameDeliveryOrderGenerated, m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.OrderPlaced:
		return m.handleOrderPlaced(ctx, e)
	case events.OrderStatusChanged:
		return m.handleOrderStatusChanged(ctx, e)
	case events.DeliveryOrderGenerated:
		m.sse.PublishToAdmins(sse.Event{
			Type:        sse.EventDeliveryOrderGenerated,
			OrderID:     e.OrderID,
			OrderNumber: e.OrderNumber,
		})
		return nil
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleOrderPlaced(ctx context.Context, e events.OrderPlaced) error {
	live := sse.Event{
		Type:        sse.EventOrderPlaced,
		OrderID:     e.OrderID,
		OrderNumber: e.OrderNumber,
		Message:     "New order from " + e.CompanyName,
		Data:        map[string]any{"total": e.Total, "channel": e.Channel, "itemCount": e.ItemCount},
	}
	m.sse.PublishToAdmins(live)
	if e.DealerID != nil {
		m.sse.PublishToDealer(*e.DealerID, live)
	}

	payload := scheduler.OrderPlacedPayload{
		OrderID:      e.OrderID.String(),
		OrderNumber:  e.OrderNumber,
		CompanyName:  e.CompanyName,
		ContactEmail: e.ContactEmail,
		ItemCount:    e.ItemCount,
		Total:        e.Total,
		Channel:      e.Channel,
	}
	if m.enqueuer != nil {
		err := m.enqueuer.EnqueueOrderPlaced(ctx, payload)
		if err == nil {
			return nil
		}
		m.log.Warn("enqueue order notification failed, sending inline", "order", e.OrderNumber, "error", err)
	}
	return m.dispatcher.NotifyOrderPlaced(ctx, payload)
}

func (m *Module) handleOrderStatusChanged(ctx context.Context, e events.OrderStatusChanged) error {
	live := sse.Event{
		Type:        sse.EventOrderStatusChanged,
		OrderID:     e.OrderID,
		OrderNumber: e.OrderNumber,
		Data:        map[string]any{"oldStatus": e.OldStatus, "newStatus": e.NewStatus},
	}
	m.sse.PublishToAdmins(live)
	if e.DealerID != nil {
		m.sse.PublishToDealer(*e.DealerID, live)
	}

	payload := scheduler.OrderStatusPayload{
		OrderID:      e.OrderID.String(),
		OrderNumber:  e.OrderNumber,
		CompanyName:  e.CompanyName,
		ContactEmail: e.ContactEmail,
		OldStatus:    e.OldStatus,
		NewStatus:    e.NewStatus,
	}
	if m.enqueuer != nil {
		err := m.enqueuer.EnqueueOrderStatus(ctx, payload)
		if err == nil {
			return nil
		}
		m.log.Warn("enqueue status notification failed, sending inline", "order", e.OrderNumber, "error", err)
	}
	return m.dispatcher.NotifyOrderStatus(ctx, payload)
}

var (
	_ apphttp.Module = (*Module)(nil)
	_ events.Handler = (*Module)(nil)
)
