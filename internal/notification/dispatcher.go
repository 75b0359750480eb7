package notification

import (
	"context"
	"errors"
	"strings"

	"wholesale_portal_backend/internal/email"
	"wholesale_portal_backend/internal/scheduler"
	"wholesale_portal_backend/platform/config"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/money"
)

// Dispatcher renders task payloads into emails. It backs both the inline
// path and the asynq worker.
type Dispatcher struct {
	sender     email.Sender
	baseURL    string
	ownerEmail string
	log        *logger.Logger
}

// NewDispatcher creates a dispatcher over sender.
func NewDispatcher(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		baseURL:    strings.TrimRight(cfg.GetAppBaseURL(), "/"),
		ownerEmail: strings.TrimSpace(cfg.GetOwnerNotificationEmail()),
		log:        log,
	}
}

func (d *Dispatcher) trackURL(orderNumber string) string {
	if d.baseURL == "" {
		return ""
	}
	return d.baseURL + "/track/" + orderNumber
}

// NotifyOrderPlaced emails the owner inbox and the ordering contact.
func (d *Dispatcher) NotifyOrderPlaced(ctx context.Context, payload scheduler.OrderPlacedPayload) error {
	order := email.OrderEmail{
		OrderNumber: payload.OrderNumber,
		CompanyName: payload.CompanyName,
		ItemCount:   payload.ItemCount,
		Total:       money.Dollars(money.Parse(payload.Total)),
		Channel:     payload.Channel,
		TrackURL:    d.trackURL(payload.OrderNumber),
	}

	var errs []error
	if d.ownerEmail != "" {
		if err := d.sender.SendOrderPlacedOwnerEmail(ctx, d.ownerEmail, order); err != nil {
			errs = append(errs, err)
		}
	}
	if to := strings.TrimSpace(payload.ContactEmail); to != "" {
		if err := d.sender.SendOrderConfirmationEmail(ctx, to, order); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	d.log.Info("order placed notification sent", "order", payload.OrderNumber)
	return nil
}

// NotifyOrderStatus emails the ordering contact about a status change.
func (d *Dispatcher) NotifyOrderStatus(ctx context.Context, payload scheduler.OrderStatusPayload) error {
	to := strings.TrimSpace(payload.ContactEmail)
	if to == "" {
		return nil
	}
	if err := d.sender.SendOrderStatusEmail(ctx, to, email.StatusEmail{
		OrderNumber: payload.OrderNumber,
		CompanyName: payload.CompanyName,
		OldStatus:   payload.OldStatus,
		NewStatus:   payload.NewStatus,
		TrackURL:    d.trackURL(payload.OrderNumber),
	}); err != nil {
		return err
	}
	d.log.Info("order status notification sent", "order", payload.OrderNumber, "status", payload.NewStatus)
	return nil
}

var _ scheduler.Notifier = (*Dispatcher)(nil)
