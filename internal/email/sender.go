// Package email renders and delivers order notification emails.
package email

import (
	"context"
	"fmt"

	"wholesale_portal_backend/platform/config"
)

// Sender delivers order notification emails.
type Sender interface {
	SendOrderPlacedOwnerEmail(ctx context.Context, toEmail string, order OrderEmail) error
	SendOrderConfirmationEmail(ctx context.Context, toEmail string, order OrderEmail) error
	SendOrderStatusEmail(ctx context.Context, toEmail string, update StatusEmail) error
}

// OrderEmail is the content of placed-order emails.
type OrderEmail struct {
	OrderNumber string
	CompanyName string
	ItemCount   int
	Total       string
	Channel     string
	TrackURL    string
}

// StatusEmail is the content of a status update email.
type StatusEmail struct {
	OrderNumber string
	CompanyName string
	OldStatus   string
	NewStatus   string
	TrackURL    string
}

// NoopSender drops every email. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendOrderPlacedOwnerEmail(context.Context, string, OrderEmail) error  { return nil }
func (NoopSender) SendOrderConfirmationEmail(context.Context, string, OrderEmail) error { return nil }
func (NoopSender) SendOrderStatusEmail(context.Context, string, StatusEmail) error      { return nil }

var (
	_ Sender = NoopSender{}
	_ Sender = (*SMTPSender)(nil)
)

// Config combines the settings NewSender reads.
type Config interface {
	config.EmailConfig
	config.SMTPConfig
}

// NewSender returns an SMTPSender when email is enabled and a NoopSender otherwise.
func NewSender(cfg Config) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	if cfg.GetSMTPHost() == "" || cfg.GetEmailFromAddress() == "" {
		return nil, fmt.Errorf("email: smtp host and from address are required")
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
