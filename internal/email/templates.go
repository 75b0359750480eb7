package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type orderEmailData struct {
	baseEmailData
	OrderEmail
}

type statusEmailData struct {
	baseEmailData
	StatusEmail
	NewStatusTitle string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderOrderPlacedOwner(order OrderEmail) (string, string, error) {
	content, err := renderEmailTemplate("order_placed_owner.html", orderEmailData{
		baseEmailData: baseEmailData{
			Title:      "New order received",
			Heading:    "New order received",
			Subheading: fmt.Sprintf("%s placed order %s", order.CompanyName, order.OrderNumber),
			CTALabel:   "View order",
			CTAURL:     order.TrackURL,
		},
		OrderEmail: order,
	})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf(subjectOrderPlacedOwnerFmt, order.OrderNumber, order.CompanyName), content, nil
}

func renderOrderConfirmation(order OrderEmail) (string, string, error) {
	content, err := renderEmailTemplate("order_confirmation.html", orderEmailData{
		baseEmailData: baseEmailData{
			Title:    "Order received",
			Heading:  "Thank you for your order",
			CTALabel: "Track your order",
			CTAURL:   order.TrackURL,
		},
		OrderEmail: order,
	})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf(subjectOrderConfirmationFmt, order.OrderNumber), content, nil
}

func renderOrderStatus(update StatusEmail) (string, string, error) {
	title := StatusTitle(update.NewStatus)
	content, err := renderEmailTemplate("order_status.html", statusEmailData{
		baseEmailData: baseEmailData{
			Title:    "Order update",
			Heading:  fmt.Sprintf("Order %s is %s", update.OrderNumber, title),
			CTALabel: "Track your order",
			CTAURL:   update.TrackURL,
		},
		StatusEmail:    update,
		NewStatusTitle: title,
	})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf(subjectOrderStatusFmt, update.OrderNumber, title), content, nil
}
