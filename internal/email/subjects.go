package email

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	subjectOrderPlacedOwnerFmt  = "New order %s from %s"
	subjectOrderConfirmationFmt = "We received your order %s"
	subjectOrderStatusFmt       = "Order %s is now %s"
)

// StatusTitle renders a status value such as "shipped" as "Shipped".
func StatusTitle(status string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(strings.TrimSpace(status), "_", " "))
}
