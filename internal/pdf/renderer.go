package pdf

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/skip2/go-qrcode"

	"wholesale_portal_backend/internal/agent"
	"wholesale_portal_backend/platform/money"
)

//go:embed templates/*.html
var templateFS embed.FS

const qrSize = 160

var deliveryOrderTemplate = template.Must(
	template.New("delivery_order.html").
		Funcs(template.FuncMap{"dollars": func(a money.Amount) string { return money.Dollars(a.Decimal) }}).
		ParseFS(templateFS, "templates/delivery_order.html"),
)

// HTMLConverter turns an HTML document into PDF bytes.
type HTMLConverter interface {
	ConvertHTML(ctx context.Context, indexHTML []byte, opts ConvertOpts) ([]byte, error)
}

// DeliveryOrderRenderer renders delivery orders to PDF.
type DeliveryOrderRenderer struct {
	converter   HTMLConverter
	companyName string
}

// NewDeliveryOrderRenderer creates a renderer that prints companyName in the letterhead.
func NewDeliveryOrderRenderer(converter HTMLConverter, companyName string) *DeliveryOrderRenderer {
	return &DeliveryOrderRenderer{converter: converter, companyName: companyName}
}

type deliveryOrderView struct {
	Company  string
	Data     agent.DeliveryOrderData
	TrackURL string
	QRCode   template.URL
}

// Render builds the delivery-order HTML and converts it to PDF. When trackURL
// is set the document carries a QR code linking to it.
func (r *DeliveryOrderRenderer) Render(ctx context.Context, data agent.DeliveryOrderData, trackURL string) ([]byte, error) {
	page, err := r.HTML(data, trackURL)
	if err != nil {
		return nil, err
	}
	out, err := r.converter.ConvertHTML(ctx, page, DeliveryOrderOpts())
	if err != nil {
		return nil, fmt.Errorf("render delivery order %s: %w", data.OrderNumber, err)
	}
	return out, nil
}

// HTML renders the delivery-order page without converting it.
func (r *DeliveryOrderRenderer) HTML(data agent.DeliveryOrderData, trackURL string) ([]byte, error) {
	view := deliveryOrderView{Company: r.companyName, Data: data, TrackURL: trackURL}
	if trackURL != "" {
		uri, err := qrDataURI(trackURL)
		if err != nil {
			return nil, err
		}
		view.QRCode = uri
	}

	var buf bytes.Buffer
	if err := deliveryOrderTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute delivery order template: %w", err)
	}
	return buf.Bytes(), nil
}

func qrDataURI(content string) (template.URL, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encode tracking qr code: %w", err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}
