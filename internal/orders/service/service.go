// Package service implements order placement, tracking and delivery-order generation.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"wholesale_portal_backend/internal/agent"
	"wholesale_portal_backend/internal/events"
	"wholesale_portal_backend/internal/orders/repository"
	"wholesale_portal_backend/internal/orders/transport"
	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/logger"
	"wholesale_portal_backend/platform/money"
	"wholesale_portal_backend/platform/phone"
	"wholesale_portal_backend/platform/sanitize"
)

const (
	channelInquiry = "inquiry"
	channelDirect  = "direct"
	channelPublic  = "public"

	anonymousName       = "Anonymous"
	anonymousDealerName = "Anonymous Dealer"

	maxOrderNumberAttempts = 5
	dateLayout             = "2006-01-02"

	msgNoAccess       = "no access to this order"
	msgDealerRequired = "dealer account required"
)

// ProductLookup resolves live catalog products.
// FindBySKU returns an apperr NotFound error for unknown or inactive SKUs.
type ProductLookup interface {
	FindBySKU(ctx context.Context, sku string) (agent.Product, error)
}

// InquiryQuote is the stored state of an inquiry an order is placed from.
type InquiryQuote struct {
	ID       uuid.UUID
	DealerID *uuid.UUID
	Status   string
	Parsed   *agent.ParsedInquiry
	Pricing  *agent.PricingResponse
}

// DirectInquiry records a catalog order as an already-converted inquiry.
type DirectInquiry struct {
	UserID     uuid.UUID
	DealerID   uuid.UUID
	RawInquiry string
	Parsed     agent.ParsedInquiry
}

// InquiryLedger is the write port onto inquiries.
type InquiryLedger interface {
	Quote(ctx context.Context, actor Actor, inquiryID uuid.UUID) (InquiryQuote, error)
	MarkConverted(ctx context.Context, inquiryID uuid.UUID) error
	ReleaseConversion(ctx context.Context, inquiryID uuid.UUID, status string) error
	RecordDirect(ctx context.Context, inquiry DirectInquiry) (uuid.UUID, error)
}

// DealerContact is the dealer profile stamped on orders.
type DealerContact struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
}

// DealerContacts reads dealer profiles.
type DealerContacts interface {
	GetContact(ctx context.Context, dealerID uuid.UUID) (DealerContact, error)
}

// DocumentRenderer turns delivery-order data into a PDF.
type DocumentRenderer interface {
	Render(ctx context.Context, data agent.DeliveryOrderData, trackURL string) ([]byte, error)
}

// DocumentStore keeps rendered delivery-order PDFs.
type DocumentStore interface {
	Save(ctx context.Context, orderNumber string, pdf []byte) (string, error)
	DownloadURL(ctx context.Context, key string) (string, time.Time, error)
}

// Actor is the caller placing or reading an order.
type Actor struct {
	UserID   uuid.UUID
	DealerID *uuid.UUID
	IsAdmin  bool
}

// Service handles order business logic.
type Service struct {
	repo      repository.Repository
	catalog   ProductLookup
	inquiries InquiryLedger
	dealers   DealerContacts
	eventBus  events.Bus
	log       *logger.Logger

	renderer DocumentRenderer
	store    DocumentStore
	trackURL string

	now    func() time.Time
	digits func() int
}

// New creates a new order service.
func New(repo repository.Repository, catalog ProductLookup, inquiries InquiryLedger, dealers DealerContacts, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		inquiries: inquiries,
		dealers:   dealers,
		eventBus:  eventBus,
		log:       log,
		now:       time.Now,
		digits:    func() int { return rand.IntN(10000) },
	}
}

// SetDocuments enables PDF rendering and storage for delivery orders. Either may be nil.
func (s *Service) SetDocuments(renderer DocumentRenderer, store DocumentStore) {
	s.renderer = renderer
	s.store = store
}

// SetTrackingBaseURL sets the public site used for tracking links on delivery orders.
func (s *Service) SetTrackingBaseURL(baseURL string) {
	s.trackURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

// CreateFromInquiry places an order from a quoted inquiry. The inquiry is
// claimed as converted before the order is written and released again if
// placement fails, so concurrent requests produce at most one order.
func (s *Service) CreateFromInquiry(ctx context.Context, actor Actor, req transport.CreateFromInquiryRequest) (transport.PlaceOrderResponse, error) {
	if actor.DealerID == nil {
		return transport.PlaceOrderResponse{}, apperr.Forbidden(msgDealerRequired)
	}
	quote, err := s.inquiries.Quote(ctx, actor, req.InquiryID)
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}
	if quote.Status == "converted" {
		return transport.PlaceOrderResponse{}, apperr.Conflict("inquiry already converted")
	}
	if quote.Pricing == nil {
		return transport.PlaceOrderResponse{}, apperr.BadRequest("inquiry has not been priced")
	}

	lines, err := quotedLines(*quote.Pricing, req.Items)
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}
	for i := range lines {
		lines[i].ProductID = s.productID(ctx, lines[i].SKU)
	}

	contact, err := s.dealers.GetContact(ctx, *actor.DealerID)
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}
	parsed := agent.ParsedInquiry{}
	if quote.Parsed != nil {
		parsed = *quote.Parsed
	}
	deliveryDate, err := parseDate(firstNonEmpty(req.RequestedDeliveryDate, parsed.RequestedDeliveryDate))
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}

	userID := actor.UserID
	inquiryID := quote.ID
	params := repository.CreateParams{
		InquiryID:             &inquiryID,
		UserID:                &userID,
		DealerID:              actor.DealerID,
		DealerName:            &contact.Name,
		DealerEmail:           firstNonEmpty(contact.Email, parsed.DealerEmail),
		DealerPhone:           firstNonEmpty(contact.Phone, parsed.DealerPhone),
		DeliveryAddress:       firstNonEmpty(cleanText(req.DeliveryAddress), parsed.DeliveryAddress, contact.Address),
		RequestedDeliveryDate: deliveryDate,
		Notes:                 firstNonEmpty(cleanText(req.Notes), parsed.GeneralNotes),
	}
	applyTotals(&params, lines, true)

	if err := s.inquiries.MarkConverted(ctx, quote.ID); err != nil {
		return transport.PlaceOrderResponse{}, err
	}
	order, items, err := s.place(ctx, params)
	if err != nil {
		if relErr := s.inquiries.ReleaseConversion(context.WithoutCancel(ctx), quote.ID, quote.Status); relErr != nil {
			s.log.Error("inquiry left converted after failed order", "inquiry", quote.ID, "error", relErr)
		}
		return transport.PlaceOrderResponse{}, err
	}

	s.publishPlaced(ctx, order, len(items), channelInquiry)
	return toPlaceOrderResponse(order, len(items)), nil
}

// CreateDirect places a dealer order from catalog SKUs and records it as a converted inquiry.
func (s *Service) CreateDirect(ctx context.Context, actor Actor, req transport.CreateDirectRequest) (transport.PlaceOrderResponse, error) {
	if actor.DealerID == nil {
		return transport.PlaceOrderResponse{}, apperr.Forbidden(msgDealerRequired)
	}
	lines, products, err := s.catalogLines(ctx, req.Items)
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}
	deliveryDate, err := parseDate(req.RequestedDeliveryDate)
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}
	contact, err := s.dealers.GetContact(ctx, *actor.DealerID)
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}

	address := sanitize.Text(req.DeliveryAddress)
	if address == "" {
		return transport.PlaceOrderResponse{}, apperr.Validation("delivery address is required")
	}
	notes := cleanText(req.Notes)

	inquiryID, err := s.inquiries.RecordDirect(ctx, DirectInquiry{
		UserID:     actor.UserID,
		DealerID:   *actor.DealerID,
		RawInquiry: directInquiryText(lines),
		Parsed:     directParsedInquiry(lines, products, address, req.RequestedDeliveryDate, notes),
	})
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}

	userID := actor.UserID
	params := repository.CreateParams{
		InquiryID:             &inquiryID,
		UserID:                &userID,
		DealerID:              actor.DealerID,
		DealerName:            &contact.Name,
		DealerEmail:           contact.Email,
		DealerPhone:           contact.Phone,
		DeliveryAddress:       &address,
		RequestedDeliveryDate: deliveryDate,
		Notes:                 notes,
	}
	applyTotals(&params, lines, true)

	order, items, err := s.place(ctx, params)
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}
	s.publishPlaced(ctx, order, len(items), channelDirect)
	return toPlaceOrderResponse(order, len(items)), nil
}

// CreatePublic places an anonymous checkout order. Public orders carry no tax.
func (s *Service) CreatePublic(ctx context.Context, req transport.CreatePublicRequest) (transport.PlaceOrderResponse, error) {
	lines, _, err := s.catalogLines(ctx, req.Items)
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}
	deliveryDate, err := parseDate(&req.RequestedDeliveryDate)
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}
	address := sanitize.Text(req.DeliveryAddress)
	if address == "" {
		return transport.PlaceOrderResponse{}, apperr.Validation("delivery address is required")
	}

	company := cleanText(req.CompanyName)
	dealerName := anonymousName
	if company != nil {
		dealerName = *company
	}
	sessionID := strings.TrimSpace(req.SessionID)
	email := trimmedPtr(req.Email)
	contact := cleanText(req.ContactNumber)
	if normalized := phone.NormalizePtr(contact); normalized != nil {
		contact = normalized
	}

	params := repository.CreateParams{
		PublicSessionID:       &sessionID,
		CompanyName:           company,
		ContactNumber:         contact,
		DealerName:            &dealerName,
		DealerEmail:           email,
		DealerPhone:           contact,
		DeliveryAddress:       &address,
		RequestedDeliveryDate: deliveryDate,
		Notes:                 cleanText(req.Notes),
	}
	applyTotals(&params, lines, false)

	order, items, err := s.place(ctx, params)
	if err != nil {
		return transport.PlaceOrderResponse{}, err
	}
	s.publishPlaced(ctx, order, len(items), channelPublic)
	return toPlaceOrderResponse(order, len(items)), nil
}

// place inserts the order, drawing a fresh order number when one collides.
func (s *Service) place(ctx context.Context, params repository.CreateParams) (repository.Order, []repository.Item, error) {
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		params.OrderNumber = s.nextOrderNumber()
		order, items, err := s.repo.Create(ctx, params)
		if errors.Is(err, repository.ErrDuplicateOrderNumber) {
			s.log.Warn("order number collision", "orderNumber", params.OrderNumber, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return repository.Order{}, nil, err
		}
		s.log.Info("order placed", "id", order.ID, "orderNumber", order.OrderNumber, "items", len(items), "total", money.Fixed(order.Total))
		return order, items, nil
	}
	return repository.Order{}, nil, apperr.Conflict("could not allocate an order number")
}

// nextOrderNumber returns DO{YYYYMMDD}-{4 digits}.
func (s *Service) nextOrderNumber() string {
	return fmt.Sprintf("DO%s-%04d", s.now().UTC().Format("20060102"), s.digits()%10000)
}

func (s *Service) productID(ctx context.Context, sku string) *uuid.UUID {
	product, err := s.catalog.FindBySKU(ctx, sku)
	if err != nil {
		if !apperr.Is(err, apperr.KindNotFound) {
			s.log.CatalogDegraded("order product lookup", err)
		}
		return nil
	}
	id := product.ID
	return &id
}

// catalogLines prices each request item against the live catalog.
func (s *Service) catalogLines(ctx context.Context, items []transport.ItemRequest) ([]repository.CreateItemParams, []agent.Product, error) {
	lines := make([]repository.CreateItemParams, 0, len(items))
	products := make([]agent.Product, 0, len(items))
	for _, item := range items {
		sku := strings.ToUpper(strings.TrimSpace(item.SKU))
		if item.Quantity <= 0 {
			return nil, nil, apperr.Validation(fmt.Sprintf("quantity for %s must be positive", sku))
		}
		product, err := s.catalog.FindBySKU(ctx, sku)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return nil, nil, apperr.Validation(fmt.Sprintf("unknown product %s", sku))
			}
			return nil, nil, err
		}
		id := product.ID
		price := money.Round2(product.UnitPrice)
		lines = append(lines, repository.CreateItemParams{
			ProductID:   &id,
			SKU:         product.SKU,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   price,
			LineTotal:   money.Round2(money.LineTotal(price, item.Quantity)),
		})
		products = append(products, product)
	}
	return lines, products, nil
}

// quotedLines picks order lines from a stored quote. With no selection every
// resolved, available line is taken at its requested quantity.
func quotedLines(pricing agent.PricingResponse, selected []transport.ItemRequest) ([]repository.CreateItemParams, error) {
	bySKU := make(map[string]agent.PricingItem, len(pricing.Items))
	for _, item := range pricing.Items {
		if item.Resolved() {
			bySKU[item.ProductSKU] = item
		}
	}

	lines := make([]repository.CreateItemParams, 0, len(pricing.Items))
	add := func(item agent.PricingItem, quantity int) {
		price := money.Round2(item.UnitPrice.Decimal)
		lines = append(lines, repository.CreateItemParams{
			SKU:         item.ProductSKU,
			ProductName: item.ProductName,
			Quantity:    quantity,
			UnitPrice:   price,
			LineTotal:   money.Round2(money.LineTotal(price, quantity)),
			Notes:       item.Notes,
		})
	}

	if len(selected) == 0 {
		for _, item := range pricing.Items {
			if item.Resolved() && item.IsAvailable && item.RequestedQuantity > 0 {
				add(item, item.RequestedQuantity)
			}
		}
	} else {
		for _, sel := range selected {
			sku := strings.ToUpper(strings.TrimSpace(sel.SKU))
			item, ok := bySKU[sku]
			if !ok {
				return nil, apperr.Validation(fmt.Sprintf("product %s is not part of the quote", sku))
			}
			if sel.Quantity <= 0 {
				return nil, apperr.Validation(fmt.Sprintf("quantity for %s must be positive", sku))
			}
			add(item, sel.Quantity)
		}
	}

	if len(lines) == 0 {
		return nil, apperr.Validation("quote has no orderable items")
	}
	return lines, nil
}

func applyTotals(params *repository.CreateParams, lines []repository.CreateItemParams, taxed bool) {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}
	tax := decimal.Zero
	if taxed {
		tax = money.Tax(subtotal)
	}
	params.Items = lines
	params.Subtotal = money.Round2(subtotal)
	params.Tax = tax
	params.Total = money.Round2(subtotal.Add(tax))
}

func directInquiryText(lines []repository.CreateItemParams) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%d x %s (%s)", line.Quantity, line.ProductName, line.SKU))
	}
	return strings.Join(parts, ", ")
}

func directParsedInquiry(lines []repository.CreateItemParams, products []agent.Product, address string, deliveryDate, notes *string) agent.ParsedInquiry {
	items := make([]agent.ParsedInquiryItem, 0, len(lines))
	for i, line := range lines {
		sku := line.SKU
		unit := products[i].Unit
		if unit == "" {
			unit = agent.DefaultUnit
		}
		items = append(items, agent.ParsedInquiryItem{
			ProductName: line.ProductName,
			ProductSKU:  &sku,
			Quantity:    line.Quantity,
			Unit:        &unit,
		})
	}
	return agent.ParsedInquiry{
		Items:                 items,
		RequestedDeliveryDate: trimmedPtr(deliveryDate),
		DeliveryAddress:       &address,
		GeneralNotes:          notes,
		Confidence:            1.0,
	}
}

func (s *Service) publishPlaced(ctx context.Context, order repository.Order, itemCount int, channel string) {
	s.eventBus.Publish(ctx, events.OrderPlaced{
		BaseEvent:    events.NewBaseEvent(),
		OrderID:      order.ID,
		OrderNumber:  order.OrderNumber,
		DealerID:     order.DealerID,
		InquiryID:    order.InquiryID,
		CompanyName:  displayName(order),
		ContactEmail: deref(order.DealerEmail),
		ItemCount:    itemCount,
		Total:        money.Fixed(order.Total),
		Channel:      channel,
	})
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*value))
	if err != nil {
		return nil, apperr.Validation("requested delivery date must be YYYY-MM-DD")
	}
	return &t, nil
}

// displayName returns the dealer name, then company name, then the anonymous placeholder.
func displayName(order repository.Order) string {
	if v := firstNonEmpty(order.DealerName, order.CompanyName); v != nil {
		return *v
	}
	return anonymousDealerName
}

func firstNonEmpty(values ...*string) *string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return v
		}
	}
	return nil
}

// cleanText sanitizes optional free text, mapping blanks to nil.
func cleanText(v *string) *string {
	return trimmedPtr(sanitize.TextPtr(v))
}

func trimmedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
