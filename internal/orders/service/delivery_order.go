package service

import (
	"context"

	"github.com/google/uuid"

	"wholesale_portal_backend/internal/agent"
	"wholesale_portal_backend/internal/events"
	"wholesale_portal_backend/internal/orders/repository"
	"wholesale_portal_backend/internal/orders/transport"
	"wholesale_portal_backend/platform/apperr"
)

// GenerateDeliveryOrder builds the DO for an order, renders and stores the PDF
// when documents are configured, and stamps the order.
func (s *Service) GenerateDeliveryOrder(ctx context.Context, id uuid.UUID) (transport.DeliveryOrderResponse, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.DeliveryOrderResponse{}, err
	}
	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return transport.DeliveryOrderResponse{}, err
	}

	data := agent.BuildDeliveryOrder(deliveryOrderInput(order, items), agent.WithClock(s.now))

	var documentKey *string
	if s.renderer != nil {
		documentKey = s.renderAndStore(ctx, data)
	}

	stamped, err := s.repo.StampDeliveryOrder(ctx, id, documentKey)
	if err != nil {
		return transport.DeliveryOrderResponse{}, err
	}
	s.log.Info("delivery order generated", "id", id, "orderNumber", stamped.OrderNumber, "document", documentKey != nil)

	resp := transport.DeliveryOrderResponse{Data: data}
	if documentKey != nil {
		s.eventBus.Publish(ctx, events.DeliveryOrderGenerated{
			BaseEvent:   events.NewBaseEvent(),
			OrderID:     stamped.ID,
			OrderNumber: stamped.OrderNumber,
			DocumentKey: *documentKey,
		})
		if url, _, err := s.store.DownloadURL(ctx, *documentKey); err == nil {
			resp.DocumentURL = &url
		} else {
			s.log.Warn("delivery order presign failed", "orderNumber", stamped.OrderNumber, "error", err)
		}
	}
	return resp, nil
}

// DownloadDeliveryOrder presigns the stored DO document of an order.
func (s *Service) DownloadDeliveryOrder(ctx context.Context, id uuid.UUID) (transport.DownloadResponse, error) {
	if s.store == nil {
		return transport.DownloadResponse{}, apperr.Unavailable("document storage is not configured")
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.DownloadResponse{}, err
	}
	if order.DOURL == nil {
		return transport.DownloadResponse{}, apperr.NotFound("delivery order document not generated")
	}
	url, expiresAt, err := s.store.DownloadURL(ctx, *order.DOURL)
	if err != nil {
		return transport.DownloadResponse{}, err
	}
	return transport.DownloadResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// renderAndStore returns the stored document key, or nil when rendering or upload fails.
func (s *Service) renderAndStore(ctx context.Context, data agent.DeliveryOrderData) *string {
	if s.store == nil {
		s.log.Warn("delivery order rendering skipped without storage", "orderNumber", data.OrderNumber)
		return nil
	}
	pdf, err := s.renderer.Render(ctx, data, s.trackingLink(data.OrderNumber))
	if err != nil {
		s.log.Warn("delivery order render failed", "orderNumber", data.OrderNumber, "error", err)
		return nil
	}
	key, err := s.store.Save(ctx, data.OrderNumber, pdf)
	if err != nil {
		s.log.Warn("delivery order upload failed", "orderNumber", data.OrderNumber, "error", err)
		return nil
	}
	return &key
}

func (s *Service) trackingLink(orderNumber string) string {
	if s.trackURL == "" {
		return ""
	}
	return s.trackURL + "/track/" + orderNumber
}

func deliveryOrderInput(order repository.Order, items []repository.Item) agent.DeliveryOrderInput {
	lines := make([]agent.DeliveryOrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, agent.DeliveryOrderLine{
			SKU:         item.SKU,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Unit:        agent.DefaultUnit,
			UnitPrice:   item.UnitPrice,
		})
	}

	var requested *string
	if order.RequestedDeliveryDate != nil {
		d := order.RequestedDeliveryDate.Format(dateLayout)
		requested = &d
	}
	return agent.DeliveryOrderInput{
		OrderNumber:           order.OrderNumber,
		DealerName:            displayName(order),
		DealerEmail:           order.DealerEmail,
		DealerPhone:           order.DealerPhone,
		DeliveryAddress:       order.DeliveryAddress,
		RequestedDeliveryDate: requested,
		Items:                 lines,
		Notes:                 order.Notes,
	}
}
