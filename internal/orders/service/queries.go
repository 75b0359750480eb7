package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"wholesale_portal_backend/internal/events"
	"wholesale_portal_backend/internal/orders/repository"
	"wholesale_portal_backend/internal/orders/transport"
	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/money"
)

// maxConcurrentItemLoads bounds item queries when expanding a list of orders.
const maxConcurrentItemLoads = 5

// Get returns an order with its items for its dealer or an admin.
func (s *Service) Get(ctx context.Context, actor Actor, id uuid.UUID) (transport.OrderResponse, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	if !canAccess(actor, order) {
		return transport.OrderResponse{}, apperr.Forbidden(msgNoAccess)
	}
	return s.withItems(ctx, order)
}

// GetByNumber returns the order for a DO number, used by public tracking.
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (transport.OrderResponse, error) {
	order, err := s.repo.GetByNumber(ctx, strings.ToUpper(strings.TrimSpace(orderNumber)))
	if err != nil {
		return transport.OrderResponse{}, err
	}
	return s.withItems(ctx, order)
}

// ListByEmail returns every order placed with the contact email, items included.
func (s *Service) ListByEmail(ctx context.Context, email string) (transport.OrderListResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return transport.OrderListResponse{}, apperr.Validation("email is required")
	}
	orders, err := s.repo.List(ctx, repository.ListParams{Email: email})
	if err != nil {
		return transport.OrderListResponse{}, err
	}

	items := make([]transport.OrderResponse, len(orders))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentItemLoads)
	for i, order := range orders {
		g.Go(func() error {
			resp, err := s.withItems(gctx, order)
			if err != nil {
				return err
			}
			mu.Lock()
			items[i] = resp
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return transport.OrderListResponse{}, err
	}
	return transport.OrderListResponse{Items: items, Total: len(items)}, nil
}

// ListForDealer lists a dealer's orders, newest first.
func (s *Service) ListForDealer(ctx context.Context, dealerID uuid.UUID) (transport.OrderListResponse, error) {
	orders, err := s.repo.List(ctx, repository.ListParams{DealerID: &dealerID})
	if err != nil {
		return transport.OrderListResponse{}, err
	}
	return toListResponse(orders), nil
}

// List lists orders for admins. The end date is inclusive.
func (s *Service) List(ctx context.Context, req transport.ListOrdersRequest) (transport.OrderListResponse, error) {
	params := repository.ListParams{Status: req.Status, Search: req.Search}
	if req.StartDate != "" {
		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return transport.OrderListResponse{}, apperr.Validation("startDate must be YYYY-MM-DD")
		}
		params.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return transport.OrderListResponse{}, apperr.Validation("endDate must be YYYY-MM-DD")
		}
		end = end.AddDate(0, 0, 1)
		params.EndDate = &end
	}
	if params.StartDate != nil && params.EndDate != nil && !params.StartDate.Before(*params.EndDate) {
		return transport.OrderListResponse{}, apperr.Validation("startDate must not be after endDate")
	}

	orders, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.OrderListResponse{}, err
	}
	return toListResponse(orders), nil
}

// DeliveryOrderHistory lists orders that have a generated delivery order.
func (s *Service) DeliveryOrderHistory(ctx context.Context) (transport.OrderListResponse, error) {
	orders, err := s.repo.ListWithDeliveryOrders(ctx)
	if err != nil {
		return transport.OrderListResponse{}, err
	}
	return toListResponse(orders), nil
}

// UpdateStatus moves an order to status and publishes the change.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateStatusRequest) (transport.OrderResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	if current.Status == req.Status {
		return toOrderResponse(current, nil), nil
	}

	order, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	s.log.Info("order status updated", "id", id, "from", current.Status, "to", order.Status)

	s.eventBus.Publish(ctx, events.OrderStatusChanged{
		BaseEvent:    events.NewBaseEvent(),
		OrderID:      order.ID,
		OrderNumber:  order.OrderNumber,
		DealerID:     order.DealerID,
		CompanyName:  displayName(order),
		ContactEmail: deref(order.DealerEmail),
		OldStatus:    current.Status,
		NewStatus:    order.Status,
	})
	return toOrderResponse(order, nil), nil
}

// Confirm moves an order to confirmed.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (transport.OrderResponse, error) {
	return s.UpdateStatus(ctx, id, transport.UpdateStatusRequest{Status: repository.StatusConfirmed})
}

func (s *Service) withItems(ctx context.Context, order repository.Order) (transport.OrderResponse, error) {
	items, err := s.repo.ListItems(ctx, order.ID)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	return toOrderResponse(order, items), nil
}

func canAccess(actor Actor, order repository.Order) bool {
	if actor.IsAdmin {
		return true
	}
	return actor.DealerID != nil && order.DealerID != nil && *actor.DealerID == *order.DealerID
}

func toListResponse(orders []repository.Order) transport.OrderListResponse {
	items := make([]transport.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, toOrderResponse(order, nil))
	}
	return transport.OrderListResponse{Items: items, Total: len(items)}
}

func toOrderResponse(order repository.Order, items []repository.Item) transport.OrderResponse {
	resp := transport.OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		InquiryID:       order.InquiryID,
		DealerID:        order.DealerID,
		CompanyName:     order.CompanyName,
		ContactNumber:   order.ContactNumber,
		DealerName:      order.DealerName,
		DealerEmail:     order.DealerEmail,
		DealerPhone:     order.DealerPhone,
		DeliveryAddress: order.DeliveryAddress,
		Subtotal:        money.NewAmount(order.Subtotal),
		Tax:             money.NewAmount(order.Tax),
		Total:           money.NewAmount(order.Total),
		Status:          order.Status,
		Notes:           order.Notes,
		DOGeneratedAt:   order.DOGeneratedAt,
		HasDocument:     order.DOURL != nil,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	if order.RequestedDeliveryDate != nil {
		d := order.RequestedDeliveryDate.Format(dateLayout)
		resp.RequestedDeliveryDate = &d
	}
	if items != nil {
		resp.Items = make([]transport.OrderItemResponse, 0, len(items))
		for _, item := range items {
			resp.Items = append(resp.Items, transport.OrderItemResponse{
				ID:          item.ID,
				ProductID:   item.ProductID,
				SKU:         item.SKU,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   money.NewAmount(item.UnitPrice),
				LineTotal:   money.NewAmount(item.LineTotal),
				Notes:       item.Notes,
			})
		}
	}
	return resp
}

func toPlaceOrderResponse(order repository.Order, itemCount int) transport.PlaceOrderResponse {
	return transport.PlaceOrderResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		InquiryID:   order.InquiryID,
		ItemCount:   itemCount,
		Total:       money.NewAmount(order.Total),
	}
}
