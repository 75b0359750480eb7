package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wholesale_portal_backend/internal/orders/service"
	"wholesale_portal_backend/internal/orders/transport"
	"wholesale_portal_backend/platform/httpkit"
	"wholesale_portal_backend/platform/validator"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid order id"
	roleAdmin           = "admin"
)

// New creates a new order handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func actorFrom(identity httpkit.Identity) service.Actor {
	return service.Actor{
		UserID:   identity.UserID(),
		DealerID: identity.DealerID(),
		IsAdmin:  identity.HasRole(roleAdmin),
	}
}

func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

// CreateFromInquiry places an order from a quoted inquiry.
// POST /api/v1/orders/from-inquiry
func (h *Handler) CreateFromInquiry(c *gin.Context) {
	var req transport.CreateFromInquiryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.CreateFromInquiry(c.Request.Context(), actorFrom(identity), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// CreateDirect places a dealer order from catalog SKUs.
// POST /api/v1/orders/direct
func (h *Handler) CreateDirect(c *gin.Context) {
	var req transport.CreateDirectRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.CreateDirect(c.Request.Context(), actorFrom(identity), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// CreatePublic places an anonymous checkout order.
// POST /api/v1/public/orders
func (h *Handler) CreatePublic(c *gin.Context) {
	var req transport.CreatePublicRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.CreatePublic(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Get returns an order with its items.
// GET /api/v1/orders/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), actorFrom(identity), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByNumber tracks an order by DO number.
// GET /api/v1/public/orders/number/:number
func (h *Handler) GetByNumber(c *gin.Context) {
	result, err := h.svc.GetByNumber(c.Request.Context(), c.Param("number"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListByEmail tracks every order placed with an email.
// GET /api/v1/public/orders/email/:email
func (h *Handler) ListByEmail(c *gin.Context) {
	email := c.Param("email")
	if err := h.val.Var(email, "required,email"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListByEmail(c.Request.Context(), email)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListMine returns the caller's dealer orders.
// GET /api/v1/dealer/orders
func (h *Handler) ListMine(c *gin.Context) {
	dealerID, ok := httpkit.MustGetDealerID(c)
	if !ok {
		return
	}

	result, err := h.svc.ListForDealer(c.Request.Context(), dealerID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// List returns orders matching admin filters.
// GET /api/v1/admin/orders
func (h *Handler) List(c *gin.Context) {
	var req transport.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeliveryOrderHistory lists orders with generated delivery orders.
// GET /api/v1/admin/orders/do-history
func (h *Handler) DeliveryOrderHistory(c *gin.Context) {
	result, err := h.svc.DeliveryOrderHistory(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateStatus sets an order status.
// PATCH /api/v1/admin/orders/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Confirm confirms a pending order.
// POST /api/v1/admin/orders/:id/confirm
func (h *Handler) Confirm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.Confirm(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GenerateDeliveryOrder builds the delivery order for an order.
// POST /api/v1/admin/orders/:id/delivery-order
func (h *Handler) GenerateDeliveryOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.GenerateDeliveryOrder(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DownloadDeliveryOrder presigns the stored delivery-order PDF.
// GET /api/v1/admin/orders/:id/delivery-order/download
func (h *Handler) DownloadDeliveryOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.DownloadDeliveryOrder(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
