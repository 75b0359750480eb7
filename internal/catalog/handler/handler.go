package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wholesale_portal_backend/internal/catalog/service"
	"wholesale_portal_backend/internal/catalog/transport"
	"wholesale_portal_backend/platform/httpkit"
	"wholesale_portal_backend/platform/validator"
)

// Handler handles HTTP requests for catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListProducts retrieves active products.
// GET /api/v1/products
func (h *Handler) ListProducts(c *gin.Context) {
	result, err := h.svc.ListProducts(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListByCategory retrieves active products within a category.
// GET /api/v1/products/category/:category
func (h *Handler) ListByCategory(c *gin.Context) {
	result, err := h.svc.ListByCategory(c.Request.Context(), c.Param("category"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SearchProducts runs a substring search.
// GET /api/v1/products/search?q=
func (h *Handler) SearchProducts(c *gin.Context) {
	var req transport.SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Search(c.Request.Context(), req.Query)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SmartSearch searches the whole query and falls back to its words.
// GET /api/v1/products/smart-search?q=
func (h *Handler) SmartSearch(c *gin.Context) {
	var req transport.SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	httpkit.OK(c, h.svc.SmartSearch(c.Request.Context(), req.Query))
}

// GetBySKU retrieves an active product.
// GET /api/v1/products/sku/:sku
func (h *Handler) GetBySKU(c *gin.Context) {
	result, err := h.svc.GetBySKU(c.Request.Context(), c.Param("sku"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AdminListProducts retrieves products with open order counts.
// GET /api/v1/admin/products
func (h *Handler) AdminListProducts(c *gin.Context) {
	result, err := h.svc.AdminListProducts(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdatePrice sets a product's unit price.
// PATCH /api/v1/admin/products/:sku/price
func (h *Handler) UpdatePrice(c *gin.Context) {
	var req transport.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.UpdatePrice(c.Request.Context(), c.Param("sku"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateStock sets a product's stock quantity.
// PATCH /api/v1/admin/products/:sku/stock
func (h *Handler) UpdateStock(c *gin.Context) {
	var req transport.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateStock(c.Request.Context(), c.Param("sku"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateLeadTime sets a product's lead time in days.
// PATCH /api/v1/admin/products/:sku/lead-time
func (h *Handler) UpdateLeadTime(c *gin.Context) {
	var req transport.UpdateLeadTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateLeadTime(c.Request.Context(), c.Param("sku"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
