package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wholesale_portal_backend/internal/dealers/service"
	"wholesale_portal_backend/internal/dealers/transport"
	"wholesale_portal_backend/platform/httpkit"
	"wholesale_portal_backend/platform/validator"
)

// Handler handles HTTP requests for dealer profiles.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new dealer handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetProfile returns the caller's dealer profile.
// GET /api/v1/dealer/profile
func (h *Handler) GetProfile(c *gin.Context) {
	dealerID, ok := httpkit.MustGetDealerID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetProfile(c.Request.Context(), dealerID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateProfile updates the caller's dealer profile.
// PATCH /api/v1/dealer/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req transport.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	dealerID, ok := httpkit.MustGetDealerID(c)
	if !ok {
		return
	}

	result, err := h.svc.UpdateProfile(c.Request.Context(), dealerID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
