package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wholesale_portal_backend/internal/auth/service"
	"wholesale_portal_backend/internal/auth/transport"
	"wholesale_portal_backend/platform/httpkit"
	"wholesale_portal_backend/platform/validator"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/staff-login", h.StaffLogin)
	rg.POST("/logout", h.Logout)
}

func (h *Handler) bindLogin(c *gin.Context) (transport.LoginRequest, bool) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return req, false
	}
	return req, true
}

// Login signs in any account.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	req, ok := h.bindLogin(c)
	if !ok {
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// StaffLogin signs in admin accounts only.
// POST /api/v1/auth/staff-login
func (h *Handler) StaffLogin(c *gin.Context) {
	req, ok := h.bindLogin(c)
	if !ok {
		return
	}

	result, err := h.svc.StaffLogin(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Logout is a no-op for stateless access tokens; clients drop the token.
// POST /api/v1/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	httpkit.NoContent(c)
}

// GetMe returns the signed-in user.
// GET /api/v1/users/me
func (h *Handler) GetMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.GetMe(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
