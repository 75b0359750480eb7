package handler

import (
	"github.com/gin-gonic/gin"

	"wholesale_portal_backend/internal/dashboard/service"
	"wholesale_portal_backend/platform/httpkit"
)

// Handler handles HTTP requests for the admin dashboard.
type Handler struct {
	svc *service.Service
}

// New creates a new dashboard handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Stats returns dashboard counters.
// GET /api/v1/admin/dashboard/stats
func (h *Handler) Stats(c *gin.Context) {
	result, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
