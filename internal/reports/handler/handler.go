package handler

import (
	"strconv"

	"cerrajeria_backend/internal/reports/service"
	"cerrajeria_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for reports
type Handler struct {
	svc *service.Service
}

// New creates a new reports handler
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the report routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/summary", h.Summary)
}

func (h *Handler) Summary(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))

	result, err := h.svc.Summary(c.Request.Context(), days)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
