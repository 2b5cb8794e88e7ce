package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/services"
)

// DashboardHandler serves leasing totals.
type DashboardHandler struct {
	service services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats handles GET /api/v1/dashboard.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		serviceError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}
