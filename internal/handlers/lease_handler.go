package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/middleware"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/services"
)

// LeaseHandler handles lease-related HTTP requests, including valuation
// previews.
type LeaseHandler struct {
	service services.LeaseService
}

// NewLeaseHandler creates a new LeaseHandler instance.
func NewLeaseHandler(service services.LeaseService) *LeaseHandler {
	return &LeaseHandler{service: service}
}

// LeaseRequest is the body for creating or editing a lease. Omitting price_id
// selects the price currently in effect. The value is always computed
// server-side.
type LeaseRequest struct {
	PriceID        *int64  `json:"price_id" binding:"omitempty,gt=0"`
	AgreedCrop     *string `json:"agreed_crop" binding:"omitempty,max=100"`
	StartDate      string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate        string  `json:"end_date" binding:"required,datetime=2006-01-02"`
	PaymentStatus  string  `json:"payment_status" binding:"omitempty,oneof=unpaid paid"`
	AssetID        int64   `json:"asset_id" binding:"required,gt=0"`
	TenantID       int64   `json:"tenant_id" binding:"required,gt=0"`
	DurationMonths int     `json:"duration_months" binding:"required,gte=1"`
}

// PaymentRequest is the body for PATCH /api/v1/leases/:id/payment.
type PaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=unpaid paid"`
}

// LeaseListQuery filters GET /api/v1/leases.
type LeaseListQuery struct {
	PriceID *int64 `form:"price_id" binding:"omitempty,gt=0"`
}

// PreviewQuery holds the parameters for GET /api/v1/valuation/preview.
type PreviewQuery struct {
	PriceID        *int64 `form:"price_id" binding:"omitempty,gt=0"`
	AssetID        int64  `form:"asset_id" binding:"required,gt=0"`
	DurationMonths int    `form:"duration_months" binding:"required,gte=1"`
}

// List handles GET /api/v1/leases.
func (h *LeaseHandler) List(c *gin.Context) {
	var q LeaseListQuery
	if !bindQuery(c, &q) {
		return
	}
	leases, err := h.service.ListLeases(c.Request.Context(), q.PriceID)
	if err != nil {
		serviceError(c, err, "Failed to list leases")
		return
	}
	c.JSON(http.StatusOK, newLeaseResponses(leases))
}

// Get handles GET /api/v1/leases/:id.
func (h *LeaseHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	lease, err := h.service.GetLease(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err, "Failed to load lease")
		return
	}
	c.JSON(http.StatusOK, newLeaseResponse(*lease))
}

// Create handles POST /api/v1/leases.
func (h *LeaseHandler) Create(c *gin.Context) {
	in, ok := bindLease(c)
	if !ok {
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Processing lease create", map[string]interface{}{
			"asset_id":  in.AssetID,
			"tenant_id": in.TenantID,
			"price_id":  in.PriceRecordID,
		})
	}

	lease, err := h.service.CreateLease(c.Request.Context(), in)
	if err != nil {
		serviceError(c, err, "Failed to create lease")
		return
	}
	c.JSON(http.StatusCreated, newLeaseResponse(*lease))
}

// Update handles PUT /api/v1/leases/:id.
func (h *LeaseHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := bindLease(c)
	if !ok {
		return
	}

	lease, err := h.service.UpdateLease(c.Request.Context(), id, in)
	if err != nil {
		serviceError(c, err, "Failed to update lease")
		return
	}
	c.JSON(http.StatusOK, newLeaseResponse(*lease))
}

// UpdatePayment handles PATCH /api/v1/leases/:id/payment.
func (h *LeaseHandler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	lease, err := h.service.UpdatePayment(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		serviceError(c, err, "Failed to update payment status")
		return
	}
	c.JSON(http.StatusOK, newLeaseResponse(*lease))
}

// Delete handles DELETE /api/v1/leases/:id.
func (h *LeaseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteLease(c.Request.Context(), id); err != nil {
		serviceError(c, err, "Failed to delete lease")
		return
	}
	c.Status(http.StatusNoContent)
}

// Preview handles GET /api/v1/valuation/preview. Nothing is stored.
func (h *LeaseHandler) Preview(c *gin.Context) {
	var q PreviewQuery
	if !bindQuery(c, &q) {
		return
	}

	preview, err := h.service.PreviewValue(c.Request.Context(), q.AssetID, q.PriceID, q.DurationMonths)
	if err != nil {
		serviceError(c, err, "Failed to compute lease value")
		return
	}
	c.JSON(http.StatusOK, newPreviewResponse(*preview))
}

func bindLease(c *gin.Context) (services.LeaseInput, bool) {
	var req LeaseRequest
	if !bindJSON(c, &req) {
		return services.LeaseInput{}, false
	}
	start, end, ok := parseDates(c, req.StartDate, req.EndDate)
	if !ok {
		return services.LeaseInput{}, false
	}
	return services.LeaseInput{
		StartDate:      start,
		EndDate:        end,
		AgreedCrop:     req.AgreedCrop,
		PriceRecordID:  req.PriceID,
		PaymentStatus:  req.PaymentStatus,
		AssetID:        req.AssetID,
		TenantID:       req.TenantID,
		DurationMonths: req.DurationMonths,
	}, true
}
