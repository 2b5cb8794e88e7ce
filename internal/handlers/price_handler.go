package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/middleware"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingapi"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/services"
)

// PriceHandler serves the pricing service: the two boundary endpoints the
// leasing side consumes, plus price administration.
type PriceHandler struct {
	service services.PriceService
}

// NewPriceHandler creates a new PriceHandler instance.
func NewPriceHandler(service services.PriceService) *PriceHandler {
	return &PriceHandler{
		service: service,
	}
}

// PriceRequest is the body for creating or editing a price record.
// DesignationYear may be omitted and is then taken from EffectiveStart.
type PriceRequest struct {
	Rate            decimal.Decimal `json:"rate" binding:"decimal_gt0"`
	EffectiveStart  string          `json:"effective_start" binding:"required,datetime=2006-01-02"`
	EffectiveEnd    string          `json:"effective_end" binding:"required,datetime=2006-01-02"`
	DesignationYear int             `json:"designation_year" binding:"omitempty,gte=2000"`
}

// PriceUsageResponse is a price record with its lease reference count.
type PriceUsageResponse struct {
	PriceResponse
	LeaseCount int64 `json:"lease_count"`
	InUse      bool  `json:"in_use"`
}

// UsageResponse answers whether a price record may still be edited.
type UsageResponse struct {
	PriceID    int64 `json:"price_id"`
	LeaseCount int64 `json:"lease_count"`
	InUse      bool  `json:"in_use"`
}

// Current handles GET /price/current.
// It answers with the wire contract body, never the API error envelope.
func (h *PriceHandler) Current(c *gin.Context) {
	rec, err := h.service.CurrentPrice(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoCurrentPrice) {
			c.JSON(http.StatusNotFound, pricingapi.NewNoCurrentPrice())
			return
		}
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Failed to resolve current price", err, nil)
		}
		c.JSON(http.StatusInternalServerError, pricingapi.ErrorResponse{
			Error:   "failed to resolve current price",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, pricingapi.NewCurrentPrice(*rec))
}

// History handles GET /price/history.
func (h *PriceHandler) History(c *gin.Context) {
	records, err := h.service.History(c.Request.Context())
	if err != nil {
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Failed to load price history", err, nil)
		}
		c.JSON(http.StatusInternalServerError, pricingapi.ErrorResponse{
			Error:   "failed to load price history",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, pricingapi.NewHistory(records))
}

// List handles GET /api/v1/prices.
func (h *PriceHandler) List(c *gin.Context) {
	usage, err := h.service.ListWithUsage(c.Request.Context())
	if err != nil {
		serviceError(c, err, "Failed to list prices")
		return
	}

	response := make([]PriceUsageResponse, 0, len(usage))
	for _, u := range usage {
		response = append(response, PriceUsageResponse{
			PriceResponse: newPriceResponse(u.PriceRecord),
			LeaseCount:    u.LeaseCount,
			InUse:         u.InUse(),
		})
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/prices/:id.
func (h *PriceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rec, err := h.service.GetPrice(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err, "Failed to load price")
		return
	}
	c.JSON(http.StatusOK, newPriceResponse(*rec))
}

// Usage handles GET /api/v1/prices/:id/usage.
func (h *PriceHandler) Usage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	usage, err := h.service.Usage(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err, "Failed to load price usage")
		return
	}
	c.JSON(http.StatusOK, UsageResponse{
		PriceID:    usage.ID,
		LeaseCount: usage.LeaseCount,
		InUse:      usage.InUse(),
	})
}

// Create handles POST /api/v1/prices.
func (h *PriceHandler) Create(c *gin.Context) {
	rec, ok := h.bindPrice(c)
	if !ok {
		return
	}

	created, err := h.service.CreatePrice(c.Request.Context(), rec)
	if err != nil {
		serviceError(c, err, "Failed to create price")
		return
	}
	c.JSON(http.StatusCreated, newPriceResponse(*created))
}

// Update handles PUT /api/v1/prices/:id.
func (h *PriceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, ok := h.bindPrice(c)
	if !ok {
		return
	}
	rec.ID = id

	updated, err := h.service.UpdatePrice(c.Request.Context(), rec)
	if err != nil {
		serviceError(c, err, "Failed to update price")
		return
	}
	c.JSON(http.StatusOK, newPriceResponse(*updated))
}

// Delete handles DELETE /api/v1/prices/:id.
func (h *PriceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePrice(c.Request.Context(), id); err != nil {
		serviceError(c, err, "Failed to delete price")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PriceHandler) bindPrice(c *gin.Context) (models.PriceRecord, bool) {
	var req PriceRequest
	if !bindJSON(c, &req) {
		return models.PriceRecord{}, false
	}
	start, end, ok := parseDates(c, req.EffectiveStart, req.EffectiveEnd)
	if !ok {
		return models.PriceRecord{}, false
	}
	return models.PriceRecord{
		Rate:            req.Rate,
		EffectiveStart:  start,
		EffectiveEnd:    end,
		DesignationYear: req.DesignationYear,
	}, true
}
