package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/services"
)

// AssetHandler handles asset-related HTTP requests.
type AssetHandler struct {
	service services.AssetService
}

// NewAssetHandler creates a new AssetHandler instance.
func NewAssetHandler(service services.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// AssetRequest is the body for creating or editing an asset. Billing units
// and lease status are derived server-side.
type AssetRequest struct {
	Name              string          `json:"name" binding:"required,max=255"`
	CertificateNumber string          `json:"certificate_number" binding:"required,max=100"`
	Location          string          `json:"location" binding:"max=255"`
	CurrentCrop       *string         `json:"current_crop" binding:"omitempty,max=100"`
	AreaM2            decimal.Decimal `json:"area_m2" binding:"decimal_gte0"`
}

func (r AssetRequest) toModel() models.Asset {
	return models.Asset{
		Name:              r.Name,
		CertificateNumber: r.CertificateNumber,
		Location:          r.Location,
		CurrentCrop:       r.CurrentCrop,
		AreaM2:            r.AreaM2,
	}
}

// List handles GET /api/v1/assets.
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.service.ListAssets(c.Request.Context())
	if err != nil {
		serviceError(c, err, "Failed to list assets")
		return
	}
	c.JSON(http.StatusOK, assets)
}

// Get handles GET /api/v1/assets/:id.
func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	asset, err := h.service.GetAsset(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err, "Failed to load asset")
		return
	}
	c.JSON(http.StatusOK, asset)
}

// Create handles POST /api/v1/assets.
func (h *AssetHandler) Create(c *gin.Context) {
	var req AssetRequest
	if !bindJSON(c, &req) {
		return
	}
	asset, err := h.service.CreateAsset(c.Request.Context(), req.toModel())
	if err != nil {
		serviceError(c, err, "Failed to create asset")
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// Update handles PUT /api/v1/assets/:id.
func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AssetRequest
	if !bindJSON(c, &req) {
		return
	}

	in := req.toModel()
	in.ID = id
	asset, err := h.service.UpdateAsset(c.Request.Context(), in)
	if err != nil {
		serviceError(c, err, "Failed to update asset")
		return
	}
	c.JSON(http.StatusOK, asset)
}

// Delete handles DELETE /api/v1/assets/:id. Leases on the asset go with it.
func (h *AssetHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAsset(c.Request.Context(), id); err != nil {
		serviceError(c, err, "Failed to delete asset")
		return
	}
	c.Status(http.StatusNoContent)
}
