package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/services"
)

// TenantHandler handles tenant-related HTTP requests.
type TenantHandler struct {
	service services.TenantService
}

// NewTenantHandler creates a new TenantHandler instance.
func NewTenantHandler(service services.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// TenantRequest is the body for creating or editing a tenant.
type TenantRequest struct {
	FullName      string  `json:"full_name" binding:"required,max=255"`
	NationalID    string  `json:"national_id" binding:"required,numeric,max=20"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number" binding:"omitempty,max=50"`
}

func (r TenantRequest) toModel() models.Tenant {
	return models.Tenant{
		FullName:      r.FullName,
		NationalID:    r.NationalID,
		Address:       r.Address,
		ContactNumber: r.ContactNumber,
	}
}

// List handles GET /api/v1/tenants.
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.service.ListTenants(c.Request.Context())
	if err != nil {
		serviceError(c, err, "Failed to list tenants")
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// Get handles GET /api/v1/tenants/:id.
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	tenant, err := h.service.GetTenant(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err, "Failed to load tenant")
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// Create handles POST /api/v1/tenants.
func (h *TenantHandler) Create(c *gin.Context) {
	var req TenantRequest
	if !bindJSON(c, &req) {
		return
	}
	tenant, err := h.service.CreateTenant(c.Request.Context(), req.toModel())
	if err != nil {
		serviceError(c, err, "Failed to create tenant")
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

// Update handles PUT /api/v1/tenants/:id.
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req TenantRequest
	if !bindJSON(c, &req) {
		return
	}

	in := req.toModel()
	in.ID = id
	tenant, err := h.service.UpdateTenant(c.Request.Context(), in)
	if err != nil {
		serviceError(c, err, "Failed to update tenant")
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// Delete handles DELETE /api/v1/tenants/:id.
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTenant(c.Request.Context(), id); err != nil {
		serviceError(c, err, "Failed to delete tenant")
		return
	}
	c.Status(http.StatusNoContent)
}
