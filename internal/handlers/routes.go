package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingapi"
)

// RegisterHealthRoutes mounts liveness, readiness and info endpoints.
func RegisterHealthRoutes(r gin.IRouter, h *HealthHandler) {
	r.GET("/health", h.Health)
	r.GET("/health/ready", h.Ready)
	r.GET("/api/v1/info", h.Info)
}

// RegisterPriceBoundaryRoutes mounts the two endpoints the leasing side reads.
func RegisterPriceBoundaryRoutes(r gin.IRouter, h *PriceHandler) {
	r.GET(pricingapi.CurrentPricePath, h.Current)
	r.GET(pricingapi.HistoryPath, h.History)
}

// RegisterPriceAdminRoutes mounts price administration under /api/v1/prices.
func RegisterPriceAdminRoutes(r gin.IRouter, h *PriceHandler) {
	prices := r.Group("/api/v1/prices")
	{
		prices.GET("", h.List)
		prices.POST("", h.Create)
		prices.GET("/:id", h.Get)
		prices.PUT("/:id", h.Update)
		prices.DELETE("/:id", h.Delete)
		prices.GET("/:id/usage", h.Usage)
	}
}

// ManagementHandlers groups the handlers served by the management service.
type ManagementHandlers struct {
	Assets    *AssetHandler
	Tenants   *TenantHandler
	Leases    *LeaseHandler
	Dashboard *DashboardHandler
}

// RegisterManagementRoutes mounts the asset, tenant, lease and dashboard API.
func RegisterManagementRoutes(r gin.IRouter, h ManagementHandlers) {
	v1 := r.Group("/api/v1")
	{
		assets := v1.Group("/assets")
		{
			assets.GET("", h.Assets.List)
			assets.POST("", h.Assets.Create)
			assets.GET("/:id", h.Assets.Get)
			assets.PUT("/:id", h.Assets.Update)
			assets.DELETE("/:id", h.Assets.Delete)
		}

		tenants := v1.Group("/tenants")
		{
			tenants.GET("", h.Tenants.List)
			tenants.POST("", h.Tenants.Create)
			tenants.GET("/:id", h.Tenants.Get)
			tenants.PUT("/:id", h.Tenants.Update)
			tenants.DELETE("/:id", h.Tenants.Delete)
		}

		leases := v1.Group("/leases")
		{
			leases.GET("", h.Leases.List)
			leases.POST("", h.Leases.Create)
			leases.GET("/:id", h.Leases.Get)
			leases.PUT("/:id", h.Leases.Update)
			leases.PATCH("/:id/payment", h.Leases.UpdatePayment)
			leases.DELETE("/:id", h.Leases.Delete)
		}

		v1.GET("/valuation/preview", h.Leases.Preview)
		v1.GET("/dashboard", h.Dashboard.Stats)
	}
}
