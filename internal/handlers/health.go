package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/middleware"
)

const (
	// APIVersion is reported by /api/v1/info on both services.
	APIVersion = "1.0.0"
	// HealthCheckTimeout bounds the readiness ping.
	HealthCheckTimeout = 2 * time.Second
)

// Pinger reports whether a dependency is reachable. *database.Database
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// poolReporter is implemented by pinged dependencies that hold a connection
// pool.
type poolReporter interface {
	PoolUsage() (acquired, idle, maxConns int32)
}

// HealthHandler serves liveness, readiness and build info for one service.
type HealthHandler struct {
	db        Pinger
	startTime time.Time
	service   string
	env       string
}

func NewHealthHandler(db Pinger, service, env string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
		service:   service,
		env:       env,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// PoolStatus is the connection pool snapshot included in a ready response.
type PoolStatus struct {
	Acquired int32 `json:"acquired"`
	Idle     int32 `json:"idle"`
	Max      int32 `json:"max"`
}

type ReadyResponse struct {
	Status   string      `json:"status"`
	Service  string      `json:"service"`
	Database string      `json:"database"`
	Pool     *PoolStatus `json:"pool,omitempty"`
}

type InfoResponse struct {
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Uptime      string `json:"uptime"`
}

// Health handles GET /health. Liveness only; dependencies are not checked.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Service: h.service})
}

// Ready handles GET /health/ready: 200 when the database answers a ping
// within HealthCheckTimeout, 503 otherwise.
func (h *HealthHandler) Ready(c *gin.Context) {
	resp := ReadyResponse{Status: "not_ready", Service: h.service}

	if h.db == nil {
		resp.Database = "not_configured"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Database health check failed", err, map[string]interface{}{
				"timeout": HealthCheckTimeout.String(),
			})
		}
		resp.Database = "disconnected"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	resp.Status = "ready"
	resp.Database = "connected"
	if pr, ok := h.db.(poolReporter); ok {
		acquired, idle, maxConns := pr.PoolUsage()
		resp.Pool = &PoolStatus{Acquired: acquired, Idle: idle, Max: maxConns}
	}
	c.JSON(http.StatusOK, resp)
}

// Info handles GET /api/v1/info.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Service:     h.service,
		Version:     APIVersion,
		Environment: h.env,
		Uptime:      formatUptime(time.Since(h.startTime)),
	})
}

// formatUptime renders d as "1d 2h 3m 4s", omitting days when zero.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
