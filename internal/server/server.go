// Package server holds the process wiring shared by the pricing and
// management binaries: router setup, database bootstrap and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/config"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/database"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/handlers"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/middleware"
)

const (
	// ShutdownTimeout bounds how long in-flight requests get after a signal.
	ShutdownTimeout = 30 * time.Second

	readHeaderTimeout = 10 * time.Second
)

// NewRegistry returns a Prometheus registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewEngine builds a gin engine with the standard middleware chain
// (RequestID -> Logger -> Recovery -> Metrics -> CORS), the health routes and
// /metrics. corsMethods narrows the CORS method set when given.
func NewEngine(cfg *config.Config, log *logger.Logger, service string, db handlers.Pinger, reg *prometheus.Registry, corsMethods ...string) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidators()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.NewHTTPMetrics(reg, service).Middleware())
	router.Use(middleware.CORS(cfg.CORS.Origins, corsMethods...))

	handlers.RegisterHealthRoutes(router, handlers.NewHealthHandler(db, service, cfg.Server.Env))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	return router
}

// OpenDatabase connects to Postgres and applies migrations when enabled.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*database.Database, error) {
	db, err := database.NewPostgresPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.Name,
		"pool_min": cfg.PoolMin,
		"pool_max": cfg.PoolMax,
	})

	if cfg.Migrate {
		if err := database.Migrate(ctx, db.Pool); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database schema is up to date", nil)
	}

	return db, nil
}

// Run serves handler on port until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, port string, handler http.Handler, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": ShutdownTimeout.String(),
		})
		return err
	}

	log.Info("Server exited", nil)
	return nil
}
