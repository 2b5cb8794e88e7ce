package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/config"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/handlers"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingclient"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/repository"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/server"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/services"
)

const serviceName = "management-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel, serviceName)
	log.Info("Starting management service", map[string]interface{}{
		"version":         handlers.APIVersion,
		"environment":     cfg.Server.Env,
		"port":            cfg.Server.Port,
		"pricing_url":     cfg.Pricing.ServiceURL,
		"pricing_timeout": cfg.Pricing.Timeout.String(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := server.OpenDatabase(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	reg := server.NewRegistry()

	pricing, err := pricingclient.New(cfg.Pricing.ServiceURL, cfg.Pricing.Timeout,
		pricingclient.WithLogger(log),
		pricingclient.WithMetrics(pricingclient.NewMetrics(reg)),
	)
	if err != nil {
		log.Fatal("Failed to create pricing client", err, nil)
	}

	assetRepo := repository.NewAssetRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	leaseRepo := repository.NewLeaseRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	router := server.NewEngine(cfg, log, serviceName, db, reg)
	handlers.RegisterManagementRoutes(router, handlers.ManagementHandlers{
		Assets:    handlers.NewAssetHandler(services.NewAssetService(assetRepo, log)),
		Tenants:   handlers.NewTenantHandler(services.NewTenantService(tenantRepo, log)),
		Leases:    handlers.NewLeaseHandler(services.NewLeaseService(leaseRepo, assetRepo, tenantRepo, pricing, log)),
		Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(dashboardRepo)),
	})

	if err := server.Run(ctx, cfg.Server.Port, router, log); err != nil {
		log.Error("Server stopped with error", err, nil)
		db.Close()
		os.Exit(1)
	}
}
