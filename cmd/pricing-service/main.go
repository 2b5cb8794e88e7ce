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
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/middleware"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/repository"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/server"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/services"
)

const serviceName = "pricing-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel, serviceName)
	log.Info("Starting pricing service", map[string]interface{}{
		"version":       handlers.APIVersion,
		"environment":   cfg.Server.Env,
		"port":          cfg.Server.Port,
		"timezone":      cfg.Pricing.Timezone,
		"admin_enabled": cfg.Pricing.AdminEnabled,
	})

	loc, err := cfg.Pricing.Location()
	if err != nil {
		log.Fatal("Invalid price timezone", err, map[string]interface{}{"timezone": cfg.Pricing.Timezone})
	}

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

	priceRepo := repository.NewPriceRepository(db)
	priceService := services.NewPriceService(priceRepo, log, loc)
	priceHandler := handlers.NewPriceHandler(priceService)

	// Without the admin API nothing here accepts writes.
	var corsMethods []string
	if !cfg.Pricing.AdminEnabled {
		corsMethods = middleware.ReadOnlyMethods
	}

	router := server.NewEngine(cfg, log, serviceName, db, server.NewRegistry(), corsMethods...)
	handlers.RegisterPriceBoundaryRoutes(router, priceHandler)
	if cfg.Pricing.AdminEnabled {
		handlers.RegisterPriceAdminRoutes(router, priceHandler)
	}

	if err := server.Run(ctx, cfg.Server.Port, router, log); err != nil {
		log.Error("Server stopped with error", err, nil)
		db.Close()
		os.Exit(1)
	}
}
