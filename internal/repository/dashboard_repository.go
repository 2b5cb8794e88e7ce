package repository

import (
	"context"
	"fmt"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/database"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
)

// DashboardRepository aggregates counts across the leasing tables.
type DashboardRepository interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardRepository struct {
	db *database.Database
}

// NewDashboardRepository creates a new instance of DashboardRepository.
func NewDashboardRepository(db *database.Database) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM assets),
			(SELECT COUNT(*) FROM assets WHERE lease_status = 'available'),
			(SELECT COUNT(*) FROM tenants),
			(SELECT COUNT(*) FROM leases)
	`

	var stats models.DashboardStats
	err := r.db.Pool.QueryRow(ctx, query).Scan(
		&stats.TotalAssets,
		&stats.AvailableAssets,
		&stats.TotalTenants,
		&stats.TotalLeases,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard stats: %w", err)
	}
	return &stats, nil
}
