package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/database"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/jackc/pgx/v5"
)

const assetColumns = `id, name, certificate_number, location, area_m2, billing_units, current_crop, lease_status, created_at`

// AssetRepository defines data access for leasable parcels.
type AssetRepository interface {
	// List returns all assets, newest first.
	List(ctx context.Context) ([]models.Asset, error)

	// FindByID returns nil, nil when the asset does not exist.
	FindByID(ctx context.Context, id int64) (*models.Asset, error)

	// Create inserts asset and fills its ID, LeaseStatus and CreatedAt.
	// A duplicate certificate number yields ErrUniqueViolation.
	Create(ctx context.Context, asset *models.Asset) error

	// Update overwrites the editable fields. Lease status is owned by the
	// lease repository and is left untouched. Returns nil, nil when missing.
	Update(ctx context.Context, asset *models.Asset) (*models.Asset, error)

	// Delete removes the asset and its leases, reporting whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)
}

type assetRepository struct {
	db *database.Database
}

// NewAssetRepository creates a new instance of AssetRepository.
func NewAssetRepository(db *database.Database) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) List(ctx context.Context) ([]models.Asset, error) {
	rows, err := r.db.Pool.Query(ctx, "SELECT "+assetColumns+" FROM assets ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}

	assets, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Asset])
	if err != nil {
		return nil, fmt.Errorf("failed to scan assets: %w", err)
	}
	return assets, nil
}

func (r *assetRepository) FindByID(ctx context.Context, id int64) (*models.Asset, error) {
	rows, err := r.db.Pool.Query(ctx, "SELECT "+assetColumns+" FROM assets WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset %d: %w", id, err)
	}

	asset, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Asset])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan asset %d: %w", id, err)
	}
	return asset, nil
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	query := `
		INSERT INTO assets (name, certificate_number, location, area_m2, billing_units, current_crop)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, lease_status, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		asset.Name, asset.CertificateNumber, asset.Location, asset.AreaM2, asset.BillingUnits, asset.CurrentCrop,
	).Scan(&asset.ID, &asset.LeaseStatus, &asset.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", classify(err))
	}
	return nil
}

func (r *assetRepository) Update(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	query := `
		UPDATE assets
		SET name = $2, certificate_number = $3, location = $4, area_m2 = $5, billing_units = $6, current_crop = $7
		WHERE id = $1
		RETURNING ` + assetColumns

	rows, err := r.db.Pool.Query(ctx, query,
		asset.ID, asset.Name, asset.CertificateNumber, asset.Location, asset.AreaM2, asset.BillingUnits, asset.CurrentCrop)
	if err != nil {
		return nil, fmt.Errorf("failed to update asset %d: %w", asset.ID, classify(err))
	}

	updated, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Asset])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update asset %d: %w", asset.ID, classify(err))
	}
	return updated, nil
}

func (r *assetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, "DELETE FROM assets WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete asset %d: %w", id, classify(err))
	}
	return tag.RowsAffected() > 0, nil
}
