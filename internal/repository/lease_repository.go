package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/database"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/jackc/pgx/v5"
)

const leaseColumns = `id, asset_id, tenant_id, price_record_id, start_date, end_date, duration_months, value, agreed_crop, payment_status, transacted_at`

const (
	markAssetLeased = `UPDATE assets SET lease_status = 'leased' WHERE id = $1`

	// releaseAsset frees an asset once its last lease is gone.
	releaseAsset = `
		UPDATE assets SET lease_status = 'available'
		WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM leases WHERE asset_id = $1)`
)

// LeaseRepository defines data access for lease transactions. Writes keep
// the referenced asset's lease status in step within the same transaction.
type LeaseRepository interface {
	// List returns all leases, most recent transaction first.
	List(ctx context.Context) ([]models.Lease, error)

	// ListByPrice returns the leases referencing a price record.
	ListByPrice(ctx context.Context, priceRecordID int64) ([]models.Lease, error)

	// FindByID returns nil, nil when the lease does not exist.
	FindByID(ctx context.Context, id int64) (*models.Lease, error)

	// Create inserts lease, fills ID and TransactedAt, and marks the asset as
	// leased. An empty PaymentStatus is stored as unpaid. A missing asset, tenant or price record yields
	// ErrForeignKeyViolation and nothing is written.
	Create(ctx context.Context, lease *models.Lease) error

	// Update overwrites the lease terms and price snapshot and restamps
	// TransactedAt. An empty PaymentStatus keeps the stored one. When the
	// asset changes the new one is marked leased and the old one released if
	// no other lease holds it. Returns nil, nil when the lease does not exist.
	Update(ctx context.Context, lease *models.Lease) (*models.Lease, error)

	// UpdatePayment sets the payment status. Returns nil, nil when missing.
	UpdatePayment(ctx context.Context, id int64, status string) (*models.Lease, error)

	// Delete removes the lease and releases its asset if no other lease holds
	// it, reporting whether the lease existed.
	Delete(ctx context.Context, id int64) (bool, error)
}

type leaseRepository struct {
	db *database.Database
}

// NewLeaseRepository creates a new instance of LeaseRepository.
func NewLeaseRepository(db *database.Database) LeaseRepository {
	return &leaseRepository{db: db}
}

func (r *leaseRepository) List(ctx context.Context) ([]models.Lease, error) {
	return r.query(ctx, "SELECT "+leaseColumns+" FROM leases ORDER BY transacted_at DESC, id DESC")
}

func (r *leaseRepository) ListByPrice(ctx context.Context, priceRecordID int64) ([]models.Lease, error) {
	return r.query(ctx,
		"SELECT "+leaseColumns+" FROM leases WHERE price_record_id = $1 ORDER BY transacted_at DESC, id DESC",
		priceRecordID)
}

func (r *leaseRepository) query(ctx context.Context, sql string, args ...any) ([]models.Lease, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leases: %w", err)
	}

	leases, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Lease])
	if err != nil {
		return nil, fmt.Errorf("failed to scan leases: %w", err)
	}
	return leases, nil
}

func (r *leaseRepository) FindByID(ctx context.Context, id int64) (*models.Lease, error) {
	rows, err := r.db.Pool.Query(ctx, "SELECT "+leaseColumns+" FROM leases WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query lease %d: %w", id, err)
	}

	lease, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Lease])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan lease %d: %w", id, err)
	}
	return lease, nil
}

func (r *leaseRepository) Create(ctx context.Context, lease *models.Lease) error {
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO leases (asset_id, tenant_id, price_record_id, start_date, end_date, duration_months, value, agreed_crop, payment_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE(NULLIF($9, ''), 'unpaid'))
			RETURNING id, payment_status, transacted_at
		`
		err := tx.QueryRow(ctx, query,
			lease.AssetID, lease.TenantID, lease.PriceRecordID, lease.StartDate, lease.EndDate,
			lease.DurationMonths, lease.Value, lease.AgreedCrop, lease.PaymentStatus,
		).Scan(&lease.ID, &lease.PaymentStatus, &lease.TransactedAt)
		if err != nil {
			return fmt.Errorf("failed to insert lease: %w", classify(err))
		}

		if _, err := tx.Exec(ctx, markAssetLeased, lease.AssetID); err != nil {
			return fmt.Errorf("failed to mark asset %d leased: %w", lease.AssetID, err)
		}
		return nil
	})
}

func (r *leaseRepository) Update(ctx context.Context, lease *models.Lease) (*models.Lease, error) {
	var updated *models.Lease

	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		var previousAssetID int64
		err := tx.QueryRow(ctx, "SELECT asset_id FROM leases WHERE id = $1 FOR UPDATE", lease.ID).Scan(&previousAssetID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to lock lease %d: %w", lease.ID, err)
		}

		rows, err := tx.Query(ctx, `
			UPDATE leases
			SET asset_id = $2, tenant_id = $3, price_record_id = $4, start_date = $5, end_date = $6,
				duration_months = $7, value = $8, agreed_crop = $9,
				payment_status = COALESCE(NULLIF($10, ''), payment_status), transacted_at = NOW()
			WHERE id = $1
			RETURNING `+leaseColumns,
			lease.ID, lease.AssetID, lease.TenantID, lease.PriceRecordID, lease.StartDate, lease.EndDate,
			lease.DurationMonths, lease.Value, lease.AgreedCrop, lease.PaymentStatus)
		if err != nil {
			return fmt.Errorf("failed to update lease %d: %w", lease.ID, classify(err))
		}
		updated, err = pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Lease])
		if err != nil {
			return fmt.Errorf("failed to update lease %d: %w", lease.ID, classify(err))
		}

		if previousAssetID != lease.AssetID {
			if _, err := tx.Exec(ctx, markAssetLeased, lease.AssetID); err != nil {
				return fmt.Errorf("failed to mark asset %d leased: %w", lease.AssetID, err)
			}
			if _, err := tx.Exec(ctx, releaseAsset, previousAssetID); err != nil {
				return fmt.Errorf("failed to release asset %d: %w", previousAssetID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *leaseRepository) UpdatePayment(ctx context.Context, id int64, status string) (*models.Lease, error) {
	rows, err := r.db.Pool.Query(ctx,
		"UPDATE leases SET payment_status = $2 WHERE id = $1 RETURNING "+leaseColumns, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment for lease %d: %w", id, err)
	}

	lease, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Lease])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update payment for lease %d: %w", id, err)
	}
	return lease, nil
}

func (r *leaseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false

	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		var assetID int64
		err := tx.QueryRow(ctx, "DELETE FROM leases WHERE id = $1 RETURNING asset_id", id).Scan(&assetID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to delete lease %d: %w", id, err)
		}
		deleted = true

		if _, err := tx.Exec(ctx, releaseAsset, assetID); err != nil {
			return fmt.Errorf("failed to release asset %d: %w", assetID, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
