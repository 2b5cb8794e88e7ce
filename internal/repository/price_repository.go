package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/database"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/jackc/pgx/v5"
)

const priceColumns = `id, designation_year, rate, effective_start, effective_end, updated_at`

// PriceRepository defines data access for the price table.
type PriceRepository interface {
	// List returns every price record in no particular order.
	List(ctx context.Context) ([]models.PriceRecord, error)

	// ListWithUsage returns every price record with the number of leases
	// referencing it, newest effective start first.
	ListWithUsage(ctx context.Context) ([]models.PriceUsage, error)

	// FindByID returns nil, nil when the record does not exist.
	FindByID(ctx context.Context, id int64) (*models.PriceRecord, error)

	// CountLeases returns how many leases reference the price record.
	CountLeases(ctx context.Context, id int64) (int64, error)

	// Create inserts rec and fills its ID and UpdatedAt.
	Create(ctx context.Context, rec *models.PriceRecord) error

	// Update overwrites the mutable fields of rec. It returns nil, nil when the
	// record does not exist and ErrPriceReferenced when leases reference it.
	Update(ctx context.Context, rec *models.PriceRecord) (*models.PriceRecord, error)

	// Delete removes the record, reporting whether it existed. A record that
	// leases reference is refused with ErrPriceReferenced.
	Delete(ctx context.Context, id int64) (bool, error)
}

type priceRepository struct {
	db *database.Database
}

// NewPriceRepository creates a new instance of PriceRepository.
func NewPriceRepository(db *database.Database) PriceRepository {
	return &priceRepository{db: db}
}

func (r *priceRepository) List(ctx context.Context) ([]models.PriceRecord, error) {
	rows, err := r.db.Pool.Query(ctx, "SELECT "+priceColumns+" FROM price_records")
	if err != nil {
		return nil, fmt.Errorf("failed to query price records: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PriceRecord])
	if err != nil {
		return nil, fmt.Errorf("failed to scan price records: %w", err)
	}
	return records, nil
}

func (r *priceRepository) ListWithUsage(ctx context.Context) ([]models.PriceUsage, error) {
	query := `
		SELECT
			p.id, p.designation_year, p.rate, p.effective_start, p.effective_end, p.updated_at,
			COUNT(l.id) AS lease_count
		FROM price_records p
		LEFT JOIN leases l ON l.price_record_id = p.id
		GROUP BY p.id
		ORDER BY p.effective_start DESC, p.id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query price usage: %w", err)
	}

	usage, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PriceUsage])
	if err != nil {
		return nil, fmt.Errorf("failed to scan price usage: %w", err)
	}
	return usage, nil
}

func (r *priceRepository) FindByID(ctx context.Context, id int64) (*models.PriceRecord, error) {
	rows, err := r.db.Pool.Query(ctx, "SELECT "+priceColumns+" FROM price_records WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query price record %d: %w", id, err)
	}

	rec, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.PriceRecord])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan price record %d: %w", id, err)
	}
	return rec, nil
}

func (r *priceRepository) CountLeases(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM leases WHERE price_record_id = $1", id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leases for price record %d: %w", id, err)
	}
	return count, nil
}

func (r *priceRepository) Create(ctx context.Context, rec *models.PriceRecord) error {
	query := `
		INSERT INTO price_records (designation_year, rate, effective_start, effective_end)
		VALUES ($1, $2, $3, $4)
		RETURNING id, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query, rec.DesignationYear, rec.Rate, rec.EffectiveStart, rec.EffectiveEnd).
		Scan(&rec.ID, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert price record: %w", classify(err))
	}
	return nil
}

// Update locks the row first so a lease inserted concurrently either commits
// before the count or waits until the edit is done.
func (r *priceRepository) Update(ctx context.Context, rec *models.PriceRecord) (*models.PriceRecord, error) {
	var updated *models.PriceRecord

	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, "SELECT id FROM price_records WHERE id = $1 FOR UPDATE", rec.ID).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to lock price record %d: %w", rec.ID, err)
		}

		var leases int64
		if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM leases WHERE price_record_id = $1", rec.ID).Scan(&leases); err != nil {
			return fmt.Errorf("failed to count leases for price record %d: %w", rec.ID, err)
		}
		if leases > 0 {
			return ErrPriceReferenced
		}

		rows, err := tx.Query(ctx, `
			UPDATE price_records
			SET designation_year = $2, rate = $3, effective_start = $4, effective_end = $5, updated_at = NOW()
			WHERE id = $1
			RETURNING `+priceColumns,
			rec.ID, rec.DesignationYear, rec.Rate, rec.EffectiveStart, rec.EffectiveEnd)
		if err != nil {
			return fmt.Errorf("failed to update price record %d: %w", rec.ID, err)
		}
		updated, err = pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.PriceRecord])
		if err != nil {
			return fmt.Errorf("failed to scan updated price record %d: %w", rec.ID, classify(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *priceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, "DELETE FROM price_records WHERE id = $1", id)
	if err != nil {
		err = classify(err)
		if errors.Is(err, ErrForeignKeyViolation) {
			return false, fmt.Errorf("failed to delete price record %d: %w", id, errors.Join(ErrPriceReferenced, err))
		}
		return false, fmt.Errorf("failed to delete price record %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
