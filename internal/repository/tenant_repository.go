package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/database"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/jackc/pgx/v5"
)

const tenantColumns = `id, full_name, national_id, address, contact_number`

// TenantRepository defines data access for tenants.
type TenantRepository interface {
	// List returns all tenants ordered by name.
	List(ctx context.Context) ([]models.Tenant, error)

	// FindByID returns nil, nil when the tenant does not exist.
	FindByID(ctx context.Context, id int64) (*models.Tenant, error)

	// Create inserts tenant and fills its ID. A duplicate national ID yields
	// ErrUniqueViolation.
	Create(ctx context.Context, tenant *models.Tenant) error

	// Update returns nil, nil when the tenant does not exist.
	Update(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error)

	// Delete removes the tenant and their leases, reporting whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)
}

type tenantRepository struct {
	db *database.Database
}

// NewTenantRepository creates a new instance of TenantRepository.
func NewTenantRepository(db *database.Database) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) List(ctx context.Context) ([]models.Tenant, error) {
	rows, err := r.db.Pool.Query(ctx, "SELECT "+tenantColumns+" FROM tenants ORDER BY full_name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}

	tenants, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Tenant])
	if err != nil {
		return nil, fmt.Errorf("failed to scan tenants: %w", err)
	}
	return tenants, nil
}

func (r *tenantRepository) FindByID(ctx context.Context, id int64) (*models.Tenant, error) {
	rows, err := r.db.Pool.Query(ctx, "SELECT "+tenantColumns+" FROM tenants WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant %d: %w", id, err)
	}

	tenant, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Tenant])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan tenant %d: %w", id, err)
	}
	return tenant, nil
}

func (r *tenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (full_name, national_id, address, contact_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query, tenant.FullName, tenant.NationalID, tenant.Address, tenant.ContactNumber).
		Scan(&tenant.ID)
	if err != nil {
		return fmt.Errorf("failed to insert tenant: %w", classify(err))
	}
	return nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	query := `
		UPDATE tenants
		SET full_name = $2, national_id = $3, address = $4, contact_number = $5
		WHERE id = $1
		RETURNING ` + tenantColumns

	rows, err := r.db.Pool.Query(ctx, query,
		tenant.ID, tenant.FullName, tenant.NationalID, tenant.Address, tenant.ContactNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to update tenant %d: %w", tenant.ID, classify(err))
	}

	updated, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Tenant])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update tenant %d: %w", tenant.ID, classify(err))
	}
	return updated, nil
}

func (r *tenantRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, "DELETE FROM tenants WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete tenant %d: %w", id, classify(err))
	}
	return tag.RowsAffected() > 0, nil
}
