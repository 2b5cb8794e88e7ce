package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// migrationLockID serializes schema changes when both services start at once.
const migrationLockID int64 = 720_514_001

// Both services share one database: the pricing service writes price_records
// and the management service writes the rest. leases.price_record_id has no
// cascade so a referenced price cannot disappear underneath a lease.
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS price_records (
		id BIGSERIAL PRIMARY KEY,
		designation_year INTEGER NOT NULL CHECK (designation_year >= 2000),
		rate NUMERIC(14,2) NOT NULL CHECK (rate > 0),
		effective_start DATE NOT NULL,
		effective_end DATE NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT ck_price_records_range CHECK (effective_end >= effective_start)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_price_records_effective_start ON price_records (effective_start DESC, id DESC);`,
	`CREATE TABLE IF NOT EXISTS assets (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		certificate_number VARCHAR(50) NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		area_m2 NUMERIC(12,2) NOT NULL CHECK (area_m2 >= 0),
		billing_units NUMERIC(12,2) NOT NULL CHECK (billing_units >= 0),
		current_crop VARCHAR(100),
		lease_status VARCHAR(20) NOT NULL DEFAULT 'available' CHECK (lease_status IN ('available', 'leased')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_assets_certificate_number ON assets (certificate_number);`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id BIGSERIAL PRIMARY KEY,
		full_name VARCHAR(100) NOT NULL,
		national_id VARCHAR(32) NOT NULL,
		address TEXT,
		contact_number VARCHAR(20)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_tenants_national_id ON tenants (national_id);`,
	`CREATE TABLE IF NOT EXISTS leases (
		id BIGSERIAL PRIMARY KEY,
		asset_id BIGINT NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
		tenant_id BIGINT NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		price_record_id BIGINT NOT NULL REFERENCES price_records(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		duration_months INTEGER NOT NULL CHECK (duration_months >= 1),
		value NUMERIC(16,2) NOT NULL CHECK (value >= 0),
		agreed_crop VARCHAR(100),
		payment_status VARCHAR(20) NOT NULL DEFAULT 'unpaid' CHECK (payment_status IN ('unpaid', 'paid')),
		transacted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_leases_price_record_id ON leases (price_record_id);`,
	`CREATE INDEX IF NOT EXISTS idx_leases_asset_id ON leases (asset_id);`,
	`CREATE INDEX IF NOT EXISTS idx_leases_tenant_id ON leases (tenant_id);`,
}

// Migrate applies the schema idempotently inside one transaction guarded by
// an advisory lock.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockID); err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}
		for i, stmt := range migrationStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migration statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
