package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values for a lease.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Lease binds an asset, a tenant, a duration and a price snapshot.
// PriceRecordID and Value are fixed at create/edit time; later edits to the
// referenced price record do not change them.
type Lease struct {
	StartDate      time.Time       `db:"start_date" json:"start_date"`
	EndDate        time.Time       `db:"end_date" json:"end_date"`
	TransactedAt   time.Time       `db:"transacted_at" json:"transacted_at"`
	PaymentStatus  string          `db:"payment_status" json:"payment_status"`
	AgreedCrop     *string         `db:"agreed_crop" json:"agreed_crop,omitempty"`
	Value          decimal.Decimal `db:"value" json:"value"`
	ID             int64           `db:"id" json:"id"`
	AssetID        int64           `db:"asset_id" json:"asset_id"`
	TenantID       int64           `db:"tenant_id" json:"tenant_id"`
	PriceRecordID  int64           `db:"price_record_id" json:"price_record_id"`
	DurationMonths int             `db:"duration_months" json:"duration_months"`
}

// DashboardStats summarizes the leasing side for the landing page.
type DashboardStats struct {
	TotalAssets     int64 `json:"total_assets"`
	AvailableAssets int64 `json:"available_assets"`
	TotalTenants    int64 `json:"total_tenants"`
	TotalLeases     int64 `json:"total_leases"`
}
