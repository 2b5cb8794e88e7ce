package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lease status values for an asset.
const (
	AssetStatusAvailable = "available"
	AssetStatusLeased    = "leased"
)

// Asset is a leasable rice-field parcel.
// BillingUnits is derived from AreaM2 when the asset is created or edited and is
// reused for every lease against the parcel.
type Asset struct {
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	Name              string          `db:"name" json:"name"`
	CertificateNumber string          `db:"certificate_number" json:"certificate_number"`
	Location          string          `db:"location" json:"location"`
	CurrentCrop       *string         `db:"current_crop" json:"current_crop,omitempty"`
	LeaseStatus       string          `db:"lease_status" json:"lease_status"`
	AreaM2            decimal.Decimal `db:"area_m2" json:"area_m2"`
	BillingUnits      decimal.Decimal `db:"billing_units" json:"billing_units"`
	ID                int64           `db:"id" json:"id"`
}
