package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is a time-boxed lease tariff.
// Rate is expressed per 100 billing units (boto) per year.
// DesignationYear always equals EffectiveStart's year.
type PriceRecord struct {
	EffectiveStart  time.Time       `db:"effective_start" json:"effective_start"`
	EffectiveEnd    time.Time       `db:"effective_end" json:"effective_end"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
	Rate            decimal.Decimal `db:"rate" json:"rate"`
	ID              int64           `db:"id" json:"id"`
	DesignationYear int             `db:"designation_year" json:"designation_year"`
}

// PriceUsage pairs a price record with the number of leases referencing it.
type PriceUsage struct {
	PriceRecord
	LeaseCount int64 `db:"lease_count" json:"lease_count"`
}

// InUse reports whether any lease references the price record.
func (u PriceUsage) InUse() bool {
	return u.LeaseCount > 0
}
