// Package valuation computes lease values from parcel area, tariff and duration.
// All arithmetic is fixed-point decimal; float64 never appears.
package valuation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// SquareMetresPerUnit is the raw area covered by one billing unit (boto).
	SquareMetresPerUnit = 14

	// CurrencyPlaces is the number of fraction digits kept for money.
	CurrencyPlaces = 2

	// AreaPlaces is the number of fraction digits kept for billing units.
	AreaPlaces = 2

	rateBase       = 100
	monthsPerYear  = 12
	rateMonthsBase = rateBase * monthsPerYear
)

// ErrInvalidValuationInput is returned when a valuation input breaks a constraint.
var ErrInvalidValuationInput = errors.New("invalid valuation input")

// ComputeValue returns the total lease value for areaUnits billing units leased
// for durationMonths at ratePerHundredAnnual (a tariff per 100 units per year).
//
// value = areaUnits * (rate / 100) * (durationMonths / 12), rounded half away
// from zero to CurrencyPlaces. The division is done once at the end so no
// intermediate result is rounded.
func ComputeValue(areaUnits, ratePerHundredAnnual decimal.Decimal, durationMonths int) (decimal.Decimal, error) {
	if areaUnits.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: area must not be negative, got %s", ErrInvalidValuationInput, areaUnits.String())
	}
	if !ratePerHundredAnnual.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: rate must be greater than zero, got %s", ErrInvalidValuationInput, ratePerHundredAnnual.String())
	}
	if durationMonths < 1 {
		return decimal.Zero, fmt.Errorf("%w: duration must be at least 1 month, got %d", ErrInvalidValuationInput, durationMonths)
	}

	total := areaUnits.
		Mul(ratePerHundredAnnual).
		Mul(decimal.NewFromInt(int64(durationMonths))).
		DivRound(decimal.NewFromInt(rateMonthsBase), CurrencyPlaces)

	return total, nil
}

// BillingUnits converts a raw parcel area in square metres to billing units.
// The result is stored with the parcel and never recomputed per lease.
func BillingUnits(rawAreaM2 decimal.Decimal) (decimal.Decimal, error) {
	if rawAreaM2.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: area must not be negative, got %s", ErrInvalidValuationInput, rawAreaM2.String())
	}
	return rawAreaM2.DivRound(decimal.NewFromInt(SquareMetresPerUnit), AreaPlaces), nil
}
