package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
)

const (
	// MinDesignationYear is the earliest accepted designation year.
	MinDesignationYear = 2000

	// RatePlaces is the number of fraction digits a stored rate may carry.
	RatePlaces = 2
)

// maxRate is the first value that no longer fits the NUMERIC(14,2) column.
var maxRate = decimal.New(1, 12)

// ErrInvalidPriceRecord is returned when a price record breaks a record invariant.
var ErrInvalidPriceRecord = errors.New("invalid price record")

// Validate checks the invariants every stored price record must hold.
// A zero DesignationYear is filled from EffectiveStart before checking.
func Validate(rec *models.PriceRecord) error {
	if !rec.Rate.IsPositive() {
		return fmt.Errorf("%w: rate must be greater than zero, got %s", ErrInvalidPriceRecord, rec.Rate.String())
	}
	if !rec.Rate.Equal(rec.Rate.Round(RatePlaces)) {
		return fmt.Errorf("%w: rate must have at most %d decimal places, got %s", ErrInvalidPriceRecord,
			RatePlaces, rec.Rate.String())
	}
	if rec.Rate.GreaterThanOrEqual(maxRate) {
		return fmt.Errorf("%w: rate must be less than %s, got %s", ErrInvalidPriceRecord,
			maxRate.String(), rec.Rate.String())
	}
	if rec.EffectiveStart.IsZero() || rec.EffectiveEnd.IsZero() {
		return fmt.Errorf("%w: effective start and end dates are required", ErrInvalidPriceRecord)
	}

	rec.EffectiveStart = models.DateOf(rec.EffectiveStart)
	rec.EffectiveEnd = models.DateOf(rec.EffectiveEnd)
	if rec.EffectiveEnd.Before(rec.EffectiveStart) {
		return fmt.Errorf("%w: effective end %s is before effective start %s", ErrInvalidPriceRecord,
			rec.EffectiveEnd.Format(models.DateLayout), rec.EffectiveStart.Format(models.DateLayout))
	}

	if rec.DesignationYear == 0 {
		rec.DesignationYear = rec.EffectiveStart.Year()
	}
	if rec.DesignationYear != rec.EffectiveStart.Year() {
		return fmt.Errorf("%w: designation year %d must equal the effective start year %d", ErrInvalidPriceRecord,
			rec.DesignationYear, rec.EffectiveStart.Year())
	}
	if rec.DesignationYear < MinDesignationYear {
		return fmt.Errorf("%w: designation year must be %d or later, got %d", ErrInvalidPriceRecord,
			MinDesignationYear, rec.DesignationYear)
	}

	return nil
}
