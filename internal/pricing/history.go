// Package pricing answers which lease tariff applies on a given date.
package pricing

import (
	"sort"
	"time"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
)

// Resolve returns the price record that applies on date.
//
// The applicable record is the one with the latest EffectiveStart on or before
// date; ties go to the highest ID. EffectiveEnd is NOT consulted: a record stays
// current after its nominal end until a newer record starts. This matches the
// behaviour the leasing side has always relied on and must not be changed
// without a product decision.
//
// The second return value is false when no record has started yet, including
// for an empty history.
func Resolve(history []models.PriceRecord, date time.Time) (*models.PriceRecord, bool) {
	day := models.DateOf(date)

	var best *models.PriceRecord
	for i := range history {
		rec := &history[i]
		start := models.DateOf(rec.EffectiveStart)
		if start.After(day) {
			continue
		}
		if best == nil || newer(rec, best) {
			best = rec
		}
	}

	if best == nil {
		return nil, false
	}
	result := *best
	return &result, true
}

// ListAll returns a copy of history ordered newest first: EffectiveStart
// descending, then ID descending.
func ListAll(history []models.PriceRecord) []models.PriceRecord {
	sorted := make([]models.PriceRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newer(&sorted[i], &sorted[j])
	})
	return sorted
}

// newer reports whether a should be preferred over b.
func newer(a, b *models.PriceRecord) bool {
	as, bs := models.DateOf(a.EffectiveStart), models.DateOf(b.EffectiveStart)
	if !as.Equal(bs) {
		return as.After(bs)
	}
	return a.ID > b.ID
}
