// Package pricingapi defines the JSON contract between the pricing service and
// its consumers. Both the server handlers and the typed client build on these
// types so the two sides cannot drift apart.
package pricingapi

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
)

// Boundary routes served by the pricing service.
const (
	CurrentPricePath = "/price/current"
	HistoryPath      = "/price/history"
)

// RatePlaces is the number of fraction digits rates carry on the wire.
const RatePlaces = 2

// NoCurrentPriceMessage is the reason returned when no price applies today.
const NoCurrentPriceMessage = "No lease price per boto is in effect today."

// CurrentPriceResponse is the body of GET /price/current.
// On 404 ID and DesignationYear are null, Rate is "0" and Message explains why.
type CurrentPriceResponse struct {
	ID              *int64  `json:"id"`
	DesignationYear *int    `json:"designation_year"`
	Rate            string  `json:"rate"`
	Message         *string `json:"message,omitempty"`
}

// HistoryEntry is one element of GET /price/history.
type HistoryEntry struct {
	Label           string `json:"label"`
	Rate            string `json:"rate"`
	ID              int64  `json:"id"`
	DesignationYear int    `json:"designation_year"`
}

// ErrorResponse is the body of a failed GET /price/history.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// FormatRate renders a rate as an exact decimal string with RatePlaces digits.
func FormatRate(rate decimal.Decimal) string {
	return rate.StringFixed(RatePlaces)
}

// ParseRate parses a wire rate string back into an exact decimal.
func ParseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed rate %q: %w", s, err)
	}
	return rate, nil
}

// NewCurrentPrice builds the success body for rec.
func NewCurrentPrice(rec models.PriceRecord) CurrentPriceResponse {
	id := rec.ID
	year := rec.DesignationYear
	return CurrentPriceResponse{
		ID:              &id,
		Rate:            FormatRate(rec.Rate),
		DesignationYear: &year,
	}
}

// NewNoCurrentPrice builds the 404 body.
func NewNoCurrentPrice() CurrentPriceResponse {
	msg := NoCurrentPriceMessage
	return CurrentPriceResponse{
		Rate:    "0",
		Message: &msg,
	}
}

// NewHistory maps records, already in display order, to history entries.
// The result is never nil so an empty history encodes as [].
func NewHistory(records []models.PriceRecord) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, HistoryEntry{
			ID:              rec.ID,
			Label:           Label(rec),
			Rate:            FormatRate(rec.Rate),
			DesignationYear: rec.DesignationYear,
		})
	}
	return entries
}

var labelPrinter = message.NewPrinter(language.Indonesian)

// Label is the human-readable summary shown in price pickers, e.g.
// "Rp 4.000.000 (Tahun 2023, Mulai 01-01-2023)". Whole rupiah, grouped with
// dots.
func Label(rec models.PriceRecord) string {
	rupiah := rec.Rate.Round(0).IntPart()
	start := "N/A"
	if !rec.EffectiveStart.IsZero() {
		start = rec.EffectiveStart.Format("02-01-2006")
	}
	return fmt.Sprintf("Rp %s (Tahun %d, Mulai %s)", labelPrinter.Sprintf("%d", rupiah), rec.DesignationYear, start)
}
