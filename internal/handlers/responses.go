package handlers

import (
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingapi"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/services"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/valuation"
)

// Money fields below shadow the embedded decimal fields so they always
// render with currency precision ("2000000.00", never "2000000").

// LeaseResponse is a lease as returned by the lease API.
type LeaseResponse struct {
	models.Lease
	Value string `json:"value"`
}

func newLeaseResponse(l models.Lease) LeaseResponse {
	return LeaseResponse{Lease: l, Value: l.Value.StringFixed(valuation.CurrencyPlaces)}
}

func newLeaseResponses(leases []models.Lease) []LeaseResponse {
	out := make([]LeaseResponse, 0, len(leases))
	for _, l := range leases {
		out = append(out, newLeaseResponse(l))
	}
	return out
}

// PreviewResponse is the body of GET /api/v1/valuation/preview.
type PreviewResponse struct {
	services.ValuationPreview
	Rate  string `json:"rate"`
	Value string `json:"value"`
}

func newPreviewResponse(p services.ValuationPreview) PreviewResponse {
	return PreviewResponse{
		ValuationPreview: p,
		Rate:             pricingapi.FormatRate(p.Rate),
		Value:            p.Value.StringFixed(valuation.CurrencyPlaces),
	}
}

// PriceResponse is a price record as returned by the admin API.
type PriceResponse struct {
	models.PriceRecord
	Rate string `json:"rate"`
}

func newPriceResponse(rec models.PriceRecord) PriceResponse {
	return PriceResponse{PriceRecord: rec, Rate: pricingapi.FormatRate(rec.Rate)}
}
