package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/burhanudinera2018/microservice-management-aset-v2/internal/errors"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricing"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingclient"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/services"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/valuation"
)

// serviceError maps a service error onto the API error envelope. fallback is
// the client-facing message for unexpected failures.
func serviceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrPriceNotFound),
		errors.Is(err, services.ErrAssetNotFound),
		errors.Is(err, services.ErrTenantNotFound),
		errors.Is(err, services.ErrLeaseNotFound),
		errors.Is(err, services.ErrNoCurrentPrice):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, valuation.ErrInvalidValuationInput),
		errors.Is(err, pricing.ErrInvalidPriceRecord),
		errors.Is(err, services.ErrInvalidPriceSelection),
		errors.Is(err, services.ErrInvalidLease),
		errors.Is(err, services.ErrInvalidAsset):
		apierrors.BadRequest(c, err.Error(), nil)

	case errors.Is(err, services.ErrPriceInUse),
		errors.Is(err, services.ErrDuplicate):
		apierrors.Conflict(c, err.Error(), nil)

	case errors.Is(err, pricingclient.ErrUpstreamUnavailable):
		apierrors.UpstreamUnavailable(c, "Pricing service is unavailable, nothing was saved", err)

	default:
		apierrors.InternalServerError(c, fallback, err)
	}
}
