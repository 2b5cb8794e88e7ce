package services

import "errors"

// Service-level errors. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrNoCurrentPrice = errors.New("no price is in effect for the requested date")
	ErrPriceNotFound  = errors.New("price record not found")
	ErrPriceInUse     = errors.New("price record is referenced by existing leases")

	ErrAssetNotFound  = errors.New("asset not found")
	ErrTenantNotFound = errors.New("tenant not found")
	ErrLeaseNotFound  = errors.New("lease not found")

	// ErrDuplicate is returned when a unique business key, such as a
	// certificate number or national ID, is already taken.
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidPriceSelection is returned when a lease names a price that the
	// pricing service does not list.
	ErrInvalidPriceSelection = errors.New("selected price is not offered by the pricing service")

	// ErrInvalidLease is returned for lease terms that cannot be stored, such
	// as an end date before the start date or an unknown payment status.
	ErrInvalidLease = errors.New("invalid lease")

	// ErrInvalidAsset is returned for asset data that cannot be stored.
	ErrInvalidAsset = errors.New("invalid asset")
)
