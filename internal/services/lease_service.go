package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingclient"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/repository"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/valuation"
)

// PricingClient is what the leasing side needs from the pricing service.
// *pricingclient.Client satisfies it.
type PricingClient interface {
	GetCurrentPrice(ctx context.Context) (*pricingclient.PriceSnapshot, error)
	ListHistory(ctx context.Context) ([]pricingclient.PriceOption, error)
}

// LeaseInput carries the operator-supplied terms of a lease. A nil
// PriceRecordID selects the price currently in effect.
type LeaseInput struct {
	StartDate      time.Time
	EndDate        time.Time
	AgreedCrop     *string
	PriceRecordID  *int64
	PaymentStatus  string
	AssetID        int64
	TenantID       int64
	DurationMonths int
}

// ValuationPreview is a computed but unsaved lease value.
type ValuationPreview struct {
	BillingUnits    decimal.Decimal `json:"billing_units"`
	Rate            decimal.Decimal `json:"rate"`
	Value           decimal.Decimal `json:"value"`
	PriceLabel      string          `json:"price_label,omitempty"`
	AssetID         int64           `json:"asset_id"`
	PriceRecordID   int64           `json:"price_record_id"`
	DesignationYear int             `json:"designation_year"`
	DurationMonths  int             `json:"duration_months"`
}

// LeaseService creates and maintains leases. Every create or edit takes a
// fresh price snapshot from the pricing service and refuses to write when
// that service cannot answer.
type LeaseService interface {
	// ListLeases returns all leases, or only those referencing priceRecordID
	// when it is non-nil.
	ListLeases(ctx context.Context, priceRecordID *int64) ([]models.Lease, error)
	GetLease(ctx context.Context, id int64) (*models.Lease, error)
	CreateLease(ctx context.Context, in LeaseInput) (*models.Lease, error)
	UpdateLease(ctx context.Context, id int64, in LeaseInput) (*models.Lease, error)
	UpdatePayment(ctx context.Context, id int64, status string) (*models.Lease, error)
	DeleteLease(ctx context.Context, id int64) error
	PreviewValue(ctx context.Context, assetID int64, priceRecordID *int64, durationMonths int) (*ValuationPreview, error)
}

type leaseService struct {
	leases  repository.LeaseRepository
	assets  repository.AssetRepository
	tenants repository.TenantRepository
	pricing PricingClient
	log     *logger.Logger
}

// NewLeaseService creates a new instance of LeaseService.
func NewLeaseService(
	leases repository.LeaseRepository,
	assets repository.AssetRepository,
	tenants repository.TenantRepository,
	pricing PricingClient,
	log *logger.Logger,
) LeaseService {
	return &leaseService{
		leases:  leases,
		assets:  assets,
		tenants: tenants,
		pricing: pricing,
		log:     log,
	}
}

func (s *leaseService) ListLeases(ctx context.Context, priceRecordID *int64) ([]models.Lease, error) {
	var (
		leases []models.Lease
		err    error
	)
	if priceRecordID != nil {
		leases, err = s.leases.ListByPrice(ctx, *priceRecordID)
	} else {
		leases, err = s.leases.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	if leases == nil {
		leases = []models.Lease{}
	}
	return leases, nil
}

func (s *leaseService) GetLease(ctx context.Context, id int64) (*models.Lease, error) {
	lease, err := s.leases.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load lease: %w", err)
	}
	if lease == nil {
		return nil, fmt.Errorf("%w: id %d", ErrLeaseNotFound, id)
	}
	return lease, nil
}

// selectedPrice is the price snapshot a lease is valued against.
type selectedPrice struct {
	label           string
	rate            decimal.Decimal
	id              int64
	designationYear int
}

// selectPrice asks the pricing service for the chosen price, or for the
// current one when none is chosen. Upstream errors are returned unchanged so
// callers can tell them apart with errors.Is.
func (s *leaseService) selectPrice(ctx context.Context, priceRecordID *int64) (*selectedPrice, error) {
	if priceRecordID == nil {
		current, err := s.pricing.GetCurrentPrice(ctx)
		if err != nil {
			if errors.Is(err, pricingclient.ErrNoCurrentPrice) {
				return nil, fmt.Errorf("%w: choose a price explicitly", ErrNoCurrentPrice)
			}
			return nil, err
		}
		return &selectedPrice{id: current.ID, rate: current.Rate, designationYear: current.DesignationYear}, nil
	}

	options, err := s.pricing.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	for _, opt := range options {
		if opt.ID == *priceRecordID {
			return &selectedPrice{id: opt.ID, rate: opt.Rate, designationYear: opt.DesignationYear, label: opt.Label}, nil
		}
	}
	return nil, fmt.Errorf("%w: price id %d", ErrInvalidPriceSelection, *priceRecordID)
}

func validateTerms(in LeaseInput) error {
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidLease)
	}
	if models.DateOf(in.EndDate).Before(models.DateOf(in.StartDate)) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidLease)
	}
	switch in.PaymentStatus {
	case "", models.PaymentStatusUnpaid, models.PaymentStatusPaid:
	default:
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidLease, in.PaymentStatus)
	}
	return nil
}

// build resolves references and values a lease without writing anything.
func (s *leaseService) build(ctx context.Context, in LeaseInput) (*models.Lease, error) {
	if err := validateTerms(in); err != nil {
		return nil, err
	}

	asset, err := s.assets.FindByID(ctx, in.AssetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: id %d", ErrAssetNotFound, in.AssetID)
	}

	tenant, err := s.tenants.FindByID(ctx, in.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: id %d", ErrTenantNotFound, in.TenantID)
	}

	price, err := s.selectPrice(ctx, in.PriceRecordID)
	if err != nil {
		return nil, err
	}

	value, err := valuation.ComputeValue(asset.BillingUnits, price.rate, in.DurationMonths)
	if err != nil {
		return nil, err
	}

	return &models.Lease{
		AssetID:        asset.ID,
		TenantID:       tenant.ID,
		PriceRecordID:  price.id,
		StartDate:      models.DateOf(in.StartDate),
		EndDate:        models.DateOf(in.EndDate),
		DurationMonths: in.DurationMonths,
		Value:          value,
		AgreedCrop:     in.AgreedCrop,
		PaymentStatus:  in.PaymentStatus,
	}, nil
}

// storeError maps repository failures on lease writes.
func storeError(action string, err error) error {
	if errors.Is(err, repository.ErrForeignKeyViolation) {
		return fmt.Errorf("%w: a referenced asset, tenant or price no longer exists", ErrInvalidLease)
	}
	return fmt.Errorf("failed to %s lease: %w", action, err)
}

func (s *leaseService) CreateLease(ctx context.Context, in LeaseInput) (*models.Lease, error) {
	lease, err := s.build(ctx, in)
	if err != nil {
		s.log.Warn("Lease not created", map[string]interface{}{
			"asset_id":  in.AssetID,
			"tenant_id": in.TenantID,
			"error":     err.Error(),
		})
		return nil, err
	}

	if err := s.leases.Create(ctx, lease); err != nil {
		return nil, storeError("create", err)
	}

	s.log.Info("Lease created", map[string]interface{}{
		"lease_id": lease.ID,
		"asset_id": lease.AssetID,
		"price_id": lease.PriceRecordID,
		"value":    lease.Value.String(),
	})
	return lease, nil
}

func (s *leaseService) UpdateLease(ctx context.Context, id int64, in LeaseInput) (*models.Lease, error) {
	if _, err := s.GetLease(ctx, id); err != nil {
		return nil, err
	}

	lease, err := s.build(ctx, in)
	if err != nil {
		s.log.Warn("Lease not updated", map[string]interface{}{"lease_id": id, "error": err.Error()})
		return nil, err
	}
	lease.ID = id

	updated, err := s.leases.Update(ctx, lease)
	if err != nil {
		return nil, storeError("update", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: id %d", ErrLeaseNotFound, id)
	}

	s.log.Info("Lease updated", map[string]interface{}{
		"lease_id": id,
		"price_id": updated.PriceRecordID,
		"value":    updated.Value.String(),
	})
	return updated, nil
}

func (s *leaseService) UpdatePayment(ctx context.Context, id int64, status string) (*models.Lease, error) {
	if status != models.PaymentStatusPaid && status != models.PaymentStatusUnpaid {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidLease, status)
	}

	lease, err := s.leases.UpdatePayment(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	if lease == nil {
		return nil, fmt.Errorf("%w: id %d", ErrLeaseNotFound, id)
	}
	return lease, nil
}

func (s *leaseService) DeleteLease(ctx context.Context, id int64) error {
	deleted, err := s.leases.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete lease: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: id %d", ErrLeaseNotFound, id)
	}
	s.log.Info("Lease deleted", map[string]interface{}{"lease_id": id})
	return nil
}

func (s *leaseService) PreviewValue(ctx context.Context, assetID int64, priceRecordID *int64, durationMonths int) (*ValuationPreview, error) {
	asset, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: id %d", ErrAssetNotFound, assetID)
	}

	price, err := s.selectPrice(ctx, priceRecordID)
	if err != nil {
		return nil, err
	}

	value, err := valuation.ComputeValue(asset.BillingUnits, price.rate, durationMonths)
	if err != nil {
		return nil, err
	}

	return &ValuationPreview{
		AssetID:         asset.ID,
		BillingUnits:    asset.BillingUnits,
		PriceRecordID:   price.id,
		PriceLabel:      price.label,
		Rate:            price.rate,
		DesignationYear: price.designationYear,
		DurationMonths:  durationMonths,
		Value:           value,
	}, nil
}
