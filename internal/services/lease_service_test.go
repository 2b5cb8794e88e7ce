package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingclient"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/repository"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/valuation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type leaseFixture struct {
	leases  *MockLeaseRepository
	assets  *MockAssetRepository
	tenants *MockTenantRepository
	pricing *MockPricingClient
	service LeaseService
}

func newLeaseFixture() *leaseFixture {
	f := &leaseFixture{
		leases:  new(MockLeaseRepository),
		assets:  new(MockAssetRepository),
		tenants: new(MockTenantRepository),
		pricing: new(MockPricingClient),
	}
	f.service = NewLeaseService(f.leases, f.assets, f.tenants, f.pricing, testLogger())
	return f
}

// withParties registers asset 1 (50 billing units) and tenant 1.
func (f *leaseFixture) withParties(ctx context.Context) {
	f.assets.On("FindByID", ctx, int64(1)).Return(&models.Asset{ID: 1, BillingUnits: decimal.NewFromInt(50)}, nil)
	f.tenants.On("FindByID", ctx, int64(1)).Return(&models.Tenant{ID: 1, FullName: "Budi"}, nil)
}

func priceOptions() []pricingclient.PriceOption {
	return []pricingclient.PriceOption{
		{ID: 2, DesignationYear: 2024, Rate: decimal.NewFromInt(5000000), Label: "Rp 5.000.000 (Tahun 2024, Mulai 01-01-2024)"},
		{ID: 1, DesignationYear: 2023, Rate: decimal.NewFromInt(4000000), Label: "Rp 4.000.000 (Tahun 2023, Mulai 01-01-2023)"},
	}
}

func leaseInput(t *testing.T) LeaseInput {
	return LeaseInput{
		AssetID:        1,
		TenantID:       1,
		StartDate:      day(t, "2024-01-01"),
		EndDate:        day(t, "2024-12-31"),
		DurationMonths: 12,
	}
}

func TestCreateLease_UsesCurrentPrice(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.withParties(ctx)
	f.pricing.On("GetCurrentPrice", ctx).Return(&pricingclient.PriceSnapshot{
		ID: 2, DesignationYear: 2024, Rate: decimal.NewFromInt(4000000),
	}, nil)
	f.leases.On("Create", ctx, mock.AnythingOfType("*models.Lease")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Lease).ID = 10
		}).
		Return(nil)

	lease, err := f.service.CreateLease(ctx, leaseInput(t))

	require.NoError(t, err)
	assert.Equal(t, int64(10), lease.ID)
	assert.Equal(t, int64(2), lease.PriceRecordID)
	assert.Equal(t, "2000000.00", lease.Value.StringFixed(2))
	f.pricing.AssertNotCalled(t, "ListHistory", mock.Anything)
	f.leases.AssertExpectations(t)
}

func TestCreateLease_UsesChosenPrice(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.withParties(ctx)
	f.pricing.On("ListHistory", ctx).Return(priceOptions(), nil)
	f.leases.On("Create", ctx, mock.Anything).Return(nil)

	in := leaseInput(t)
	chosen := int64(1)
	in.PriceRecordID = &chosen
	in.DurationMonths = 6

	lease, err := f.service.CreateLease(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, int64(1), lease.PriceRecordID)
	// 50 units * 4,000,000 per 100 per year for half a year.
	assert.True(t, lease.Value.Equal(decimal.NewFromInt(1000000)))
	f.pricing.AssertNotCalled(t, "GetCurrentPrice", mock.Anything)
}

func TestCreateLease_UnknownPriceSelection(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.withParties(ctx)
	f.pricing.On("ListHistory", ctx).Return(priceOptions(), nil)

	in := leaseInput(t)
	missing := int64(77)
	in.PriceRecordID = &missing

	_, err := f.service.CreateLease(ctx, in)

	assert.ErrorIs(t, err, ErrInvalidPriceSelection)
	f.leases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLease_PricingServiceUnavailable(t *testing.T) {
	upstream := fmt.Errorf("%w: price/current: connection refused", pricingclient.ErrUpstreamUnavailable)

	tests := []struct {
		name    string
		priceID *int64
		setup   func(f *leaseFixture, ctx context.Context)
	}{
		{
			name: "current price",
			setup: func(f *leaseFixture, ctx context.Context) {
				f.pricing.On("GetCurrentPrice", ctx).Return(nil, upstream)
			},
		},
		{
			name:    "chosen price",
			priceID: func() *int64 { id := int64(1); return &id }(),
			setup: func(f *leaseFixture, ctx context.Context) {
				f.pricing.On("ListHistory", ctx).Return(nil, upstream)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLeaseFixture()
			ctx := context.Background()
			f.withParties(ctx)
			tt.setup(f, ctx)

			in := leaseInput(t)
			in.PriceRecordID = tt.priceID

			lease, err := f.service.CreateLease(ctx, in)

			assert.Nil(t, lease)
			assert.ErrorIs(t, err, pricingclient.ErrUpstreamUnavailable)
			f.leases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateLease_NoCurrentPrice(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.withParties(ctx)
	f.pricing.On("GetCurrentPrice", ctx).Return(nil, pricingclient.ErrNoCurrentPrice)

	_, err := f.service.CreateLease(ctx, leaseInput(t))

	assert.ErrorIs(t, err, ErrNoCurrentPrice)
	f.leases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLease_InvalidTerms(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *LeaseInput)
		wantErr error
	}{
		{name: "end before start", mutate: func(in *LeaseInput) { in.EndDate = in.StartDate.AddDate(0, 0, -1) }, wantErr: ErrInvalidLease},
		{name: "missing start date", mutate: func(in *LeaseInput) { in.StartDate = time.Time{} }, wantErr: ErrInvalidLease},
		{name: "unknown payment status", mutate: func(in *LeaseInput) { in.PaymentStatus = "partial" }, wantErr: ErrInvalidLease},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLeaseFixture()
			in := leaseInput(t)
			tt.mutate(&in)

			_, err := f.service.CreateLease(context.Background(), in)

			assert.ErrorIs(t, err, tt.wantErr)
			f.assets.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
			f.pricing.AssertNotCalled(t, "GetCurrentPrice", mock.Anything)
		})
	}
}

func TestCreateLease_ZeroDurationRejected(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.withParties(ctx)
	f.pricing.On("GetCurrentPrice", ctx).Return(&pricingclient.PriceSnapshot{
		ID: 2, DesignationYear: 2024, Rate: decimal.NewFromInt(4000000),
	}, nil)

	in := leaseInput(t)
	in.DurationMonths = 0

	_, err := f.service.CreateLease(ctx, in)

	assert.ErrorIs(t, err, valuation.ErrInvalidValuationInput)
	f.leases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLease_MissingReferences(t *testing.T) {
	t.Run("asset", func(t *testing.T) {
		f := newLeaseFixture()
		ctx := context.Background()
		f.assets.On("FindByID", ctx, int64(1)).Return(nil, nil)

		_, err := f.service.CreateLease(ctx, leaseInput(t))
		assert.ErrorIs(t, err, ErrAssetNotFound)
		f.pricing.AssertNotCalled(t, "GetCurrentPrice", mock.Anything)
	})

	t.Run("tenant", func(t *testing.T) {
		f := newLeaseFixture()
		ctx := context.Background()
		f.assets.On("FindByID", ctx, int64(1)).Return(&models.Asset{ID: 1, BillingUnits: decimal.NewFromInt(50)}, nil)
		f.tenants.On("FindByID", ctx, int64(1)).Return(nil, nil)

		_, err := f.service.CreateLease(ctx, leaseInput(t))
		assert.ErrorIs(t, err, ErrTenantNotFound)
	})

	t.Run("removed before write", func(t *testing.T) {
		f := newLeaseFixture()
		ctx := context.Background()
		f.withParties(ctx)
		f.pricing.On("GetCurrentPrice", ctx).Return(&pricingclient.PriceSnapshot{
			ID: 2, DesignationYear: 2024, Rate: decimal.NewFromInt(4000000),
		}, nil)
		f.leases.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

		_, err := f.service.CreateLease(ctx, leaseInput(t))
		assert.ErrorIs(t, err, ErrInvalidLease)
	})
}

func TestUpdateLease_RevaluesWithFreshSnapshot(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.withParties(ctx)
	f.leases.On("FindByID", ctx, int64(10)).Return(&models.Lease{ID: 10, PriceRecordID: 1}, nil)
	f.pricing.On("GetCurrentPrice", ctx).Return(&pricingclient.PriceSnapshot{
		ID: 2, DesignationYear: 2024, Rate: decimal.NewFromInt(5000000),
	}, nil)
	f.leases.On("Update", ctx, mock.MatchedBy(func(l *models.Lease) bool {
		return l.ID == 10 && l.PriceRecordID == 2 && l.Value.Equal(decimal.NewFromInt(2500000))
	})).Return(&models.Lease{ID: 10, PriceRecordID: 2, Value: decimal.NewFromInt(2500000)}, nil)

	updated, err := f.service.UpdateLease(ctx, 10, leaseInput(t))

	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.PriceRecordID)
	f.leases.AssertExpectations(t)
}

func TestUpdateLease_CarriesPaymentStatus(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.withParties(ctx)
	f.leases.On("FindByID", ctx, int64(10)).Return(&models.Lease{ID: 10, PriceRecordID: 1}, nil)
	f.pricing.On("GetCurrentPrice", ctx).Return(&pricingclient.PriceSnapshot{
		ID: 1, DesignationYear: 2023, Rate: decimal.NewFromInt(4000000),
	}, nil)
	f.leases.On("Update", ctx, mock.MatchedBy(func(l *models.Lease) bool {
		return l.ID == 10 && l.PaymentStatus == models.PaymentStatusPaid
	})).Return(&models.Lease{ID: 10, PriceRecordID: 1, PaymentStatus: models.PaymentStatusPaid}, nil)

	in := leaseInput(t)
	in.PaymentStatus = models.PaymentStatusPaid
	updated, err := f.service.UpdateLease(ctx, 10, in)

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
	f.leases.AssertExpectations(t)
}

func TestUpdateLease_NotFound(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.leases.On("FindByID", ctx, int64(10)).Return(nil, nil)

	_, err := f.service.UpdateLease(ctx, 10, leaseInput(t))

	assert.ErrorIs(t, err, ErrLeaseNotFound)
	f.pricing.AssertNotCalled(t, "GetCurrentPrice", mock.Anything)
}

func TestUpdateLease_PricingServiceUnavailable(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.withParties(ctx)
	f.leases.On("FindByID", ctx, int64(10)).Return(&models.Lease{ID: 10}, nil)
	f.pricing.On("GetCurrentPrice", ctx).Return(nil, pricingclient.ErrUpstreamUnavailable)

	_, err := f.service.UpdateLease(ctx, 10, leaseInput(t))

	assert.ErrorIs(t, err, pricingclient.ErrUpstreamUnavailable)
	f.leases.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdatePayment(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.leases.On("UpdatePayment", ctx, int64(10), models.PaymentStatusPaid).
		Return(&models.Lease{ID: 10, PaymentStatus: models.PaymentStatusPaid}, nil)
	f.leases.On("UpdatePayment", ctx, int64(11), models.PaymentStatusPaid).Return(nil, nil)

	lease, err := f.service.UpdatePayment(ctx, 10, models.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, lease.PaymentStatus)

	_, err = f.service.UpdatePayment(ctx, 11, models.PaymentStatusPaid)
	assert.ErrorIs(t, err, ErrLeaseNotFound)

	_, err = f.service.UpdatePayment(ctx, 10, "refunded")
	assert.ErrorIs(t, err, ErrInvalidLease)
}

func TestDeleteLease(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.leases.On("Delete", ctx, int64(10)).Return(true, nil)
	f.leases.On("Delete", ctx, int64(11)).Return(false, nil)

	require.NoError(t, f.service.DeleteLease(ctx, 10))
	assert.ErrorIs(t, f.service.DeleteLease(ctx, 11), ErrLeaseNotFound)
}

func TestListLeases(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.leases.On("List", ctx).Return([]models.Lease{{ID: 1}, {ID: 2}}, nil)
	f.leases.On("ListByPrice", ctx, int64(3)).Return(nil, nil)

	all, err := f.service.ListLeases(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	priceID := int64(3)
	byPrice, err := f.service.ListLeases(ctx, &priceID)
	require.NoError(t, err)
	assert.NotNil(t, byPrice)
	assert.Empty(t, byPrice)
}

func TestPreviewValue(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.assets.On("FindByID", ctx, int64(1)).Return(&models.Asset{ID: 1, BillingUnits: decimal.NewFromInt(50)}, nil)
	f.pricing.On("ListHistory", ctx).Return(priceOptions(), nil)

	chosen := int64(1)
	preview, err := f.service.PreviewValue(ctx, 1, &chosen, 12)

	require.NoError(t, err)
	assert.Equal(t, int64(1), preview.PriceRecordID)
	assert.Equal(t, 2023, preview.DesignationYear)
	assert.Equal(t, "Rp 4.000.000 (Tahun 2023, Mulai 01-01-2023)", preview.PriceLabel)
	assert.Equal(t, "2000000.00", preview.Value.StringFixed(2))
	f.leases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPreviewValue_UnknownAsset(t *testing.T) {
	f := newLeaseFixture()
	ctx := context.Background()
	f.assets.On("FindByID", ctx, int64(9)).Return(nil, nil)

	_, err := f.service.PreviewValue(ctx, 9, nil, 12)

	assert.ErrorIs(t, err, ErrAssetNotFound)
}
