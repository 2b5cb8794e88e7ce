package services

import (
	"context"
	"io"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingclient"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "debug", "test")
}

// MockPriceRepository is a mock implementation of repository.PriceRepository.
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) List(ctx context.Context) ([]models.PriceRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.PriceRecord)
	return records, args.Error(1)
}

func (m *MockPriceRepository) ListWithUsage(ctx context.Context) ([]models.PriceUsage, error) {
	args := m.Called(ctx)
	usage, _ := args.Get(0).([]models.PriceUsage)
	return usage, args.Error(1)
}

func (m *MockPriceRepository) FindByID(ctx context.Context, id int64) (*models.PriceRecord, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*models.PriceRecord)
	return rec, args.Error(1)
}

func (m *MockPriceRepository) CountLeases(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPriceRepository) Create(ctx context.Context, rec *models.PriceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockPriceRepository) Update(ctx context.Context, rec *models.PriceRecord) (*models.PriceRecord, error) {
	args := m.Called(ctx, rec)
	updated, _ := args.Get(0).(*models.PriceRecord)
	return updated, args.Error(1)
}

func (m *MockPriceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAssetRepository is a mock implementation of repository.AssetRepository.
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) List(ctx context.Context) ([]models.Asset, error) {
	args := m.Called(ctx)
	assets, _ := args.Get(0).([]models.Asset)
	return assets, args.Error(1)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id int64) (*models.Asset, error) {
	args := m.Called(ctx, id)
	asset, _ := args.Get(0).(*models.Asset)
	return asset, args.Error(1)
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	args := m.Called(ctx, asset)
	updated, _ := args.Get(0).(*models.Asset)
	return updated, args.Error(1)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTenantRepository is a mock implementation of repository.TenantRepository.
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) List(ctx context.Context) ([]models.Tenant, error) {
	args := m.Called(ctx)
	tenants, _ := args.Get(0).([]models.Tenant)
	return tenants, args.Error(1)
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id int64) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	args := m.Called(ctx, tenant)
	updated, _ := args.Get(0).(*models.Tenant)
	return updated, args.Error(1)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockLeaseRepository is a mock implementation of repository.LeaseRepository.
type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) List(ctx context.Context) ([]models.Lease, error) {
	args := m.Called(ctx)
	leases, _ := args.Get(0).([]models.Lease)
	return leases, args.Error(1)
}

func (m *MockLeaseRepository) ListByPrice(ctx context.Context, priceRecordID int64) ([]models.Lease, error) {
	args := m.Called(ctx, priceRecordID)
	leases, _ := args.Get(0).([]models.Lease)
	return leases, args.Error(1)
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id int64) (*models.Lease, error) {
	args := m.Called(ctx, id)
	lease, _ := args.Get(0).(*models.Lease)
	return lease, args.Error(1)
}

func (m *MockLeaseRepository) Create(ctx context.Context, lease *models.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) Update(ctx context.Context, lease *models.Lease) (*models.Lease, error) {
	args := m.Called(ctx, lease)
	updated, _ := args.Get(0).(*models.Lease)
	return updated, args.Error(1)
}

func (m *MockLeaseRepository) UpdatePayment(ctx context.Context, id int64, status string) (*models.Lease, error) {
	args := m.Called(ctx, id, status)
	lease, _ := args.Get(0).(*models.Lease)
	return lease, args.Error(1)
}

func (m *MockLeaseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockDashboardRepository is a mock implementation of repository.DashboardRepository.
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.DashboardStats)
	return stats, args.Error(1)
}

// MockPricingClient is a mock implementation of PricingClient.
type MockPricingClient struct {
	mock.Mock
}

func (m *MockPricingClient) GetCurrentPrice(ctx context.Context) (*pricingclient.PriceSnapshot, error) {
	args := m.Called(ctx)
	price, _ := args.Get(0).(*pricingclient.PriceSnapshot)
	return price, args.Error(1)
}

func (m *MockPricingClient) ListHistory(ctx context.Context) ([]pricingclient.PriceOption, error) {
	args := m.Called(ctx)
	options, _ := args.Get(0).([]pricingclient.PriceOption)
	return options, args.Error(1)
}
