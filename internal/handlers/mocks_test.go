package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/middleware"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/services"
)

// newTestRouter builds a router with the production middleware chain.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	log := logger.NewWithWriter(io.Discard, "test", "debug", "test")
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	return router
}

func serve(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// MockPriceService is a mock implementation of services.PriceService.
type MockPriceService struct {
	mock.Mock
}

func (m *MockPriceService) CurrentPrice(ctx context.Context) (*models.PriceRecord, error) {
	args := m.Called(ctx)
	rec, _ := args.Get(0).(*models.PriceRecord)
	return rec, args.Error(1)
}

func (m *MockPriceService) History(ctx context.Context) ([]models.PriceRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.PriceRecord)
	return records, args.Error(1)
}

func (m *MockPriceService) ListWithUsage(ctx context.Context) ([]models.PriceUsage, error) {
	args := m.Called(ctx)
	usage, _ := args.Get(0).([]models.PriceUsage)
	return usage, args.Error(1)
}

func (m *MockPriceService) GetPrice(ctx context.Context, id int64) (*models.PriceRecord, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*models.PriceRecord)
	return rec, args.Error(1)
}

func (m *MockPriceService) Usage(ctx context.Context, id int64) (*models.PriceUsage, error) {
	args := m.Called(ctx, id)
	usage, _ := args.Get(0).(*models.PriceUsage)
	return usage, args.Error(1)
}

func (m *MockPriceService) CreatePrice(ctx context.Context, rec models.PriceRecord) (*models.PriceRecord, error) {
	args := m.Called(ctx, rec)
	created, _ := args.Get(0).(*models.PriceRecord)
	return created, args.Error(1)
}

func (m *MockPriceService) UpdatePrice(ctx context.Context, rec models.PriceRecord) (*models.PriceRecord, error) {
	args := m.Called(ctx, rec)
	updated, _ := args.Get(0).(*models.PriceRecord)
	return updated, args.Error(1)
}

func (m *MockPriceService) DeletePrice(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAssetService is a mock implementation of services.AssetService.
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) ListAssets(ctx context.Context) ([]models.Asset, error) {
	args := m.Called(ctx)
	assets, _ := args.Get(0).([]models.Asset)
	return assets, args.Error(1)
}

func (m *MockAssetService) GetAsset(ctx context.Context, id int64) (*models.Asset, error) {
	args := m.Called(ctx, id)
	asset, _ := args.Get(0).(*models.Asset)
	return asset, args.Error(1)
}

func (m *MockAssetService) CreateAsset(ctx context.Context, asset models.Asset) (*models.Asset, error) {
	args := m.Called(ctx, asset)
	created, _ := args.Get(0).(*models.Asset)
	return created, args.Error(1)
}

func (m *MockAssetService) UpdateAsset(ctx context.Context, asset models.Asset) (*models.Asset, error) {
	args := m.Called(ctx, asset)
	updated, _ := args.Get(0).(*models.Asset)
	return updated, args.Error(1)
}

func (m *MockAssetService) DeleteAsset(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTenantService is a mock implementation of services.TenantService.
type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	args := m.Called(ctx)
	tenants, _ := args.Get(0).([]models.Tenant)
	return tenants, args.Error(1)
}

func (m *MockTenantService) GetTenant(ctx context.Context, id int64) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantService) CreateTenant(ctx context.Context, tenant models.Tenant) (*models.Tenant, error) {
	args := m.Called(ctx, tenant)
	created, _ := args.Get(0).(*models.Tenant)
	return created, args.Error(1)
}

func (m *MockTenantService) UpdateTenant(ctx context.Context, tenant models.Tenant) (*models.Tenant, error) {
	args := m.Called(ctx, tenant)
	updated, _ := args.Get(0).(*models.Tenant)
	return updated, args.Error(1)
}

func (m *MockTenantService) DeleteTenant(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLeaseService is a mock implementation of services.LeaseService.
type MockLeaseService struct {
	mock.Mock
}

func (m *MockLeaseService) ListLeases(ctx context.Context, priceRecordID *int64) ([]models.Lease, error) {
	args := m.Called(ctx, priceRecordID)
	leases, _ := args.Get(0).([]models.Lease)
	return leases, args.Error(1)
}

func (m *MockLeaseService) GetLease(ctx context.Context, id int64) (*models.Lease, error) {
	args := m.Called(ctx, id)
	lease, _ := args.Get(0).(*models.Lease)
	return lease, args.Error(1)
}

func (m *MockLeaseService) CreateLease(ctx context.Context, in services.LeaseInput) (*models.Lease, error) {
	args := m.Called(ctx, in)
	lease, _ := args.Get(0).(*models.Lease)
	return lease, args.Error(1)
}

func (m *MockLeaseService) UpdateLease(ctx context.Context, id int64, in services.LeaseInput) (*models.Lease, error) {
	args := m.Called(ctx, id, in)
	lease, _ := args.Get(0).(*models.Lease)
	return lease, args.Error(1)
}

func (m *MockLeaseService) UpdatePayment(ctx context.Context, id int64, status string) (*models.Lease, error) {
	args := m.Called(ctx, id, status)
	lease, _ := args.Get(0).(*models.Lease)
	return lease, args.Error(1)
}

func (m *MockLeaseService) DeleteLease(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaseService) PreviewValue(ctx context.Context, assetID int64, priceRecordID *int64, durationMonths int) (*services.ValuationPreview, error) {
	args := m.Called(ctx, assetID, priceRecordID, durationMonths)
	preview, _ := args.Get(0).(*services.ValuationPreview)
	return preview, args.Error(1)
}

// MockDashboardService is a mock implementation of services.DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.DashboardStats)
	return stats, args.Error(1)
}
