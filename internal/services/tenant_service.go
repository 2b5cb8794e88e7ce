package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/repository"
)

// TenantService manages tenants.
type TenantService interface {
	ListTenants(ctx context.Context) ([]models.Tenant, error)
	GetTenant(ctx context.Context, id int64) (*models.Tenant, error)
	CreateTenant(ctx context.Context, tenant models.Tenant) (*models.Tenant, error)
	UpdateTenant(ctx context.Context, tenant models.Tenant) (*models.Tenant, error)
	DeleteTenant(ctx context.Context, id int64) error
}

type tenantService struct {
	repo repository.TenantRepository
	log  *logger.Logger
}

// NewTenantService creates a new instance of TenantService.
func NewTenantService(repo repository.TenantRepository, log *logger.Logger) TenantService {
	return &tenantService{repo: repo, log: log}
}

func (s *tenantService) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	tenants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	if tenants == nil {
		tenants = []models.Tenant{}
	}
	return tenants, nil
}

func (s *tenantService) GetTenant(ctx context.Context, id int64) (*models.Tenant, error) {
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: id %d", ErrTenantNotFound, id)
	}
	return tenant, nil
}

func (s *tenantService) CreateTenant(ctx context.Context, tenant models.Tenant) (*models.Tenant, error) {
	tenant.ID = 0
	tenant.FullName = strings.TrimSpace(tenant.FullName)
	tenant.NationalID = strings.TrimSpace(tenant.NationalID)

	if err := s.repo.Create(ctx, &tenant); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("%w: national ID %q is already registered", ErrDuplicate, tenant.NationalID)
		}
		s.log.Error("Failed to create tenant", err, nil)
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	s.log.Info("Tenant created", map[string]interface{}{"tenant_id": tenant.ID})
	return &tenant, nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, tenant models.Tenant) (*models.Tenant, error) {
	tenant.FullName = strings.TrimSpace(tenant.FullName)
	tenant.NationalID = strings.TrimSpace(tenant.NationalID)

	updated, err := s.repo.Update(ctx, &tenant)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("%w: national ID %q is already registered", ErrDuplicate, tenant.NationalID)
		}
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: id %d", ErrTenantNotFound, tenant.ID)
	}
	return updated, nil
}

func (s *tenantService) DeleteTenant(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: id %d", ErrTenantNotFound, id)
	}
	s.log.Info("Tenant deleted", map[string]interface{}{"tenant_id": id})
	return nil
}
