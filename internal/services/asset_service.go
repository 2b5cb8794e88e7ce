package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/repository"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/valuation"
)

// AssetService manages leasable parcels. Billing units are derived from the
// surveyed area here and nowhere else.
type AssetService interface {
	ListAssets(ctx context.Context) ([]models.Asset, error)
	GetAsset(ctx context.Context, id int64) (*models.Asset, error)
	CreateAsset(ctx context.Context, asset models.Asset) (*models.Asset, error)
	UpdateAsset(ctx context.Context, asset models.Asset) (*models.Asset, error)
	DeleteAsset(ctx context.Context, id int64) error
}

type assetService struct {
	repo repository.AssetRepository
	log  *logger.Logger
}

// NewAssetService creates a new instance of AssetService.
func NewAssetService(repo repository.AssetRepository, log *logger.Logger) AssetService {
	return &assetService{repo: repo, log: log}
}

func (s *assetService) ListAssets(ctx context.Context) ([]models.Asset, error) {
	assets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

func (s *assetService) GetAsset(ctx context.Context, id int64) (*models.Asset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: id %d", ErrAssetNotFound, id)
	}
	return asset, nil
}

// prepare normalizes text fields and derives billing units from the area.
func (s *assetService) prepare(asset *models.Asset) error {
	asset.Name = strings.TrimSpace(asset.Name)
	asset.CertificateNumber = strings.TrimSpace(asset.CertificateNumber)
	if asset.Name == "" || asset.CertificateNumber == "" {
		return fmt.Errorf("%w: name and certificate number are required", ErrInvalidAsset)
	}

	units, err := valuation.BillingUnits(asset.AreaM2)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAsset, err)
	}
	asset.BillingUnits = units
	return nil
}

func (s *assetService) CreateAsset(ctx context.Context, asset models.Asset) (*models.Asset, error) {
	asset.ID = 0
	if err := s.prepare(&asset); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &asset); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("%w: certificate number %q is already registered", ErrDuplicate, asset.CertificateNumber)
		}
		s.log.Error("Failed to create asset", err, nil)
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	s.log.Info("Asset created", map[string]interface{}{
		"asset_id":      asset.ID,
		"area_m2":       asset.AreaM2.String(),
		"billing_units": asset.BillingUnits.String(),
	})
	return &asset, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, asset models.Asset) (*models.Asset, error) {
	if err := s.prepare(&asset); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, &asset)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, fmt.Errorf("%w: certificate number %q is already registered", ErrDuplicate, asset.CertificateNumber)
		}
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: id %d", ErrAssetNotFound, asset.ID)
	}
	return updated, nil
}

func (s *assetService) DeleteAsset(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: id %d", ErrAssetNotFound, id)
	}
	s.log.Info("Asset deleted", map[string]interface{}{"asset_id": id})
	return nil
}
