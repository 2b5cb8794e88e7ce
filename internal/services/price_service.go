package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricing"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/repository"
)

// PriceService owns the price table: boundary lookups plus administration.
type PriceService interface {
	// CurrentPrice resolves the price in effect today in the configured zone.
	// Returns ErrNoCurrentPrice when none applies.
	CurrentPrice(ctx context.Context) (*models.PriceRecord, error)

	// History returns every price record, newest effective start first.
	History(ctx context.Context) ([]models.PriceRecord, error)

	// ListWithUsage returns every price record with its lease count.
	ListWithUsage(ctx context.Context) ([]models.PriceUsage, error)

	// GetPrice returns ErrPriceNotFound when id is unknown.
	GetPrice(ctx context.Context, id int64) (*models.PriceRecord, error)

	// Usage reports how many leases reference the price record.
	Usage(ctx context.Context, id int64) (*models.PriceUsage, error)

	// CreatePrice validates and stores rec. Invalid input wraps
	// pricing.ErrInvalidPriceRecord.
	CreatePrice(ctx context.Context, rec models.PriceRecord) (*models.PriceRecord, error)

	// UpdatePrice edits an unreferenced price record. Returns ErrPriceInUse
	// once any lease references it.
	UpdatePrice(ctx context.Context, rec models.PriceRecord) (*models.PriceRecord, error)

	// DeletePrice removes an unreferenced price record.
	DeletePrice(ctx context.Context, id int64) error
}

type priceService struct {
	repo     repository.PriceRepository
	log      *logger.Logger
	location *time.Location
	now      func() time.Time
}

// PriceServiceOption customizes a PriceService.
type PriceServiceOption func(*priceService)

// WithClock overrides the time source used to decide "today".
func WithClock(now func() time.Time) PriceServiceOption {
	return func(s *priceService) { s.now = now }
}

// NewPriceService creates a PriceService. loc decides which calendar day
// "today" is; nil means UTC.
func NewPriceService(repo repository.PriceRepository, log *logger.Logger, loc *time.Location, opts ...PriceServiceOption) PriceService {
	if loc == nil {
		loc = time.UTC
	}
	s := &priceService{
		repo:     repo,
		log:      log,
		location: loc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *priceService) today() time.Time {
	return models.DateOf(s.now().In(s.location))
}

func (s *priceService) CurrentPrice(ctx context.Context) (*models.PriceRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to load price history", err, nil)
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}

	today := s.today()
	rec, ok := pricing.Resolve(records, today)
	if !ok {
		s.log.Info("No price in effect", map[string]interface{}{
			"date":    today.Format(models.DateLayout),
			"records": len(records),
		})
		return nil, ErrNoCurrentPrice
	}

	s.log.Debug("Resolved current price", map[string]interface{}{
		"date":     today.Format(models.DateLayout),
		"price_id": rec.ID,
	})
	return rec, nil
}

func (s *priceService) History(ctx context.Context) ([]models.PriceRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to load price history", err, nil)
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}
	return pricing.ListAll(records), nil
}

func (s *priceService) ListWithUsage(ctx context.Context) ([]models.PriceUsage, error) {
	usage, err := s.repo.ListWithUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load price usage: %w", err)
	}
	if usage == nil {
		usage = []models.PriceUsage{}
	}
	return usage, nil
}

func (s *priceService) GetPrice(ctx context.Context, id int64) (*models.PriceRecord, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load price record: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: id %d", ErrPriceNotFound, id)
	}
	return rec, nil
}

func (s *priceService) Usage(ctx context.Context, id int64) (*models.PriceUsage, error) {
	rec, err := s.GetPrice(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountLeases(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count leases: %w", err)
	}
	return &models.PriceUsage{PriceRecord: *rec, LeaseCount: count}, nil
}

func (s *priceService) CreatePrice(ctx context.Context, rec models.PriceRecord) (*models.PriceRecord, error) {
	rec.ID = 0
	if err := pricing.Validate(&rec); err != nil {
		s.log.Warn("Rejected price record", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	if err := s.repo.Create(ctx, &rec); err != nil {
		s.log.Error("Failed to create price record", err, nil)
		return nil, fmt.Errorf("failed to create price record: %w", err)
	}

	s.log.Info("Price record created", map[string]interface{}{
		"price_id":        rec.ID,
		"rate":            rec.Rate.String(),
		"effective_start": rec.EffectiveStart.Format(models.DateLayout),
	})
	return &rec, nil
}

func (s *priceService) UpdatePrice(ctx context.Context, rec models.PriceRecord) (*models.PriceRecord, error) {
	if err := pricing.Validate(&rec); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, &rec)
	if err != nil {
		if errors.Is(err, repository.ErrPriceReferenced) {
			return nil, fmt.Errorf("%w: id %d", ErrPriceInUse, rec.ID)
		}
		s.log.Error("Failed to update price record", err, map[string]interface{}{"price_id": rec.ID})
		return nil, fmt.Errorf("failed to update price record: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: id %d", ErrPriceNotFound, rec.ID)
	}

	s.log.Info("Price record updated", map[string]interface{}{"price_id": updated.ID})
	return updated, nil
}

func (s *priceService) DeletePrice(ctx context.Context, id int64) error {
	count, err := s.repo.CountLeases(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count leases: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: id %d has %d leases", ErrPriceInUse, id, count)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPriceReferenced) {
			return fmt.Errorf("%w: id %d", ErrPriceInUse, id)
		}
		return fmt.Errorf("failed to delete price record: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: id %d", ErrPriceNotFound, id)
	}

	s.log.Info("Price record deleted", map[string]interface{}{"price_id": id})
	return nil
}
