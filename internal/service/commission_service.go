package service

import (
	"context"
	"fmt"
	"time"

	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/apperror"

	"github.com/rs/zerolog"
)

// CommissionServiceImpl implements ports.CommissionService with a
// read-through cache over the restaurant directory's commission configs.
type CommissionServiceImpl struct {
	repo     ports.CommissionRepository
	cache    ports.CommissionCache // nil = caching disabled
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewCommissionService creates a new CommissionServiceImpl.
func NewCommissionService(repo ports.CommissionRepository, cache ports.CommissionCache, cacheTTL time.Duration, log zerolog.Logger) *CommissionServiceImpl {
	return &CommissionServiceImpl{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// CalculateForOrder resolves the applicable commission rule for the
// restaurant and order amount: first matching band, else the default.
// A restaurant with no commission record at all is a configuration error.
func (s *CommissionServiceImpl) CalculateForOrder(ctx context.Context, restaurantID string, orderAmount int64) (*domain.CommissionResult, error) {
	if orderAmount < 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	cfg, err := s.GetConfig(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	ct, value, ok := cfg.Resolve(orderAmount)
	if !ok {
		return nil, apperror.ErrCommissionNotConfigured(restaurantID)
	}

	return domain.ComputeCommission(ct, value, orderAmount)
}

// GetConfig fetches the restaurant's commission config, consulting the cache
// first. A cache failure falls through to the repository.
func (s *CommissionServiceImpl) GetConfig(ctx context.Context, restaurantID string) (*domain.CommissionConfig, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, restaurantID)
		if err != nil {
			s.log.Warn().Err(err).Str("restaurant_id", restaurantID).Msg("commission cache read failed, falling through")
		}
		if cached != nil {
			return cached, nil
		}
	}

	cfg, err := s.repo.GetByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get commission config: %w", err))
	}
	if cfg == nil {
		return nil, apperror.ErrCommissionNotConfigured(restaurantID)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cfg, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("restaurant_id", restaurantID).Msg("commission cache write failed")
		}
	}

	return cfg, nil
}

// SaveConfig validates and persists a commission config, then invalidates
// the cache so stale rules can never price an order past the TTL boundary.
func (s *CommissionServiceImpl) SaveConfig(ctx context.Context, cfg *domain.CommissionConfig) error {
	if cfg == nil || cfg.RestaurantID == "" {
		return apperror.Validation("restaurant id is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	if err := s.repo.Save(ctx, cfg); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("save commission config: %w", err))
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, cfg.RestaurantID); err != nil {
			s.log.Warn().Err(err).Str("restaurant_id", cfg.RestaurantID).Msg("commission cache invalidation failed")
		}
	}

	s.log.Info().
		Str("restaurant_id", cfg.RestaurantID).
		Int("rules", len(cfg.Rules)).
		Msg("commission config saved")

	return nil
}
