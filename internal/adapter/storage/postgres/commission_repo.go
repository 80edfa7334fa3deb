package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"marketplace-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CommissionRepo implements ports.CommissionRepository. The tiered rules and
// the default commission are stored as jsonb documents.
type CommissionRepo struct {
	pool Pool
}

// NewCommissionRepo creates a new CommissionRepo.
func NewCommissionRepo(pool Pool) *CommissionRepo {
	return &CommissionRepo{pool: pool}
}

// GetByRestaurantID fetches a restaurant's commission config. Returns
// (nil, nil) when absent.
func (r *CommissionRepo) GetByRestaurantID(ctx context.Context, restaurantID string) (*domain.CommissionConfig, error) {
	query := `SELECT restaurant_id, restaurant_name, is_active, rules, default_commission, created_at, updated_at
		FROM commission_configs WHERE restaurant_id = $1`

	cfg := &domain.CommissionConfig{}
	var rules, defaultCommission []byte
	err := r.pool.QueryRow(ctx, query, restaurantID).Scan(
		&cfg.RestaurantID, &cfg.RestaurantName, &cfg.IsActive,
		&rules, &defaultCommission, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan commission config: %w", err)
	}

	if len(rules) > 0 {
		if err := json.Unmarshal(rules, &cfg.Rules); err != nil {
			return nil, fmt.Errorf("unmarshal commission rules: %w", err)
		}
	}
	if len(defaultCommission) > 0 {
		if err := json.Unmarshal(defaultCommission, &cfg.DefaultCommission); err != nil {
			return nil, fmt.Errorf("unmarshal default commission: %w", err)
		}
	}
	return cfg, nil
}

// Save upserts a restaurant's commission config.
func (r *CommissionRepo) Save(ctx context.Context, cfg *domain.CommissionConfig) error {
	rules, err := json.Marshal(cfg.Rules)
	if err != nil {
		return fmt.Errorf("marshal commission rules: %w", err)
	}
	var defaultCommission []byte
	if cfg.DefaultCommission != nil {
		defaultCommission, err = json.Marshal(cfg.DefaultCommission)
		if err != nil {
			return fmt.Errorf("marshal default commission: %w", err)
		}
	}

	query := `INSERT INTO commission_configs (restaurant_id, restaurant_name, is_active, rules, default_commission, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (restaurant_id) DO UPDATE SET
			restaurant_name = EXCLUDED.restaurant_name,
			is_active = EXCLUDED.is_active,
			rules = EXCLUDED.rules,
			default_commission = EXCLUDED.default_commission,
			updated_at = EXCLUDED.updated_at`

	_, err = r.pool.Exec(ctx, query,
		cfg.RestaurantID, cfg.RestaurantName, cfg.IsActive,
		rules, defaultCommission, cfg.CreatedAt, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save commission config: %w", err)
	}
	return nil
}
