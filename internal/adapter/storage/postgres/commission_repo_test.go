package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"marketplace-settlement/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommissionRepo_GetByRestaurantID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommissionRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	maxAmount := int64(10000)
	rules, err := json.Marshal([]domain.CommissionRule{
		{Type: domain.CommissionPercentage, Value: 10, MinOrderAmount: 0, MaxOrderAmount: &maxAmount},
	})
	require.NoError(t, err)
	defaultCommission, err := json.Marshal(domain.DefaultCommission{Type: domain.CommissionPercentage, Value: 20})
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"restaurant_id", "restaurant_name", "is_active", "rules", "default_commission", "created_at", "updated_at"}).
		AddRow("rest-1", "Spice Garden", true, rules, defaultCommission, now, now)

	mock.ExpectQuery("SELECT .+ FROM commission_configs WHERE restaurant_id").
		WithArgs("rest-1").
		WillReturnRows(rows)

	cfg, err := repo.GetByRestaurantID(context.Background(), "rest-1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.True(t, cfg.IsActive)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, float64(10), cfg.Rules[0].Value)
	require.NotNil(t, cfg.DefaultCommission)
	assert.Equal(t, float64(20), cfg.DefaultCommission.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommissionRepo_GetByRestaurantID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommissionRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM commission_configs WHERE restaurant_id").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"restaurant_id", "restaurant_name", "is_active", "rules", "default_commission", "created_at", "updated_at"}))

	cfg, err := repo.GetByRestaurantID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommissionRepo_Save(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCommissionRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	cfg := &domain.CommissionConfig{
		RestaurantID:   "rest-1",
		RestaurantName: "Spice Garden",
		IsActive:       true,
		Rules: []domain.CommissionRule{
			{Type: domain.CommissionPercentage, Value: 15, MinOrderAmount: 0},
		},
		DefaultCommission: &domain.DefaultCommission{Type: domain.CommissionPercentage, Value: 20},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	mock.ExpectExec("INSERT INTO commission_configs").
		WithArgs(cfg.RestaurantID, cfg.RestaurantName, cfg.IsActive,
			pgxmock.AnyArg(), pgxmock.AnyArg(), cfg.CreatedAt, cfg.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Save(context.Background(), cfg)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
