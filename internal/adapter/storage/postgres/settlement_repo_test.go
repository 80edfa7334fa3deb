package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettlement(orderID string) *domain.SettlementRecord {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.SettlementRecord{
		ID:           uuid.New(),
		OrderID:      orderID,
		OrderNumber:  "ORD-1001",
		UserID:       "user-1",
		RestaurantID: "rest-1",
		UserPayment: domain.UserPayment{
			Subtotal: 20000, Discount: 1000, DeliveryFee: 3000,
			PlatformFee: 1000, GST: 500, Total: 23500,
		},
		RestaurantEarning: domain.RestaurantEarning{
			FoodPrice: 20000, Commission: 3000, CommissionPercentage: 15,
			NetEarning: 17000, Status: domain.EarningPending,
		},
		DeliveryEarning: domain.DeliveryEarning{
			BasePayout: 2000, DistancePayout: 500, TotalEarning: 2500,
			Status: domain.EarningPending,
		},
		AdminEarning: domain.AdminEarning{
			Commission: 3000, PlatformFee: 1000, DeliveryFee: 500, GST: 500,
			TotalEarning: 5000, Status: domain.EarningPending,
		},
		EscrowStatus:     domain.EscrowHeld,
		EscrowAmount:     23500,
		EscrowHeldAt:     &now,
		SettlementStatus: domain.SettlementPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func settlementTestColumns() []string {
	return []string{"id", "order_id", "order_number", "user_id", "restaurant_id", "delivery_partner_id",
		"payment_subtotal", "payment_discount", "payment_delivery_fee", "payment_platform_fee",
		"payment_gst", "payment_packaging_fee", "payment_total",
		"restaurant_food_price", "restaurant_commission", "restaurant_commission_pct",
		"restaurant_net_earning", "restaurant_status", "restaurant_credited_at",
		"delivery_base_payout", "delivery_distance_payout", "delivery_surge_amount",
		"delivery_total_earning", "delivery_status", "delivery_credited_at",
		"admin_commission", "admin_platform_fee", "admin_delivery_fee", "admin_gst",
		"admin_total_earning", "admin_status", "admin_credited_at",
		"escrow_status", "escrow_amount", "escrow_held_at", "escrow_released_at", "escrow_refunded_at",
		"settlement_status", "cancellation", "created_at", "updated_at"}
}

func settlementRow(t *testing.T, rec *domain.SettlementRecord) *pgxmock.Rows {
	t.Helper()
	var cancellation []byte
	if rec.Cancellation != nil {
		raw, err := json.Marshal(rec.Cancellation)
		require.NoError(t, err)
		cancellation = raw
	}
	return pgxmock.NewRows(settlementTestColumns()).AddRow(
		rec.ID, rec.OrderID, rec.OrderNumber, rec.UserID, rec.RestaurantID, rec.DeliveryPartnerID,
		rec.UserPayment.Subtotal, rec.UserPayment.Discount, rec.UserPayment.DeliveryFee,
		rec.UserPayment.PlatformFee, rec.UserPayment.GST, rec.UserPayment.PackagingFee, rec.UserPayment.Total,
		rec.RestaurantEarning.FoodPrice, rec.RestaurantEarning.Commission, rec.RestaurantEarning.CommissionPercentage,
		rec.RestaurantEarning.NetEarning, rec.RestaurantEarning.Status, rec.RestaurantEarning.CreditedAt,
		rec.DeliveryEarning.BasePayout, rec.DeliveryEarning.DistancePayout, rec.DeliveryEarning.SurgeAmount,
		rec.DeliveryEarning.TotalEarning, rec.DeliveryEarning.Status, rec.DeliveryEarning.CreditedAt,
		rec.AdminEarning.Commission, rec.AdminEarning.PlatformFee, rec.AdminEarning.DeliveryFee,
		rec.AdminEarning.GST, rec.AdminEarning.TotalEarning, rec.AdminEarning.Status, rec.AdminEarning.CreditedAt,
		rec.EscrowStatus, rec.EscrowAmount, rec.EscrowHeldAt, rec.EscrowReleasedAt, rec.EscrowRefundedAt,
		rec.SettlementStatus, cancellation, rec.CreatedAt, rec.UpdatedAt,
	)
}

func TestSettlementRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)
	rec := newTestSettlement("order-1")

	mock.ExpectExec("INSERT INTO settlements").
		WithArgs(rec.ID, rec.OrderID, rec.OrderNumber, rec.UserID, rec.RestaurantID, rec.DeliveryPartnerID,
			rec.UserPayment.Subtotal, rec.UserPayment.Discount, rec.UserPayment.DeliveryFee,
			rec.UserPayment.PlatformFee, rec.UserPayment.GST, rec.UserPayment.PackagingFee, rec.UserPayment.Total,
			rec.RestaurantEarning.FoodPrice, rec.RestaurantEarning.Commission, rec.RestaurantEarning.CommissionPercentage,
			rec.RestaurantEarning.NetEarning, rec.RestaurantEarning.Status, rec.RestaurantEarning.CreditedAt,
			rec.DeliveryEarning.BasePayout, rec.DeliveryEarning.DistancePayout, rec.DeliveryEarning.SurgeAmount,
			rec.DeliveryEarning.TotalEarning, rec.DeliveryEarning.Status, rec.DeliveryEarning.CreditedAt,
			rec.AdminEarning.Commission, rec.AdminEarning.PlatformFee, rec.AdminEarning.DeliveryFee,
			rec.AdminEarning.GST, rec.AdminEarning.TotalEarning, rec.AdminEarning.Status, rec.AdminEarning.CreditedAt,
			rec.EscrowStatus, rec.EscrowAmount, rec.EscrowHeldAt, rec.EscrowReleasedAt, rec.EscrowRefundedAt,
			rec.SettlementStatus, []byte(nil), rec.CreatedAt, rec.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), rec)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_GetByOrderID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)
	rec := newTestSettlement("order-1")

	mock.ExpectQuery("SELECT .+ FROM settlements WHERE order_id").
		WithArgs(rec.OrderID).
		WillReturnRows(settlementRow(t, rec))

	result, err := repo.GetByOrderID(context.Background(), rec.OrderID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, rec.ID, result.ID)
	assert.Equal(t, rec.RestaurantEarning.NetEarning, result.RestaurantEarning.NetEarning)
	assert.Nil(t, result.Cancellation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_GetByOrderID_WithCancellation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)
	rec := newTestSettlement("order-1")
	now := time.Now().UTC().Truncate(time.Microsecond)
	rec.Cancellation = &domain.CancellationDetails{
		Cancelled:    true,
		Stage:        domain.StagePreAccept,
		Reason:       "customer request",
		RefundAmount: 23500,
		RefundStatus: domain.RefundPending,
		CalculatedAt: &now,
	}

	mock.ExpectQuery("SELECT .+ FROM settlements WHERE order_id").
		WithArgs(rec.OrderID).
		WillReturnRows(settlementRow(t, rec))

	result, err := repo.GetByOrderID(context.Background(), rec.OrderID)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.Cancellation)
	assert.Equal(t, domain.StagePreAccept, result.Cancellation.Stage)
	assert.Equal(t, int64(23500), result.Cancellation.RefundAmount)
	assert.Equal(t, domain.RefundPending, result.Cancellation.RefundStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_GetByOrderID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM settlements WHERE order_id").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(settlementTestColumns()))

	result, err := repo.GetByOrderID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_ClaimRelease(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE settlements SET escrow_status = 'released'").
		WithArgs("order-1", at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	won, err := repo.ClaimRelease(context.Background(), "order-1", at)
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_ClaimRelease_AlreadyMoved(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE settlements SET escrow_status = 'released'").
		WithArgs("order-1", at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	won, err := repo.ClaimRelease(context.Background(), "order-1", at)
	require.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_ClaimCancellation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)
	at := time.Now().UTC()
	det := &domain.CancellationDetails{
		Cancelled:    true,
		Stage:        domain.StagePostAcceptPreCook,
		Reason:       "customer request",
		RefundAmount: 22000,
		RefundStatus: domain.RefundPending,
	}
	raw, err := json.Marshal(det)
	require.NoError(t, err)

	mock.ExpectExec("UPDATE settlements SET escrow_status = 'refunded'").
		WithArgs("order-1", raw, at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	won, err := repo.ClaimCancellation(context.Background(), "order-1", det, at)
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_SetEarningStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE settlements SET restaurant_status").
		WithArgs("order-1", domain.EarningCredited, at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.SetEarningStatus(context.Background(), "order-1", ports.PartyRestaurant, domain.EarningCredited, at)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_SetEarningStatus_UnknownParty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)

	err = repo.SetEarningStatus(context.Background(), "order-1", ports.SettlementParty("courier"), domain.EarningCredited, time.Now().UTC())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown settlement party")
}

func TestSettlementRepo_CasRefundStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)

	mock.ExpectExec("UPDATE settlements").
		WithArgs("order-1", string(domain.RefundPending), string(domain.RefundInitiated), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	won, err := repo.CasRefundStatus(context.Background(), "order-1", domain.RefundPending, domain.RefundInitiated)
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_CasRefundStatus_Lost(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)

	mock.ExpectExec("UPDATE settlements").
		WithArgs("order-1", string(domain.RefundPending), string(domain.RefundInitiated), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	won, err := repo.CasRefundStatus(context.Background(), "order-1", domain.RefundPending, domain.RefundInitiated)
	require.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_SetRefundResult(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)
	at := time.Now().UTC()
	refundID := "rfnd_42"

	mock.ExpectExec("UPDATE settlements SET cancellation").
		WithArgs("order-1", pgxmock.AnyArg(), at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.SetRefundResult(context.Background(), "order-1", domain.RefundProcessed, &refundID, nil, at)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementRepo_SetRefundResult_NoCancellation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettlementRepo(mock)
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE settlements SET cancellation").
		WithArgs("order-1", pgxmock.AnyArg(), at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.SetRefundResult(context.Background(), "order-1", domain.RefundFailed, nil, nil, at)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "settlement cancellation not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
