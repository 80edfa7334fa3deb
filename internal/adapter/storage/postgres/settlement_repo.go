package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// SettlementRepo implements ports.SettlementRepository. The settlement row is
// the single source of financial truth per order; all state transitions are
// guarded UPDATEs so concurrent writers converge on one winner.
type SettlementRepo struct {
	pool Pool
}

// NewSettlementRepo creates a new SettlementRepo.
func NewSettlementRepo(pool Pool) *SettlementRepo {
	return &SettlementRepo{pool: pool}
}

const settlementColumns = `id, order_id, order_number, user_id, restaurant_id, delivery_partner_id,
	payment_subtotal, payment_discount, payment_delivery_fee, payment_platform_fee, payment_gst, payment_packaging_fee, payment_total,
	restaurant_food_price, restaurant_commission, restaurant_commission_pct, restaurant_net_earning, restaurant_status, restaurant_credited_at,
	delivery_base_payout, delivery_distance_payout, delivery_surge_amount, delivery_total_earning, delivery_status, delivery_credited_at,
	admin_commission, admin_platform_fee, admin_delivery_fee, admin_gst, admin_total_earning, admin_status, admin_credited_at,
	escrow_status, escrow_amount, escrow_held_at, escrow_released_at, escrow_refunded_at,
	settlement_status, cancellation, created_at, updated_at`

// Create inserts a new settlement record. The unique order_id index rejects a
// second hold for the same order.
func (r *SettlementRepo) Create(ctx context.Context, rec *domain.SettlementRecord) error {
	query := `INSERT INTO settlements (id, order_id, order_number, user_id, restaurant_id, delivery_partner_id,
		payment_subtotal, payment_discount, payment_delivery_fee, payment_platform_fee, payment_gst, payment_packaging_fee, payment_total,
		restaurant_food_price, restaurant_commission, restaurant_commission_pct, restaurant_net_earning, restaurant_status, restaurant_credited_at,
		delivery_base_payout, delivery_distance_payout, delivery_surge_amount, delivery_total_earning, delivery_status, delivery_credited_at,
		admin_commission, admin_platform_fee, admin_delivery_fee, admin_gst, admin_total_earning, admin_status, admin_credited_at,
		escrow_status, escrow_amount, escrow_held_at, escrow_released_at, escrow_refunded_at,
		settlement_status, cancellation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39, $40, $41)`

	cancellation, err := marshalCancellation(rec.Cancellation)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
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
	if err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}
	return nil
}

// GetByOrderID fetches the settlement record for an order. Returns (nil, nil)
// when absent.
func (r *SettlementRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.SettlementRecord, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE order_id = $1`
	return r.scanSettlement(r.pool.QueryRow(ctx, query, orderID))
}

// ClaimRelease atomically moves held/pending -> released/completed. Returns
// false when another writer already moved the record out of that state.
func (r *SettlementRepo) ClaimRelease(ctx context.Context, orderID string, at time.Time) (bool, error) {
	query := `UPDATE settlements SET escrow_status = 'released', settlement_status = 'completed',
		escrow_released_at = $2, updated_at = $2
		WHERE order_id = $1 AND escrow_status = 'held' AND settlement_status = 'pending'`

	tag, err := r.pool.Exec(ctx, query, orderID, at)
	if err != nil {
		return false, fmt.Errorf("claim settlement release: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ClaimCancellation atomically moves held/pending -> refunded/cancelled,
// writing the cancellation details and cancelling all three earnings.
func (r *SettlementRepo) ClaimCancellation(ctx context.Context, orderID string, det *domain.CancellationDetails, at time.Time) (bool, error) {
	cancellation, err := marshalCancellation(det)
	if err != nil {
		return false, err
	}

	query := `UPDATE settlements SET escrow_status = 'refunded', settlement_status = 'cancelled',
		cancellation = $2, escrow_refunded_at = $3, updated_at = $3,
		restaurant_status = 'cancelled', delivery_status = 'cancelled', admin_status = 'cancelled'
		WHERE order_id = $1 AND escrow_status = 'held' AND settlement_status = 'pending'`

	tag, err := r.pool.Exec(ctx, query, orderID, cancellation, at)
	if err != nil {
		return false, fmt.Errorf("claim settlement cancellation: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetEarningStatus updates one party's earning status. credited_at is stamped
// only when the earning becomes credited.
func (r *SettlementRepo) SetEarningStatus(ctx context.Context, orderID string, party ports.SettlementParty, status domain.EarningStatus, at time.Time) error {
	var query string
	switch party {
	case ports.PartyRestaurant:
		query = `UPDATE settlements SET restaurant_status = $2,
			restaurant_credited_at = CASE WHEN $2 = 'credited' THEN $3 ELSE restaurant_credited_at END,
			updated_at = $3 WHERE order_id = $1`
	case ports.PartyDelivery:
		query = `UPDATE settlements SET delivery_status = $2,
			delivery_credited_at = CASE WHEN $2 = 'credited' THEN $3 ELSE delivery_credited_at END,
			updated_at = $3 WHERE order_id = $1`
	case ports.PartyAdmin:
		query = `UPDATE settlements SET admin_status = $2,
			admin_credited_at = CASE WHEN $2 = 'credited' THEN $3 ELSE admin_credited_at END,
			updated_at = $3 WHERE order_id = $1`
	default:
		return fmt.Errorf("unknown settlement party: %s", party)
	}

	tag, err := r.pool.Exec(ctx, query, orderID, status, at)
	if err != nil {
		return fmt.Errorf("set earning status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("settlement not found: %s", orderID)
	}
	return nil
}

// SaveCancellationCalculation records a computed refund without moving money
// or changing escrow state.
func (r *SettlementRepo) SaveCancellationCalculation(ctx context.Context, orderID string, det *domain.CancellationDetails) error {
	cancellation, err := marshalCancellation(det)
	if err != nil {
		return err
	}

	query := `UPDATE settlements SET cancellation = $2, updated_at = $3 WHERE order_id = $1`

	tag, err := r.pool.Exec(ctx, query, orderID, cancellation, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save cancellation calculation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("settlement not found: %s", orderID)
	}
	return nil
}

// CasRefundStatus transitions the cancellation refund status only if it
// currently equals from. The guard runs inside the UPDATE so two racing
// executors cannot both win.
func (r *SettlementRepo) CasRefundStatus(ctx context.Context, orderID string, from, to domain.RefundStatus) (bool, error) {
	query := `UPDATE settlements
		SET cancellation = jsonb_set(cancellation, '{refund_status}', to_jsonb($3::text)), updated_at = $4
		WHERE order_id = $1 AND cancellation IS NOT NULL AND cancellation->>'refund_status' = $2`

	tag, err := r.pool.Exec(ctx, query, orderID, string(from), string(to), time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("cas refund status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetRefundResult records the terminal outcome of a refund execution by
// patching the cancellation document.
func (r *SettlementRepo) SetRefundResult(ctx context.Context, orderID string, status domain.RefundStatus, gatewayRefundID, failureReason *string, at time.Time) error {
	patch := map[string]any{
		"refund_status":     status,
		"gateway_refund_id": gatewayRefundID,
		"failure_reason":    failureReason,
	}
	if status == domain.RefundProcessed {
		patch["processed_at"] = at
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal refund result: %w", err)
	}

	query := `UPDATE settlements SET cancellation = cancellation || $2::jsonb, updated_at = $3
		WHERE order_id = $1 AND cancellation IS NOT NULL`

	tag, err := r.pool.Exec(ctx, query, orderID, raw, at)
	if err != nil {
		return fmt.Errorf("set refund result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("settlement cancellation not found: %s", orderID)
	}
	return nil
}

// scanSettlement is a helper to scan a single row into a SettlementRecord.
func (r *SettlementRepo) scanSettlement(row pgx.Row) (*domain.SettlementRecord, error) {
	rec := &domain.SettlementRecord{}
	var cancellation []byte
	err := row.Scan(
		&rec.ID, &rec.OrderID, &rec.OrderNumber, &rec.UserID, &rec.RestaurantID, &rec.DeliveryPartnerID,
		&rec.UserPayment.Subtotal, &rec.UserPayment.Discount, &rec.UserPayment.DeliveryFee,
		&rec.UserPayment.PlatformFee, &rec.UserPayment.GST, &rec.UserPayment.PackagingFee, &rec.UserPayment.Total,
		&rec.RestaurantEarning.FoodPrice, &rec.RestaurantEarning.Commission, &rec.RestaurantEarning.CommissionPercentage,
		&rec.RestaurantEarning.NetEarning, &rec.RestaurantEarning.Status, &rec.RestaurantEarning.CreditedAt,
		&rec.DeliveryEarning.BasePayout, &rec.DeliveryEarning.DistancePayout, &rec.DeliveryEarning.SurgeAmount,
		&rec.DeliveryEarning.TotalEarning, &rec.DeliveryEarning.Status, &rec.DeliveryEarning.CreditedAt,
		&rec.AdminEarning.Commission, &rec.AdminEarning.PlatformFee, &rec.AdminEarning.DeliveryFee,
		&rec.AdminEarning.GST, &rec.AdminEarning.TotalEarning, &rec.AdminEarning.Status, &rec.AdminEarning.CreditedAt,
		&rec.EscrowStatus, &rec.EscrowAmount, &rec.EscrowHeldAt, &rec.EscrowReleasedAt, &rec.EscrowRefundedAt,
		&rec.SettlementStatus, &cancellation, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan settlement: %w", err)
	}

	if len(cancellation) > 0 {
		det := &domain.CancellationDetails{}
		if err := json.Unmarshal(cancellation, det); err != nil {
			return nil, fmt.Errorf("unmarshal cancellation details: %w", err)
		}
		rec.Cancellation = det
	}
	return rec, nil
}

// marshalCancellation serializes cancellation details for the jsonb column; a
// nil value stores SQL NULL.
func marshalCancellation(det *domain.CancellationDetails) ([]byte, error) {
	if det == nil {
		return nil, nil
	}
	raw, err := json.Marshal(det)
	if err != nil {
		return nil, fmt.Errorf("marshal cancellation details: %w", err)
	}
	return raw, nil
}
