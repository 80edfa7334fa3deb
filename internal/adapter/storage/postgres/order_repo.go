package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// OrderRepo implements ports.OrderRepository over the order read model.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `id, order_number, user_id, restaurant_id, status,
	confirmed, confirmed_at, preparing, preparing_at, ready, ready_at, picked_up, picked_up_at,
	payment_method, gateway_payment_id, cancellation_reason, created_at`

// GetByID fetches an order by id. Returns (nil, nil) when absent.
func (r *OrderRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrder(r.pool.QueryRow(ctx, query, orderID))
}

// ListUnactioned returns orders still pending/confirmed created before cutoff,
// oldest first so the sweep drains the longest-waiting orders first.
func (r *OrderRepo) ListUnactioned(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE status IN ('pending', 'confirmed') AND created_at < $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list unactioned orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o := domain.Order{}
		err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.UserID, &o.RestaurantID, &o.Status,
			&o.Tracking.Confirmed, &o.Tracking.ConfirmedAt, &o.Tracking.Preparing, &o.Tracking.PreparingAt,
			&o.Tracking.Ready, &o.Tracking.ReadyAt, &o.Tracking.PickedUp, &o.Tracking.PickedUpAt,
			&o.Payment.Method, &o.Payment.GatewayPaymentID, &o.CancellationReason, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

// CancelIfUnactioned cancels the order only if it is still pending/confirmed.
// The status guard runs inside the UPDATE, so a racing accept makes this a
// no-op and the method reports false.
func (r *OrderRepo) CancelIfUnactioned(ctx context.Context, orderID string, reason string) (bool, error) {
	query := `UPDATE orders SET status = 'cancelled', cancellation_reason = $2
		WHERE id = $1 AND status IN ('pending', 'confirmed')`

	tag, err := r.pool.Exec(ctx, query, orderID, reason)
	if err != nil {
		return false, fmt.Errorf("cancel unactioned order: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// scanOrder is a helper to scan a single row into an Order.
func (r *OrderRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.RestaurantID, &o.Status,
		&o.Tracking.Confirmed, &o.Tracking.ConfirmedAt, &o.Tracking.Preparing, &o.Tracking.PreparingAt,
		&o.Tracking.Ready, &o.Tracking.ReadyAt, &o.Tracking.PickedUp, &o.Tracking.PickedUpAt,
		&o.Payment.Method, &o.Payment.GatewayPaymentID, &o.CancellationReason, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return o, nil
}
