package domain

import (
	"time"

	"github.com/google/uuid"
)

// EscrowStatus tracks where the customer's money sits for one order.
// held -> released and held -> refunded are the only transitions; both are terminal.
type EscrowStatus string

const (
	EscrowHeld     EscrowStatus = "held"
	EscrowReleased EscrowStatus = "released"
	EscrowRefunded EscrowStatus = "refunded"
)

// SettlementStatus is the overall settlement lifecycle: pending -> completed
// or pending -> cancelled, terminal once set.
type SettlementStatus string

const (
	SettlementPending   SettlementStatus = "pending"
	SettlementCompleted SettlementStatus = "completed"
	SettlementCancelled SettlementStatus = "cancelled"
)

// EarningStatus tracks one party's share of a settlement.
type EarningStatus string

const (
	EarningPending   EarningStatus = "pending"
	EarningCredited  EarningStatus = "credited"
	EarningCancelled EarningStatus = "cancelled"
)

// RefundStatus tracks the customer refund inside cancellation details.
type RefundStatus string

const (
	RefundPending   RefundStatus = "pending"
	RefundInitiated RefundStatus = "initiated"
	RefundProcessed RefundStatus = "processed"
	RefundFailed    RefundStatus = "failed"
)

// UserPayment is the customer-facing price breakdown, immutable once the
// order is priced.
type UserPayment struct {
	Subtotal     int64 `json:"subtotal"`
	Discount     int64 `json:"discount"`
	DeliveryFee  int64 `json:"delivery_fee"`
	PlatformFee  int64 `json:"platform_fee"`
	GST          int64 `json:"gst"`
	PackagingFee int64 `json:"packaging_fee"`
	Total        int64 `json:"total"`
}

// RestaurantEarning is the restaurant's share: food price minus commission.
type RestaurantEarning struct {
	FoodPrice            int64         `json:"food_price"`
	Commission           int64         `json:"commission"`
	CommissionPercentage float64       `json:"commission_percentage"`
	NetEarning           int64         `json:"net_earning"`
	Status               EarningStatus `json:"status"`
	CreditedAt           *time.Time    `json:"credited_at,omitempty"`
}

// DeliveryEarning is the delivery partner's share.
type DeliveryEarning struct {
	BasePayout     int64         `json:"base_payout"`
	DistancePayout int64         `json:"distance_payout"`
	SurgeAmount    int64         `json:"surge_amount"`
	TotalEarning   int64         `json:"total_earning"`
	Status         EarningStatus `json:"status"`
	CreditedAt     *time.Time    `json:"credited_at,omitempty"`
}

// AdminEarning is the platform's share, broken down by source.
type AdminEarning struct {
	Commission   int64         `json:"commission"`
	PlatformFee  int64         `json:"platform_fee"`
	DeliveryFee  int64         `json:"delivery_fee"`
	GST          int64         `json:"gst"`
	TotalEarning int64         `json:"total_earning"`
	Status       EarningStatus `json:"status"`
	CreditedAt   *time.Time    `json:"credited_at,omitempty"`
}

// CancellationDetails records the computed refund/compensation for a
// cancelled order, written before any money moves so an admin can review.
type CancellationDetails struct {
	Cancelled              bool              `json:"cancelled"`
	Stage                  CancellationStage `json:"stage"`
	Reason                 string            `json:"reason"`
	RefundAmount           int64             `json:"refund_amount"`
	RestaurantCompensation int64             `json:"restaurant_compensation"`
	RefundStatus           RefundStatus      `json:"refund_status"`
	GatewayRefundID        *string           `json:"gateway_refund_id,omitempty"`
	FailureReason          *string           `json:"failure_reason,omitempty"`
	CalculatedAt           *time.Time        `json:"calculated_at,omitempty"`
	ProcessedAt            *time.Time        `json:"processed_at,omitempty"`
}

// SettlementRecord owns the financial truth for one order. It is created
// lazily the first time money for the order is touched and mutated exactly
// once along either the release path or the cancel path.
type SettlementRecord struct {
	ID          uuid.UUID `json:"id"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`

	RestaurantID      string  `json:"restaurant_id"`
	DeliveryPartnerID *string `json:"delivery_partner_id,omitempty"`

	UserPayment       UserPayment       `json:"user_payment"`
	RestaurantEarning RestaurantEarning `json:"restaurant_earning"`
	DeliveryEarning   DeliveryEarning   `json:"delivery_earning"`
	AdminEarning      AdminEarning      `json:"admin_earning"`

	EscrowStatus     EscrowStatus `json:"escrow_status"`
	EscrowAmount     int64        `json:"escrow_amount"`
	EscrowHeldAt     *time.Time   `json:"escrow_held_at,omitempty"`
	EscrowReleasedAt *time.Time   `json:"escrow_released_at,omitempty"`
	EscrowRefundedAt *time.Time   `json:"escrow_refunded_at,omitempty"`

	SettlementStatus SettlementStatus     `json:"settlement_status"`
	Cancellation     *CancellationDetails `json:"cancellation,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTerminal reports whether the settlement reached a final state.
func (s *SettlementRecord) IsTerminal() bool {
	return s.SettlementStatus == SettlementCompleted || s.SettlementStatus == SettlementCancelled
}

// CanRelease reports whether the normal release path is still open.
func (s *SettlementRecord) CanRelease() bool {
	return s.EscrowStatus == EscrowHeld && s.SettlementStatus == SettlementPending
}

// CanCancel reports whether the cancellation path is still open.
func (s *SettlementRecord) CanCancel() bool {
	return s.EscrowStatus == EscrowHeld && s.SettlementStatus == SettlementPending
}

// CreditedTotal sums what was actually credited to the three parties.
// On a fully released settlement this must equal the escrow amount
// (money conservation).
func (s *SettlementRecord) CreditedTotal() int64 {
	var total int64
	if s.RestaurantEarning.Status == EarningCredited {
		total += s.RestaurantEarning.NetEarning
	}
	if s.DeliveryEarning.Status == EarningCredited {
		total += s.DeliveryEarning.TotalEarning
	}
	if s.AdminEarning.Status == EarningCredited {
		total += s.AdminEarning.TotalEarning
	}
	return total
}
