package domain

import "time"

// PaymentMethod is how the customer paid. wallet refunds instantly in-ledger;
// the rest go through the external gateway.
type PaymentMethod string

const (
	PaymentRazorpay PaymentMethod = "razorpay"
	PaymentUPI      PaymentMethod = "upi"
	PaymentCard     PaymentMethod = "card"
	PaymentWallet   PaymentMethod = "wallet"
	PaymentCOD      PaymentMethod = "cod"
)

// OrderStatus mirrors the order service's lifecycle, as consumed here.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderPickedUp  OrderStatus = "picked_up"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderTracking holds the milestone flags the cancellation stage derives from.
type OrderTracking struct {
	Confirmed   bool       `json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	Preparing   bool       `json:"preparing"`
	PreparingAt *time.Time `json:"preparing_at,omitempty"`
	Ready       bool       `json:"ready"`
	ReadyAt     *time.Time `json:"ready_at,omitempty"`
	PickedUp    bool       `json:"picked_up"`
	PickedUpAt  *time.Time `json:"picked_up_at,omitempty"`
}

// OrderPayment is the payment view consumed from the order service.
type OrderPayment struct {
	Method           PaymentMethod `json:"method"`
	GatewayPaymentID *string       `json:"gateway_payment_id,omitempty"`
}

// Order is the read model consumed from the order service collaborator.
// This core never owns or mutates it beyond the status transition performed
// by the auto-reject sweep.
type Order struct {
	ID                 string        `json:"id"`
	OrderNumber        string        `json:"order_number"`
	UserID             string        `json:"user_id"`
	RestaurantID       string        `json:"restaurant_id"`
	Status             OrderStatus   `json:"status"`
	Tracking           OrderTracking `json:"tracking"`
	Payment            OrderPayment  `json:"payment"`
	CancellationReason *string       `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}

// CancellationStage is the furthest milestone an order reached before being
// cancelled; it drives the refund/compensation policy. Derived from tracking
// milestones, never from wall-clock time.
type CancellationStage string

const (
	StagePreAccept         CancellationStage = "pre_accept"
	StagePostAcceptPreCook CancellationStage = "post_accept_pre_cook"
	StagePostCook          CancellationStage = "post_cook"
	StagePostPickup        CancellationStage = "post_pickup"
)

// DeriveCancellationStage maps tracking milestones to a cancellation stage.
func DeriveCancellationStage(t OrderTracking) CancellationStage {
	switch {
	case t.Ready || t.PickedUp:
		return StagePostPickup
	case t.Preparing:
		return StagePostCook
	case t.Confirmed:
		return StagePostAcceptPreCook
	default:
		return StagePreAccept
	}
}

// postCookPlatformFeeShare is the portion of the platform fee refunded when a
// cancellation lands after cooking started.
const postCookPlatformFeeShare = 50 // percent

// RefundBreakdown is the outcome of the cancellation refund policy.
type RefundBreakdown struct {
	Stage                  CancellationStage `json:"stage"`
	CustomerRefund         int64             `json:"customer_refund"`
	RestaurantCompensation int64             `json:"restaurant_compensation"`
}

// ComputeCancellationRefund is the pure policy function: cancellation stage in,
// refund and compensation amounts out. restaurantNet is the restaurant's net
// earning as priced on the settlement record.
func ComputeCancellationRefund(stage CancellationStage, p UserPayment, restaurantNet int64) RefundBreakdown {
	b := RefundBreakdown{Stage: stage}

	switch stage {
	case StagePreAccept:
		b.CustomerRefund = p.Total
	case StagePostAcceptPreCook:
		// Platform fee and its GST are retained.
		b.CustomerRefund = p.Subtotal - p.Discount + p.DeliveryFee
	case StagePostCook:
		b.CustomerRefund = p.DeliveryFee + p.PlatformFee*postCookPlatformFeeShare/100
		b.RestaurantCompensation = restaurantNet
	case StagePostPickup:
		b.CustomerRefund = 0
		b.RestaurantCompensation = restaurantNet
	}

	if b.CustomerRefund < 0 {
		b.CustomerRefund = 0
	}
	return b
}
