package dto

import (
	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"
)

// PaymentBreakdown mirrors domain.UserPayment at the boundary.
type PaymentBreakdown struct {
	Subtotal     int64 `json:"subtotal" binding:"min=0"`
	Discount     int64 `json:"discount" binding:"min=0"`
	DeliveryFee  int64 `json:"delivery_fee" binding:"min=0"`
	PlatformFee  int64 `json:"platform_fee" binding:"min=0"`
	GST          int64 `json:"gst" binding:"min=0"`
	PackagingFee int64 `json:"packaging_fee" binding:"min=0"`
	Total        int64 `json:"total" binding:"required,gt=0"`
}

// DeliveryPayout mirrors ports.DeliveryPayout at the boundary.
type DeliveryPayout struct {
	BasePayout     int64 `json:"base_payout" binding:"min=0"`
	DistancePayout int64 `json:"distance_payout" binding:"min=0"`
	SurgeAmount    int64 `json:"surge_amount" binding:"min=0"`
}

// HoldEscrowRequest is the request body for placing order funds in escrow.
type HoldEscrowRequest struct {
	OrderID           string           `json:"order_id" binding:"required,max=64"`
	OrderNumber       string           `json:"order_number" binding:"required,max=64"`
	UserID            string           `json:"user_id" binding:"required,max=64"`
	RestaurantID      string           `json:"restaurant_id" binding:"required,max=64"`
	DeliveryPartnerID *string          `json:"delivery_partner_id,omitempty"`
	Payment           PaymentBreakdown `json:"payment" binding:"required"`
	Delivery          DeliveryPayout   `json:"delivery"`
}

// ToPort converts the request into the service-layer type.
func (r HoldEscrowRequest) ToPort() ports.HoldEscrowRequest {
	return ports.HoldEscrowRequest{
		OrderID:           r.OrderID,
		OrderNumber:       r.OrderNumber,
		UserID:            r.UserID,
		RestaurantID:      r.RestaurantID,
		DeliveryPartnerID: r.DeliveryPartnerID,
		Payment: domain.UserPayment{
			Subtotal:     r.Payment.Subtotal,
			Discount:     r.Payment.Discount,
			DeliveryFee:  r.Payment.DeliveryFee,
			PlatformFee:  r.Payment.PlatformFee,
			GST:          r.Payment.GST,
			PackagingFee: r.Payment.PackagingFee,
			Total:        r.Payment.Total,
		},
		Delivery: ports.DeliveryPayout{
			BasePayout:     r.Delivery.BasePayout,
			DistancePayout: r.Delivery.DistancePayout,
			SurgeAmount:    r.Delivery.SurgeAmount,
		},
	}
}

// RefundRequest is the request body for calculating or processing a
// cancellation refund.
type RefundRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// CommissionRule mirrors one commission band at the boundary.
type CommissionRule struct {
	Type           string  `json:"type" binding:"required,oneof=percentage amount"`
	Value          float64 `json:"value" binding:"min=0"`
	MinOrderAmount int64   `json:"min_order_amount" binding:"min=0"`
	MaxOrderAmount *int64  `json:"max_order_amount,omitempty"`
}

// DefaultCommission mirrors the fallback commission at the boundary.
type DefaultCommission struct {
	Type  string  `json:"type" binding:"required,oneof=percentage amount"`
	Value float64 `json:"value" binding:"min=0"`
}

// CommissionConfigRequest is the request body for saving a restaurant's
// commission configuration.
type CommissionConfigRequest struct {
	RestaurantID      string             `json:"restaurant_id" binding:"required,max=64"`
	RestaurantName    string             `json:"restaurant_name" binding:"required,max=100"`
	IsActive          bool               `json:"is_active"`
	Rules             []CommissionRule   `json:"rules" binding:"dive"`
	DefaultCommission *DefaultCommission `json:"default_commission,omitempty"`
}

// ToDomain converts the request into a domain config; write-time validation
// happens in the domain, not here.
func (r CommissionConfigRequest) ToDomain() *domain.CommissionConfig {
	cfg := &domain.CommissionConfig{
		RestaurantID:   r.RestaurantID,
		RestaurantName: r.RestaurantName,
		IsActive:       r.IsActive,
	}
	for _, rule := range r.Rules {
		cfg.Rules = append(cfg.Rules, domain.CommissionRule{
			Type:           domain.CommissionType(rule.Type),
			Value:          rule.Value,
			MinOrderAmount: rule.MinOrderAmount,
			MaxOrderAmount: rule.MaxOrderAmount,
		})
	}
	if r.DefaultCommission != nil {
		cfg.DefaultCommission = &domain.DefaultCommission{
			Type:  domain.CommissionType(r.DefaultCommission.Type),
			Value: r.DefaultCommission.Value,
		}
	}
	return cfg
}

// CalculateCommissionRequest is the request body for a commission preview.
type CalculateCommissionRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required,max=64"`
	OrderAmount  int64  `json:"order_amount" binding:"required,gt=0"`
}

// WalletBalanceResponse is the response for a balance query.
type WalletBalanceResponse struct {
	ActorID   string `json:"actor_id"`
	ActorKind string `json:"actor_kind"`
	Balance   int64  `json:"balance"`
}

// TransactionResponse is one ledger entry at the boundary.
type TransactionResponse struct {
	ID          string  `json:"id"`
	Amount      int64   `json:"amount"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	OrderID     *string `json:"order_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// TransactionListResponse wraps a wallet's ledger page.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}
