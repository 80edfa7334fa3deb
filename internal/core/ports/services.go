package ports

import (
	"context"
	"time"

	"marketplace-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// WalletLedger is the sole integration point for balance mutation. No other
// component may write a balance directly.
type WalletLedger interface {
	FindOrCreate(ctx context.Context, actorID string, kind domain.ActorKind) (*domain.Wallet, error)
	// AddTransaction appends a ledger entry; if it is Completed the balance
	// and totals move atomically. A deduction exceeding the balance fails
	// with InsufficientBalance.
	AddTransaction(ctx context.Context, actorID string, kind domain.ActorKind, t *domain.Transaction) (*domain.Transaction, error)
	// UpdateTransactionStatus transitions an entry and symmetrically
	// applies or reverses its balance delta.
	UpdateTransactionStatus(ctx context.Context, txID uuid.UUID, next domain.TransactionStatus) (*domain.Transaction, error)
	// HasOrderRefund reports whether the actor's wallet already holds a
	// Completed refund for the order (the primary duplicate-refund guard).
	HasOrderRefund(ctx context.Context, actorID string, kind domain.ActorKind, orderID string) (bool, error)
	GetBalance(ctx context.Context, actorID string, kind domain.ActorKind) (int64, error)
	ListTransactions(ctx context.Context, actorID string, kind domain.ActorKind, limit, offset int) ([]domain.Transaction, error)
}

// CommissionService resolves and manages restaurant commission configuration.
type CommissionService interface {
	CalculateForOrder(ctx context.Context, restaurantID string, orderAmount int64) (*domain.CommissionResult, error)
	SaveConfig(ctx context.Context, cfg *domain.CommissionConfig) error
	GetConfig(ctx context.Context, restaurantID string) (*domain.CommissionConfig, error)
}

// DeliveryPayout is the delivery partner earning input at hold time.
type DeliveryPayout struct {
	BasePayout     int64 `json:"base_payout"`
	DistancePayout int64 `json:"distance_payout"`
	SurgeAmount    int64 `json:"surge_amount"`
}

// HoldEscrowRequest captures everything needed to price and hold one order.
type HoldEscrowRequest struct {
	OrderID           string             `json:"order_id"`
	OrderNumber       string             `json:"order_number"`
	UserID            string             `json:"user_id"`
	RestaurantID      string             `json:"restaurant_id"`
	DeliveryPartnerID *string            `json:"delivery_partner_id,omitempty"`
	Payment           domain.UserPayment `json:"payment"`
	Delivery          DeliveryPayout     `json:"delivery"`
}

// PartyCredit reports one successful wallet credit during release.
type PartyCredit struct {
	Party  SettlementParty `json:"party"`
	Amount int64           `json:"amount"`
}

// PartyFailure reports one failed wallet credit during release; the other
// parties are unaffected.
type PartyFailure struct {
	Party  SettlementParty `json:"party"`
	Reason string          `json:"reason"`
}

// ReleaseResult reports which parties were credited when escrow was released.
type ReleaseResult struct {
	OrderID  string         `json:"order_id"`
	Credited []PartyCredit  `json:"credited"`
	Failed   []PartyFailure `json:"failed,omitempty"`
}

// EscrowService orchestrates holding and releasing order funds.
type EscrowService interface {
	HoldEscrow(ctx context.Context, req HoldEscrowRequest) (*domain.SettlementRecord, error)
	ReleaseEscrow(ctx context.Context, orderID string) (*ReleaseResult, error)
	GetSettlement(ctx context.Context, orderID string) (*domain.SettlementRecord, error)
}

// RefundOutcome reports a cancellation refund calculation or execution.
type RefundOutcome struct {
	OrderID                string                   `json:"order_id"`
	Stage                  domain.CancellationStage `json:"stage"`
	CustomerRefund         int64                    `json:"customer_refund"`
	RestaurantCompensation int64                    `json:"restaurant_compensation"`
	// AlreadyRefunded marks an idempotent no-op reported as success.
	AlreadyRefunded bool `json:"already_refunded,omitempty"`
}

// GatewayRefundOutcome reports an external gateway refund initiation.
type GatewayRefundOutcome struct {
	OrderID         string              `json:"order_id"`
	RefundAmount    int64               `json:"refund_amount"`
	GatewayRefundID string              `json:"gateway_refund_id"`
	RefundStatus    domain.RefundStatus `json:"refund_status"`
}

// RefundService drives the cancellation refund policy.
type RefundService interface {
	// CalculateCancellationRefund computes and records without moving money.
	CalculateCancellationRefund(ctx context.Context, orderID, reason string) (*RefundOutcome, error)
	// ProcessCancellationRefund computes and immediately executes.
	ProcessCancellationRefund(ctx context.Context, orderID, reason string) (*RefundOutcome, error)
	// ProcessGatewayRefund pushes a previously calculated refund through the
	// external payment gateway.
	ProcessGatewayRefund(ctx context.Context, orderID, adminID string) (*GatewayRefundOutcome, error)
	// ProcessWalletRefund instantly credits a wallet-paid order's refund.
	ProcessWalletRefund(ctx context.Context, orderID string) (*RefundOutcome, error)
}

// SweepResult summarizes one auto-reject pass.
type SweepResult struct {
	Processed int    `json:"processed"`
	Message   string `json:"message"`
}

// SchedulerService finds orders un-acted-on past the SLA and forces them
// into the cancellation path.
type SchedulerService interface {
	ProcessAutoRejectOrders(ctx context.Context) (*SweepResult, error)
}

// GatewayRefund is the external gateway's refund handle.
type GatewayRefund struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// RefundGateway is the external payment gateway's refund interface.
type RefundGateway interface {
	CreateRefund(ctx context.Context, paymentID string, amount int64, notes map[string]string) (*GatewayRefund, error)
}

// Notifier delivers order updates to restaurants. Fire-and-forget from the
// core's perspective; failures are logged, never retried synchronously.
type Notifier interface {
	NotifyRestaurantOrderUpdate(ctx context.Context, orderID, restaurantID, newStatus, reason string) error
}

// AuditService records money-affecting transitions. Write failures never
// block the financial operation they describe.
type AuditService interface {
	Record(ctx context.Context, entry *domain.AuditEntry)
}

// IdempotencyCache is a fast-path duplicate check; the authoritative guard
// is always the wallet-transaction scan.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CommissionCache is the explicit, invalidation-aware cache over commission
// configs, keyed by restaurant id with bounded lifetime.
type CommissionCache interface {
	Get(ctx context.Context, restaurantID string) (*domain.CommissionConfig, error) // nil, nil on miss
	Set(ctx context.Context, cfg *domain.CommissionConfig, ttl time.Duration) error
	Invalidate(ctx context.Context, restaurantID string) error
}

// TokenClaims holds the parsed JWT claims for admin attribution.
type TokenClaims struct {
	ActorID string
	Role    string
}

// TokenService handles JWT token operations for the admin surface.
type TokenService interface {
	Generate(actorID string, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}
