package ports

import (
	"context"
	"time"

	"marketplace-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepository defines persistence for wallets and their ledger entries.
// Methods accepting pgx.Tx run inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, w *domain.Wallet) error
	GetByActor(ctx context.Context, actorID string, kind domain.ActorKind) (*domain.Wallet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByActorForUpdate(ctx context.Context, tx pgx.Tx, actorID string, kind domain.ActorKind) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	// UpdateDerived persists balance, running totals and last transaction time.
	UpdateDerived(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error

	InsertTransaction(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetTransactionForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus, processedAt time.Time) error
	ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.Transaction, error)
	// HasCompletedForOrder is the duplicate-refund guard: does this wallet
	// already hold a Completed transaction of this type for this order?
	HasCompletedForOrder(ctx context.Context, walletID uuid.UUID, txType domain.TransactionType, orderID string) (bool, error)
}

// SettlementParty names one of the three earning recipients on a settlement.
type SettlementParty string

const (
	PartyRestaurant SettlementParty = "restaurant"
	PartyDelivery   SettlementParty = "delivery"
	PartyAdmin      SettlementParty = "admin"
)

// SettlementRepository defines persistence for settlement records. The
// Claim* methods are guarded compare-and-set updates: they return false when
// another writer already moved the record out of the required state, which is
// how two racing callers converge on one winner.
type SettlementRepository interface {
	Create(ctx context.Context, rec *domain.SettlementRecord) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.SettlementRecord, error)

	// ClaimRelease atomically moves held/pending -> released/completed.
	ClaimRelease(ctx context.Context, orderID string, at time.Time) (bool, error)
	// ClaimCancellation atomically moves held/pending -> refunded/cancelled,
	// writing the cancellation details and cancelling all three earnings.
	ClaimCancellation(ctx context.Context, orderID string, det *domain.CancellationDetails, at time.Time) (bool, error)

	SetEarningStatus(ctx context.Context, orderID string, party SettlementParty, status domain.EarningStatus, at time.Time) error

	// SaveCancellationCalculation records a computed refund without moving
	// money or changing escrow state.
	SaveCancellationCalculation(ctx context.Context, orderID string, det *domain.CancellationDetails) error
	// CasRefundStatus transitions cancellation refund status only if it
	// currently equals from.
	CasRefundStatus(ctx context.Context, orderID string, from, to domain.RefundStatus) (bool, error)
	// SetRefundResult records the terminal outcome of a refund execution.
	SetRefundResult(ctx context.Context, orderID string, status domain.RefundStatus, gatewayRefundID, failureReason *string, at time.Time) error
}

// OrderRepository is the read model over the order service's data, plus the
// single guarded transition the auto-reject sweep performs.
type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	// ListUnactioned returns orders still pending/confirmed created before cutoff.
	ListUnactioned(ctx context.Context, cutoff time.Time) ([]domain.Order, error)
	// CancelIfUnactioned cancels the order only if it is still
	// pending/confirmed; returns false when a racing accept won.
	CancelIfUnactioned(ctx context.Context, orderID string, reason string) (bool, error)
}

// CommissionRepository defines persistence for restaurant commission configs.
type CommissionRepository interface {
	GetByRestaurantID(ctx context.Context, restaurantID string) (*domain.CommissionConfig, error)
	Save(ctx context.Context, cfg *domain.CommissionConfig) error
}

// AuditRepository appends immutable audit entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
}

// OutboxRepository queues and drains non-critical side effects.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg *domain.OutboxMessage) error
	DuePending(ctx context.Context, now time.Time, limit int) ([]domain.OutboxMessage, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, nextAttempt time.Time, lastError string) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
