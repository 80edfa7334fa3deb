package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActorKind identifies which side of the marketplace a wallet belongs to.
type ActorKind string

const (
	ActorUser       ActorKind = "user"
	ActorRestaurant ActorKind = "restaurant"
	ActorDelivery   ActorKind = "delivery"
	ActorAdmin      ActorKind = "admin"
)

// PlatformActorID is the singleton admin wallet's actor id. All platform
// earnings (commission, platform fee, delivery fee, GST) land here.
const PlatformActorID = "platform"

// Wallet is the per-actor running balance. The balance is derived state:
// it must always equal the sum of Completed transactions, signed by type.
// Wallets are created lazily on first use and never deleted.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	ActorID   string    `json:"actor_id"`
	ActorKind ActorKind `json:"actor_kind"`
	Balance   int64     `json:"balance"` // Smallest currency unit, never negative

	// Type-specific running totals. Which of these move depends on the
	// actor kind and transaction type.
	TotalAdded     int64 `json:"total_added"`
	TotalSpent     int64 `json:"total_spent"`
	TotalRefunded  int64 `json:"total_refunded"`
	TotalEarned    int64 `json:"total_earned"`
	TotalWithdrawn int64 `json:"total_withdrawn"`

	LastTransactionAt *time.Time `json:"last_transaction_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ApplyCompleted mutates the wallet's balance and running totals for a
// transaction entering the Completed state. The caller has already checked
// the InsufficientBalance rule for debits.
func (w *Wallet) ApplyCompleted(t *Transaction) {
	delta := t.SignedAmount()
	w.Balance += delta

	switch t.Type {
	case TransactionAddition, TransactionBonus:
		w.TotalAdded += t.Amount
	case TransactionRefund, TransactionDeductionReversal:
		w.TotalRefunded += t.Amount
	case TransactionPayment, TransactionCommission, TransactionPlatformFee,
		TransactionDeliveryFee, TransactionGST:
		w.TotalEarned += t.Amount
	case TransactionDeduction:
		w.TotalSpent += t.Amount
	case TransactionWithdrawal:
		w.TotalWithdrawn += t.Amount
	}

	now := t.CreatedAt
	if t.ProcessedAt != nil {
		now = *t.ProcessedAt
	}
	w.LastTransactionAt = &now
}

// ReverseCompleted undoes ApplyCompleted when a Completed transaction is
// moved to Failed or Cancelled. The balance is clamped at zero so a reversal
// can never manufacture a negative balance.
func (w *Wallet) ReverseCompleted(t *Transaction) {
	w.Balance -= t.SignedAmount()
	if w.Balance < 0 {
		w.Balance = 0
	}

	switch t.Type {
	case TransactionAddition, TransactionBonus:
		w.TotalAdded -= t.Amount
	case TransactionRefund, TransactionDeductionReversal:
		w.TotalRefunded -= t.Amount
	case TransactionPayment, TransactionCommission, TransactionPlatformFee,
		TransactionDeliveryFee, TransactionGST:
		w.TotalEarned -= t.Amount
	case TransactionDeduction:
		w.TotalSpent -= t.Amount
	case TransactionWithdrawal:
		w.TotalWithdrawn -= t.Amount
	}
}
