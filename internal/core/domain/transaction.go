package domain

import (
	"time"

	"github.com/google/uuid"

	"marketplace-settlement/pkg/apperror"
)

// TransactionType is the closed set of money movements. Direction is encoded
// by the type, never by the sign of the amount.
type TransactionType string

const (
	TransactionAddition          TransactionType = "addition"
	TransactionDeduction         TransactionType = "deduction"
	TransactionRefund            TransactionType = "refund"
	TransactionCommission        TransactionType = "commission"
	TransactionPlatformFee       TransactionType = "platform_fee"
	TransactionDeliveryFee       TransactionType = "delivery_fee"
	TransactionGST               TransactionType = "gst"
	TransactionPayment           TransactionType = "payment"
	TransactionWithdrawal        TransactionType = "withdrawal"
	TransactionBonus             TransactionType = "bonus"
	TransactionDeductionReversal TransactionType = "deduction_reversal"
)

// TransactionStatus is the lifecycle state of a ledger entry.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "Pending"
	TransactionCompleted TransactionStatus = "Completed"
	TransactionFailed    TransactionStatus = "Failed"
	TransactionCancelled TransactionStatus = "Cancelled"
)

// Transaction is one entry in a wallet's append-only ledger. Once Completed
// it is immutable except through a status transition, which symmetrically
// applies or reverses its balance delta.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	WalletID    uuid.UUID         `json:"wallet_id"`
	Amount      int64             `json:"amount"` // Always >= 0
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	Description string            `json:"description"`
	OrderID     *string           `json:"order_id,omitempty"` // Back-reference, not ownership
	CreatedAt   time.Time         `json:"created_at"`
	ProcessedAt *time.Time        `json:"processed_at,omitempty"`
}

// creditTypes increase the balance; everything else in the closed set is a debit.
var creditTypes = map[TransactionType]bool{
	TransactionAddition:          true,
	TransactionRefund:            true,
	TransactionCommission:        true,
	TransactionPlatformFee:       true,
	TransactionDeliveryFee:       true,
	TransactionGST:               true,
	TransactionPayment:           true,
	TransactionBonus:             true,
	TransactionDeductionReversal: true,
}

// IsCredit reports whether this transaction type increases the balance.
func (t TransactionType) IsCredit() bool {
	return creditTypes[t]
}

// IsDebit reports whether this transaction type decreases the balance.
func (t TransactionType) IsDebit() bool {
	return t == TransactionDeduction || t == TransactionWithdrawal
}

// Valid reports whether the type belongs to the closed set.
func (t TransactionType) Valid() bool {
	return t.IsCredit() || t.IsDebit()
}

// SignedAmount returns the balance delta this transaction carries when Completed.
func (t *Transaction) SignedAmount() int64 {
	if t.Type.IsDebit() {
		return -t.Amount
	}
	return t.Amount
}

// orderLinkedTypes require an order back-reference at construction time, so a
// refund or settlement credit can never be written without its order.
var orderLinkedTypes = map[TransactionType]bool{
	TransactionRefund:            true,
	TransactionPayment:           true,
	TransactionCommission:        true,
	TransactionPlatformFee:       true,
	TransactionDeliveryFee:       true,
	TransactionGST:               true,
	TransactionDeductionReversal: true,
}

// NewTransaction builds a validated ledger entry. It enforces the tagged-variant
// rules: amount non-negative, type in the closed set, order-linked types carry
// an order id.
func NewTransaction(txType TransactionType, amount int64, status TransactionStatus, description string, orderID *string) (*Transaction, error) {
	if !txType.Valid() {
		return nil, apperror.Validation("unknown transaction type: " + string(txType))
	}
	if amount < 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	switch status {
	case TransactionPending, TransactionCompleted, TransactionFailed, TransactionCancelled:
	default:
		return nil, apperror.Validation("unknown transaction status: " + string(status))
	}
	if orderLinkedTypes[txType] && (orderID == nil || *orderID == "") {
		return nil, apperror.Validation(string(txType) + " transaction requires an order id")
	}

	now := time.Now().UTC()
	t := &Transaction{
		ID:          uuid.New(),
		Amount:      amount,
		Type:        txType,
		Status:      status,
		Description: description,
		OrderID:     orderID,
		CreatedAt:   now,
	}
	if status == TransactionCompleted {
		t.ProcessedAt = &now
	}
	return t, nil
}

// NewCompleted is shorthand for a transaction created directly in the
// Completed state, which is the common settlement path.
func NewCompleted(txType TransactionType, amount int64, description string, orderID *string) (*Transaction, error) {
	return NewTransaction(txType, amount, TransactionCompleted, description, orderID)
}

// CanTransitionTo reports whether a status transition is allowed.
// Pending may complete, fail or be cancelled; Completed may only be
// reversed into Failed or Cancelled. Terminal-to-terminal moves are rejected.
func (t *Transaction) CanTransitionTo(next TransactionStatus) bool {
	if t.Status == next {
		return false
	}
	switch t.Status {
	case TransactionPending:
		return next == TransactionCompleted || next == TransactionFailed || next == TransactionCancelled
	case TransactionCompleted:
		return next == TransactionFailed || next == TransactionCancelled
	default:
		return false
	}
}
