package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallet_ApplyCompleted_Credit(t *testing.T) {
	w := &Wallet{ActorKind: ActorUser}
	tx, err := NewCompleted(TransactionAddition, 5000, "topup", nil)
	require.NoError(t, err)

	w.ApplyCompleted(tx)

	assert.Equal(t, int64(5000), w.Balance)
	assert.Equal(t, int64(5000), w.TotalAdded)
	require.NotNil(t, w.LastTransactionAt)
}

func TestWallet_ApplyCompleted_Debit(t *testing.T) {
	w := &Wallet{ActorKind: ActorUser, Balance: 5000}
	tx, err := NewCompleted(TransactionDeduction, 1700, "order payment", nil)
	require.NoError(t, err)

	w.ApplyCompleted(tx)

	assert.Equal(t, int64(3300), w.Balance)
	assert.Equal(t, int64(1700), w.TotalSpent)
}

func TestWallet_ApplyCompleted_EarningTotals(t *testing.T) {
	w := &Wallet{ActorKind: ActorAdmin}
	for _, typ := range []TransactionType{
		TransactionCommission, TransactionPlatformFee, TransactionDeliveryFee, TransactionGST,
	} {
		tx, err := NewCompleted(typ, 100, "settlement", strPtr("ord-1"))
		require.NoError(t, err)
		w.ApplyCompleted(tx)
	}

	assert.Equal(t, int64(400), w.Balance)
	assert.Equal(t, int64(400), w.TotalEarned)
}

func TestWallet_ReverseCompleted_Symmetric(t *testing.T) {
	w := &Wallet{ActorKind: ActorRestaurant}
	tx, err := NewCompleted(TransactionPayment, 13000, "order earning", strPtr("ord-1"))
	require.NoError(t, err)

	w.ApplyCompleted(tx)
	assert.Equal(t, int64(13000), w.Balance)

	w.ReverseCompleted(tx)
	assert.Equal(t, int64(0), w.Balance)
	assert.Equal(t, int64(0), w.TotalEarned)
}

func TestWallet_ReverseCompleted_ClampsAtZero(t *testing.T) {
	// A reversal observed after other debits must not drive the balance negative.
	w := &Wallet{ActorKind: ActorUser, Balance: 100}
	tx, err := NewCompleted(TransactionAddition, 500, "topup", nil)
	require.NoError(t, err)

	w.ReverseCompleted(tx)
	assert.Equal(t, int64(0), w.Balance)
}

func TestWallet_RefundTotals(t *testing.T) {
	w := &Wallet{ActorKind: ActorUser}
	tx, err := NewCompleted(TransactionRefund, 16000, "cancellation refund", strPtr("ord-9"))
	require.NoError(t, err)

	w.ApplyCompleted(tx)
	assert.Equal(t, int64(16000), w.Balance)
	assert.Equal(t, int64(16000), w.TotalRefunded)
}
