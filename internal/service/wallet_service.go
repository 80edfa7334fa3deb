package service

import (
	"context"
	"fmt"
	"time"

	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/apperror"
	"marketplace-settlement/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletLedgerImpl implements ports.WalletLedger. Every balance mutation in
// the system funnels through here, inside a database transaction holding a
// row lock on the wallet.
type WalletLedgerImpl struct {
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewWalletLedger creates a new WalletLedgerImpl.
func NewWalletLedger(walletRepo ports.WalletRepository, transactor ports.DBTransactor, log zerolog.Logger) *WalletLedgerImpl {
	return &WalletLedgerImpl{
		walletRepo: walletRepo,
		transactor: transactor,
		log:        log,
	}
}

// FindOrCreate returns the actor's wallet, creating it lazily on first use.
func (s *WalletLedgerImpl) FindOrCreate(ctx context.Context, actorID string, kind domain.ActorKind) (*domain.Wallet, error) {
	w, err := s.walletRepo.GetByActor(ctx, actorID, kind)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if w != nil {
		return w, nil
	}

	now := time.Now().UTC()
	w = &domain.Wallet{
		ID:        uuid.New(),
		ActorID:   actorID,
		ActorKind: kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.walletRepo.Create(ctx, w); err != nil {
		// A concurrent first-use may have created it; the unique constraint
		// on (actor_id, actor_kind) makes the re-read authoritative.
		existing, getErr := s.walletRepo.GetByActor(ctx, actorID, kind)
		if getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", w.ID.String()).
		Str("actor_id", actorID).
		Str("actor_kind", string(kind)).
		Msg("wallet created")

	return w, nil
}

// AddTransaction appends a ledger entry. Completed entries move the balance
// atomically; a deduction exceeding the balance fails without appending.
func (s *WalletLedgerImpl) AddTransaction(ctx context.Context, actorID string, kind domain.ActorKind, t *domain.Transaction) (*domain.Transaction, error) {
	if t == nil || !t.Type.Valid() {
		return nil, apperror.Validation("invalid transaction")
	}
	if t.Amount < 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	if _, err := s.FindOrCreate(ctx, actorID, kind); err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Re-resolve under the lock by natural key; the unlocked read above only
	// ensured the row exists.
	locked, err := s.walletRepo.GetByActorForUpdate(ctx, dbTx, actorID, kind)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
	}
	if locked == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	t.WalletID = locked.ID

	if t.Status == domain.TransactionCompleted {
		if t.Type.IsDebit() && t.Amount > locked.Balance {
			metrics.InsufficientBalanceTotal.Inc()
			return nil, apperror.ErrInsufficientBalance()
		}
		locked.ApplyCompleted(t)
		if err := s.walletRepo.UpdateDerived(ctx, dbTx, locked); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("update wallet: %w", err))
		}
	}

	if err := s.walletRepo.InsertTransaction(ctx, dbTx, t); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("insert transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	metrics.WalletTransactionsTotal.WithLabelValues(string(t.Type)).Inc()

	s.log.Info().
		Str("tx_id", t.ID.String()).
		Str("wallet_id", locked.ID.String()).
		Str("type", string(t.Type)).
		Int64("amount", t.Amount).
		Str("status", string(t.Status)).
		Msg("wallet transaction appended")

	return t, nil
}

// UpdateTransactionStatus transitions a ledger entry and symmetrically
// applies or reverses its balance delta. Pending->Completed applies;
// Completed->Failed/Cancelled reverses, clamped at zero.
func (s *WalletLedgerImpl) UpdateTransactionStatus(ctx context.Context, txID uuid.UUID, next domain.TransactionStatus) (*domain.Transaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	t, err := s.walletRepo.GetTransactionForUpdate(ctx, dbTx, txID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock transaction: %w", err))
	}
	if t == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	if !t.CanTransitionTo(next) {
		return nil, apperror.ErrTransactionImmutable()
	}

	w, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, t.WalletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	switch {
	case t.Status == domain.TransactionPending && next == domain.TransactionCompleted:
		if t.Type.IsDebit() && t.Amount > w.Balance {
			metrics.InsufficientBalanceTotal.Inc()
			return nil, apperror.ErrInsufficientBalance()
		}
		w.ApplyCompleted(t)
	case t.Status == domain.TransactionCompleted:
		// next is Failed or Cancelled per CanTransitionTo
		w.ReverseCompleted(t)
	}
	// Pending -> Failed/Cancelled carries no balance delta.

	if err := s.walletRepo.UpdateDerived(ctx, dbTx, w); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update wallet: %w", err))
	}

	now := time.Now().UTC()
	if err := s.walletRepo.UpdateTransactionStatus(ctx, dbTx, txID, next, now); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update transaction status: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	prev := t.Status
	t.Status = next
	t.ProcessedAt = &now

	s.log.Info().
		Str("tx_id", txID.String()).
		Str("from", string(prev)).
		Str("to", string(next)).
		Msg("wallet transaction status updated")

	return t, nil
}

// HasOrderRefund is the authoritative duplicate-refund guard: a Completed
// refund entry referencing the order already exists on the actor's wallet.
func (s *WalletLedgerImpl) HasOrderRefund(ctx context.Context, actorID string, kind domain.ActorKind, orderID string) (bool, error) {
	w, err := s.walletRepo.GetByActor(ctx, actorID, kind)
	if err != nil {
		return false, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if w == nil {
		return false, nil
	}
	found, err := s.walletRepo.HasCompletedForOrder(ctx, w.ID, domain.TransactionRefund, orderID)
	if err != nil {
		return false, apperror.ErrDatabaseError(fmt.Errorf("scan refunds: %w", err))
	}
	return found, nil
}

// GetBalance returns the actor's current balance, creating the wallet if absent.
func (s *WalletLedgerImpl) GetBalance(ctx context.Context, actorID string, kind domain.ActorKind) (int64, error) {
	w, err := s.FindOrCreate(ctx, actorID, kind)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// ListTransactions returns a page of the actor's ledger, newest first.
func (s *WalletLedgerImpl) ListTransactions(ctx context.Context, actorID string, kind domain.ActorKind, limit, offset int) ([]domain.Transaction, error) {
	w, err := s.walletRepo.GetByActor(ctx, actorID, kind)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if w == nil {
		return []domain.Transaction{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	txns, err := s.walletRepo.ListTransactions(ctx, w.ID, limit, offset)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}
