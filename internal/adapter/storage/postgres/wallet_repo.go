package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

const walletColumns = `id, actor_id, actor_kind, balance, total_added, total_spent,
	total_refunded, total_earned, total_withdrawn, last_transaction_at, created_at, updated_at`

// Create inserts a new wallet. The unique (actor_id, actor_kind) index makes
// racing lazy creations fail here, which the ledger resolves by re-reading.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, actor_id, actor_kind, balance, total_added, total_spent,
		total_refunded, total_earned, total_withdrawn, last_transaction_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.ActorID, w.ActorKind, w.Balance,
		w.TotalAdded, w.TotalSpent, w.TotalRefunded, w.TotalEarned, w.TotalWithdrawn,
		w.LastTransactionAt, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByActor fetches a wallet by its owning actor. Returns (nil, nil) when absent.
func (r *WalletRepo) GetByActor(ctx context.Context, actorID string, kind domain.ActorKind) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE actor_id = $1 AND actor_kind = $2`
	return r.scanWallet(r.pool.QueryRow(ctx, query, actorID, kind))
}

// GetByID fetches a wallet by UUID. Returns (nil, nil) when absent.
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	return r.scanWallet(r.pool.QueryRow(ctx, query, id))
}

// GetByActorForUpdate locks and fetches a wallet inside tx.
func (r *WalletRepo) GetByActorForUpdate(ctx context.Context, tx pgx.Tx, actorID string, kind domain.ActorKind) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE actor_id = $1 AND actor_kind = $2 FOR UPDATE`
	return r.scanWallet(tx.QueryRow(ctx, query, actorID, kind))
}

// GetByIDForUpdate locks and fetches a wallet by UUID inside tx.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`
	return r.scanWallet(tx.QueryRow(ctx, query, id))
}

// UpdateDerived persists balance, running totals and last transaction time.
// The caller holds the row lock taken by GetByActorForUpdate/GetByIDForUpdate.
func (r *WalletRepo) UpdateDerived(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `UPDATE wallets SET balance = $1, total_added = $2, total_spent = $3,
		total_refunded = $4, total_earned = $5, total_withdrawn = $6,
		last_transaction_at = $7, updated_at = $8 WHERE id = $9`

	tag, err := tx.Exec(ctx, query,
		w.Balance, w.TotalAdded, w.TotalSpent, w.TotalRefunded, w.TotalEarned,
		w.TotalWithdrawn, w.LastTransactionAt, time.Now().UTC(), w.ID,
	)
	if err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", w.ID)
	}
	return nil
}

const transactionColumns = `id, wallet_id, amount, type, status, description, order_id, created_at, processed_at`

// InsertTransaction appends a ledger entry within a database transaction.
func (r *WalletRepo) InsertTransaction(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO wallet_transactions (id, wallet_id, amount, type, status, description, order_id, created_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WalletID, t.Amount, t.Type, t.Status,
		t.Description, t.OrderID, t.CreatedAt, t.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

// GetTransaction fetches a ledger entry by UUID. Returns (nil, nil) when absent.
func (r *WalletRepo) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions WHERE id = $1`
	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetTransactionForUpdate locks and fetches a ledger entry inside tx.
func (r *WalletRepo) GetTransactionForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions WHERE id = $1 FOR UPDATE`
	return r.scanTransaction(tx.QueryRow(ctx, query, id))
}

// UpdateTransactionStatus moves a ledger entry to a new status.
func (r *WalletRepo) UpdateTransactionStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus, processedAt time.Time) error {
	query := `UPDATE wallet_transactions SET status = $1, processed_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, status, processedAt, id)
	if err != nil {
		return fmt.Errorf("update wallet transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet transaction not found: %s", id)
	}
	return nil
}

// ListTransactions fetches a wallet's ledger, newest first.
func (r *WalletRepo) ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions
		WHERE wallet_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.WalletID, &t.Amount, &t.Type, &t.Status,
			&t.Description, &t.OrderID, &t.CreatedAt, &t.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wallet transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet transaction rows: %w", err)
	}
	return txns, nil
}

// HasCompletedForOrder reports whether the wallet already holds a Completed
// transaction of the given type for the order. This is the authoritative
// duplicate-refund guard behind the cache fast path.
func (r *WalletRepo) HasCompletedForOrder(ctx context.Context, walletID uuid.UUID, txType domain.TransactionType, orderID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM wallet_transactions
		WHERE wallet_id = $1 AND type = $2 AND order_id = $3 AND status = 'Completed')`

	var exists bool
	err := r.pool.QueryRow(ctx, query, walletID, txType, orderID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check completed transaction for order: %w", err)
	}
	return exists, nil
}

// scanWallet is a helper to scan a single row into a Wallet.
func (r *WalletRepo) scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.ActorID, &w.ActorKind, &w.Balance,
		&w.TotalAdded, &w.TotalSpent, &w.TotalRefunded, &w.TotalEarned, &w.TotalWithdrawn,
		&w.LastTransactionAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}

// scanTransaction is a helper to scan a single row into a Transaction.
func (r *WalletRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.WalletID, &t.Amount, &t.Type, &t.Status,
		&t.Description, &t.OrderID, &t.CreatedAt, &t.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet transaction: %w", err)
	}
	return t, nil
}
