package postgres

import (
	"context"
	"fmt"
	"time"

	"marketplace-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// OutboxRepo implements ports.OutboxRepository.
type OutboxRepo struct {
	pool Pool
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(pool Pool) *OutboxRepo {
	return &OutboxRepo{pool: pool}
}

// Enqueue stores a new outbox message.
func (r *OutboxRepo) Enqueue(ctx context.Context, msg *domain.OutboxMessage) error {
	query := `INSERT INTO outbox_messages (id, kind, payload, status, attempts, next_attempt_at, last_error, created_at, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.Kind, []byte(msg.Payload), msg.Status,
		msg.Attempts, msg.NextAttemptAt, msg.LastError, msg.CreatedAt, msg.SentAt,
	)
	if err != nil {
		return fmt.Errorf("enqueue outbox message: %w", err)
	}
	return nil
}

// DuePending returns undelivered messages whose next attempt is due, oldest
// first. Failed messages are included so transient delivery errors retry.
func (r *OutboxRepo) DuePending(ctx context.Context, now time.Time, limit int) ([]domain.OutboxMessage, error) {
	query := `SELECT id, kind, payload, status, attempts, next_attempt_at, last_error, created_at, sent_at
		FROM outbox_messages
		WHERE status IN ('pending', 'failed') AND next_attempt_at <= $1
		ORDER BY next_attempt_at ASC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due outbox messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.OutboxMessage
	for rows.Next() {
		m := domain.OutboxMessage{}
		var payload []byte
		err := rows.Scan(&m.ID, &m.Kind, &payload, &m.Status, &m.Attempts,
			&m.NextAttemptAt, &m.LastError, &m.CreatedAt, &m.SentAt)
		if err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		m.Payload = payload
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}
	return msgs, nil
}

// MarkSent records successful delivery.
func (r *OutboxRepo) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE outbox_messages SET status = 'sent', sent_at = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("mark outbox message sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outbox message not found: %s", id)
	}
	return nil
}

// MarkFailed records a failed delivery attempt and when to try again.
func (r *OutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, nextAttempt time.Time, lastError string) error {
	query := `UPDATE outbox_messages SET status = 'failed', attempts = $2, next_attempt_at = $3, last_error = $4 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, attempts, nextAttempt, lastError)
	if err != nil {
		return fmt.Errorf("mark outbox message failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outbox message not found: %s", id)
	}
	return nil
}
