package postgres

import (
	"context"
	"testing"
	"time"

	"marketplace-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepo_Enqueue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	msg, err := domain.NewRestaurantNotifyMessage(domain.RestaurantNotifyPayload{
		OrderID:      "order-1",
		RestaurantID: "rest-1",
		NewStatus:    string(domain.OrderCancelled),
		Reason:       "auto rejected",
	})
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO outbox_messages").
		WithArgs(msg.ID, msg.Kind, []byte(msg.Payload), msg.Status,
			msg.Attempts, msg.NextAttemptAt, msg.LastError, msg.CreatedAt, msg.SentAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Enqueue(context.Background(), msg)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_DuePending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)

	rows := pgxmock.NewRows([]string{"id", "kind", "payload", "status", "attempts", "next_attempt_at", "last_error", "created_at", "sent_at"}).
		AddRow(uuid.New(), domain.OutboxRestaurantNotify, []byte(`{"order_id":"order-1"}`),
			domain.OutboxPending, 0, now.Add(-time.Minute), (*string)(nil), now.Add(-time.Minute), (*time.Time)(nil))

	mock.ExpectQuery("SELECT .+ FROM outbox_messages").
		WithArgs(now, 50).
		WillReturnRows(rows)

	msgs, err := repo.DuePending(context.Background(), now, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.OutboxRestaurantNotify, msgs[0].Kind)
	assert.JSONEq(t, `{"order_id":"order-1"}`, string(msgs[0].Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_MarkSent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	id := uuid.New()
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE outbox_messages SET status = 'sent'").
		WithArgs(id, at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.MarkSent(context.Background(), id, at)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_MarkFailed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	id := uuid.New()
	next := time.Now().UTC().Add(time.Minute)

	mock.ExpectExec("UPDATE outbox_messages SET status = 'failed'").
		WithArgs(id, 2, next, "connection refused").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.MarkFailed(context.Background(), id, 2, next, "connection refused")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_MarkSent_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE outbox_messages SET status = 'sent'").
		WithArgs(id, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.MarkSent(context.Background(), id, time.Now().UTC())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "outbox message not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
