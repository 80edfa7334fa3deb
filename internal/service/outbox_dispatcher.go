package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/logger"
	"marketplace-settlement/pkg/metrics"
)

// outboxRetryIntervals spaces redelivery attempts; after the last interval is
// exhausted the message is parked as failed for manual inspection.
var outboxRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// OutboxDispatcher drains queued notifications in the background. Delivery is
// decoupled from the financial operations that enqueue messages, so a slow or
// down notification target never blocks settlement.
type OutboxDispatcher struct {
	repo      ports.OutboxRepository
	notifier  ports.Notifier
	batchSize int
	log       zerolog.Logger
}

func NewOutboxDispatcher(repo ports.OutboxRepository, notifier ports.Notifier, batchSize int, log zerolog.Logger) *OutboxDispatcher {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &OutboxDispatcher{
		repo:      repo,
		notifier:  notifier,
		batchSize: batchSize,
		log:       logger.Component(log, "outbox_dispatcher"),
	}
}

// Run polls for due messages until ctx is cancelled.
func (d *OutboxDispatcher) Run(ctx context.Context, pollInterval time.Duration) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	d.log.Info().Dur("poll_interval", pollInterval).Int("batch_size", d.batchSize).Msg("outbox dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.log.Info().Msg("outbox dispatcher stopped")
			return
		case <-ticker.C:
			if err := d.DispatchOnce(ctx); err != nil {
				d.log.Error().Err(err).Msg("outbox dispatch pass failed")
			}
		}
	}
}

// DispatchOnce drains one batch of due messages.
func (d *OutboxDispatcher) DispatchOnce(ctx context.Context) error {
	now := time.Now().UTC()
	msgs, err := d.repo.DuePending(ctx, now, d.batchSize)
	if err != nil {
		return err
	}

	for i := range msgs {
		d.dispatch(ctx, &msgs[i])
	}
	return nil
}

func (d *OutboxDispatcher) dispatch(ctx context.Context, msg *domain.OutboxMessage) {
	err := d.deliver(ctx, msg)
	now := time.Now().UTC()

	if err == nil {
		if markErr := d.repo.MarkSent(ctx, msg.ID, now); markErr != nil {
			d.log.Error().Err(markErr).Str("message_id", msg.ID.String()).Msg("failed to mark outbox message sent")
		}
		metrics.OutboxDeliveriesTotal.WithLabelValues("sent").Inc()
		return
	}

	attempts := msg.Attempts + 1
	if attempts > len(outboxRetryIntervals) {
		// Park permanently: MarkFailed with a next attempt far enough out that
		// DuePending never picks it up again.
		if markErr := d.repo.MarkFailed(ctx, msg.ID, attempts, now.AddDate(100, 0, 0), err.Error()); markErr != nil {
			d.log.Error().Err(markErr).Str("message_id", msg.ID.String()).Msg("failed to park outbox message")
		}
		metrics.OutboxDeliveriesTotal.WithLabelValues("exhausted").Inc()
		d.log.Error().Err(err).
			Str("message_id", msg.ID.String()).
			Str("kind", string(msg.Kind)).
			Int("attempts", attempts).
			Msg("outbox delivery attempts exhausted")
		return
	}

	next := now.Add(outboxRetryIntervals[attempts-1])
	if markErr := d.repo.MarkFailed(ctx, msg.ID, attempts, next, err.Error()); markErr != nil {
		d.log.Error().Err(markErr).Str("message_id", msg.ID.String()).Msg("failed to schedule outbox retry")
	}
	metrics.OutboxDeliveriesTotal.WithLabelValues("retried").Inc()
	d.log.Warn().Err(err).
		Str("message_id", msg.ID.String()).
		Int("attempt", attempts).
		Time("next_attempt", next).
		Msg("outbox delivery failed, retry scheduled")
}

func (d *OutboxDispatcher) deliver(ctx context.Context, msg *domain.OutboxMessage) error {
	switch msg.Kind {
	case domain.OutboxRestaurantNotify:
		var p domain.RestaurantNotifyPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return d.notifier.NotifyRestaurantOrderUpdate(ctx, p.OrderID, p.RestaurantID, p.NewStatus, p.Reason)
	default:
		return fmt.Errorf("unknown outbox kind %q", msg.Kind)
	}
}
