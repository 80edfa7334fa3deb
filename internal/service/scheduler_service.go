package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/logger"
	"marketplace-settlement/pkg/metrics"
)

const autoRejectReason = "restaurant did not accept the order in time"

// SchedulerServiceImpl sweeps orders no restaurant acted on within the accept
// SLA and forces them into the cancellation path. One order failing never
// stops the rest of the sweep.
type SchedulerServiceImpl struct {
	orderRepo  ports.OrderRepository
	refundSvc  ports.RefundService
	outboxRepo ports.OutboxRepository
	audit      ports.AuditService
	acceptSLA  time.Duration
	log        zerolog.Logger
}

func NewSchedulerService(
	orderRepo ports.OrderRepository,
	refundSvc ports.RefundService,
	outboxRepo ports.OutboxRepository,
	audit ports.AuditService,
	acceptSLA time.Duration,
	log zerolog.Logger,
) *SchedulerServiceImpl {
	return &SchedulerServiceImpl{
		orderRepo:  orderRepo,
		refundSvc:  refundSvc,
		outboxRepo: outboxRepo,
		audit:      audit,
		acceptSLA:  acceptSLA,
		log:        logger.Component(log, "scheduler"),
	}
}

// Run drives the sweep on a fixed interval until ctx is cancelled.
func (s *SchedulerServiceImpl) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info().
		Dur("interval", interval).
		Dur("accept_sla", s.acceptSLA).
		Msg("auto-reject scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("auto-reject scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.ProcessAutoRejectOrders(ctx); err != nil {
				s.log.Error().Err(err).Msg("auto-reject sweep failed")
			}
		}
	}
}

func (s *SchedulerServiceImpl) ProcessAutoRejectOrders(ctx context.Context) (*ports.SweepResult, error) {
	cutoff := time.Now().UTC().Add(-s.acceptSLA)
	candidates, err := s.orderRepo.ListUnactioned(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	processed := 0
	for _, candidate := range candidates {
		if err := s.rejectOne(ctx, candidate.ID); err != nil {
			s.log.Error().Err(err).Str("order_id", candidate.ID).Msg("auto-reject failed for order")
			continue
		}
		processed++
	}

	metrics.AutoRejectSweepOrders.Observe(float64(processed))
	if processed > 0 {
		s.log.Info().Int("processed", processed).Int("candidates", len(candidates)).Msg("auto-reject sweep done")
	}

	return &ports.SweepResult{
		Processed: processed,
		Message:   fmt.Sprintf("auto-rejected %d of %d candidate orders", processed, len(candidates)),
	}, nil
}

func (s *SchedulerServiceImpl) rejectOne(ctx context.Context, orderID string) error {
	// Re-read fresh: the list snapshot may be stale by the time we act, and a
	// restaurant accepting between the two reads must win.
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	if order.Status != domain.OrderPending && order.Status != domain.OrderConfirmed {
		return nil
	}
	if time.Since(order.CreatedAt) < s.acceptSLA {
		return nil
	}

	cancelled, err := s.orderRepo.CancelIfUnactioned(ctx, orderID, autoRejectReason)
	if err != nil {
		return err
	}
	if !cancelled {
		// Lost the race to an accept; nothing to do.
		return nil
	}

	if _, err := s.refundSvc.CalculateCancellationRefund(ctx, orderID, autoRejectReason); err != nil {
		s.log.Error().Err(err).Str("order_id", orderID).Msg("refund calculation failed for auto-rejected order")
	}

	msg, err := domain.NewRestaurantNotifyMessage(domain.RestaurantNotifyPayload{
		OrderID:      orderID,
		RestaurantID: order.RestaurantID,
		NewStatus:    string(domain.OrderCancelled),
		Reason:       autoRejectReason,
	})
	if err == nil {
		err = s.outboxRepo.Enqueue(ctx, msg)
	}
	if err != nil {
		s.log.Error().Err(err).Str("order_id", orderID).Msg("failed to enqueue restaurant notification")
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		EntityType:      "order",
		EntityID:        orderID,
		Action:          "auto_rejected",
		ActionType:      "status_change",
		PerformedByKind: domain.AuditActorSystem,
		Changes: auditChanges(map[string]any{
			"reason": autoRejectReason,
		}),
	})

	return nil
}
