package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/apperror"
	"marketplace-settlement/pkg/logger"
	"marketplace-settlement/pkg/metrics"
)

// refundCacheKeyPrefix namespaces the fast-path duplicate markers in redis.
const refundCacheKeyPrefix = "refund:order:"

// RefundServiceImpl drives the cancellation refund policy. The authoritative
// duplicate guard is the wallet-transaction scan; the redis marker only short
// circuits the common retry.
type RefundServiceImpl struct {
	settlementRepo ports.SettlementRepository
	orderRepo      ports.OrderRepository
	ledger         ports.WalletLedger
	gateway        ports.RefundGateway
	idemCache      ports.IdempotencyCache
	audit          ports.AuditService
	refundTTL      time.Duration
	log            zerolog.Logger
}

func NewRefundService(
	settlementRepo ports.SettlementRepository,
	orderRepo ports.OrderRepository,
	ledger ports.WalletLedger,
	gateway ports.RefundGateway,
	idemCache ports.IdempotencyCache,
	audit ports.AuditService,
	refundTTL time.Duration,
	log zerolog.Logger,
) ports.RefundService {
	return &RefundServiceImpl{
		settlementRepo: settlementRepo,
		orderRepo:      orderRepo,
		ledger:         ledger,
		gateway:        gateway,
		idemCache:      idemCache,
		audit:          audit,
		refundTTL:      refundTTL,
		log:            logger.Component(log, "refund_service"),
	}
}

func (s *RefundServiceImpl) CalculateCancellationRefund(ctx context.Context, orderID, reason string) (*ports.RefundOutcome, error) {
	rec, order, err := s.loadSettlementAndOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if rec.Cancellation != nil {
		switch rec.Cancellation.RefundStatus {
		case domain.RefundInitiated:
			return nil, apperror.ErrRefundAlreadyInitiated()
		case domain.RefundProcessed:
			return nil, apperror.ErrDuplicateRefund()
		}
	}
	if rec.EscrowStatus == domain.EscrowReleased {
		return nil, apperror.ErrInvalidSettlementState(string(rec.SettlementStatus))
	}

	stage := domain.DeriveCancellationStage(order.Tracking)
	breakdown := domain.ComputeCancellationRefund(stage, rec.UserPayment, rec.RestaurantEarning.NetEarning)

	now := time.Now().UTC()
	det := &domain.CancellationDetails{
		Cancelled:              true,
		Stage:                  stage,
		Reason:                 reason,
		RefundAmount:           breakdown.CustomerRefund,
		RestaurantCompensation: breakdown.RestaurantCompensation,
		RefundStatus:           domain.RefundPending,
		CalculatedAt:           &now,
	}
	if err := s.settlementRepo.SaveCancellationCalculation(ctx, orderID, det); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("stage", string(stage)).
		Int64("refund", breakdown.CustomerRefund).
		Int64("compensation", breakdown.RestaurantCompensation).
		Msg("cancellation refund calculated")

	s.audit.Record(ctx, &domain.AuditEntry{
		EntityType:      "settlement",
		EntityID:        orderID,
		Action:          "refund_calculated",
		ActionType:      "status_change",
		PerformedByKind: domain.AuditActorSystem,
		Changes: auditChanges(map[string]any{
			"stage":         string(stage),
			"refund_amount": breakdown.CustomerRefund,
		}),
	})

	return &ports.RefundOutcome{
		OrderID:                orderID,
		Stage:                  stage,
		CustomerRefund:         breakdown.CustomerRefund,
		RestaurantCompensation: breakdown.RestaurantCompensation,
	}, nil
}

func (s *RefundServiceImpl) ProcessCancellationRefund(ctx context.Context, orderID, reason string) (*ports.RefundOutcome, error) {
	rec, order, err := s.loadSettlementAndOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if done, outcome := s.alreadyRefunded(ctx, rec, order); done {
		return outcome, nil
	}

	// Captured before the claim cancels all earnings; admin reversal only
	// applies when components were actually credited beforehand.
	adminWasCredited := rec.AdminEarning.Status == domain.EarningCredited

	det, err := s.ensureCancelled(ctx, rec, order, reason)
	if err != nil {
		return nil, err
	}

	// Second gate: among callers that see the record cancelled, only the one
	// flipping the refund status to initiated moves money.
	won, err := s.settlementRepo.CasRefundStatus(ctx, orderID, domain.RefundPending, domain.RefundInitiated)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if !won {
		won, err = s.settlementRepo.CasRefundStatus(ctx, orderID, domain.RefundFailed, domain.RefundInitiated)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
	}
	if !won {
		return &ports.RefundOutcome{
			OrderID:                orderID,
			Stage:                  det.Stage,
			CustomerRefund:         det.RefundAmount,
			RestaurantCompensation: det.RestaurantCompensation,
			AlreadyRefunded:        true,
		}, nil
	}

	if det.RefundAmount > 0 {
		if err := s.creditCustomerRefund(ctx, rec, det.RefundAmount); err != nil {
			failReason := err.Error()
			if saveErr := s.settlementRepo.SetRefundResult(ctx, orderID, domain.RefundFailed, nil, &failReason, time.Now().UTC()); saveErr != nil {
				s.log.Error().Err(saveErr).Str("order_id", orderID).Msg("failed to record refund credit failure")
			}
			metrics.RefundsTotal.WithLabelValues("wallet", "failed").Inc()
			return nil, err
		}
	}
	s.creditRestaurantCompensation(ctx, rec, det)
	if adminWasCredited {
		s.reverseAdminEarnings(ctx, rec)
	}

	now := time.Now().UTC()
	if err := s.settlementRepo.SetRefundResult(ctx, orderID, domain.RefundProcessed, nil, nil, now); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	s.markRefundDone(ctx, orderID)

	metrics.RefundsTotal.WithLabelValues("wallet", "processed").Inc()
	s.log.Info().
		Str("order_id", orderID).
		Str("stage", string(det.Stage)).
		Int64("refund", det.RefundAmount).
		Msg("cancellation refund processed")

	s.audit.Record(ctx, &domain.AuditEntry{
		EntityType:      "settlement",
		EntityID:        orderID,
		Action:          "refund_processed",
		ActionType:      "financial",
		PerformedByKind: domain.AuditActorSystem,
		Changes: auditChanges(map[string]any{
			"stage":         string(det.Stage),
			"refund_amount": det.RefundAmount,
			"compensation":  det.RestaurantCompensation,
		}),
	})

	return &ports.RefundOutcome{
		OrderID:                orderID,
		Stage:                  det.Stage,
		CustomerRefund:         det.RefundAmount,
		RestaurantCompensation: det.RestaurantCompensation,
	}, nil
}

func (s *RefundServiceImpl) ProcessWalletRefund(ctx context.Context, orderID string) (*ports.RefundOutcome, error) {
	_, order, err := s.loadSettlementAndOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Payment.Method != domain.PaymentWallet {
		return nil, apperror.ErrNotWalletPayment()
	}
	if order.Status != domain.OrderCancelled {
		return nil, apperror.ErrOrderNotCancelled()
	}

	reason := "order cancelled"
	if order.CancellationReason != nil {
		reason = *order.CancellationReason
	}
	return s.ProcessCancellationRefund(ctx, orderID, reason)
}

func (s *RefundServiceImpl) ProcessGatewayRefund(ctx context.Context, orderID, adminID string) (*ports.GatewayRefundOutcome, error) {
	rec, order, err := s.loadSettlementAndOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Payment.Method == domain.PaymentWallet {
		return nil, apperror.Validation("wallet-paid orders refund in-ledger, not through the gateway")
	}
	if order.Payment.GatewayPaymentID == nil || *order.Payment.GatewayPaymentID == "" {
		return nil, apperror.ErrMissingGatewayPayment()
	}
	if order.Status != domain.OrderCancelled {
		return nil, apperror.ErrOrderNotCancelled()
	}
	det := rec.Cancellation
	if det == nil || !det.Cancelled {
		return nil, apperror.ErrRefundNotCalculated()
	}
	if det.RefundAmount <= 0 {
		return nil, apperror.Validation("no refundable amount for this order")
	}

	// The gateway refund takes the same cancel-path transition as the wallet
	// flow: escrow to refunded, settlement to cancelled, earnings cancelled.
	// A held escrow is consumed by exactly one of release or cancellation.
	det, err = s.ensureCancelled(ctx, rec, order, det.Reason)
	if err != nil {
		return nil, err
	}

	// Single-winner guard: only the caller that flips the status to initiated
	// may call the gateway. A failed attempt stays retryable.
	claimed, err := s.settlementRepo.CasRefundStatus(ctx, orderID, domain.RefundPending, domain.RefundInitiated)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if !claimed {
		claimed, err = s.settlementRepo.CasRefundStatus(ctx, orderID, domain.RefundFailed, domain.RefundInitiated)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
	}
	if !claimed {
		switch det.RefundStatus {
		case domain.RefundProcessed:
			return nil, apperror.ErrDuplicateRefund()
		default:
			return nil, apperror.ErrRefundAlreadyInitiated()
		}
	}

	notes := map[string]string{
		"order_id":     orderID,
		"initiated_by": adminID,
		"reason":       det.Reason,
	}
	refund, err := s.gateway.CreateRefund(ctx, *order.Payment.GatewayPaymentID, det.RefundAmount, notes)
	now := time.Now().UTC()
	if err != nil {
		reason := err.Error()
		if saveErr := s.settlementRepo.SetRefundResult(ctx, orderID, domain.RefundFailed, nil, &reason, now); saveErr != nil {
			s.log.Error().Err(saveErr).Str("order_id", orderID).Msg("failed to record gateway refund failure")
		}
		metrics.RefundsTotal.WithLabelValues("gateway", "failed").Inc()
		s.log.Error().Err(err).Str("order_id", orderID).Msg("gateway refund failed")
		return nil, apperror.ErrGatewayRefund(err)
	}

	if err := s.settlementRepo.SetRefundResult(ctx, orderID, domain.RefundProcessed, &refund.ID, nil, now); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	s.markRefundDone(ctx, orderID)

	metrics.RefundsTotal.WithLabelValues("gateway", "processed").Inc()
	s.log.Info().
		Str("order_id", orderID).
		Str("gateway_refund_id", refund.ID).
		Int64("amount", det.RefundAmount).
		Msg("gateway refund processed")

	s.audit.Record(ctx, &domain.AuditEntry{
		EntityType:      "settlement",
		EntityID:        orderID,
		Action:          "gateway_refund_processed",
		ActionType:      "financial",
		PerformedByKind: domain.AuditActorAdmin,
		PerformedByID:   adminID,
		Changes: auditChanges(map[string]any{
			"gateway_refund_id": refund.ID,
			"refund_amount":     det.RefundAmount,
		}),
	})

	return &ports.GatewayRefundOutcome{
		OrderID:         orderID,
		RefundAmount:    det.RefundAmount,
		GatewayRefundID: refund.ID,
		RefundStatus:    domain.RefundProcessed,
	}, nil
}

func (s *RefundServiceImpl) loadSettlementAndOrder(ctx context.Context, orderID string) (*domain.SettlementRecord, *domain.Order, error) {
	rec, err := s.settlementRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}
	if rec == nil {
		return nil, nil, apperror.ErrNotFound("settlement record")
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}
	if order == nil {
		return nil, nil, apperror.ErrNotFound("order")
	}
	return rec, order, nil
}

// alreadyRefunded is the layered duplicate guard: redis marker first, then the
// authoritative scan of the customer's wallet transactions.
func (s *RefundServiceImpl) alreadyRefunded(ctx context.Context, rec *domain.SettlementRecord, order *domain.Order) (bool, *ports.RefundOutcome) {
	outcome := func() *ports.RefundOutcome {
		o := &ports.RefundOutcome{OrderID: rec.OrderID, AlreadyRefunded: true}
		if rec.Cancellation != nil {
			o.Stage = rec.Cancellation.Stage
			o.CustomerRefund = rec.Cancellation.RefundAmount
			o.RestaurantCompensation = rec.Cancellation.RestaurantCompensation
		}
		return o
	}

	if s.idemCache != nil {
		if v, err := s.idemCache.Get(ctx, refundCacheKeyPrefix+rec.OrderID); err == nil && v != nil {
			return true, outcome()
		}
	}

	refunded, err := s.ledger.HasOrderRefund(ctx, order.UserID, domain.ActorUser, rec.OrderID)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", rec.OrderID).Msg("duplicate-refund scan failed, continuing")
		return false, nil
	}
	if refunded {
		return true, outcome()
	}
	if rec.Cancellation != nil && rec.Cancellation.RefundStatus == domain.RefundProcessed {
		return true, outcome()
	}
	return false, nil
}

// ensureCancelled moves the settlement onto the cancellation path if it is
// not there yet. Losing the claim race to another canceller is fine; losing
// it to a release is not.
func (s *RefundServiceImpl) ensureCancelled(ctx context.Context, rec *domain.SettlementRecord, order *domain.Order, reason string) (*domain.CancellationDetails, error) {
	if rec.SettlementStatus == domain.SettlementCancelled && rec.Cancellation != nil {
		return rec.Cancellation, nil
	}
	if !rec.CanCancel() {
		return nil, apperror.ErrInvalidEscrowState(string(rec.EscrowStatus))
	}

	stage := domain.DeriveCancellationStage(order.Tracking)
	breakdown := domain.ComputeCancellationRefund(stage, rec.UserPayment, rec.RestaurantEarning.NetEarning)

	now := time.Now().UTC()
	det := &domain.CancellationDetails{
		Cancelled:              true,
		Stage:                  stage,
		Reason:                 reason,
		RefundAmount:           breakdown.CustomerRefund,
		RestaurantCompensation: breakdown.RestaurantCompensation,
		RefundStatus:           domain.RefundPending,
		CalculatedAt:           &now,
	}
	if prev := rec.Cancellation; prev != nil && prev.CalculatedAt != nil {
		det.CalculatedAt = prev.CalculatedAt
	}

	claimed, err := s.settlementRepo.ClaimCancellation(ctx, rec.OrderID, det, now)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if claimed {
		return det, nil
	}

	fresh, err := s.settlementRepo.GetByOrderID(ctx, rec.OrderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if fresh != nil && fresh.SettlementStatus == domain.SettlementCancelled && fresh.Cancellation != nil {
		return fresh.Cancellation, nil
	}
	return nil, apperror.ErrInvalidEscrowState(string(domain.EscrowReleased))
}

func (s *RefundServiceImpl) creditCustomerRefund(ctx context.Context, rec *domain.SettlementRecord, amount int64) error {
	tx, err := domain.NewCompleted(
		domain.TransactionRefund,
		amount,
		fmt.Sprintf("refund for cancelled order %s", rec.OrderID),
		&rec.OrderID,
	)
	if err != nil {
		return err
	}
	if _, err := s.ledger.AddTransaction(ctx, rec.UserID, domain.ActorUser, tx); err != nil {
		return err
	}
	return nil
}

func (s *RefundServiceImpl) creditRestaurantCompensation(ctx context.Context, rec *domain.SettlementRecord, det *domain.CancellationDetails) {
	if det.RestaurantCompensation <= 0 {
		return
	}
	tx, err := domain.NewCompleted(
		domain.TransactionPayment,
		det.RestaurantCompensation,
		fmt.Sprintf("compensation for cancelled order %s", rec.OrderID),
		&rec.OrderID,
	)
	if err == nil {
		_, err = s.ledger.AddTransaction(ctx, rec.RestaurantID, domain.ActorRestaurant, tx)
	}
	if err != nil {
		metrics.PartyCreditFailures.WithLabelValues(string(ports.PartyRestaurant)).Inc()
		s.log.Error().Err(err).
			Str("order_id", rec.OrderID).
			Msg("restaurant compensation credit failed, left for reconciliation")
	}
}

// reverseAdminEarnings claws back platform components that were credited
// before the cancellation arrived. It only runs when earnings were credited
// prematurely, which the normal flow never does.
func (s *RefundServiceImpl) reverseAdminEarnings(ctx context.Context, rec *domain.SettlementRecord) {
	components := []struct {
		amount int64
		desc   string
	}{
		{rec.AdminEarning.Commission, "commission reversal for %s"},
		{rec.AdminEarning.PlatformFee, "platform fee reversal for %s"},
		{rec.AdminEarning.DeliveryFee, "delivery fee reversal for %s"},
		{rec.AdminEarning.GST, "gst reversal for %s"},
	}
	for _, c := range components {
		if c.amount <= 0 {
			continue
		}
		tx, err := domain.NewCompleted(domain.TransactionDeduction, c.amount, fmt.Sprintf(c.desc, rec.OrderID), nil)
		if err == nil {
			_, err = s.ledger.AddTransaction(ctx, domain.PlatformActorID, domain.ActorAdmin, tx)
		}
		if err != nil {
			s.log.Error().Err(err).
				Str("order_id", rec.OrderID).
				Int64("amount", c.amount).
				Msg("admin earning reversal failed")
		}
	}
}

func (s *RefundServiceImpl) markRefundDone(ctx context.Context, orderID string) {
	if s.idemCache == nil {
		return
	}
	if err := s.idemCache.Set(ctx, refundCacheKeyPrefix+orderID, []byte("1"), s.refundTTL); err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("failed to set refund marker")
	}
}
