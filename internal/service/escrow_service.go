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

// EscrowServiceImpl moves order money through the hold/release lifecycle.
// Party credits during release are independent: one failing wallet credit
// never blocks or reverses the others.
type EscrowServiceImpl struct {
	settlementRepo ports.SettlementRepository
	commissionSvc  ports.CommissionService
	ledger         ports.WalletLedger
	audit          ports.AuditService
	log            zerolog.Logger
}

func NewEscrowService(
	settlementRepo ports.SettlementRepository,
	commissionSvc ports.CommissionService,
	ledger ports.WalletLedger,
	audit ports.AuditService,
	log zerolog.Logger,
) ports.EscrowService {
	return &EscrowServiceImpl{
		settlementRepo: settlementRepo,
		commissionSvc:  commissionSvc,
		ledger:         ledger,
		audit:          audit,
		log:            logger.Component(log, "escrow_service"),
	}
}

func (s *EscrowServiceImpl) HoldEscrow(ctx context.Context, req ports.HoldEscrowRequest) (*domain.SettlementRecord, error) {
	if req.OrderID == "" || req.UserID == "" || req.RestaurantID == "" {
		return nil, apperror.Validation("order_id, user_id and restaurant_id are required")
	}
	if err := validatePayment(req.Payment); err != nil {
		return nil, err
	}

	existing, err := s.settlementRepo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if existing != nil {
		return nil, apperror.ErrInvalidEscrowState(string(existing.EscrowStatus))
	}

	commission, err := s.commissionSvc.CalculateForOrder(ctx, req.RestaurantID, req.Payment.Subtotal)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	deliveryTotal := req.Delivery.BasePayout + req.Delivery.DistancePayout + req.Delivery.SurgeAmount

	var commissionPct float64
	if commission.CommissionType == domain.CommissionPercentage {
		commissionPct = commission.CommissionValue
	}

	rec := &domain.SettlementRecord{
		OrderID:           req.OrderID,
		OrderNumber:       req.OrderNumber,
		UserID:            req.UserID,
		RestaurantID:      req.RestaurantID,
		DeliveryPartnerID: req.DeliveryPartnerID,
		EscrowAmount:      req.Payment.Total,
		EscrowStatus:      domain.EscrowHeld,
		SettlementStatus:  domain.SettlementPending,
		UserPayment:       req.Payment,
		RestaurantEarning: domain.RestaurantEarning{
			FoodPrice:            req.Payment.Subtotal,
			Commission:           commission.CommissionAmount,
			CommissionPercentage: commissionPct,
			NetEarning:           commission.NetAmount,
			Status:               domain.EarningPending,
		},
		DeliveryEarning: domain.DeliveryEarning{
			BasePayout:     req.Delivery.BasePayout,
			DistancePayout: req.Delivery.DistancePayout,
			SurgeAmount:    req.Delivery.SurgeAmount,
			TotalEarning:   deliveryTotal,
			Status:         domain.EarningPending,
		},
		AdminEarning: domain.AdminEarning{
			Commission:   commission.CommissionAmount,
			PlatformFee:  req.Payment.PlatformFee,
			DeliveryFee:  req.Payment.DeliveryFee,
			GST:          req.Payment.GST,
			TotalEarning: commission.CommissionAmount + req.Payment.PlatformFee + req.Payment.DeliveryFee + req.Payment.GST,
			Status:       domain.EarningPending,
		},
		EscrowHeldAt: &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.settlementRepo.Create(ctx, rec); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	metrics.EscrowHeldTotal.Inc()
	s.log.Info().
		Str("order_id", req.OrderID).
		Int64("escrow_amount", rec.EscrowAmount).
		Int64("commission", commission.CommissionAmount).
		Msg("escrow held")

	s.audit.Record(ctx, &domain.AuditEntry{
		EntityType:      "settlement",
		EntityID:        req.OrderID,
		Action:          "escrow_held",
		ActionType:      "financial",
		PerformedByKind: domain.AuditActorSystem,
		Changes: auditChanges(map[string]any{
			"escrow_amount": rec.EscrowAmount,
			"commission":    commission.CommissionAmount,
		}),
	})

	return rec, nil
}

func (s *EscrowServiceImpl) ReleaseEscrow(ctx context.Context, orderID string) (*ports.ReleaseResult, error) {
	rec, err := s.settlementRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("settlement record")
	}
	if !rec.CanRelease() {
		return nil, apperror.ErrInvalidEscrowState(string(rec.EscrowStatus))
	}

	now := time.Now().UTC()
	claimed, err := s.settlementRepo.ClaimRelease(ctx, orderID, now)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if !claimed {
		// Another caller won the transition between our read and the update.
		return nil, apperror.ErrInvalidEscrowState(string(domain.EscrowReleased))
	}

	result := &ports.ReleaseResult{OrderID: orderID}

	s.creditRestaurant(ctx, rec, result)
	s.creditDelivery(ctx, rec, result)
	s.creditAdmin(ctx, rec, result)

	metrics.EscrowReleasedTotal.Inc()
	s.log.Info().
		Str("order_id", orderID).
		Int64("credited_total", creditedSum(result)).
		Int("failures", len(result.Failed)).
		Msg("escrow released")

	s.audit.Record(ctx, &domain.AuditEntry{
		EntityType:      "settlement",
		EntityID:        orderID,
		Action:          "escrow_released",
		ActionType:      "financial",
		PerformedByKind: domain.AuditActorSystem,
		Changes: auditChanges(map[string]any{
			"credited_total": creditedSum(result),
			"failures":       len(result.Failed),
		}),
	})

	return result, nil
}

func (s *EscrowServiceImpl) GetSettlement(ctx context.Context, orderID string) (*domain.SettlementRecord, error) {
	rec, err := s.settlementRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("settlement record")
	}
	return rec, nil
}

func (s *EscrowServiceImpl) creditRestaurant(ctx context.Context, rec *domain.SettlementRecord, result *ports.ReleaseResult) {
	if rec.RestaurantEarning.NetEarning <= 0 {
		return
	}
	tx, err := domain.NewCompleted(
		domain.TransactionPayment,
		rec.RestaurantEarning.NetEarning,
		fmt.Sprintf("order earning for %s", rec.OrderID),
		&rec.OrderID,
	)
	if err == nil {
		_, err = s.ledger.AddTransaction(ctx, rec.RestaurantID, domain.ActorRestaurant, tx)
	}
	if err != nil {
		s.recordPartyFailure(ctx, rec.OrderID, ports.PartyRestaurant, err, result)
		return
	}
	s.markCredited(ctx, rec.OrderID, ports.PartyRestaurant)
	result.Credited = append(result.Credited, ports.PartyCredit{
		Party:  ports.PartyRestaurant,
		Amount: rec.RestaurantEarning.NetEarning,
	})
}

func (s *EscrowServiceImpl) creditDelivery(ctx context.Context, rec *domain.SettlementRecord, result *ports.ReleaseResult) {
	if rec.DeliveryPartnerID == nil || rec.DeliveryEarning.TotalEarning <= 0 {
		return
	}
	tx, err := domain.NewCompleted(
		domain.TransactionPayment,
		rec.DeliveryEarning.TotalEarning,
		fmt.Sprintf("delivery payout for %s", rec.OrderID),
		&rec.OrderID,
	)
	if err == nil {
		_, err = s.ledger.AddTransaction(ctx, *rec.DeliveryPartnerID, domain.ActorDelivery, tx)
	}
	if err != nil {
		s.recordPartyFailure(ctx, rec.OrderID, ports.PartyDelivery, err, result)
		return
	}
	s.markCredited(ctx, rec.OrderID, ports.PartyDelivery)
	result.Credited = append(result.Credited, ports.PartyCredit{
		Party:  ports.PartyDelivery,
		Amount: rec.DeliveryEarning.TotalEarning,
	})
}

// creditAdmin writes one typed transaction per earning component so the
// platform ledger stays queryable by revenue stream.
func (s *EscrowServiceImpl) creditAdmin(ctx context.Context, rec *domain.SettlementRecord, result *ports.ReleaseResult) {
	components := []struct {
		txType domain.TransactionType
		amount int64
		desc   string
	}{
		{domain.TransactionCommission, rec.AdminEarning.Commission, "commission for %s"},
		{domain.TransactionPlatformFee, rec.AdminEarning.PlatformFee, "platform fee for %s"},
		{domain.TransactionDeliveryFee, rec.AdminEarning.DeliveryFee, "delivery fee for %s"},
		{domain.TransactionGST, rec.AdminEarning.GST, "gst for %s"},
	}

	var credited int64
	for _, c := range components {
		if c.amount <= 0 {
			continue
		}
		tx, err := domain.NewCompleted(c.txType, c.amount, fmt.Sprintf(c.desc, rec.OrderID), &rec.OrderID)
		if err == nil {
			_, err = s.ledger.AddTransaction(ctx, domain.PlatformActorID, domain.ActorAdmin, tx)
		}
		if err != nil {
			s.recordPartyFailure(ctx, rec.OrderID, ports.PartyAdmin, err, result)
			if credited > 0 {
				result.Credited = append(result.Credited, ports.PartyCredit{Party: ports.PartyAdmin, Amount: credited})
			}
			return
		}
		credited += c.amount
	}

	s.markCredited(ctx, rec.OrderID, ports.PartyAdmin)
	if credited > 0 {
		result.Credited = append(result.Credited, ports.PartyCredit{Party: ports.PartyAdmin, Amount: credited})
	}
}

func (s *EscrowServiceImpl) markCredited(ctx context.Context, orderID string, party ports.SettlementParty) {
	now := time.Now().UTC()
	if err := s.settlementRepo.SetEarningStatus(ctx, orderID, party, domain.EarningCredited, now); err != nil {
		s.log.Error().Err(err).
			Str("order_id", orderID).
			Str("party", string(party)).
			Msg("failed to mark earning credited")
	}
}

func (s *EscrowServiceImpl) recordPartyFailure(ctx context.Context, orderID string, party ports.SettlementParty, err error, result *ports.ReleaseResult) {
	metrics.PartyCreditFailures.WithLabelValues(string(party)).Inc()
	s.log.Error().Err(err).
		Str("order_id", orderID).
		Str("party", string(party)).
		Msg("party credit failed, earning left pending for reconciliation")
	result.Failed = append(result.Failed, ports.PartyFailure{
		Party:  party,
		Reason: err.Error(),
	})
}

func creditedSum(result *ports.ReleaseResult) int64 {
	var total int64
	for _, c := range result.Credited {
		total += c.Amount
	}
	return total
}

func validatePayment(p domain.UserPayment) error {
	for _, v := range []int64{p.Subtotal, p.Discount, p.DeliveryFee, p.PlatformFee, p.GST, p.PackagingFee, p.Total} {
		if v < 0 {
			return apperror.Validation("payment components must be non-negative")
		}
	}
	expected := p.Subtotal - p.Discount + p.DeliveryFee + p.PlatformFee + p.GST + p.PackagingFee
	if expected != p.Total {
		return apperror.Validation("payment total does not match its components")
	}
	return nil
}
