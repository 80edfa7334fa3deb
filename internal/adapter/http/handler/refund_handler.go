package handler

import (
	"marketplace-settlement/internal/adapter/http/dto"
	"marketplace-settlement/internal/adapter/http/middleware"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/apperror"
	"marketplace-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// RefundHandler handles cancellation refund endpoints.
type RefundHandler struct {
	refundSvc ports.RefundService
}

// NewRefundHandler creates a new RefundHandler.
func NewRefundHandler(refundSvc ports.RefundService) *RefundHandler {
	return &RefundHandler{refundSvc: refundSvc}
}

// CalculateRefund handles POST /api/v1/settlements/:orderID/refund/calculate.
// Computes and records the refund breakdown without moving money.
func (h *RefundHandler) CalculateRefund(c *gin.Context) {
	orderID := c.Param("orderID")
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	outcome, err := h.refundSvc.CalculateCancellationRefund(c.Request.Context(), orderID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, outcome)
}

// ProcessRefund handles POST /api/v1/settlements/:orderID/refund/process.
// Computes and immediately executes the in-ledger refund.
func (h *RefundHandler) ProcessRefund(c *gin.Context) {
	orderID := c.Param("orderID")
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	outcome, err := h.refundSvc.ProcessCancellationRefund(c.Request.Context(), orderID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, outcome)
}

// ProcessWalletRefund handles POST /api/v1/settlements/:orderID/refund/wallet.
// Instant in-ledger refund for wallet-paid orders.
func (h *RefundHandler) ProcessWalletRefund(c *gin.Context) {
	orderID := c.Param("orderID")

	outcome, err := h.refundSvc.ProcessWalletRefund(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, outcome)
}

// ProcessGatewayRefund handles POST /api/v1/settlements/:orderID/refund/gateway.
// Admin-only; pushes a previously calculated refund through the external
// payment gateway, attributed to the authenticated admin.
func (h *RefundHandler) ProcessGatewayRefund(c *gin.Context) {
	orderID := c.Param("orderID")

	adminID, ok := c.Get(middleware.CtxActorID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	outcome, err := h.refundSvc.ProcessGatewayRefund(c.Request.Context(), orderID, adminID.(string))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, outcome)
}
