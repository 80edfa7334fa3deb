package handler

import (
	"marketplace-settlement/internal/adapter/http/dto"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/apperror"
	"marketplace-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// SettlementHandler handles escrow lifecycle endpoints.
type SettlementHandler struct {
	escrowSvc ports.EscrowService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(escrowSvc ports.EscrowService) *SettlementHandler {
	return &SettlementHandler{escrowSvc: escrowSvc}
}

// HoldEscrow handles POST /api/v1/settlements/escrow.
func (h *SettlementHandler) HoldEscrow(c *gin.Context) {
	var req dto.HoldEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rec, err := h.escrowSvc.HoldEscrow(c.Request.Context(), req.ToPort())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, rec)
}

// ReleaseEscrow handles POST /api/v1/settlements/:orderID/release.
func (h *SettlementHandler) ReleaseEscrow(c *gin.Context) {
	orderID := c.Param("orderID")
	if orderID == "" {
		response.Error(c, apperror.Validation("order id is required"))
		return
	}

	result, err := h.escrowSvc.ReleaseEscrow(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// GetSettlement handles GET /api/v1/settlements/:orderID.
func (h *SettlementHandler) GetSettlement(c *gin.Context) {
	orderID := c.Param("orderID")
	if orderID == "" {
		response.Error(c, apperror.Validation("order id is required"))
		return
	}

	rec, err := h.escrowSvc.GetSettlement(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, rec)
}
