package handler

import (
	"marketplace-settlement/internal/adapter/http/dto"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/apperror"
	"marketplace-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// CommissionHandler handles commission configuration endpoints.
type CommissionHandler struct {
	commissionSvc ports.CommissionService
}

// NewCommissionHandler creates a new CommissionHandler.
func NewCommissionHandler(commissionSvc ports.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionSvc: commissionSvc}
}

// SaveConfig handles PUT /api/v1/commissions/config. Admin-only.
func (h *CommissionHandler) SaveConfig(c *gin.Context) {
	var req dto.CommissionConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	cfg := req.ToDomain()
	if err := h.commissionSvc.SaveConfig(c.Request.Context(), cfg); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, cfg)
}

// GetConfig handles GET /api/v1/commissions/:restaurantID.
func (h *CommissionHandler) GetConfig(c *gin.Context) {
	restaurantID := c.Param("restaurantID")
	if restaurantID == "" {
		response.Error(c, apperror.Validation("restaurant id is required"))
		return
	}

	cfg, err := h.commissionSvc.GetConfig(c.Request.Context(), restaurantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, cfg)
}

// Calculate handles POST /api/v1/commissions/calculate. Previews the
// commission split for an order amount without touching any settlement.
func (h *CommissionHandler) Calculate(c *gin.Context) {
	var req dto.CalculateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.commissionSvc.CalculateForOrder(c.Request.Context(), req.RestaurantID, req.OrderAmount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}
