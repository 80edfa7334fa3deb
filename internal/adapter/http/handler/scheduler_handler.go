package handler

import (
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// SchedulerHandler exposes a manual trigger for the auto-reject sweep.
type SchedulerHandler struct {
	schedulerSvc ports.SchedulerService
}

// NewSchedulerHandler creates a new SchedulerHandler.
func NewSchedulerHandler(schedulerSvc ports.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{schedulerSvc: schedulerSvc}
}

// RunAutoReject handles POST /api/v1/scheduler/auto-reject. Admin-only;
// runs one sweep immediately instead of waiting for the next tick.
func (h *SchedulerHandler) RunAutoReject(c *gin.Context) {
	result, err := h.schedulerSvc.ProcessAutoRejectOrders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}
