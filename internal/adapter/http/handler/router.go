package handler

import (
	"marketplace-settlement/internal/adapter/http/middleware"
	"marketplace-settlement/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	EscrowSvc      ports.EscrowService
	RefundSvc      ports.RefundService
	CommissionSvc  ports.CommissionService
	WalletLedger   ports.WalletLedger
	SchedulerSvc   ports.SchedulerService
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
// Hold/release/refund routes are service-to-service; admin-attributed
// operations sit behind JWT.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics())

	// Health check (deep check, verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	settlementHandler := NewSettlementHandler(deps.EscrowSvc)
	refundHandler := NewRefundHandler(deps.RefundSvc)
	commissionHandler := NewCommissionHandler(deps.CommissionSvc)
	walletHandler := NewWalletHandler(deps.WalletLedger)
	schedulerHandler := NewSchedulerHandler(deps.SchedulerSvc)

	v1 := r.Group("/api/v1")

	settlements := v1.Group("/settlements")
	{
		settlements.POST("/escrow", settlementHandler.HoldEscrow)
		settlements.GET("/:orderID", settlementHandler.GetSettlement)
		settlements.POST("/:orderID/release", settlementHandler.ReleaseEscrow)
		settlements.POST("/:orderID/refund/calculate", refundHandler.CalculateRefund)
		settlements.POST("/:orderID/refund/process", refundHandler.ProcessRefund)
		settlements.POST("/:orderID/refund/wallet", refundHandler.ProcessWalletRefund)
		settlements.POST("/:orderID/refund/gateway", jwtAuth, refundHandler.ProcessGatewayRefund)
	}

	commissions := v1.Group("/commissions")
	{
		commissions.PUT("/config", jwtAuth, commissionHandler.SaveConfig)
		commissions.GET("/:restaurantID", commissionHandler.GetConfig)
		commissions.POST("/calculate", commissionHandler.Calculate)
	}

	wallets := v1.Group("/wallets")
	{
		wallets.GET("/:kind/:actorID/balance", walletHandler.GetBalance)
		wallets.GET("/:kind/:actorID/transactions", walletHandler.ListTransactions)
	}

	scheduler := v1.Group("/scheduler", jwtAuth)
	{
		scheduler.POST("/auto-reject", schedulerHandler.RunAutoReject)
	}

	return r
}
