package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-settlement/config"
	"marketplace-settlement/internal/adapter/gateway"
	httpHandler "marketplace-settlement/internal/adapter/http/handler"
	pgStorage "marketplace-settlement/internal/adapter/storage/postgres"
	redisStorage "marketplace-settlement/internal/adapter/storage/redis"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/internal/service"
	"marketplace-settlement/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Settlement Service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	settlementRepo := pgStorage.NewSettlementRepo(pool)
	orderRepo := pgStorage.NewOrderRepo(pool)
	commissionRepo := pgStorage.NewCommissionRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	outboxRepo := pgStorage.NewOutboxRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	commissionCache := redisStorage.NewCommissionCache(rdb)

	// Initialize external gateways
	refundGateway := gateway.NewRazorpayGateway(cfg.Gateway, &http.Client{Timeout: cfg.Gateway.Timeout}, log)
	notifier := gateway.NewRestaurantNotifier(cfg.Notifier, &http.Client{Timeout: cfg.Notifier.Timeout}, log)

	// Initialize core services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(auditRepo, log)
	ledger := service.NewWalletLedger(walletRepo, transactor, log)
	commissionSvc := service.NewCommissionService(commissionRepo, commissionCache, cfg.Cache.CommissionTTL, log)
	escrowSvc := service.NewEscrowService(settlementRepo, commissionSvc, ledger, auditSvc, log)
	refundSvc := service.NewRefundService(settlementRepo, orderRepo, ledger, refundGateway, idempotencyCache, auditSvc, cfg.Cache.RefundTTL, log)
	schedulerSvc := service.NewSchedulerService(orderRepo, refundSvc, outboxRepo, auditSvc, cfg.Scheduler.AcceptSLA, log)
	dispatcher := service.NewOutboxDispatcher(outboxRepo, notifier, cfg.Outbox.BatchSize, log)

	// Background workers
	go schedulerSvc.Run(ctx, cfg.Scheduler.Interval)
	go dispatcher.Run(ctx, cfg.Outbox.PollInterval)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		EscrowSvc:      escrowSvc,
		RefundSvc:      refundSvc,
		CommissionSvc:  commissionSvc,
		WalletLedger:   ledger,
		SchedulerSvc:   schedulerSvc,
		TokenSvc:       tokenSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
