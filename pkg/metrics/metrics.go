package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Settlement core metrics.
var (
	EscrowHeldTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_escrow_held_total",
		Help: "Orders whose funds were placed in escrow",
	})

	EscrowReleasedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_escrow_released_total",
		Help: "Escrows released to restaurant/delivery/admin wallets",
	})

	PartyCreditFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_party_credit_failures_total",
		Help: "Per-party wallet credit failures during escrow release",
	}, []string{"party"})

	RefundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_refunds_total",
		Help: "Refunds processed, by channel and outcome",
	}, []string{"channel", "outcome"})

	WalletTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_wallet_transactions_total",
		Help: "Wallet ledger transactions appended, by type",
	}, []string{"type"})

	InsufficientBalanceTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_insufficient_balance_total",
		Help: "Deductions rejected for insufficient balance",
	})

	AutoRejectSweepOrders = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "settlement_auto_reject_sweep_orders",
		Help:    "Orders force-cancelled per auto-reject sweep",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	})

	OutboxDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_outbox_deliveries_total",
		Help: "Outbox message delivery attempts, by outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "settlement_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "path"})
)
