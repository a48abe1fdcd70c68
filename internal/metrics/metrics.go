// Package metrics provides the centralized Prometheus metrics registry for
// replay runs.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ReplaysTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "model_sentry",
		Name:      "replays_total",
		Help:      "Total number of replay runs completed",
	})
	DecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "model_sentry",
		Name:      "decisions_total",
		Help:      "Total strategy decisions, labelled by strategy and action",
	}, []string{"strategy", "action"})
	SwitchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "model_sentry",
		Name:      "switches_total",
		Help:      "Total model switches per strategy",
	}, []string{"strategy"})
	BlockedDaysTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "model_sentry",
		Name:      "blocked_days_total",
		Help:      "Total days a strategy trusted no model",
	}, []string{"strategy"})
	LedgerLoadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "model_sentry",
		Name:      "ledger_loads_total",
		Help:      "Total pick ledger loads from the backing store",
	})
)

// Gauge metrics
var (
	CumulativePnL = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "model_sentry",
		Name:      "cumulative_pnl",
		Help:      "Cumulative P&L of the most recent replay run per strategy",
	}, []string{"strategy"})
	RunHitRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "model_sentry",
		Name:      "run_hit_rate",
		Help:      "Hit rate percentage of the most recent replay run per strategy",
	}, []string{"strategy"})
)

// Histogram metrics
var (
	ReplayDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "model_sentry",
		Name:      "replay_duration_seconds",
		Help:      "Duration of replay runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ReplaysTotal)
		registry.MustRegister(DecisionsTotal)
		registry.MustRegister(SwitchesTotal)
		registry.MustRegister(BlockedDaysTotal)
		registry.MustRegister(LedgerLoadsTotal)

		registry.MustRegister(CumulativePnL)
		registry.MustRegister(RunHitRate)

		registry.MustRegister(ReplayDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordDecision records a single day's strategy decision.
func RecordDecision(strategyName, action string) {
	DecisionsTotal.WithLabelValues(strategyName, action).Inc()
}

// RecordSwitch records a champion switch.
func RecordSwitch(strategyName string) {
	SwitchesTotal.WithLabelValues(strategyName).Inc()
}

// RecordBlockedDay records a day on which no model was trusted.
func RecordBlockedDay(strategyName string) {
	BlockedDaysTotal.WithLabelValues(strategyName).Inc()
}

// RecordLedgerLoad records a pick ledger load from the backing store.
func RecordLedgerLoad() {
	LedgerLoadsTotal.Inc()
}

// RecordRunComplete records the aggregate outcome of a finished replay run.
func RecordRunComplete(strategyName string, durationSeconds, cumulativePnL, hitRate float64) {
	ReplaysTotal.Inc()
	ReplayDuration.Observe(durationSeconds)
	CumulativePnL.WithLabelValues(strategyName).Set(cumulativePnL)
	RunHitRate.WithLabelValues(strategyName).Set(hitRate)
}
