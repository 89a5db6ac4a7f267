// Package metrics provides the centralized Prometheus metrics registry for
// the odds tracker.
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
	GamesGradedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "odds_tracker",
		Name:      "games_graded_total",
		Help:      "Total number of game records labeled",
	})
	InvalidRecordsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "odds_tracker",
		Name:      "invalid_records_total",
		Help:      "Total number of game records rejected as invalid",
	})
	GradingPassesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "odds_tracker",
		Name:      "grading_passes_total",
		Help:      "Total number of grading passes by grouping",
	}, []string{"grouping"})
	TableLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "odds_tracker",
		Name:      "table_loads_total",
		Help:      "Total number of game table loads by cache outcome",
	}, []string{"outcome"})
)

// Gauge metrics
var (
	LoadedGames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "odds_tracker",
		Name:      "loaded_games",
		Help:      "Number of game records in the currently loaded table",
	})
	LastPassAccuracy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "odds_tracker",
		Name:      "last_pass_moneyline_accuracy",
		Help:      "Whole-set moneyline accuracy from the most recent pass",
	}, []string{"grouping"})
)

// Histogram metrics
var (
	GradingPassDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "odds_tracker",
		Name:      "grading_pass_duration_seconds",
		Help:      "Duration of grading passes in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	TableLoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "odds_tracker",
		Name:      "table_load_duration_seconds",
		Help:      "Duration of game table loads in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(GamesGradedTotal)
		registry.MustRegister(InvalidRecordsTotal)
		registry.MustRegister(GradingPassesTotal)
		registry.MustRegister(TableLoadsTotal)

		registry.MustRegister(LoadedGames)
		registry.MustRegister(LastPassAccuracy)

		registry.MustRegister(GradingPassDuration)
		registry.MustRegister(TableLoadDuration)
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

// RecordGameGraded records a labeled game.
func RecordGameGraded() {
	GamesGradedTotal.Inc()
}

// RecordInvalidRecord records a rejected game record.
func RecordInvalidRecord() {
	InvalidRecordsTotal.Inc()
}

// RecordGradingPass records a completed grading pass.
func RecordGradingPass(grouping string, durationSeconds float64, accuracy float64) {
	GradingPassesTotal.WithLabelValues(grouping).Inc()
	GradingPassDuration.Observe(durationSeconds)
	LastPassAccuracy.WithLabelValues(grouping).Set(accuracy)
}

// RecordTableLoad records a game table load.
func RecordTableLoad(outcome string, durationSeconds float64, games int) {
	TableLoadsTotal.WithLabelValues(outcome).Inc()
	TableLoadDuration.Observe(durationSeconds)
	LoadedGames.Set(float64(games))
}
