package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salescoach_evaluation_duration_seconds",
			Help:    "Full evaluation pipeline duration in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"methodology", "mode"},
	)

	EvaluationScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salescoach_evaluation_overall_score",
			Help:    "Overall evaluation scores on the 0-100 scale",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"methodology"},
	)

	OracleCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salescoach_oracle_calls_total",
			Help: "Dimension-scoring oracle calls by outcome",
		},
		[]string{"status"},
	)

	DimensionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "salescoach_dimension_failures_total",
			Help: "Dimensions degraded to an error-flagged zero score",
		},
	)

	ActiveConversations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "salescoach_active_conversations",
			Help: "Practice conversations currently in the active state",
		},
	)

	MessagesExchanged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "salescoach_messages_exchanged_total",
			Help: "User/persona message pairs exchanged in practice sessions",
		},
	)
)

func Register() {
	prometheus.MustRegister(
		EvaluationDuration,
		EvaluationScore,
		OracleCalls,
		DimensionFailures,
		ActiveConversations,
		MessagesExchanged,
	)
}

// Handler exposes the registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
