package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_cycles_total",
			Help: "Pipeline cycles by outcome",
		},
		[]string{"status"},
	)

	cycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_cycle_duration_seconds",
			Help:    "Duration of one pipeline cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	readingsPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "readings_persisted_total",
			Help: "Sensor reading rows committed to the reading log",
		},
	)

	turbinesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "turbines_skipped_total",
			Help: "Turbines excluded from an insert because a field was missing",
		},
	)

	breachesDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "temperature_breaches_total",
			Help: "Turbines found at or above the temperature threshold",
		},
	)

	alertsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "alerts_generated_total",
			Help: "Alert rows appended by the generation routine",
		},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Cycle notifications by path and outcome",
		},
		[]string{"path", "status"},
	)

	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_resolutions_total",
			Help: "Alert resolution attempts by outcome",
		},
		[]string{"status"},
	)
)
