package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics describing the facade itself. These are
// meta-telemetry: they count what the facade did with caller events, not the
// events' contents.
type Metrics struct {
	// Initialization metrics
	InitAttemptsTotal *prometheus.CounterVec

	// Dispatch metrics
	EventsEmittedTotal *prometheus.CounterVec
	EventsDroppedTotal *prometheus.CounterVec
	ProviderErrorsTotal *prometheus.CounterVec

	// Timing registry metrics
	OperationDuration *prometheus.HistogramVec
	ActiveOperations  prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		InitAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beacon_init_attempts_total",
				Help: "Total number of provider-selection attempts by outcome",
			},
			[]string{"outcome"},
		),
		EventsEmittedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beacon_events_emitted_total",
				Help: "Total number of events forwarded to a provider",
			},
			[]string{"provider"},
		),
		EventsDroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beacon_events_dropped_total",
				Help: "Total number of events dropped before reaching a provider",
			},
			[]string{"reason"},
		),
		ProviderErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beacon_provider_errors_total",
				Help: "Total number of swallowed provider call failures",
			},
			[]string{"provider", "operation"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "beacon_operation_duration_seconds",
				Help:    "Durations measured by the timing registry",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"success"},
		),
		ActiveOperations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "beacon_active_operations",
				Help: "Number of started but not yet ended timed operations",
			},
		),
	}

	if registry != nil {
		registry.MustRegister(
			m.InitAttemptsTotal,
			m.EventsEmittedTotal,
			m.EventsDroppedTotal,
			m.ProviderErrorsTotal,
			m.OperationDuration,
			m.ActiveOperations,
		)
	}

	return m
}
