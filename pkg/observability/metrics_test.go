package observability

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersAll(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	require.NotNil(t, metrics)
	assert.NotNil(t, metrics.InitAttemptsTotal)
	assert.NotNil(t, metrics.EventsEmittedTotal)
	assert.NotNil(t, metrics.EventsDroppedTotal)
	assert.NotNil(t, metrics.ProviderErrorsTotal)
	assert.NotNil(t, metrics.OperationDuration)
	assert.NotNil(t, metrics.ActiveOperations)
}

func TestNewMetrics_NilRegistry(t *testing.T) {
	// Unregistered metrics are still usable, they just collect nowhere.
	metrics := NewMetrics(nil)
	metrics.EventsDroppedTotal.WithLabelValues("not_initialized").Inc()
}

func TestMetrics_CounterValues(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.EventsEmittedTotal.WithLabelValues("native").Inc()
	metrics.EventsEmittedTotal.WithLabelValues("native").Inc()
	metrics.EventsEmittedTotal.WithLabelValues("web").Inc()

	expected := `
		# HELP beacon_events_emitted_total Total number of events forwarded to a provider
		# TYPE beacon_events_emitted_total counter
		beacon_events_emitted_total{provider="native"} 2
		beacon_events_emitted_total{provider="web"} 1
	`
	require.NoError(t, testutil.CollectAndCompare(metrics.EventsEmittedTotal, strings.NewReader(expected)))
}

func TestMetrics_DroppedByReason(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.EventsDroppedTotal.WithLabelValues("no_instance").Inc()
	metrics.EventsDroppedTotal.WithLabelValues("not_initialized").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EventsDroppedTotal.WithLabelValues("no_instance")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EventsDroppedTotal.WithLabelValues("not_initialized")))
}

func TestMetrics_ActiveOperationsGauge(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.ActiveOperations.Inc()
	metrics.ActiveOperations.Inc()
	metrics.ActiveOperations.Dec()

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ActiveOperations))
}
