// Package observability provides the facade's own diagnostics: structured
// logging and Prometheus meta-metrics.
//
// # Overview
//
// The telemetry facade never surfaces failures to callers, so this package is
// the only place those failures become visible. The Logger is the diagnostic
// channel for degraded-mode drops and swallowed provider errors; Metrics
// count initialization outcomes, emitted and dropped events, and timing
// registry activity.
//
// # Usage Example
//
// Create logger and metrics:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//
// Log with fields:
//
//	logger.WithField("event", name).Debug("no analytics instance, dropping")
//
// # Related Packages
//
//   - pkg/telemetry: Reports drops and provider errors here
//   - pkg/timing: Records operation durations here
package observability
