// Package config loads telemetry bootstrap configuration.
//
// # Overview
//
// Configuration comes from BEACON_* environment variables (LoadConfig) or a
// YAML file (LoadFile). Both paths validate before returning. The facade
// itself never reads configuration; this package is bootstrap glue for the
// host process.
//
// # Environment Variables
//
//	BEACON_ENABLED             Enable the facade (default true)
//	BEACON_ENVIRONMENT         auto | web | native (default auto)
//	BEACON_LOG_LEVEL           debug | info | warn | error (default info)
//	BEACON_METRICS_ENABLED     Register Prometheus meta-metrics (default false)
//	BEACON_OTEL_ENABLED        Enable the OTel span provider (default false)
//	BEACON_OTEL_SERVICE_NAME   Tracer name for the OTel provider
//	BEACON_REDIS_ENABLED       Enable the Redis stream provider (default false)
//	BEACON_REDIS_ADDR          Redis address (default localhost:6379)
//	BEACON_REDIS_STREAM        Stream key (default beacon:events)
//	BEACON_REDIS_DIAL_TIMEOUT  Dial timeout (default 5s)
//
// # Related Packages
//
//   - pkg/telemetry: Consumes the detect function built here
//   - pkg/providers/otelprovider, pkg/providers/redisprovider: Configured here
package config
