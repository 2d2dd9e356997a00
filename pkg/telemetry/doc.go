// Package telemetry provides a platform-adaptive analytics facade.
//
// # Overview
//
// One logical API for emitting analytics events, user identity and
// properties, and derived screen metrics, backed interchangeably by one of
// several mutually-exclusive capability providers. Callers never learn
// which provider is active, or whether any provider is active at all; the
// facade degrades to a no-op without surfacing errors.
//
// # Components
//
// Provider: The capability contract one concrete backend implements
// Registry: Process-wide provider registry, resolved once at bootstrap
// Initializer: Selects exactly one provider per lifecycle and acquires a handle
// Dispatcher: Routes events/user state to the bound provider, swallowing failures
// Facade: Orchestrates the above and exposes the public surface
//
// # Usage Example
//
// Register providers at bootstrap, then initialize:
//
//	telemetry.Register(telemetry.KindNative, otelprovider.New(tracer))
//
//	facade := telemetry.New(telemetry.Options{
//		Detect: func() telemetry.Environment { return telemetry.EnvNative },
//		Logger: logger,
//	})
//	facade.Init(ctx, "user-42")
//
// Emit events:
//
//	facade.LogEvent(ctx, "checkout_completed", telemetry.Params{"cart_size": 3})
//	facade.LogButtonClick(ctx, telemetry.ButtonClick{ButtonID: "save", ScreenName: "settings"})
//
// # Failure Model
//
// Unavailable providers, provider call failures, and double initialization
// are all non-events for the caller. Diagnostics go to the injected logger
// and Prometheus counters; nothing propagates.
//
// # Related Packages
//
//   - pkg/timing: Operation timing that emits performance_metric events here
//   - pkg/lifecycle: Screen focus/blur hooks that emit derived events here
//   - pkg/providers/otelprovider, pkg/providers/redisprovider: Reference adapters
package telemetry
