// Package timing measures operation durations for performance telemetry.
//
// # Overview
//
// A Registry maps caller-supplied operation identifiers to start timestamps
// and emits a performance_metric event when an operation ends. It talks to
// the rest of the system only through the generic event-emission primitive,
// so it composes with any Emitter (normally *telemetry.Facade).
//
// # Semantics
//
// Start: Records now under the id; restarting overwrites (last start wins)
// End: Unmatched ends are safe no-ops; metadata merges last-write-wins
// Track: Wraps a unit of work, emits success/failure, re-raises caller errors
// WithTracking: Higher-order wrapper deriving unique ids per invocation
//
// # Usage Example
//
// Manual timing:
//
//	registry.Start("sync_accounts")
//	// ... work ...
//	registry.End(ctx, "sync_accounts", nil)
//
// Wrapped timing:
//
//	fetch := timing.WithTracking(registry, "fetch_profile", func(ctx context.Context) (*Profile, error) {
//		return client.FetchProfile(ctx, id)
//	})
//	profile, err := fetch(ctx)
//
// # Failure Model
//
// Unlike the event dispatch path, Track never swallows the caller's own
// error: telemetry side effects complete first, then the error surfaces
// unchanged. An optional FailureHook (e.g. a crash reporter) runs behind a
// panic boundary after each failure event.
package timing
