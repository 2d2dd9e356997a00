// Package async provides safe execution primitives for telemetry boundaries.
//
// # Overview
//
// This package isolates the facade from misbehaving collaborators: analytics
// provider calls, lifecycle emit callbacks, and background flushes run behind
// panic recovery so that telemetry can never take down the host application.
//
// # Key Functions
//
// Protect: Run a function and convert a panic into an error
//
//	err := async.Protect("provider logEvent", func() error {
//		return provider.LogEvent(ctx, handle, name, params)
//	})
//
// SafeGo: Execute function in goroutine with panic recovery and timeout
//
//	async.SafeGo(ctx, 5*time.Second, "flush events", func(ctx context.Context) error {
//		return client.Flush(ctx)
//	})
//
// # Features
//
// Panic Recovery: Captures panics with stack traces
// Timeout Enforcement: Per-task timeouts on background work
// Context Cancellation: Respects context cancellation
//
// # Related Packages
//
//   - pkg/telemetry: Uses Protect around every provider dispatch
//   - pkg/lifecycle: Uses Protect around screen event emission
package async
