// Package lifecycle derives screen telemetry from UI focus/blur signals.
//
// # Overview
//
// The UI framework decides when screens gain and lose focus; this package
// turns those callbacks into three independent derived events:
//
// ViewSignal: screen_view once the transition animation settles
// TimeSignal: screen_time on blur, only when >= 1 second elapsed
// NavSignal: navigation when focus moves to a different screen
//
// The signals hold no shared mutable state and each swallows emitter
// failures on its own; telemetry must never affect UI behavior.
//
// # Usage Example
//
//	tracker := lifecycle.NewScreenTracker(facade)
//
//	onScreenFocused := func(name string) { tracker.OnFocus(ctx, name, "") }
//	onScreenBlurred := func() { tracker.OnBlur(ctx) }
//
// # Related Packages
//
//   - pkg/telemetry: Destination for all derived events
package lifecycle
