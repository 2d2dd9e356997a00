package timing

import (
	"context"
	"sync"
	"time"

	"github.com/beaconhq/beacon/pkg/async"
	"github.com/beaconhq/beacon/pkg/observability"
	"github.com/beaconhq/beacon/pkg/telemetry"
)

// Emitter receives the performance events this registry produces. It is
// satisfied by *telemetry.Facade.
type Emitter interface {
	LogEvent(ctx context.Context, name string, params telemetry.Params)
}

// FailureHook is an optional external collaborator (e.g. a crash reporter)
// invoked after a tracked operation fails. It runs behind a panic boundary
// and can never affect the caller.
type FailureHook func(operation string, err error)

// Registry maps operation identifiers to start timestamps and emits
// performance_metric events when operations end.
//
// Identifiers are the caller's concern: re-starting an active id overwrites
// its start time (last start wins), so concurrent invocations of the same
// logical operation should derive unique ids (see WithTracking).
type Registry struct {
	emitter   Emitter
	logger    *observability.Logger
	metrics   *observability.Metrics
	onFailure FailureHook

	// now is swapped out in tests
	now func() time.Time

	mu     sync.Mutex
	active map[string]time.Time
}

// NewRegistry creates a timing registry emitting through the given emitter.
// logger and metrics may be nil.
func NewRegistry(emitter Emitter, logger *observability.Logger, metrics *observability.Metrics) *Registry {
	if logger == nil {
		logger = observability.Nop()
	}
	return &Registry{
		emitter: emitter,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		active:  make(map[string]time.Time),
	}
}

// SetFailureHook installs the optional failure collaborator.
func (r *Registry) SetFailureHook(hook FailureHook) {
	r.onFailure = hook
}

// Start records the current time under operationID. Restarting an id that
// is already active overwrites its start time without error.
func (r *Registry) Start(operationID string) {
	r.mu.Lock()
	_, existed := r.active[operationID]
	r.active[operationID] = r.now()
	r.mu.Unlock()

	if existed {
		r.logger.WithField("operation", operationID).Debug("operation restarted, previous timing lost")
	} else if r.metrics != nil {
		r.metrics.ActiveOperations.Inc()
	}
}

// End completes a timed operation: computes the duration, removes the
// entry, and emits a performance_metric event. Ending an id that was never
// started is a safe no-op and emits nothing.
//
// Metadata keys are merged last-write-wins over the computed ones, so
// callers that measured independently may override duration_ms.
func (r *Registry) End(ctx context.Context, operationID string, metadata telemetry.Params) {
	r.mu.Lock()
	startedAt, ok := r.active[operationID]
	if ok {
		delete(r.active, operationID)
	}
	r.mu.Unlock()

	if !ok {
		r.logger.WithField("operation", operationID).Debug("end without matching start, ignoring")
		return
	}

	duration := r.now().Sub(startedAt)
	if r.metrics != nil {
		r.metrics.ActiveOperations.Dec()
		success := "true"
		if v, exists := metadata["success"]; exists {
			if b, isBool := v.(bool); isBool && !b {
				success = "false"
			}
		}
		r.metrics.OperationDuration.WithLabelValues(success).Observe(duration.Seconds())
	}

	params := telemetry.Params{
		"operation":   operationID,
		"duration_ms": duration.Milliseconds(),
	}
	for k, v := range metadata {
		params[k] = v
	}

	if r.emitter != nil {
		r.emitter.LogEvent(ctx, telemetry.EventPerformanceMetric, params)
	}
}

// Active reports whether an operation is currently being timed.
func (r *Registry) Active(operationID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[operationID]
	return ok
}

// failed emits the failure event for a tracked operation and notifies the
// optional failure hook.
func (r *Registry) failed(ctx context.Context, operationID, message string, cause error) {
	r.End(ctx, operationID, telemetry.Params{
		"success":       false,
		"error_message": message,
	})
	if r.onFailure != nil {
		if err := async.Protect("timing failure hook", func() error {
			r.onFailure(operationID, cause)
			return nil
		}); err != nil {
			r.logger.WithError(err).Warn("failure hook panicked")
		}
	}
}
