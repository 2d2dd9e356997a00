package telemetry

import (
	"context"
	"sort"

	"github.com/beaconhq/beacon/pkg/async"
	"github.com/beaconhq/beacon/pkg/observability"
)

// Drop reasons recorded on the events-dropped counter.
const (
	dropNoInstance     = "no_instance"
	dropNotInitialized = "not_initialized"
)

// Dispatcher routes events and user-state changes to whichever provider
// owns an instance. Every dispatch is best-effort: a nil instance is a
// silent no-op and a provider failure is swallowed here, visible only on
// the diagnostic channel. Nothing a provider does can reach the caller.
type Dispatcher struct {
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewDispatcher creates a dispatcher. logger may be nil (silent); metrics
// may be nil (uncounted).
func NewDispatcher(logger *observability.Logger, metrics *observability.Metrics) *Dispatcher {
	if logger == nil {
		logger = observability.Nop()
	}
	return &Dispatcher{logger: logger, metrics: metrics}
}

// LogEvent forwards a named event to the instance's provider. Never fails.
func (d *Dispatcher) LogEvent(ctx context.Context, inst *Instance, name string, params Params) {
	if inst == nil {
		d.drop("log_event", name)
		return
	}

	err := async.Protect("analytics logEvent", func() error {
		return inst.provider.LogEvent(ctx, inst.handle, name, params)
	})
	d.finish(inst, "log_event", err)
}

// SetUserID forwards a user-id change to the instance's provider. Never fails.
func (d *Dispatcher) SetUserID(ctx context.Context, inst *Instance, id string) {
	if inst == nil {
		d.drop("set_user_id", "")
		return
	}

	err := async.Protect("analytics setUserId", func() error {
		return inst.provider.SetUserID(ctx, inst.handle, id)
	})
	d.finish(inst, "set_user_id", err)
}

// SetUserProperties forwards user properties one key at a time, in order.
// Each key is independently fault-isolated: a failure on one key does not
// prevent the next from being attempted.
func (d *Dispatcher) SetUserProperties(ctx context.Context, inst *Instance, props map[string]string) {
	if inst == nil {
		d.drop("set_user_properties", "")
		return
	}

	for _, key := range sortedKeys(props) {
		err := async.Protect("analytics setUserProperties", func() error {
			return inst.provider.SetUserProperties(ctx, inst.handle, map[string]string{key: props[key]})
		})
		d.finish(inst, "set_user_properties", err)
	}
}

// ResetUserData asks the provider to clear its analytics identity. Never fails.
func (d *Dispatcher) ResetUserData(ctx context.Context, inst *Instance) {
	if inst == nil {
		d.drop("reset_user_data", "")
		return
	}

	err := async.Protect("analytics resetUserData", func() error {
		return inst.provider.ResetUserData(ctx, inst.handle)
	})
	d.finish(inst, "reset_user_data", err)
}

func (d *Dispatcher) drop(operation, event string) {
	log := d.logger.WithField("operation", operation)
	if event != "" {
		log = log.WithField("event", event)
	}
	log.Debug("no analytics instance, dropping")
	if d.metrics != nil {
		d.metrics.EventsDroppedTotal.WithLabelValues(dropNoInstance).Inc()
	}
}

func (d *Dispatcher) finish(inst *Instance, operation string, err error) {
	if err != nil {
		d.logger.WithError(err).WithFields(map[string]interface{}{
			"provider":  string(inst.kind),
			"operation": operation,
		}).Warn("analytics provider call failed")
		if d.metrics != nil {
			d.metrics.ProviderErrorsTotal.WithLabelValues(string(inst.kind), operation).Inc()
		}
		return
	}
	if d.metrics != nil && operation == "log_event" {
		d.metrics.EventsEmittedTotal.WithLabelValues(string(inst.kind)).Inc()
	}
}

// sortedKeys gives property dispatch a stable order
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
