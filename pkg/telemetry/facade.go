package telemetry

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/beaconhq/beacon/pkg/async"
	"github.com/beaconhq/beacon/pkg/observability"
)

// Facade is the single entry point for emitting analytics. It owns the one
// AnalyticsInstance per process, the current user identity, and the
// accumulated user-property cache.
//
// Lifecycle: uninitialized -> initialized (instance may still be nil if no
// provider was usable) -> cleared -> uninitialized. ClearUserData re-opens
// the initialization gate; nothing else does.
//
// All methods are safe for concurrent use. None of them ever returns an
// error: from the host application's perspective the facade never fails
// visibly, at most events are silently not delivered.
type Facade struct {
	initializer *Initializer
	dispatcher  *Dispatcher
	logger      *observability.Logger
	metrics     *observability.Metrics

	flight singleflight.Group

	mu          sync.Mutex
	initialized bool
	instance    *Instance
	userID      string
	hasUserID   bool
	userProps   map[string]string
}

// Options configures a Facade. Zero values fall back to the default
// registry, a native-environment probe, and silent diagnostics.
type Options struct {
	// Registry holds the candidate providers. Defaults to DefaultRegistry.
	Registry *Registry
	// Detect is the environment probe deciding the web/native branch.
	Detect EnvironmentFunc
	// AppContext supplies the runtime object web providers require.
	AppContext AppContextFunc
	// Logger is the diagnostic channel. Defaults to a no-op logger.
	Logger *observability.Logger
	// Metrics receives the facade's meta-metrics. Optional.
	Metrics *observability.Metrics
}

// New creates an uninitialized facade. Construct one per process (or per
// test) and call Init before logging events.
func New(opts Options) *Facade {
	logger := opts.Logger
	if logger == nil {
		logger = observability.Nop()
	}
	return &Facade{
		initializer: NewInitializer(opts.Registry, opts.Detect, opts.AppContext, logger),
		dispatcher:  NewDispatcher(logger, opts.Metrics),
		logger:      logger,
		metrics:     opts.Metrics,
		userProps:   make(map[string]string),
	}
}

// Init runs provider selection at most once per lifecycle and binds the
// optional user id. Concurrent callers share a single selection attempt.
// Once the attempt completes the facade counts as initialized whether or
// not a provider was usable; a later Init only updates the user id.
func (f *Facade) Init(ctx context.Context, userID string) {
	f.mu.Lock()
	if f.initialized {
		f.mu.Unlock()
		if userID != "" {
			f.SetUserID(ctx, userID)
		}
		return
	}
	f.mu.Unlock()

	// singleflight collapses concurrent Init calls onto one
	// provider-selection execution; late callers wait for its result.
	f.flight.Do("init", func() (interface{}, error) {
		f.mu.Lock()
		if f.initialized {
			f.mu.Unlock()
			return nil, nil
		}
		f.mu.Unlock()

		// Initialization is marked complete even if selection blows up;
		// there is no retry-on-next-call policy.
		var inst *Instance
		if err := async.Protect("analytics init", func() error {
			inst = f.initializer.Initialize(ctx)
			return nil
		}); err != nil {
			inst = nil
		}

		f.mu.Lock()
		f.instance = inst
		f.initialized = true
		f.mu.Unlock()

		if f.metrics != nil {
			outcome := "bound"
			if inst == nil {
				outcome = "unavailable"
			}
			f.metrics.InitAttemptsTotal.WithLabelValues(outcome).Inc()
		}
		return nil, nil
	})

	f.mu.Lock()
	inst := f.instance
	f.mu.Unlock()
	if inst == nil {
		return
	}

	if userID != "" {
		f.SetUserID(ctx, userID)
		return
	}
	f.SetUserProperty(ctx, PropertyUserType, UserTypeGuest)
}

// SetUserID updates the bound user identity. No-op before initialization,
// without an instance, or when the id matches the current one (redundant
// calls must not generate duplicate provider traffic).
func (f *Facade) SetUserID(ctx context.Context, userID string) {
	if userID == "" {
		return
	}

	f.mu.Lock()
	if !f.initialized || f.instance == nil {
		f.mu.Unlock()
		return
	}
	if f.hasUserID && f.userID == userID {
		f.mu.Unlock()
		return
	}
	f.userID = userID
	f.hasUserID = true
	f.userProps[PropertyUserType] = UserTypeAuthenticated
	inst := f.instance
	f.mu.Unlock()

	f.dispatcher.SetUserID(ctx, inst, userID)
	f.dispatcher.SetUserProperties(ctx, inst, map[string]string{PropertyUserType: UserTypeAuthenticated})
}

// CurrentUserID returns the last user id the facade accepted, and whether
// one is set. Pure read, no side effects.
func (f *Facade) CurrentUserID() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userID, f.hasUserID
}

// LogEvent forwards a named event with its parameters to the active
// provider. Before Init it drops the event with a diagnostic note.
func (f *Facade) LogEvent(ctx context.Context, name string, params Params) {
	f.mu.Lock()
	if !f.initialized {
		f.mu.Unlock()
		f.logger.WithField("event", name).Debug("analytics not initialized, dropping event")
		if f.metrics != nil {
			f.metrics.EventsDroppedTotal.WithLabelValues(dropNotInitialized).Inc()
		}
		return
	}
	inst := f.instance
	f.mu.Unlock()

	f.dispatcher.LogEvent(ctx, inst, name, params)
}

// SetUserProperty caches a single user property locally and forwards it
// best-effort. Caching happens regardless of initialization state so the
// property survives until a provider becomes available.
func (f *Facade) SetUserProperty(ctx context.Context, key, value string) {
	f.SetUserProperties(ctx, map[string]string{key: value})
}

// SetUserProperties merges properties into the local cache and forwards
// them best-effort, one underlying call per key.
func (f *Facade) SetUserProperties(ctx context.Context, props map[string]string) {
	if len(props) == 0 {
		return
	}

	f.mu.Lock()
	for k, v := range props {
		f.userProps[k] = v
	}
	inst := f.instance
	f.mu.Unlock()

	f.dispatcher.SetUserProperties(ctx, inst, props)
}

// UserProperties returns a copy of the accumulated property cache.
func (f *Facade) UserProperties() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.userProps))
	for k, v := range f.userProps {
		out[k] = v
	}
	return out
}

// ClearUserData resets the remote analytics identity best-effort, then
// wipes local state and re-opens the initialization gate so a later Init
// performs a full provider re-selection.
func (f *Facade) ClearUserData(ctx context.Context) {
	f.mu.Lock()
	inst := f.instance
	f.mu.Unlock()

	f.dispatcher.ResetUserData(ctx, inst)

	f.mu.Lock()
	f.instance = nil
	f.userID = ""
	f.hasUserID = false
	f.userProps = make(map[string]string)
	f.initialized = false
	f.mu.Unlock()
}
