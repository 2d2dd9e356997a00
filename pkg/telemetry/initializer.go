package telemetry

import (
	"context"
	"sync"

	"github.com/beaconhq/beacon/pkg/async"
	"github.com/beaconhq/beacon/pkg/observability"
)

// Environment identifies the execution host family.
type Environment string

const (
	// EnvWeb selects the web provider branch.
	EnvWeb Environment = "web"
	// EnvNative selects the native provider branch.
	EnvNative Environment = "native"
)

// EnvironmentFunc is the externally-supplied environment probe. Exactly one
// branch is attempted per initialization, never both.
type EnvironmentFunc func() Environment

// AppContextFunc supplies the application/runtime object web providers need
// to construct a handle. Returning nil means the object is unavailable.
type AppContextFunc func() AppContext

// Initializer selects exactly one provider based on platform and
// availability and attempts to acquire a live handle. Every failure path
// yields a nil instance rather than an error; initialization failure is
// never fatal to the caller.
type Initializer struct {
	registry   *Registry
	detect     EnvironmentFunc
	appContext AppContextFunc
	logger     *observability.Logger

	// noNativeOnce gates the "no native provider" notice so restricted
	// hosts do not spam the diagnostic log on every attempt.
	noNativeOnce sync.Once
}

// NewInitializer creates an initializer over the given registry. detect and
// appContext are the external boundary collaborators; logger may not be nil
// (use observability.Nop for silence).
func NewInitializer(registry *Registry, detect EnvironmentFunc, appContext AppContextFunc, logger *observability.Logger) *Initializer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if detect == nil {
		detect = func() Environment { return EnvNative }
	}
	if logger == nil {
		logger = observability.Nop()
	}
	return &Initializer{
		registry:   registry,
		detect:     detect,
		appContext: appContext,
		logger:     logger,
	}
}

// Initialize runs one provider-selection attempt and returns the bound
// instance, or nil if no provider was usable.
func (i *Initializer) Initialize(ctx context.Context) *Instance {
	switch i.detect() {
	case EnvWeb:
		return i.initializeWeb(ctx)
	default:
		return i.initializeNative(ctx)
	}
}

func (i *Initializer) initializeWeb(ctx context.Context) *Instance {
	p, ok := i.registry.Lookup(KindWeb)
	if !ok {
		i.logger.Debug("no web analytics provider registered")
		return nil
	}

	if s, probes := p.(Supporter); probes && !s.IsSupported() {
		i.logger.Debug("web analytics provider not supported in this environment")
		return nil
	}

	var app AppContext
	if i.appContext != nil {
		app = i.appContext()
	}
	if app == nil {
		i.logger.Debug("application context unavailable, skipping web analytics")
		return nil
	}

	h := i.acquireHandle(ctx, p, app, KindWeb)
	if h == nil {
		return nil
	}

	i.logger.WithField("provider", string(KindWeb)).Info("analytics initialized")
	return &Instance{handle: h, kind: KindWeb, provider: p}
}

func (i *Initializer) initializeNative(ctx context.Context) *Instance {
	p, ok := i.registry.Lookup(KindNative)
	if !ok {
		// Expected on restricted/sandboxed hosts. Notice once, not per call.
		i.noNativeOnce.Do(func() {
			i.logger.Info("no native analytics provider registered, telemetry disabled")
		})
		return nil
	}

	h := i.acquireHandle(ctx, p, nil, KindNative)
	if h == nil {
		return nil
	}

	i.logger.WithField("provider", string(KindNative)).Info("analytics initialized")
	return &Instance{handle: h, kind: KindNative, provider: p}
}

// acquireHandle calls GetHandle behind a panic boundary. A panicking or
// failing provider degrades to a nil handle.
func (i *Initializer) acquireHandle(ctx context.Context, p Provider, app AppContext, kind Kind) Handle {
	var h Handle
	err := async.Protect("analytics getHandle", func() error {
		var err error
		h, err = p.GetHandle(ctx, app)
		return err
	})
	if err != nil {
		i.logger.WithError(err).WithField("provider", string(kind)).Debug("analytics handle unavailable")
		return nil
	}
	if h == nil {
		i.logger.WithField("provider", string(kind)).Debug("analytics provider returned no handle")
		return nil
	}
	return h
}
