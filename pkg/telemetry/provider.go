package telemetry

import "context"

// Kind identifies which backend family a provider belongs to. Exactly one
// kind is selected per process; providers are never mixed mid-session.
type Kind string

const (
	// KindNative is the provider family used on native/mobile hosts.
	KindNative Kind = "native"
	// KindWeb is the provider family used on web hosts.
	KindWeb Kind = "web"
)

// Handle is the opaque object a provider hands back once it is live. Only
// the provider that produced it can interpret it.
type Handle interface{}

// AppContext is the opaque application/runtime object a web provider needs
// to construct a handle. Native providers ignore it.
type AppContext interface{}

// Params carries event parameters. Values are forwarded as-is.
type Params map[string]interface{}

// Provider is the capability contract one concrete analytics backend
// implements. All methods may fail; the facade swallows those failures at
// its dispatch boundary, so implementations should just report errors
// honestly rather than retry.
type Provider interface {
	// GetHandle acquires a live handle. Returning an error (or a nil
	// handle) is a normal failure mode, not an exceptional one.
	GetHandle(ctx context.Context, app AppContext) (Handle, error)

	// LogEvent forwards a named event with its parameters.
	LogEvent(ctx context.Context, h Handle, name string, params Params) error

	// SetUserID binds the analytics identity to the given user.
	SetUserID(ctx context.Context, h Handle, id string) error

	// SetUserProperties forwards user-scoped properties.
	SetUserProperties(ctx context.Context, h Handle, props map[string]string) error

	// ResetUserData clears the remote analytics identity, best effort.
	ResetUserData(ctx context.Context, h Handle) error
}

// Supporter is an optional interface for web-kind providers that can probe
// the current environment. A provider that does not implement it is assumed
// supported.
type Supporter interface {
	IsSupported() bool
}

// Instance is the bound (handle, kind) pair representing "analytics is live
// via provider X". It is immutable once created and owned exclusively by
// the facade.
type Instance struct {
	handle   Handle
	kind     Kind
	provider Provider
}

// Kind reports which provider family owns this instance.
func (i *Instance) Kind() Kind {
	return i.kind
}
