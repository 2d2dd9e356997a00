package telemetry

import (
	"fmt"
	"sync"
)

// Registry holds the capability providers available to an initializer,
// keyed by kind. Providers are resolved once at process start and the
// registry is not re-probed on later calls.
type Registry struct {
	mu        sync.RWMutex
	providers map[Kind]Provider
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[Kind]Provider),
	}
}

// Register adds a provider under the given kind
func (r *Registry) Register(kind Kind, p Provider) error {
	if p == nil {
		return fmt.Errorf("cannot register nil provider")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[kind]; exists {
		return fmt.Errorf("provider already registered for kind: %s", kind)
	}

	r.providers[kind] = p
	return nil
}

// Lookup retrieves the provider registered under the given kind
func (r *Registry) Lookup(kind Kind) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.providers[kind]
	return p, exists
}

// Has checks if a provider is registered for the given kind
func (r *Registry) Has(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.providers[kind]
	return exists
}

// Count returns the number of registered providers
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.providers)
}

// Clear removes all registered providers. Intended for tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers = make(map[Kind]Provider)
}

// defaultRegistry backs the package-level registration API so provider
// packages can register themselves at bootstrap.
var defaultRegistry = NewRegistry()

// Register adds a provider to the default registry
func Register(kind Kind, p Provider) error {
	return defaultRegistry.Register(kind, p)
}

// DefaultRegistry returns the process-wide provider registry
func DefaultRegistry() *Registry {
	return defaultRegistry
}
