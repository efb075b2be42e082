package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/randalmurphal/logicgate/pkg/logicgate/params"
	"github.com/randalmurphal/logicgate/pkg/logicgate/resolver"
)

// Factory builds a requirement from its document parameters.
type Factory func(p params.Params) (resolver.Requirement, error)

// Registry is a thread-safe mapping from requirement type name to factory.
// It uses sync.RWMutex for read-heavy lookup during document building.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds or replaces the factory for a type name.
// Panics if fn is nil; a nil factory is always a programming error.
func (r *Registry) Register(name string, fn Factory) {
	if fn == nil {
		panic("registry: nil factory for type " + name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = fn
}

// Get returns the factory for a type name and whether it exists.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.factories[name]
	return fn, ok
}

// Has returns true if a factory is registered for the type name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Keys returns all registered type names, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered factories.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Build constructs a requirement of the named type.
// Returns an error for unknown type names or failing factories.
func (r *Registry) Build(name string, p params.Params) (resolver.Requirement, error) {
	fn, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown requirement type %q (registered: %v)", name, r.Keys())
	}
	req, err := fn(p)
	if err != nil {
		return nil, fmt.Errorf("build requirement %q: %w", name, err)
	}
	return req, nil
}

// defaultRegistry backs the package-level functions.
var defaultRegistry = New()

// Register adds a factory to the default registry.
func Register(name string, fn Factory) {
	defaultRegistry.Register(name, fn)
}

// Build constructs a requirement using the default registry.
func Build(name string, p params.Params) (resolver.Requirement, error) {
	return defaultRegistry.Build(name, p)
}

// Default returns the process-wide default registry.
func Default() *Registry {
	return defaultRegistry
}
