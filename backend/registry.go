package backend

import (
	"sync"
)

// Factory creates a new renderer instance.
type Factory func() Renderer

// registry holds registered renderers.
var (
	registryMu sync.RWMutex
	renderers  = make(map[string]Factory)
	// Priority order for renderer selection (first available wins).
	// Canvas needs a window surface; software always works.
	priority = []string{RendererCanvas, RendererSoftware}
)

// Register registers a renderer factory under the given name.
// This is typically called from init() functions in renderer packages.
// Registering an existing name replaces it.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	renderers[name] = factory
}

// Unregister removes a renderer from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(renderers, name)
}

// Available returns the registered renderer names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a renderer with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := renderers[name]
	return ok
}

// Get returns a renderer instance by name, or nil if not registered.
func Get(name string) Renderer {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := renderers[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available renderer based on priority,
// or nil if none are registered.
func Default() Renderer {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range priority {
		if factory, ok := renderers[name]; ok {
			if r := factory(); r != nil {
				return r
			}
		}
	}

	// Fallback: first available
	for _, factory := range renderers {
		if r := factory(); r != nil {
			return r
		}
	}

	return nil
}

// MustDefault returns the default renderer or panics.
func MustDefault() Renderer {
	r := Default()
	if r == nil {
		panic("backend: no renderer available")
	}
	return r
}

// InitDefault returns the default renderer, initialized.
func InitDefault() (Renderer, error) {
	r := Default()
	if r == nil {
		return nil, ErrBackendNotAvailable
	}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}
