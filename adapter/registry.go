package adapter

import (
	"strings"
	"sync"

	"github.com/teranos/sketchflow/errors"
)

// Registry maps framework names to adapters.
// Populate it at startup; reads are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
	order    []string
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its framework name.
// Returns an error if the framework is already taken.
func (r *Registry) Register(a Adapter) error {
	if a == nil {
		return errors.New("adapter is nil")
	}
	framework := a.Framework()
	if strings.TrimSpace(framework) == "" {
		return errors.New("adapter framework name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[framework]; exists {
		return errors.Wrapf(errors.ErrConflict, "adapter already registered: %s", framework)
	}
	r.adapters[framework] = a
	r.order = append(r.order, framework)
	return nil
}

// Get retrieves the adapter for a framework.
func (r *Registry) Get(framework string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[framework]
	return a, ok
}

// Lookup is Get with the unknown-adapter error, hinting at what is available.
func (r *Registry) Lookup(framework string) (Adapter, error) {
	if a, ok := r.Get(framework); ok {
		return a, nil
	}
	return nil, errors.WithHintf(errors.NewUnknownAdapterError(framework),
		"available frameworks: %s", strings.Join(r.Frameworks(), ", "))
}

// List returns adapters in registration order.
func (r *Registry) List() []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Adapter, len(r.order))
	for i, name := range r.order {
		out[i] = r.adapters[name]
	}
	return out
}

// Frameworks returns registered framework names in registration order.
func (r *Registry) Frameworks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
