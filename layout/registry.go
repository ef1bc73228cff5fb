package layout

import (
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/sketchflow/errors"
)

// Registry holds the layout engines available to generation. The
// passthrough engine is always registered.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
	order   []string
}

// NewRegistry creates a registry holding only the passthrough engine.
func NewRegistry() *Registry {
	r := &Registry{engines: make(map[string]Engine)}
	if err := r.Register(Passthrough()); err != nil {
		panic(err)
	}
	return r
}

// Register adds an engine. Returns an error if the name is taken or the
// version is not semver.
func (r *Registry) Register(e Engine) error {
	if e == nil {
		return errors.New("layout engine is nil")
	}
	if _, err := semver.NewVersion(e.Version()); err != nil {
		return errors.Wrapf(err, "layout engine %s has invalid version %q", e.Name(), e.Version())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[e.Name()]; exists {
		return errors.Wrapf(errors.ErrConflict, "layout engine already registered: %s", e.Name())
	}
	r.engines[e.Name()] = e
	r.order = append(r.order, e.Name())
	return nil
}

// Get retrieves an engine by name.
func (r *Registry) Get(name string) (Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[name]
	return e, ok
}

// List returns engines in registration order.
func (r *Registry) List() []Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Engine, len(r.order))
	for i, name := range r.order {
		out[i] = r.engines[name]
	}
	return out
}

// Default returns the passthrough engine.
func (r *Registry) Default() Engine {
	e, _ := r.Get(PassthroughName)
	return e
}

// Resolve returns the named engine, or the default when name is empty.
// Options are applied to Configurable engines and ignored by the rest.
func (r *Registry) Resolve(name string, options map[string]any) (Engine, error) {
	engine := r.Default()
	if name != "" {
		e, ok := r.Get(name)
		if !ok {
			return nil, errors.WithHintf(errors.NewUnknownLayoutEngineError(name),
				"available layout engines: %v", r.names())
		}
		engine = e
	}

	if len(options) == 0 {
		return engine, nil
	}
	if configurable, ok := engine.(Configurable); ok {
		return configurable.Configure(options)
	}
	return engine, nil
}

func (r *Registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
