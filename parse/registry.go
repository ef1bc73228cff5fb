package parse

import (
	"context"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/logger"
	"github.com/teranos/sketchflow/sketch"
)

// Parser converts one family of source shapes into a document.
type Parser interface {
	Name() string
	Version() string
	Supports(src Source) bool
	Parse(ctx context.Context, src Source) (*sketch.Document, error)
}

// Registry resolves sources to parsers. Populate it once at startup; after
// that it is safe for concurrent reads.
type Registry struct {
	mu      sync.RWMutex
	parsers []Parser
	byName  map[string]Parser
	limits  sketch.Limits
	log     *zap.SugaredLogger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLimits bounds every document the registry returns.
func WithLimits(limits sketch.Limits) Option {
	return func(r *Registry) { r.limits = limits }
}

// WithLogger sets the logger used for resolution traces.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty parser registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byName: make(map[string]Parser),
		limits: sketch.DefaultLimits(),
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry creates a registry with the built-in vectors,
// wireframe and yaml parsers, in that priority order.
func NewDefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	for _, p := range []Parser{NewVectorsParser(), NewWireframeParser(), NewYAMLParser(r.limits)} {
		if err := r.Register(p); err != nil {
			// Built-ins have distinct names and valid versions
			panic(err)
		}
	}
	return r
}

// Register appends a parser. Parsers registered earlier win resolution.
// Returns an error if the name is taken or the version is not semver.
func (r *Registry) Register(p Parser) error {
	name := p.Name()
	if strings.TrimSpace(name) == "" {
		return errors.New("parser name is required")
	}
	if _, err := semver.NewVersion(p.Version()); err != nil {
		return errors.Wrapf(err, "parser %s has invalid version %q", name, p.Version())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return errors.Wrapf(errors.ErrConflict, "parser already registered: %s", name)
	}
	r.byName[name] = p
	r.parsers = append(r.parsers, p)
	return nil
}

// Resolve returns the first registered parser that supports src.
func (r *Registry) Resolve(src Source) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.parsers {
		if p.Supports(src) {
			return p, true
		}
	}
	return nil, false
}

// List returns the registered parsers in priority order.
func (r *Registry) List() []Parser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Parser(nil), r.parsers...)
}

// Limits returns the document bounds the registry enforces.
func (r *Registry) Limits() sketch.Limits {
	return r.limits
}

// Parse turns src into a validated document.
//
//   - "document" sources are validated directly, bypassing parsers
//   - otherwise the first supporting parser runs and its result is validated
//   - unclaimed "json" sources are validated as canonical documents
//   - anything else fails with ErrUnsupportedSource
func (r *Registry) Parse(ctx context.Context, src Source) (*sketch.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if src.Kind == KindDocument {
		return sketch.Validate(src.Payload, r.limits)
	}

	if p, ok := r.Resolve(src); ok {
		r.log.Debugw("Resolved parser",
			logger.FieldSourceKind, string(src.Kind),
			logger.FieldParser, p.Name())

		doc, err := p.Parse(ctx, src)
		if err != nil {
			return nil, err
		}
		return sketch.ValidateDocument(doc, r.limits)
	}

	if src.Kind == KindJSON {
		return sketch.Validate(src.Payload, r.limits)
	}

	return nil, errors.WithHintf(errors.NewUnsupportedSourceError(string(src.Kind)),
		"registered parsers: %s", strings.Join(r.names(), ", "))
}

func (r *Registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.parsers))
	for i, p := range r.parsers {
		names[i] = p.Name()
	}
	return names
}
