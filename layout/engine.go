// Package layout holds the layout stage of the pipeline: named, versioned
// transforms from a node tree to a positioned node tree.
//
// Engines must not alias their input. The returned sequence is the complete
// set of nodes to render; it is never merged back into the parsed tree.
package layout

import (
	"strings"

	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/sketch"
)

// DefaultVersion is the version given to engines that do not declare one.
const DefaultVersion = "0.1.0"

// Engine transforms a node tree into a positioned node tree.
type Engine interface {
	Name() string
	Version() string
	// Supports reports whether the engine applies to n. It is used for
	// selective filtering, never for mutation.
	Supports(n *sketch.Node) bool
	Apply(nodes []*sketch.Node) ([]*sketch.Node, error)
}

// Configurable engines accept per-request options (the "layout.options" of
// a generation request) and return a configured copy of themselves.
type Configurable interface {
	Engine
	Configure(options map[string]any) (Engine, error)
}

// Options describes an engine built from plain functions.
type Options struct {
	Name     string
	Version  string
	Supports func(n *sketch.Node) bool
	Apply    func(nodes []*sketch.Node) ([]*sketch.Node, error)
}

type funcEngine struct {
	name     string
	version  string
	supports func(n *sketch.Node) bool
	apply    func(nodes []*sketch.Node) ([]*sketch.Node, error)
}

// New builds an Engine from functions. Name and Apply are required; Version
// defaults to DefaultVersion and Supports to accepting every node.
func New(opts Options) (Engine, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return nil, errors.New("layout engine must have a name")
	}
	if opts.Apply == nil {
		return nil, errors.Newf("layout engine %s must have an apply function", opts.Name)
	}

	e := &funcEngine{
		name:     opts.Name,
		version:  opts.Version,
		supports: opts.Supports,
		apply:    opts.Apply,
	}
	if e.version == "" {
		e.version = DefaultVersion
	}
	if e.supports == nil {
		e.supports = func(*sketch.Node) bool { return true }
	}
	return e, nil
}

func (e *funcEngine) Name() string                 { return e.name }
func (e *funcEngine) Version() string              { return e.version }
func (e *funcEngine) Supports(n *sketch.Node) bool { return e.supports(n) }

func (e *funcEngine) Apply(nodes []*sketch.Node) ([]*sketch.Node, error) {
	return e.apply(nodes)
}

// PassthroughName is the name of the default engine.
const PassthroughName = "passthrough"

// Passthrough returns the identity engine: a deep copy of the input with
// every coordinate untouched.
func Passthrough() Engine {
	e, _ := New(Options{
		Name:    PassthroughName,
		Version: DefaultVersion,
		Apply: func(nodes []*sketch.Node) ([]*sketch.Node, error) {
			return sketch.CloneNodes(nodes), nil
		},
	})
	return e
}

// Filter returns the top-level nodes engine supports, in order. The nodes
// themselves are shared, not copied.
func Filter(engine Engine, nodes []*sketch.Node) []*sketch.Node {
	out := make([]*sketch.Node, 0, len(nodes))
	for _, n := range nodes {
		if engine.Supports(n) {
			out = append(out, n)
		}
	}
	return out
}
