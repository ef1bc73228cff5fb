// Package codegen composes the parser, layout and adapter registries into
// the generation pipeline: parse, lay out, render, attach metadata.
//
// A Generator performs no I/O. Every stage is a hard sequence point; the
// first failure aborts the request and no files are returned.
package codegen

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/layout"
	"github.com/teranos/sketchflow/logger"
	"github.com/teranos/sketchflow/parse"
	"github.com/teranos/sketchflow/sketch"
)

// LayoutOptions selects and configures the layout stage.
type LayoutOptions struct {
	// Engine names a registered engine; empty selects passthrough.
	Engine  string         `json:"engine,omitempty" yaml:"engine,omitempty" toml:"engine,omitempty"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// Options tune one generation request.
type Options struct {
	Layout         LayoutOptions   `json:"layout,omitzero"`
	AdapterOptions adapter.Options `json:"adapterOptions,omitempty"`
}

// Request is one generation call.
type Request struct {
	Source    parse.Source `json:"source"`
	Framework string       `json:"framework"`
	Options   Options      `json:"options,omitzero"`
}

// Metadata describes how artifacts were produced.
type Metadata struct {
	LayoutEngine string `json:"layoutEngine"`
	Adapter      string `json:"adapter"`
	// NodeCount is the number of top-level positioned nodes.
	NodeCount int `json:"nodeCount"`
}

// Artifacts are the files of one successful generation.
type Artifacts struct {
	Files    []adapter.File `json:"files"`
	Metadata Metadata       `json:"metadata"`
}

// Generator runs generation requests against a fixed set of registries.
// Registries must be fully populated before the first request.
type Generator struct {
	parsers  *parse.Registry
	layouts  *layout.Registry
	adapters *adapter.Registry
	log      *zap.SugaredLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for stage traces. nil keeps the no-op logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(g *Generator) {
		g.log = logger.OrNop(log)
	}
}

// New creates a Generator over the given registries.
func New(parsers *parse.Registry, layouts *layout.Registry, adapters *adapter.Registry, opts ...Option) *Generator {
	g := &Generator{
		parsers:  parsers,
		layouts:  layouts,
		adapters: adapters,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Parsers returns the parser registry.
func (g *Generator) Parsers() *parse.Registry { return g.parsers }

// Layouts returns the layout engine registry.
func (g *Generator) Layouts() *layout.Registry { return g.layouts }

// Adapters returns the adapter registry.
func (g *Generator) Adapters() *adapter.Registry { return g.adapters }

// prepared is a parsed and laid out request, ready for any adapter.
type prepared struct {
	doc    *sketch.Document
	engine layout.Engine
	nodes  []*sketch.Node
}

func (g *Generator) prepare(ctx context.Context, req Request) (*prepared, error) {
	doc, err := g.parsers.Parse(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	engine, err := g.layouts.Resolve(req.Options.Layout.Engine, req.Options.Layout.Options)
	if err != nil {
		return nil, err
	}
	nodes, err := engine.Apply(doc.Nodes)
	if err != nil {
		return nil, errors.Wrapf(err, "layout engine '%s'", engine.Name())
	}
	if nodes == nil {
		nodes = []*sketch.Node{}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &prepared{doc: doc, engine: engine, nodes: nodes}, nil
}

func (p *prepared) context(opts adapter.Options) *adapter.Context {
	return &adapter.Context{Document: p.doc, Layout: p.nodes, Options: opts}
}

// Generate runs the full pipeline for one framework.
func (g *Generator) Generate(ctx context.Context, req Request) (*Artifacts, error) {
	start := time.Now()

	p, err := g.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	a, err := g.adapters.Lookup(req.Framework)
	if err != nil {
		return nil, err
	}

	artifacts, err := g.render(ctx, p, a, req.Options.AdapterOptions)
	if err != nil {
		return nil, err
	}

	g.log.Debugw("Generated files",
		logger.FieldFramework, artifacts.Metadata.Adapter,
		logger.FieldLayoutEngine, artifacts.Metadata.LayoutEngine,
		logger.FieldNodeCount, artifacts.Metadata.NodeCount,
		logger.FieldFileCount, len(artifacts.Files),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return artifacts, nil
}

func (g *Generator) render(ctx context.Context, p *prepared, a adapter.Adapter, opts adapter.Options) (*Artifacts, error) {
	res, err := a.Generate(ctx, p.context(opts))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, errors.WrapAdapterGeneration(err, a.Framework())
	}
	if res == nil {
		return nil, errors.WrapAdapterGeneration(errors.New("adapter returned no result"), a.Framework())
	}

	return &Artifacts{
		Files: res.Files,
		Metadata: Metadata{
			LayoutEngine: p.engine.Name(),
			Adapter:      a.Framework(),
			NodeCount:    len(p.nodes),
		},
	}, nil
}

// Introspection is an adapter's summary of a request, with the metadata
// generation would attach.
type Introspection struct {
	adapter.Introspection
	Metadata Metadata `json:"metadata"`
}

// Introspect runs parse and layout, then asks the adapter what it would
// render without generating files.
func (g *Generator) Introspect(ctx context.Context, req Request) (*Introspection, error) {
	p, err := g.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	a, err := g.adapters.Lookup(req.Framework)
	if err != nil {
		return nil, err
	}

	info, err := a.Introspect(ctx, p.context(req.Options.AdapterOptions))
	if err != nil {
		return nil, errors.WrapAdapterGeneration(err, a.Framework())
	}
	return &Introspection{
		Introspection: info,
		Metadata: Metadata{
			LayoutEngine: p.engine.Name(),
			Adapter:      a.Framework(),
			NodeCount:    len(p.nodes),
		},
	}, nil
}

// GenerateMany parses and lays out once, then renders every framework
// concurrently. req.Framework is ignored. Results are in frameworks order.
// Any failure aborts the batch and returns no artifacts.
func (g *Generator) GenerateMany(ctx context.Context, req Request, frameworks []string) ([]*Artifacts, error) {
	if len(frameworks) == 0 {
		return nil, errors.NewInvalidRequestError("at least one framework is required")
	}

	// Resolve adapters first so an unknown name fails before any work
	adapters := make([]adapter.Adapter, len(frameworks))
	for i, framework := range frameworks {
		a, err := g.adapters.Lookup(framework)
		if err != nil {
			return nil, err
		}
		adapters[i] = a
	}

	p, err := g.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	results := make([]*Artifacts, len(adapters))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, a := range adapters {
		eg.Go(func() error {
			artifacts, err := g.render(egCtx, p, a, req.Options.AdapterOptions)
			if err != nil {
				return err
			}
			results[i] = artifacts
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.log.Debugw("Generated batch",
		logger.FieldFrameworks, frameworks,
		logger.FieldNodeCount, len(p.nodes))
	return results, nil
}
