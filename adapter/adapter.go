// Package adapter defines the contract every framework backend implements
// and the conventions they share: per-node rendering dispatch, absolute
// positioning, "<id>-<index>" keys, depth-first traversal and name
// sanitization. Backends live in subpackages and are selected by framework
// name through a Registry.
package adapter

import (
	"context"

	"github.com/teranos/sketchflow/sketch"
)

// Language tags the source language an adapter emits.
type Language string

const (
	LangTS  Language = "ts"
	LangJS  Language = "js"
	LangTSX Language = "tsx"
)

// Options is the open, adapter-specific option bag. The pipeline passes it
// through uninterpreted; adapters decode it with DecodeOptions.
type Options map[string]any

// Context is everything an adapter sees for one generation. Adapters must
// treat it as read-only.
type Context struct {
	Document *sketch.Document
	// Layout is the positioned node sequence produced by the layout stage.
	Layout  []*sketch.Node
	Options Options
}

// File is one generated source file. Path is relative to the caller's
// output root.
type File struct {
	Path     string `json:"path"`
	Contents string `json:"contents"`
}

// Result is the output of one adapter run.
type Result struct {
	Files []File `json:"files"`
}

// CountPolicy documents which nodes an adapter counts in Introspect.
type CountPolicy string

const (
	TopLevel  CountPolicy = "top-level"
	Recursive CountPolicy = "recursive"
)

// Introspection summarizes what an adapter would render.
type Introspection struct {
	NodeCount  int         `json:"nodeCount"`
	Components int         `json:"components"`
	Policy     CountPolicy `json:"policy"`
}

// Adapter renders a positioned node tree into one framework's source files.
// Generate must be deterministic for identical contexts.
type Adapter interface {
	Framework() string
	Language() Language
	Introspect(ctx context.Context, actx *Context) (Introspection, error)
	Generate(ctx context.Context, actx *Context) (*Result, error)
}

// Count introspects nodes under policy: the node count and the number of
// component nodes, either top-level only or across the whole tree.
func Count(nodes []*sketch.Node, policy CountPolicy) Introspection {
	recursive := policy == Recursive
	return Introspection{
		NodeCount:  sketch.CountNodes(nodes, recursive),
		Components: sketch.CountType(nodes, sketch.TypeComponent, recursive),
		Policy:     policy,
	}
}
