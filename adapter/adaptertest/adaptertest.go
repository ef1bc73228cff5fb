// Package adaptertest provides fixtures and a shared conformance suite for
// framework adapters.
package adaptertest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/sketch"
)

func ptr[T any](v T) *T { return &v }

// ScenarioDocument is a frame holding one text node "Hi" at (8, 12) sized
// 100x20.
func ScenarioDocument() *sketch.Document {
	return &sketch.Document{
		ID:   "d1",
		Name: "T",
		Nodes: []*sketch.Node{
			{
				ID:     "f1",
				Type:   sketch.TypeFrame,
				Layout: sketch.Layout{Width: 320, Height: 200},
				Children: []*sketch.Node{
					{
						ID:       "t1",
						Type:     sketch.TypeText,
						Props:    sketch.Props{"text": "Hi"},
						Layout:   sketch.Layout{X: 8, Y: 12, Width: 100, Height: 20},
						Children: []*sketch.Node{},
					},
				},
			},
		},
	}
}

// SampleDocument exercises every node type, fallbacks and rotation.
//
//	root (frame)
//	  title (text "First")
//	  body (text "Second", rotated 45)
//	  hero (image hero.png, alt "Hero")
//	  card (component)
//	    caption (text, name only)
//	  divider (shape)
//	badge (component, top level)
func SampleDocument() *sketch.Document {
	return &sketch.Document{
		ID:   "doc-sample",
		Name: "Sample",
		Nodes: []*sketch.Node{
			{
				ID:     "root",
				Type:   sketch.TypeFrame,
				Name:   ptr("Root"),
				Layout: sketch.Layout{Width: 320, Height: 400},
				Children: []*sketch.Node{
					{ID: "title", Type: sketch.TypeText, Props: sketch.Props{"text": "First"},
						Layout: sketch.Layout{X: 10, Y: 12, Width: 120, Height: 24}},
					{ID: "body", Type: sketch.TypeText, Props: sketch.Props{"text": "Second"},
						Layout: sketch.Layout{X: 10, Y: 40, Width: 120, Height: 24, Rotation: ptr(45.0)}},
					{ID: "hero", Type: sketch.TypeImage, Props: sketch.Props{"src": "hero.png", "alt": "Hero"},
						Layout: sketch.Layout{X: 32, Y: 56, Width: 160, Height: 160}},
					{
						ID:     "card",
						Type:   sketch.TypeComponent,
						Layout: sketch.Layout{X: 0, Y: 220, Width: 320, Height: 80},
						Children: []*sketch.Node{
							{ID: "caption", Type: sketch.TypeText, Name: ptr("Caption"),
								Layout: sketch.Layout{X: 4, Y: 4, Width: 200, Height: 16}},
						},
					},
					{ID: "divider", Type: sketch.TypeShape, Layout: sketch.Layout{X: 0, Y: 310, Width: 320, Height: 1}},
				},
			},
			{ID: "badge", Type: sketch.TypeComponent, Layout: sketch.Layout{X: 300, Y: 0, Width: 20, Height: 20}},
		},
	}
}

// Context builds an adapter context whose layout is a copy of doc's nodes,
// as the passthrough engine would produce.
func Context(doc *sketch.Document, opts adapter.Options) *adapter.Context {
	return &adapter.Context{Document: doc, Layout: sketch.CloneNodes(doc.Nodes), Options: opts}
}

// Profile describes the adapter-specific expectations of the suite.
type Profile struct {
	Policy adapter.CountPolicy
	// Keys is true when rendered nodes carry "<id>-<index>" keys.
	Keys bool
	// Rotation is the text that marks a rotation in the output.
	Rotation string
	// Templated is true when the output is a template language that
	// interpolates curly braces in markup.
	Templated bool
}

// AwkwardID is a valid node id holding characters that need escaping in
// every target syntax.
const AwkwardID = `a"b<{c`

// AwkwardDocument holds a shape and a text node whose ids are AwkwardID.
func AwkwardDocument() *sketch.Document {
	return &sketch.Document{
		ID:   "doc-awkward",
		Name: "Awkward",
		Nodes: []*sketch.Node{
			{ID: AwkwardID, Type: sketch.TypeFrame, Layout: sketch.Layout{Width: 10, Height: 10},
				Children: []*sketch.Node{
					{ID: AwkwardID, Type: sketch.TypeText, Props: sketch.Props{"text": "x"},
						Layout: sketch.Layout{Width: 5, Height: 5}},
				}},
			{ID: AwkwardID, Type: sketch.TypeShape, Layout: sketch.Layout{Width: 1, Height: 1}},
		},
	}
}

// Generate runs a.Generate and returns the concatenated file contents.
func Generate(t *testing.T, a adapter.Adapter, actx *adapter.Context) (*adapter.Result, string) {
	t.Helper()
	res, err := a.Generate(context.Background(), actx)
	require.NoError(t, err)
	require.NotEmpty(t, res.Files)

	var all strings.Builder
	for _, f := range res.Files {
		all.WriteString(f.Contents)
	}
	return res, all.String()
}

// Conformance checks the behaviour every adapter shares.
func Conformance(t *testing.T, a adapter.Adapter, p Profile) {
	t.Helper()

	t.Run("deterministic", func(t *testing.T) {
		actx := Context(SampleDocument(), nil)
		first, _ := Generate(t, a, actx)
		second, _ := Generate(t, a, actx)
		assert.Equal(t, first, second)
	})

	t.Run("does not mutate context", func(t *testing.T) {
		actx := Context(SampleDocument(), adapter.Options{})
		before := sketch.CloneNodes(actx.Layout)
		Generate(t, a, actx)
		_, err := a.Introspect(context.Background(), actx)
		require.NoError(t, err)
		assert.Equal(t, before, actx.Layout)
	})

	t.Run("introspection matches traversal", func(t *testing.T) {
		actx := Context(SampleDocument(), nil)
		got, err := a.Introspect(context.Background(), actx)
		require.NoError(t, err)
		recursive := p.Policy == adapter.Recursive
		assert.Equal(t, p.Policy, got.Policy)
		assert.Equal(t, sketch.CountNodes(actx.Layout, recursive), got.NodeCount)
		assert.Equal(t, sketch.CountType(actx.Layout, sketch.TypeComponent, recursive), got.Components)
	})

	t.Run("order preserving", func(t *testing.T) {
		_, out := Generate(t, a, Context(SampleDocument(), nil))
		assert.Less(t, strings.Index(out, "First"), strings.Index(out, "Second"))

		swapped := SampleDocument()
		kids := swapped.Nodes[0].Children
		kids[0], kids[1] = kids[1], kids[0]
		_, out = Generate(t, a, Context(swapped, nil))
		assert.Greater(t, strings.Index(out, "First"), strings.Index(out, "Second"))
	})

	t.Run("rotation only when present", func(t *testing.T) {
		_, out := Generate(t, a, Context(ScenarioDocument(), nil))
		assert.NotContains(t, out, p.Rotation)

		_, out = Generate(t, a, Context(SampleDocument(), nil))
		assert.Equal(t, 1, strings.Count(out, p.Rotation))
	})

	t.Run("scenario", func(t *testing.T) {
		_, out := Generate(t, a, Context(ScenarioDocument(), nil))
		assert.Contains(t, out, "Hi")
		if p.Keys {
			assert.Contains(t, out, "f1-0")
			assert.Contains(t, out, "t1-0")
			assert.Less(t, strings.Index(out, "f1-0"), strings.Index(out, "t1-0"))
		}
	})

	t.Run("ids are escaped", func(t *testing.T) {
		_, out := Generate(t, a, Context(AwkwardDocument(), nil))
		assert.NotContains(t, out, AwkwardID)
		if p.Templated {
			assert.NotContains(t, out, "{c")
		}
	})

	t.Run("empty layout", func(t *testing.T) {
		doc := &sketch.Document{ID: "e", Name: "Empty", Nodes: []*sketch.Node{}}
		res, err := a.Generate(context.Background(), Context(doc, nil))
		require.NoError(t, err)
		assert.NotEmpty(t, res.Files)

		got, err := a.Introspect(context.Background(), Context(doc, nil))
		require.NoError(t, err)
		assert.Zero(t, got.NodeCount)
	})
}
