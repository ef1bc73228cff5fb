package sketch

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/sketchflow/errors"
)

const scenarioJSON = `{
  "id": "d1",
  "name": "T",
  "nodes": [
    {
      "id": "f1",
      "type": "frame",
      "layout": {"x": 0, "y": 0, "width": 320, "height": 200},
      "children": [
        {
          "id": "t1",
          "type": "text",
          "props": {"text": "Hi"},
          "layout": {"x": 8, "y": 12, "width": 100, "height": 20},
          "children": []
        }
      ]
    }
  ]
}`

func TestValidateJSON_Scenario(t *testing.T) {
	doc, err := ValidateJSON([]byte(scenarioJSON), Limits{})
	require.NoError(t, err)

	assert.Equal(t, "d1", doc.ID)
	assert.Equal(t, "T", doc.Name)
	require.Len(t, doc.Nodes, 1)

	frame := doc.Nodes[0]
	assert.Equal(t, TypeFrame, frame.Type)
	assert.Nil(t, frame.Name)
	assert.Nil(t, frame.Props)
	assert.Nil(t, frame.Layout.Rotation)
	require.Len(t, frame.Children, 1)

	text := frame.Children[0]
	assert.Equal(t, "t1", text.ID)
	assert.Equal(t, Layout{X: 8, Y: 12, Width: 100, Height: 20}, text.Layout)
	assert.Equal(t, TextContent{Text: "Hi"}, text.Content())
	assert.NotNil(t, text.Children)
	assert.Empty(t, text.Children)
}

func TestValidate_RoundTrip(t *testing.T) {
	rotation := 45.0
	name := "Hero"
	empty := ""
	doc := &Document{
		ID:   "doc",
		Name: "Round trip",
		Nodes: []*Node{
			{
				ID:     "root",
				Type:   TypeFrame,
				Name:   &empty,
				Props:  Props{},
				Layout: Layout{X: 0, Y: 0, Width: 320, Height: 200},
				Children: []*Node{
					{
						ID:       "img",
						Type:     TypeImage,
						Name:     &name,
						Props:    Props{"src": "hero.png", "meta": map[string]any{"w": 2.5, "tags": []any{"a", true}}},
						Layout:   Layout{X: 1.5, Y: -4, Width: 10, Height: 0, Rotation: &rotation},
						Children: []*Node{},
					},
				},
			},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	parsed, err := ValidateJSON(data, Limits{})
	require.NoError(t, err)
	assert.Equal(t, doc, parsed)

	// Zero rotation must survive as distinct from absent rotation
	zero := 0.0
	doc.Nodes[0].Layout.Rotation = &zero
	data, err = json.Marshal(doc)
	require.NoError(t, err)
	parsed, err = ValidateJSON(data, Limits{})
	require.NoError(t, err)
	require.NotNil(t, parsed.Nodes[0].Layout.Rotation)
	assert.Equal(t, 0.0, *parsed.Nodes[0].Layout.Rotation)
}

func TestValidate_Rejections(t *testing.T) {
	node := func(mutate func(map[string]any)) map[string]any {
		n := map[string]any{
			"id":       "n1",
			"type":     "frame",
			"layout":   map[string]any{"x": 0.0, "y": 0.0, "width": 10.0, "height": 10.0},
			"children": []any{},
		}
		mutate(n)
		return map[string]any{"id": "d", "name": "D", "nodes": []any{n}}
	}

	tests := []struct {
		name     string
		input    any
		wantPath string
	}{
		{"nil input", nil, ""},
		{"missing document id", map[string]any{"name": "D", "nodes": []any{}}, "id"},
		{"nodes not an array", map[string]any{"id": "d", "name": "D", "nodes": "x"}, "nodes"},
		{"node not an object", map[string]any{"id": "d", "name": "D", "nodes": []any{42.0}}, "nodes[0]"},
		{"unknown type", node(func(n map[string]any) { n["type"] = "button" }), "nodes[0].type"},
		{"missing layout", node(func(n map[string]any) { delete(n, "layout") }), "nodes[0].layout"},
		{"missing width", node(func(n map[string]any) {
			n["layout"] = map[string]any{"x": 0.0, "y": 0.0, "height": 1.0}
		}), "nodes[0].layout.width"},
		{"string coordinate", node(func(n map[string]any) {
			n["layout"] = map[string]any{"x": "0", "y": 0.0, "width": 1.0, "height": 1.0}
		}), "nodes[0].layout.x"},
		{"negative height", node(func(n map[string]any) {
			n["layout"] = map[string]any{"x": 0.0, "y": 0.0, "width": 1.0, "height": -1.0}
		}), "nodes[0].layout.height"},
		{"bad rotation", node(func(n map[string]any) {
			n["layout"] = map[string]any{"x": 0.0, "y": 0.0, "width": 1.0, "height": 1.0, "rotation": "90"}
		}), "nodes[0].layout.rotation"},
		{"null name", node(func(n map[string]any) { n["name"] = nil }), "nodes[0].name"},
		{"props not an object", node(func(n map[string]any) { n["props"] = []any{} }), "nodes[0].props"},
		{"missing children", node(func(n map[string]any) { delete(n, "children") }), "nodes[0].children"},
		{"invalid child", node(func(n map[string]any) {
			n["children"] = []any{map[string]any{"id": "c", "type": "text"}}
		}), "nodes[0].children[0].layout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Validate(tt.input, Limits{})
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.IsValidationError(err))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantPath, verr.Path)
		})
	}
}

func TestValidateJSON_Malformed(t *testing.T) {
	tests := []string{
		`{"id": "d"`,
		`[]`,
		`{"id":"d","name":"n","nodes":[]} {}`,
	}
	for _, input := range tests {
		_, err := ValidateJSON([]byte(input), Limits{})
		assert.True(t, errors.IsValidationError(err), input)
	}
}

func TestValidate_IgnoresUnknownKeys(t *testing.T) {
	input := `{"id":"d","name":"n","extra":true,"nodes":[{"id":"a","type":"shape","color":"red",
		"layout":{"x":0,"y":0,"width":1,"height":1,"z":3},"children":[]}]}`
	doc, err := ValidateJSON([]byte(input), Limits{})
	require.NoError(t, err)
	assert.Equal(t, TypeShape, doc.Nodes[0].Type)
}

func TestValidate_DepthLimit(t *testing.T) {
	deep := func(levels int) string {
		var sb strings.Builder
		sb.WriteString(`{"id":"d","name":"n","nodes":[`)
		for i := 0; i < levels; i++ {
			if i > 0 {
				sb.WriteString(`,"children":[`)
			}
			fmt.Fprintf(&sb, `{"id":"n%d","type":"group","layout":{"x":0,"y":0,"width":1,"height":1}`, i)
		}
		sb.WriteString(`,"children":[]`)
		for i := 0; i < levels; i++ {
			sb.WriteString(`}]`)
		}
		sb.WriteString(`}`)
		return sb.String()
	}

	_, err := ValidateJSON([]byte(deep(5)), Limits{MaxDepth: 5})
	require.NoError(t, err)

	_, err = ValidateJSON([]byte(deep(6)), Limits{MaxDepth: 5})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "maximum depth 5")
}

func TestValidate_NodeLimit(t *testing.T) {
	nodes := make([]any, 4)
	for i := range nodes {
		nodes[i] = map[string]any{
			"id": fmt.Sprintf("n%d", i), "type": "shape",
			"layout":   map[string]any{"x": 0, "y": 0, "width": 1, "height": 1},
			"children": []any{},
		}
	}
	input := map[string]any{"id": "d", "name": "n", "nodes": nodes}

	_, err := Validate(input, Limits{MaxNodes: 4})
	require.NoError(t, err)

	_, err = Validate(input, Limits{MaxNodes: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum of 3 nodes")
}

func TestValidateDocument_Typed(t *testing.T) {
	t.Run("returns independent copy", func(t *testing.T) {
		doc := &Document{ID: "d", Name: "n", Nodes: []*Node{
			{ID: "a", Type: TypeText, Props: Props{"text": "x", "size": 12}, Layout: Layout{Width: 1, Height: 1}},
		}}

		out, err := ValidateDocument(doc, Limits{})
		require.NoError(t, err)
		assert.Equal(t, 12.0, out.Nodes[0].Props["size"])
		assert.NotNil(t, out.Nodes[0].Children)

		out.Nodes[0].Props["text"] = "changed"
		assert.Equal(t, "x", doc.Nodes[0].Props["text"])
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		doc := &Document{Nodes: []*Node{{ID: "a", Type: "button"}}}
		_, err := ValidateDocument(doc, Limits{})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects nil node", func(t *testing.T) {
		doc := &Document{Nodes: []*Node{{ID: "a", Type: TypeGroup, Children: []*Node{nil}}}}
		_, err := ValidateDocument(doc, Limits{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nodes[0].children[0]")
	})

	t.Run("cycle is caught by the depth bound", func(t *testing.T) {
		loop := &Node{ID: "a", Type: TypeGroup}
		loop.Children = []*Node{loop}
		_, err := ValidateDocument(&Document{Nodes: []*Node{loop}}, Limits{MaxDepth: 16})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maximum depth 16")
	})
}

func TestValidate_YAMLStyleNumbers(t *testing.T) {
	input := map[string]any{
		"id": "d", "name": "n",
		"nodes": []any{map[string]any{
			"id": "a", "type": "frame",
			"layout":   map[string]any{"x": 1, "y": int64(2), "width": uint(3), "height": 4.5},
			"children": []any{},
		}},
	}
	doc, err := Validate(input, Limits{})
	require.NoError(t, err)
	assert.Equal(t, Layout{X: 1, Y: 2, Width: 3, Height: 4.5}, doc.Nodes[0].Layout)
}
