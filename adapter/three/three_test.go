package three

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/adapter/adaptertest"
	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/sketch"
)

func TestConformance(t *testing.T) {
	adaptertest.Conformance(t, New(), adaptertest.Profile{
		Policy:   adapter.Recursive,
		Rotation: `"rotation": `,
	})
}

func TestGenerate_Scene(t *testing.T) {
	res, out := adaptertest.Generate(t, New(), adaptertest.Context(adaptertest.SampleDocument(), nil))
	require.Len(t, res.Files, 1)

	assert.Equal(t, "GeneratedScene.ts", res.Files[0].Path)
	assert.Contains(t, out, "export const layoutNodes: ThreeLayoutNode[] = [\n  {\n    \"id\": \"root\",")
	assert.Contains(t, out, "export const createScene = () => {")
	assert.Contains(t, out, `"src": "hero.png"`)
	assert.Contains(t, out, `"id": "card"`)
	assert.Contains(t, out, `"id": "caption"`)
	assert.Contains(t, out, `scene.background = new THREE.Color("#222222");`)
}

func TestGenerate_ScenarioLayout(t *testing.T) {
	_, out := adaptertest.Generate(t, New(), adaptertest.Context(adaptertest.ScenarioDocument(), nil))
	assert.Contains(t, out, `export const layoutNodes: ThreeLayoutNode[] = [
  {
    "id": "f1",
    "type": "frame",
    "layout": {
      "x": 0,
      "y": 0,
      "width": 320,
      "height": 200
    },
    "children": [
      {
        "id": "t1",
        "type": "text",
        "label": "Hi",
        "props": {
          "text": "Hi"
        },
        "layout": {
          "x": 8,
          "y": 12,
          "width": 100,
          "height": 20
        },
        "children": []
      }
    ]
  }
];`)
}

func TestGenerate_EmptyLayout(t *testing.T) {
	doc := &sketch.Document{ID: "e", Name: "Empty"}
	actx := &adapter.Context{Document: doc}
	res, err := New().Generate(context.Background(), actx)
	require.NoError(t, err)
	assert.Contains(t, res.Files[0].Contents, "export const layoutNodes: ThreeLayoutNode[] = [];")
}

func TestGenerate_Options(t *testing.T) {
	res, out := adaptertest.Generate(t, New(), adaptertest.Context(adaptertest.ScenarioDocument(),
		adapter.Options{"sceneName": "Lobby Scene", "sceneBackground": "#123456"}))
	assert.Equal(t, "Lobby-Scene.ts", res.Files[0].Path)
	assert.Contains(t, out, `new THREE.Color("#123456")`)
}

func TestGenerate_InvalidBackground(t *testing.T) {
	_, err := New().Generate(context.Background(), adaptertest.Context(adaptertest.ScenarioDocument(),
		adapter.Options{"sceneBackground": "dark"}))
	require.Error(t, err)
	assert.True(t, errors.IsAdapterGenerationError(err))
	assert.Contains(t, err.Error(), "sceneBackground")
}

func TestIntrospect_Recursive(t *testing.T) {
	got, err := New().Introspect(context.Background(), adaptertest.Context(adaptertest.SampleDocument(), nil))
	require.NoError(t, err)
	assert.Equal(t, adapter.Introspection{NodeCount: 8, Components: 2, Policy: adapter.Recursive}, got)
}

func TestGenerate_ObjectsNamedByLabel(t *testing.T) {
	doc := &sketch.Document{ID: "d", Name: "n", Nodes: []*sketch.Node{
		{ID: "btn", Type: sketch.TypeComponent, Name: ptr("Button"), Props: sketch.Props{"label": "Click"}},
		{ID: "plain", Type: sketch.TypeShape},
	}}
	_, out := adaptertest.Generate(t, New(), adaptertest.Context(doc, nil))

	assert.Contains(t, out, "    \"name\": \"Button\",\n    \"label\": \"Click\",")
	assert.Contains(t, out, "object.name = node.label ?? node.id;")
	assert.Contains(t, out, "    \"id\": \"plain\",\n    \"type\": \"shape\",\n    \"layout\": {")
}

func ptr[T any](v T) *T { return &v }
