// Package three serializes layouts into a Three.js scene module. Unlike the
// markup adapters it walks the whole tree when introspecting.
package three

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/sketch"
)

const (
	// Framework is the registry name of the Three.js adapter.
	Framework = "three"

	DefaultScene      = "GeneratedScene"
	DefaultBackground = "#222222"
)

const nodeInterface = `export interface ThreeLayoutNode {
  id: string;
  type: "frame" | "group" | "shape" | "text" | "image" | "component";
  name?: string;
  label?: string;
  props?: Record<string, unknown>;
  layout: {
    x: number;
    y: number;
    width: number;
    height: number;
    rotation?: number;
  };
  children: ThreeLayoutNode[];
}
`

const sceneBuilder = `const addNodes = (nodes: ThreeLayoutNode[], parent: THREE.Object3D) => {
  nodes.forEach((node) => {
    const object = new THREE.Object3D();
    object.name = node.label ?? node.id;
    object.position.set(node.layout.x, node.layout.y, 0);
    object.userData = {
      type: node.type,
      props: node.props ?? {},
      layout: node.layout
    };

    if (typeof node.layout.rotation === "number") {
      object.rotation.z = (node.layout.rotation * Math.PI) / 180;
    }

    parent.add(object);

    if (node.children.length) {
      addNodes(node.children, object);
    }
  });
};
`

// Options are the Three.js adapter options.
type Options struct {
	SceneName       string `mapstructure:"sceneName"`
	SceneBackground string `mapstructure:"sceneBackground" validate:"omitempty,hexcolor"`
}

// Adapter generates <Scene>.ts.
type Adapter struct{}

var _ adapter.Adapter = (*Adapter)(nil)

// New returns the Three.js adapter.
func New() *Adapter {
	return &Adapter{}
}

func (*Adapter) Framework() string          { return Framework }
func (*Adapter) Language() adapter.Language { return adapter.LangTS }

// Introspect counts every node in the tree, not just the top level.
func (*Adapter) Introspect(ctx context.Context, actx *adapter.Context) (adapter.Introspection, error) {
	return adapter.Count(actx.Layout, adapter.Recursive), nil
}

func (*Adapter) Generate(ctx context.Context, actx *adapter.Context) (*adapter.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var opts Options
	if err := adapter.DecodeOptions(actx.Options, &opts); err != nil {
		return nil, err
	}
	if opts.SceneBackground == "" {
		opts.SceneBackground = DefaultBackground
	}

	layoutNodes, err := serialize(actx.Layout)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("import * as THREE from \"three\";\n\n")
	sb.WriteString(nodeInterface)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("export const layoutNodes: ThreeLayoutNode[] = %s;\n\n", layoutNodes))
	sb.WriteString(sceneBuilder)
	sb.WriteString("\n")
	sb.WriteString("export const createScene = () => {\n")
	sb.WriteString("  const scene = new THREE.Scene();\n")
	sb.WriteString(fmt.Sprintf("  scene.background = new THREE.Color(%s);\n", adapter.Quote(opts.SceneBackground)))
	sb.WriteString("  addNodes(layoutNodes, scene);\n")
	sb.WriteString("  return scene;\n")
	sb.WriteString("};\n")

	name := adapter.SanitizeName(opts.SceneName, DefaultScene)
	return &adapter.Result{Files: []adapter.File{{Path: name + ".ts", Contents: sb.String()}}}, nil
}

// sceneNode is one ThreeLayoutNode: the node as written plus its resolved
// display label.
type sceneNode struct {
	ID       string          `json:"id"`
	Type     sketch.NodeType `json:"type"`
	Name     *string         `json:"name,omitempty"`
	Label    string          `json:"label,omitempty"`
	Props    sketch.Props    `json:"props,omitzero"`
	Layout   sketch.Layout   `json:"layout"`
	Children []sceneNode     `json:"children"`
}

func sceneNodes(nodes []*sketch.Node) []sceneNode {
	out := make([]sceneNode, len(nodes))
	for i, n := range nodes {
		label, _ := n.Label()
		out[i] = sceneNode{
			ID:       n.ID,
			Type:     n.Type,
			Name:     n.Name,
			Label:    label,
			Props:    n.Props,
			Layout:   n.Layout,
			Children: sceneNodes(n.Children),
		}
	}
	return out
}

// serialize renders nodes as a JSON array indented by two spaces.
func serialize(nodes []*sketch.Node) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sceneNodes(nodes)); err != nil {
		return "", errors.Mark(errors.Wrap(err, "failed to serialize layout"), errors.ErrAdapterGeneration)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
