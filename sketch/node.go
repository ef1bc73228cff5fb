// Package sketch defines the canonical document model shared by every stage
// of the generation pipeline.
//
// A Document is a tree of positioned Nodes. Coordinates in Layout are
// offsets relative to the parent node, never absolute canvas positions.
// Child order is significant and is preserved by every stage, from
// validation through layout to the generated output.
//
// Documents are built once per generation request (by the validator or a
// parser) and treated as immutable afterwards: layout engines return new
// trees rather than mutating the parsed one.
package sketch

import (
	"encoding/json"
	"math"
	"strconv"
)

// NodeType determines how downstream adapters render a node.
type NodeType string

// The closed set of node types. No other value survives validation.
const (
	TypeFrame     NodeType = "frame"
	TypeGroup     NodeType = "group"
	TypeShape     NodeType = "shape"
	TypeText      NodeType = "text"
	TypeImage     NodeType = "image"
	TypeComponent NodeType = "component"
)

// NodeTypes lists every valid node type in declaration order.
var NodeTypes = []NodeType{TypeFrame, TypeGroup, TypeShape, TypeText, TypeImage, TypeComponent}

// Valid reports whether t is one of the enumerated node types.
func (t NodeType) Valid() bool {
	switch t {
	case TypeFrame, TypeGroup, TypeShape, TypeText, TypeImage, TypeComponent:
		return true
	}
	return false
}

// ParseNodeType converts s to a NodeType, reporting false for unknown values.
func ParseNodeType(s string) (NodeType, bool) {
	t := NodeType(s)
	return t, t.Valid()
}

// Layout is a node's box relative to its parent.
// A nil Rotation means "no rotation", which adapters must keep distinct from 0.
type Layout struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Rotation *float64 `json:"rotation,omitempty"`
}

// Props is the open, type-dependent property bag of a node (text, src, alt, ...).
// The core never interprets it; adapters read it through Node.Content.
type Props map[string]any

// Node is one element of the sketch tree.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Name     *string  `json:"name,omitempty"`
	Props    Props    `json:"props,omitzero"`
	Layout   Layout   `json:"layout"`
	Children []*Node  `json:"children"`
}

// Document is the canonical description of a sketch.
type Document struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Nodes []*Node `json:"nodes"`
}

// MarshalJSON always emits children as an array, never null.
func (n *Node) MarshalJSON() ([]byte, error) {
	type plain Node
	out := plain(*n)
	if out.Children == nil {
		out.Children = []*Node{}
	}
	return json.Marshal(out)
}

// MarshalJSON always emits nodes as an array, never null.
func (d *Document) MarshalJSON() ([]byte, error) {
	type plain Document
	out := plain(*d)
	if out.Nodes == nil {
		out.Nodes = []*Node{}
	}
	return json.Marshal(out)
}

// DisplayName returns the node's name and whether one was set.
func (n *Node) DisplayName() (string, bool) {
	if n.Name == nil {
		return "", false
	}
	return *n.Name, true
}

// String returns props[key] rendered as text and whether the key held a value.
// Non-string values are rendered the way a JSON serializer would print them.
func (p Props) String(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}

	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		return FormatNumber(value), true
	case float32:
		return FormatNumber(float64(value)), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case bool:
		return strconv.FormatBool(value), true
	case json.Number:
		return value.String(), true
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return "", false
		}
		return string(data), true
	}
}

// FormatNumber renders f in its shortest decimal form ("8", "12.5", "-3").
// Every adapter emits coordinates through this so output is identical across frameworks.
func FormatNumber(f float64) string {
	if f == 0 || math.IsNaN(f) {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
