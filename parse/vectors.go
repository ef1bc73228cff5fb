package parse

import (
	"context"
	"maps"

	"github.com/teranos/sketchflow/sketch"
)

// VectorDocumentName names every document built from vector shapes.
const VectorDocumentName = "Vector import"

// Vector is a positioned shape from a vector drawing tool.
type Vector struct {
	ID       *string        `json:"id,omitempty"`
	Name     *string        `json:"name,omitempty"`
	Type     string         `json:"type" validate:"required,oneof=frame group shape text image component"`
	Position *Point         `json:"position" validate:"required"`
	Size     *Size          `json:"size" validate:"required"`
	Rotation *float64       `json:"rotation,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
	Children []Vector       `json:"children,omitempty" validate:"omitempty,dive"`
}

type vectorsParser struct{}

// NewVectorsParser returns the parser for the "vectors" source kind.
// Payloads are a single Vector or a list of them.
func NewVectorsParser() Parser {
	return vectorsParser{}
}

func (vectorsParser) Name() string    { return "vectors" }
func (vectorsParser) Version() string { return "0.1.0" }

func (vectorsParser) Supports(src Source) bool {
	return src.Kind == KindVectors
}

func (vectorsParser) Parse(ctx context.Context, src Source) (*sketch.Document, error) {
	vectors, err := decodeItems[Vector](src.Payload)
	if err != nil {
		return nil, payloadError(err)
	}
	if err := checkItems(vectors); err != nil {
		return nil, err
	}

	nodes := make([]*sketch.Node, len(vectors))
	for i := range vectors {
		nodes[i] = vectorNode(&vectors[i])
	}
	return &sketch.Document{ID: sketch.NewID(), Name: VectorDocumentName, Nodes: nodes}, nil
}

func vectorNode(v *Vector) *sketch.Node {
	n := &sketch.Node{
		ID:       idOrNew(v.ID),
		Type:     sketch.NodeType(v.Type),
		Name:     copyString(v.Name),
		Layout:   layoutOf(v.Position, v.Size, v.Rotation),
		Children: make([]*sketch.Node, len(v.Children)),
	}
	if v.Props != nil {
		n.Props = maps.Clone(v.Props)
	}
	for i := range v.Children {
		n.Children[i] = vectorNode(&v.Children[i])
	}
	return n
}

func idOrNew(id *string) string {
	if id != nil {
		return *id
	}
	return sketch.NewID()
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
