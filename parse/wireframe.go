package parse

import (
	"context"
	"maps"

	"github.com/teranos/sketchflow/sketch"
)

// WireframeDocumentName names every document built from wireframe primitives.
const WireframeDocumentName = "Wireframe import"

// Wireframe is a low-fidelity primitive from a wireframing tool.
type Wireframe struct {
	ID       *string        `json:"id,omitempty"`
	Type     string         `json:"type" validate:"required,oneof=canvas box button text image"`
	Label    *string        `json:"label,omitempty"`
	Position *Point         `json:"position" validate:"required"`
	Size     *Size          `json:"size" validate:"required"`
	Rotation *float64       `json:"rotation,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Children []Wireframe    `json:"children,omitempty" validate:"omitempty,dive"`
}

// wireframeTypes maps primitive types onto node types. Unlisted primitives
// cannot pass the schema check.
var wireframeTypes = map[string]sketch.NodeType{
	"canvas": sketch.TypeFrame,
	"box":    sketch.TypeFrame,
	"button": sketch.TypeComponent,
	"text":   sketch.TypeText,
	"image":  sketch.TypeImage,
}

type wireframeParser struct{}

// NewWireframeParser returns the parser for the "wireframe" source kind.
// Payloads are a single Wireframe or a list of them.
func NewWireframeParser() Parser {
	return wireframeParser{}
}

func (wireframeParser) Name() string    { return "wireframe" }
func (wireframeParser) Version() string { return "0.1.0" }

func (wireframeParser) Supports(src Source) bool {
	return src.Kind == KindWireframe
}

func (wireframeParser) Parse(ctx context.Context, src Source) (*sketch.Document, error) {
	primitives, err := decodeItems[Wireframe](src.Payload)
	if err != nil {
		return nil, payloadError(err)
	}
	if err := checkItems(primitives); err != nil {
		return nil, err
	}

	nodes := make([]*sketch.Node, len(primitives))
	for i := range primitives {
		nodes[i] = wireframeNode(&primitives[i])
	}
	return &sketch.Document{ID: sketch.NewID(), Name: WireframeDocumentName, Nodes: nodes}, nil
}

func wireframeNode(w *Wireframe) *sketch.Node {
	nodeType, ok := wireframeTypes[w.Type]
	if !ok {
		nodeType = sketch.TypeFrame
	}

	n := &sketch.Node{
		ID:       idOrNew(w.ID),
		Type:     nodeType,
		Name:     copyString(w.Label),
		Props:    wireframeProps(w),
		Layout:   layoutOf(w.Position, w.Size, w.Rotation),
		Children: make([]*sketch.Node, len(w.Children)),
	}
	for i := range w.Children {
		n.Children[i] = wireframeNode(&w.Children[i])
	}
	return n
}

// wireframeProps synthesizes props: text nodes show the label (then
// metadata.text), image nodes take metadata.src, metadata.url, then the
// label. Everything else keeps its metadata.
func wireframeProps(w *Wireframe) sketch.Props {
	switch w.Type {
	case "text":
		props := sketch.Props{}
		if text, ok := firstValue(labelValue(w.Label), w.Metadata["text"]); ok {
			props["text"] = text
		}
		return props
	case "image":
		props := sketch.Props{}
		if src, ok := firstValue(w.Metadata["src"], w.Metadata["url"], labelValue(w.Label)); ok {
			props["src"] = src
		}
		return props
	default:
		if w.Metadata == nil {
			return nil
		}
		return maps.Clone(w.Metadata)
	}
}

func labelValue(label *string) any {
	if label == nil {
		return nil
	}
	return *label
}

// firstValue returns the first non-nil candidate.
func firstValue(candidates ...any) (any, bool) {
	for _, c := range candidates {
		if c != nil {
			return c, true
		}
	}
	return nil, false
}
