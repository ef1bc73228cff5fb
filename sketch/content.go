package sketch

// Fallbacks used when a node carries no usable props or name.
const (
	DefaultTextLabel = "Label"
	DefaultImageAlt  = "image"
)

// Content is the typed view of a node's props, one variant per rendering
// behaviour. Adapters switch on it instead of reading Props directly.
type Content interface {
	content()
}

// TextContent is the display value of a text node.
type TextContent struct {
	Text string
}

// ImageContent holds the source and alt label of an image node.
type ImageContent struct {
	Src string
	Alt string
}

// ContainerContent marks frames, groups, components and shapes, which render
// as a generic box embedding their children.
type ContainerContent struct {
	Type NodeType
}

func (TextContent) content()      {}
func (ImageContent) content()     {}
func (ContainerContent) content() {}

// Content resolves the node's props into its typed variant.
//
//	text:  props.text, then name, then "Label"
//	image: src = props.src or ""; alt = props.alt, then name, then "image"
//	other: container
func (n *Node) Content() Content {
	switch n.Type {
	case TypeText:
		if text, ok := n.Props.String("text"); ok {
			return TextContent{Text: text}
		}
		if name, ok := n.DisplayName(); ok {
			return TextContent{Text: name}
		}
		return TextContent{Text: DefaultTextLabel}

	case TypeImage:
		img := ImageContent{Alt: DefaultImageAlt}
		if src, ok := n.Props.String("src"); ok {
			img.Src = src
		}
		if alt, ok := n.Props.String("alt"); ok {
			img.Alt = alt
		} else if name, ok := n.DisplayName(); ok {
			img.Alt = name
		}
		return img

	default:
		return ContainerContent{Type: n.Type}
	}
}

// Label returns the human-facing label of a node: props.label, then name,
// then props.text. Reports false when none is set.
func (n *Node) Label() (string, bool) {
	if label, ok := n.Props.String("label"); ok {
		return label, true
	}
	if name, ok := n.DisplayName(); ok {
		return name, true
	}
	return n.Props.String("text")
}
