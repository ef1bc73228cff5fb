package adapter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/teranos/sketchflow/sketch"
)

// Key is the synthetic identity of a rendered node: "<id>-<index>", where
// index is the node's 0-based position among its siblings.
func Key(id string, index int) string {
	return id + "-" + strconv.Itoa(index)
}

// Element is one node at its place in the rendered output.
type Element struct {
	Node   *sketch.Node
	Key    string
	Index  int
	Depth  int
	Indent string
	// Path holds the sibling indices from the top-level node down to this
	// one. Unlike Key it is unique within a render.
	Path []int
}

// PathName joins el.Path with prefix, e.g. "n-0-2-1".
func (el Element) PathName(prefix string) string {
	parts := make([]string, 0, len(el.Path)+1)
	parts = append(parts, prefix)
	for _, i := range el.Path {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, "-")
}

// Markup renders single elements in a framework's syntax. Render handles
// traversal, indentation and joining.
type Markup interface {
	Text(el Element, text sketch.TextContent) string
	Image(el Element, img sketch.ImageContent) string
	// Container renders a frame, group, component or shape. children is
	// empty when the node has none; otherwise it starts with a newline and
	// ends with a newline plus el.Indent, ready to sit between the opening
	// and closing tags.
	Container(el Element, children string) string
}

// Render emits nodes depth-first in array order, one line per element
// prefixed with unit repeated depth times. Children are rendered at
// depth+1 between their parent's opening and closing constructs.
func Render(nodes []*sketch.Node, depth int, unit string, m Markup) string {
	return render(nodes, depth, unit, m, nil)
}

func render(nodes []*sketch.Node, depth int, unit string, m Markup, parent []int) string {
	lines := make([]string, len(nodes))
	indent := strings.Repeat(unit, depth)

	for i, n := range nodes {
		path := append(slices.Clone(parent), i)
		el := Element{Node: n, Key: Key(n.ID, i), Index: i, Depth: depth, Indent: indent, Path: path}

		var line string
		switch c := n.Content().(type) {
		case sketch.TextContent:
			line = m.Text(el, c)
		case sketch.ImageContent:
			line = m.Image(el, c)
		default:
			children := ""
			if len(n.Children) > 0 {
				children = "\n" + render(n.Children, depth+1, unit, m, path) + "\n" + indent
			}
			line = m.Container(el, children)
		}
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
