package sketch

import "maps"

// Clone returns a deep copy of the node: new layout, new props map and new
// children slice at every level. Prop values themselves are shared, since the
// core never mutates them.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	out := &Node{
		ID:       n.ID,
		Type:     n.Type,
		Layout:   n.Layout.clone(),
		Children: CloneNodes(n.Children),
	}
	if n.Name != nil {
		name := *n.Name
		out.Name = &name
	}
	if n.Props != nil {
		out.Props = maps.Clone(n.Props)
	}
	return out
}

// CloneNodes deep copies a node sequence, preserving order.
// The result is never nil.
func CloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{
		ID:    d.ID,
		Name:  d.Name,
		Nodes: CloneNodes(d.Nodes),
	}
}

func (l Layout) clone() Layout {
	if l.Rotation != nil {
		r := *l.Rotation
		l.Rotation = &r
	}
	return l
}

// VisitFunc is called for each node in depth-first order. depth is 0 for the
// nodes passed to Walk and index is the node's position among its siblings.
// Returning false skips the node's children.
type VisitFunc func(n *Node, depth, index int) bool

// Walk traverses nodes depth-first, parents before children, in array order.
func Walk(nodes []*Node, fn VisitFunc) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn VisitFunc) {
	for i, n := range nodes {
		if fn(n, depth, i) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// CountNodes counts nodes, either only the given sequence or the whole tree.
func CountNodes(nodes []*Node, recursive bool) int {
	if !recursive {
		return len(nodes)
	}
	count := 0
	Walk(nodes, func(*Node, int, int) bool {
		count++
		return true
	})
	return count
}

// CountType counts nodes of type t under the same policy as CountNodes.
func CountType(nodes []*Node, t NodeType, recursive bool) int {
	count := 0
	Walk(nodes, func(n *Node, _, _ int) bool {
		if n.Type == t {
			count++
		}
		return recursive
	})
	return count
}
