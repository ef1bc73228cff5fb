package sketch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/teranos/sketchflow/errors"
)

// Default bounds for a single document. The schema itself has no maximum
// depth, so the validator enforces one to keep adversarial input from
// exhausting the stack.
const (
	DefaultMaxDepth = 256
	DefaultMaxNodes = 100_000
)

// Limits bounds the size of a document accepted by the validator.
// Zero values fall back to the defaults.
type Limits struct {
	MaxDepth int `mapstructure:"max_depth" json:"max_depth" yaml:"max_depth" toml:"max_depth"`
	MaxNodes int `mapstructure:"max_nodes" json:"max_nodes" yaml:"max_nodes" toml:"max_nodes"`
}

// DefaultLimits returns the default document bounds.
func DefaultLimits() Limits {
	return Limits{MaxDepth: DefaultMaxDepth, MaxNodes: DefaultMaxNodes}
}

func (l Limits) withDefaults() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxNodes <= 0 {
		l.MaxNodes = DefaultMaxNodes
	}
	return l
}

// ValidationError reports the first structural violation found in a document.
// It matches errors.ErrValidation.
type ValidationError struct {
	// Path locates the offending value, e.g. "nodes[0].children[2].layout.width"
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed at %s: %s", e.Path, e.Message)
}

// Unwrap exposes the validation error kind.
func (e *ValidationError) Unwrap() error {
	return errors.ErrValidation
}

func invalid(path, format string, args ...any) error {
	return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// Validate checks arbitrary input against the document schema and returns a
// freshly built Document. Accepted inputs are decoded JSON values
// (map[string]any trees), raw JSON bytes or text, or typed documents; anything else
// is round-tripped through JSON first.
//
// The whole document is rejected on the first violation.
func Validate(raw any, limits Limits) (*Document, error) {
	switch v := raw.(type) {
	case nil:
		return nil, invalid("", "document is required")
	case *Document:
		return ValidateDocument(v, limits)
	case Document:
		return ValidateDocument(&v, limits)
	case []byte:
		return ValidateJSON(v, limits)
	case json.RawMessage:
		return ValidateJSON(v, limits)
	case string:
		return ValidateJSON([]byte(v), limits)
	case map[string]any:
		return newValidator(limits).document(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, invalid("", "input is not a JSON document: %v", err)
		}
		return ValidateJSON(data, limits)
	}
}

// ValidateJSON decodes data and validates it as a document.
func ValidateJSON(data []byte, limits Limits) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, invalid("", "malformed JSON: %v", err)
	}
	if dec.More() {
		return nil, invalid("", "unexpected data after document")
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, invalid("", "document must be an object")
	}
	return newValidator(limits).document(obj)
}

// ValidateDocument checks a typed document and returns an independent copy.
func ValidateDocument(doc *Document, limits Limits) (*Document, error) {
	if doc == nil {
		return nil, invalid("", "document is required")
	}
	if err := doc.Validate(limits); err != nil {
		return nil, err
	}
	out := doc.Clone()
	normalizeTree(out.Nodes)
	return out, nil
}

// Validate checks a typed document in place without copying it.
func (d *Document) Validate(limits Limits) error {
	v := newValidator(limits)
	return v.typedNodes(d.Nodes, "nodes", 1)
}

// =============================================================================
// Generic (decoded JSON) validation
// =============================================================================

type validator struct {
	limits Limits
	count  int
}

func newValidator(limits Limits) *validator {
	return &validator{limits: limits.withDefaults()}
}

func (v *validator) document(obj map[string]any) (*Document, error) {
	id, err := requireString(obj, "id", "id")
	if err != nil {
		return nil, err
	}
	name, err := requireString(obj, "name", "name")
	if err != nil {
		return nil, err
	}

	rawNodes, ok := obj["nodes"]
	if !ok {
		return nil, invalid("nodes", "is required")
	}
	list, ok := rawNodes.([]any)
	if !ok {
		return nil, invalid("nodes", "must be an array")
	}

	nodes, err := v.nodeList(list, "nodes", 1)
	if err != nil {
		return nil, err
	}
	return &Document{ID: id, Name: name, Nodes: nodes}, nil
}

func (v *validator) nodeList(list []any, path string, depth int) ([]*Node, error) {
	if depth > v.limits.MaxDepth && len(list) > 0 {
		return nil, invalid(path, "exceeds maximum depth %d", v.limits.MaxDepth)
	}

	nodes := make([]*Node, 0, len(list))
	for i, item := range list {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, invalid(itemPath, "must be an object")
		}
		n, err := v.node(obj, itemPath, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (v *validator) node(obj map[string]any, path string, depth int) (*Node, error) {
	v.count++
	if v.count > v.limits.MaxNodes {
		return nil, invalid(path, "document exceeds maximum of %d nodes", v.limits.MaxNodes)
	}

	id, err := requireString(obj, "id", path+".id")
	if err != nil {
		return nil, err
	}

	typeName, err := requireString(obj, "type", path+".type")
	if err != nil {
		return nil, err
	}
	nodeType, ok := ParseNodeType(typeName)
	if !ok {
		return nil, invalid(path+".type", "must be one of %s, got %q", typeList(), typeName)
	}

	n := &Node{ID: id, Type: nodeType}

	if rawName, ok := obj["name"]; ok {
		name, isString := rawName.(string)
		if !isString {
			return nil, invalid(path+".name", "must be a string")
		}
		n.Name = &name
	}

	if rawProps, ok := obj["props"]; ok {
		props, isObject := rawProps.(map[string]any)
		if !isObject {
			return nil, invalid(path+".props", "must be an object")
		}
		n.Props = normalizeProps(props)
	}

	rawLayout, ok := obj["layout"]
	if !ok {
		return nil, invalid(path+".layout", "is required")
	}
	layoutObj, ok := rawLayout.(map[string]any)
	if !ok {
		return nil, invalid(path+".layout", "must be an object")
	}
	if n.Layout, err = layoutFrom(layoutObj, path+".layout"); err != nil {
		return nil, err
	}

	rawChildren, ok := obj["children"]
	if !ok {
		return nil, invalid(path+".children", "is required")
	}
	children, ok := rawChildren.([]any)
	if !ok {
		return nil, invalid(path+".children", "must be an array")
	}
	if n.Children, err = v.nodeList(children, path+".children", depth+1); err != nil {
		return nil, err
	}

	return n, nil
}

func layoutFrom(obj map[string]any, path string) (Layout, error) {
	var l Layout
	fields := []struct {
		key string
		dst *float64
	}{
		{"x", &l.X},
		{"y", &l.Y},
		{"width", &l.Width},
		{"height", &l.Height},
	}

	for _, f := range fields {
		raw, ok := obj[f.key]
		if !ok {
			return l, invalid(path+"."+f.key, "is required")
		}
		num, ok := toNumber(raw)
		if !ok {
			return l, invalid(path+"."+f.key, "must be a finite number")
		}
		*f.dst = num
	}

	if raw, ok := obj["rotation"]; ok {
		rotation, isNumber := toNumber(raw)
		if !isNumber {
			return l, invalid(path+".rotation", "must be a finite number")
		}
		l.Rotation = &rotation
	}

	return l, checkSize(l, path)
}

func requireString(obj map[string]any, key, path string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", invalid(path, "is required")
	}
	s, ok := raw.(string)
	if !ok {
		return "", invalid(path, "must be a string")
	}
	return s, nil
}

// =============================================================================
// Typed validation
// =============================================================================

func (v *validator) typedNodes(nodes []*Node, path string, depth int) error {
	if depth > v.limits.MaxDepth && len(nodes) > 0 {
		return invalid(path, "exceeds maximum depth %d", v.limits.MaxDepth)
	}

	for i, n := range nodes {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if n == nil {
			return invalid(itemPath, "must be an object")
		}

		v.count++
		if v.count > v.limits.MaxNodes {
			return invalid(itemPath, "document exceeds maximum of %d nodes", v.limits.MaxNodes)
		}

		if !n.Type.Valid() {
			return invalid(itemPath+".type", "must be one of %s, got %q", typeList(), string(n.Type))
		}
		if err := checkLayout(n.Layout, itemPath+".layout"); err != nil {
			return err
		}
		if err := v.typedNodes(n.Children, itemPath+".children", depth+1); err != nil {
			return err
		}
	}
	return nil
}

func checkLayout(l Layout, path string) error {
	values := []struct {
		key string
		val float64
	}{
		{"x", l.X},
		{"y", l.Y},
		{"width", l.Width},
		{"height", l.Height},
	}
	for _, f := range values {
		if !finite(f.val) {
			return invalid(path+"."+f.key, "must be a finite number")
		}
	}
	if l.Rotation != nil && !finite(*l.Rotation) {
		return invalid(path+".rotation", "must be a finite number")
	}
	return checkSize(l, path)
}

func checkSize(l Layout, path string) error {
	if l.Width < 0 {
		return invalid(path+".width", "must be non-negative, got %s", FormatNumber(l.Width))
	}
	if l.Height < 0 {
		return invalid(path+".height", "must be non-negative, got %s", FormatNumber(l.Height))
	}
	return nil
}

// =============================================================================
// Value helpers
// =============================================================================

func toNumber(raw any) (float64, bool) {
	var f float64
	switch n := raw.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	return f, finite(f)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// normalizeProps copies props, converting every numeric value to float64 so
// a document reads the same whether it came from JSON, YAML or Go code.
func normalizeProps(props map[string]any) Props {
	out := make(Props, len(props))
	for k, val := range props {
		out[k] = normalizeValue(val)
	}
	return out
}

func normalizeValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalizeValue(item)
		}
		return out
	case Props:
		return map[string]any(normalizeProps(v))
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	case string, bool, nil:
		return v
	default:
		if num, ok := toNumber(v); ok {
			return num
		}
		return v
	}
}

func normalizeTree(nodes []*Node) {
	Walk(nodes, func(n *Node, _, _ int) bool {
		if n.Props != nil {
			n.Props = normalizeProps(n.Props)
		}
		return true
	})
}

func typeList() string {
	names := make([]string, len(NodeTypes))
	for i, t := range NodeTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
