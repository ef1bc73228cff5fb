package layout

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/sketch"
)

// StackName is the name of the stacking engine.
const StackName = "stack"

// Stack directions.
const (
	Vertical   = "vertical"
	Horizontal = "horizontal"
)

// Constraints configure the stack engine.
type Constraints struct {
	HorizontalGap float64 `mapstructure:"horizontalGap" json:"horizontalGap" validate:"gte=0"`
	VerticalGap   float64 `mapstructure:"verticalGap" json:"verticalGap" validate:"gte=0"`
	Padding       float64 `mapstructure:"padding" json:"padding" validate:"gte=0"`
	Direction     string  `mapstructure:"direction" json:"direction" validate:"omitempty,oneof=vertical horizontal"`
}

// Stack re-flows the children of every container along one axis, in child
// order, separated by the configured gap and inset by the padding. Leaf
// nodes and top-level positions are left alone.
type Stack struct {
	constraints Constraints
}

var _ Configurable = (*Stack)(nil)

var constraintValidator = validator.New()

// NewStack returns a stack engine. An empty direction means vertical.
func NewStack(c Constraints) (*Stack, error) {
	if c.Direction == "" {
		c.Direction = Vertical
	}
	if err := constraintValidator.Struct(c); err != nil {
		return nil, errors.Wrap(err, "invalid stack constraints")
	}
	return &Stack{constraints: c}, nil
}

// DecodeConstraints reads constraints from an open option map, accepting
// numeric strings the way config files and CLI flags deliver them.
func DecodeConstraints(options map[string]any) (Constraints, error) {
	var c Constraints
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &c,
	})
	if err != nil {
		return c, errors.Wrap(err, "failed to build constraints decoder")
	}
	if err := decoder.Decode(options); err != nil {
		return c, errors.Wrap(err, "invalid stack options")
	}
	return c, nil
}

func (s *Stack) Name() string    { return StackName }
func (s *Stack) Version() string { return DefaultVersion }

// Constraints returns the engine's configuration.
func (s *Stack) Constraints() Constraints { return s.constraints }

// Supports reports whether n is a container with children to re-flow.
func (s *Stack) Supports(n *sketch.Node) bool {
	if n == nil || len(n.Children) == 0 {
		return false
	}
	switch n.Type {
	case sketch.TypeFrame, sketch.TypeGroup, sketch.TypeComponent:
		return true
	}
	return false
}

// Configure returns a new Stack with options layered over the current
// constraints.
func (s *Stack) Configure(options map[string]any) (Engine, error) {
	merged := map[string]any{
		"horizontalGap": s.constraints.HorizontalGap,
		"verticalGap":   s.constraints.VerticalGap,
		"padding":       s.constraints.Padding,
		"direction":     s.constraints.Direction,
	}
	for k, v := range options {
		// Config files deliver lowercased keys
		for existing := range merged {
			if strings.EqualFold(existing, k) {
				delete(merged, existing)
			}
		}
		merged[k] = v
	}
	c, err := DecodeConstraints(merged)
	if err != nil {
		return nil, err
	}
	return NewStack(c)
}

func (s *Stack) Apply(nodes []*sketch.Node) ([]*sketch.Node, error) {
	out := sketch.CloneNodes(nodes)
	sketch.Walk(out, func(n *sketch.Node, _, _ int) bool {
		if s.Supports(n) {
			s.reflow(n.Children)
		}
		return true
	})
	return out, nil
}

func (s *Stack) reflow(children []*sketch.Node) {
	c := s.constraints
	cursor := c.Padding
	for _, child := range children {
		if c.Direction == Horizontal {
			child.Layout.X = cursor
			child.Layout.Y = c.Padding
			cursor += child.Layout.Width + c.HorizontalGap
		} else {
			child.Layout.X = c.Padding
			child.Layout.Y = cursor
			cursor += child.Layout.Height + c.VerticalGap
		}
	}
}
