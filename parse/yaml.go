package parse

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/sketch"
)

type yamlParser struct {
	limits sketch.Limits
}

// NewYAMLParser returns the parser for canonical documents written as YAML.
func NewYAMLParser(limits sketch.Limits) Parser {
	return yamlParser{limits: limits}
}

func (yamlParser) Name() string    { return "yaml" }
func (yamlParser) Version() string { return "0.1.0" }

func (yamlParser) Supports(src Source) bool {
	return src.Kind == KindYAML
}

func (p yamlParser) Parse(ctx context.Context, src Source) (*sketch.Document, error) {
	var data []byte
	switch v := src.Payload.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		// Already decoded; the shape is the canonical one either way
		return sketch.Validate(jsonShaped(v), p.limits)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, payloadError(errors.Wrap(err, "malformed YAML"))
	}
	return sketch.Validate(jsonShaped(raw), p.limits)
}

// jsonShaped rewrites YAML's map[any]any nodes into map[string]any so the
// value looks like decoded JSON.
func jsonShaped(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = jsonShaped(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = jsonShaped(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = jsonShaped(item)
		}
		return out
	default:
		return v
	}
}
