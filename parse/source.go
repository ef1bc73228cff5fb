// Package parse normalizes heterogeneous sketch inputs into canonical
// sketch documents.
//
// A Source pairs a Kind tag with an untyped payload. The Registry picks the
// first registered Parser whose Supports predicate matches, so registration
// order is a priority order. Two kinds are handled without a parser:
// "document" is validated as-is, and "json" falls back to schema validation
// when no parser claims it.
package parse

import (
	"encoding/json"
	"strings"

	"github.com/teranos/sketchflow/errors"
)

// Kind tags the shape of a source payload.
type Kind string

const (
	KindDocument  Kind = "document"
	KindJSON      Kind = "json"
	KindVectors   Kind = "vectors"
	KindWireframe Kind = "wireframe"
	KindYAML      Kind = "yaml"
)

// Source is one raw input to the pipeline.
//
// Payload may be a typed value (sketch.Document, Vector, []Wireframe, ...),
// raw bytes or text, or a decoded generic value (map[string]any, []any).
type Source struct {
	Kind    Kind `json:"kind"`
	Payload any  `json:"payload"`
}

// KindFromPath guesses a source kind from a file name: .yaml/.yml files are
// YAML documents, everything else is JSON.
func KindFromPath(path string) Kind {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return KindYAML
	}
	return KindJSON
}

// decodeItems converts a payload holding either one T or a list of T into a
// slice. Typed values pass through; everything else goes through JSON.
func decodeItems[T any](payload any) ([]T, error) {
	switch p := payload.(type) {
	case nil:
		return nil, errors.New("payload is required")
	case T:
		return []T{p}, nil
	case *T:
		if p == nil {
			return nil, errors.New("payload is required")
		}
		return []T{*p}, nil
	case []T:
		return p, nil
	case []byte:
		return decodeJSONItems[T](p)
	case json.RawMessage:
		return decodeJSONItems[T](p)
	case string:
		return decodeJSONItems[T]([]byte(p))
	default:
		data, err := json.Marshal(p)
		if err != nil {
			return nil, errors.Wrap(err, "payload is not JSON-shaped")
		}
		return decodeJSONItems[T](data)
	}
}

func decodeJSONItems[T any](data []byte) ([]T, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var items []T
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, errors.Wrap(err, "malformed payload")
		}
		return items, nil
	}

	var item T
	if err := json.Unmarshal([]byte(trimmed), &item); err != nil {
		return nil, errors.Wrap(err, "malformed payload")
	}
	return []T{item}, nil
}
