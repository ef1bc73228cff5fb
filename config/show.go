package config

import (
	"encoding/json"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/sketchflow/errors"
)

// Formats accepted by Marshal.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Marshal renders the effective settings in format. Credentials are
// replaced by "***".
func (l *Loaded) Marshal(format string) ([]byte, error) {
	settings := redact(l.Viper.AllSettings(), "")

	switch strings.ToLower(format) {
	case FormatTOML, "":
		return toml.Marshal(settings)
	case FormatJSON:
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(settings)
	default:
		return nil, errors.Newf("unknown format %q (use toml, json or yaml)", format)
	}
}

func redact(settings map[string]any, prefix string) map[string]any {
	out := make(map[string]any, len(settings))
	for k, v := range settings {
		key := prefix + k
		switch value := v.(type) {
		case map[string]any:
			out[k] = redact(value, key+".")
		case nil:
			// Unset env-bound keys have no value to print
		default:
			if Redacted(key) && value != "" {
				out[k] = "***"
			} else {
				out[k] = value
			}
		}
	}
	return out
}
