package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/teranos/sketchflow/errors"
)

// ParseOptionPairs turns key=value entries into an option map. A bare key
// means "true"; entries with an empty key are skipped. Keys and values are
// trimmed and later entries win.
func ParseOptionPairs(entries []string) map[string]any {
	out := make(map[string]any)
	for _, entry := range entries {
		key, value, found := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !found {
			setFold(out, key, "true")
			continue
		}
		setFold(out, key, strings.TrimSpace(value))
	}
	return out
}

// SplitOptionString splits a shell-quoted list of key=value pairs.
func SplitOptionString(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to split option string %q", s)
	}
	return words, nil
}

// OptionsFor merges the adapter option layers for framework, lowest first:
// [adapters.<framework>], adapter_options, then the flag entries.
// Keys are matched case-insensitively across layers.
func (c *Config) OptionsFor(framework string, flags []string) (map[string]any, error) {
	out := make(map[string]any)
	for k, v := range c.Adapters[framework] {
		setFold(out, k, v)
	}

	words, err := SplitOptionString(c.AdapterOptions)
	if err != nil {
		return nil, err
	}
	for k, v := range ParseOptionPairs(words) {
		setFold(out, k, v)
	}
	for k, v := range ParseOptionPairs(flags) {
		setFold(out, k, v)
	}
	return out, nil
}

// setFold sets m[key], replacing any key that differs only in case.
func setFold(m map[string]any, key string, value any) {
	for existing := range m {
		if existing != key && strings.EqualFold(existing, key) {
			delete(m, existing)
		}
	}
	m[key] = value
}

// LoadLayoutFile reads a layout configuration ({engine, options}) from a
// .json, .yaml/.yml or .toml file.
func LoadLayoutFile(path string) (*LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read layout config %s", path)
	}

	var lc LayoutConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &lc)
	case ".toml":
		err = toml.Unmarshal(data, &lc)
	default:
		err = json.Unmarshal(data, &lc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse layout config %s", path)
	}
	return &lc, nil
}
