package config

import (
	"os"
	"sort"
	"strings"

	"github.com/teranos/sketchflow/errors"
)

// Source names where a setting's effective value came from.
type Source string

const (
	SourceDefault     Source = "default"
	SourceUser        Source = "user"        // ~/.sketchflow/config.toml
	SourceProject     Source = "project"     // sketchflow.toml
	SourceEnvironment Source = "environment" // SKETCHFLOW_* env vars
)

type sourceRef struct {
	source Source
	path   string
}

// SettingInfo describes one effective setting.
type SettingInfo struct {
	Key        string `json:"key"`
	Value      any    `json:"value"`
	Source     Source `json:"source"`
	SourcePath string `json:"source_path,omitempty"` // file path or env var name
}

// Settings lists every effective setting, sorted by key.
func (l *Loaded) Settings() []SettingInfo {
	keys := l.Viper.AllKeys()
	sort.Strings(keys)

	settings := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		info := SettingInfo{Key: key, Value: l.Viper.Get(key), Source: SourceDefault}
		if ref, ok := l.sources[key]; ok {
			info.Source, info.SourcePath = ref.source, ref.path
		}
		if name, ok := envOverride(key); ok {
			info.Source, info.SourcePath = SourceEnvironment, name
		}
		settings = append(settings, info)
	}
	return settings
}

// Get returns the effective value of a dotted key.
func (l *Loaded) Get(key string) (any, error) {
	key = strings.ToLower(key)
	if !l.Viper.IsSet(key) {
		return nil, errors.Wrapf(errors.ErrNotFound, "unknown config key %q", key)
	}
	return l.Viper.Get(key), nil
}

// sensitiveEnv lists the extra variables bound in BindSensitiveEnvVars.
var sensitiveEnv = map[string][]string{
	"storage.access_key": {"AWS_ACCESS_KEY_ID"},
	"storage.secret_key": {"AWS_SECRET_ACCESS_KEY"},
	"storage.region":     {"AWS_REGION"},
}

func envOverride(key string) (string, bool) {
	names := append([]string{EnvName(key)}, sensitiveEnv[key]...)
	for _, name := range names {
		if _, ok := os.LookupEnv(name); ok {
			return name, true
		}
	}
	return "", false
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Redacted reports whether a key holds a credential that must not be
// printed.
func Redacted(key string) bool {
	return strings.HasSuffix(key, "secret_key") || strings.HasSuffix(key, "access_key")
}
