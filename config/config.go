// Package config loads sketchflow settings from defaults, TOML files, a
// .env file and SKETCHFLOW_* environment variables.
package config

import "fmt"

// Config is the complete sketchflow configuration.
type Config struct {
	Generate GenerateConfig `mapstructure:"generate"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	// Adapters holds default options per framework, e.g. [adapters.three].
	// Keys arrive lowercased; adapter option decoding is case-insensitive.
	Adapters map[string]map[string]any `mapstructure:"adapters"`
	// AdapterOptions is a shell-quoted list of key=value pairs applied to
	// every framework, e.g. `componentName=Landing "title=Hello world"`.
	AdapterOptions string        `mapstructure:"adapter_options"`
	Log            LogConfig     `mapstructure:"log"`
	Server         ServerConfig  `mapstructure:"server"`
	Watch          WatchConfig   `mapstructure:"watch"`
	Storage        StorageConfig `mapstructure:"storage"`
}

// GenerateConfig holds defaults for the generate command.
type GenerateConfig struct {
	Framework   string `mapstructure:"framework" validate:"required"`
	Out         string `mapstructure:"out" validate:"required"`
	Layout      string `mapstructure:"layout"`
	SaveSummary string `mapstructure:"save_summary"`
}

// LimitsConfig bounds accepted documents.
type LimitsConfig struct {
	MaxDepth int `mapstructure:"max_depth"`
	MaxNodes int `mapstructure:"max_nodes"`
}

// LayoutConfig selects a layout engine and its options. It is also the
// shape of --layout-config files.
type LayoutConfig struct {
	Engine  string         `mapstructure:"engine" json:"engine,omitempty" yaml:"engine,omitempty" toml:"engine,omitempty"`
	Options map[string]any `mapstructure:"options" json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// LogConfig configures console logging.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Theme string `mapstructure:"theme" validate:"omitempty,oneof=gruvbox everforest"`
}

// ServerConfig configures `sketchflow serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
	// RatePerMinute limits generation requests; 0 disables the limit.
	RatePerMinute int   `mapstructure:"rate_per_minute"`
	MaxBodyBytes  int64 `mapstructure:"max_body_bytes"`
	// AllowedOrigins are matched as prefixes against browser Origin headers.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WatchConfig configures `generate --watch`.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
}

// StorageConfig configures the s3:// output sink.
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// String returns a short summary of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Generate: {Framework: %s, Out: %s}, Server: {Addr: %s}}",
		c.Generate.Framework, c.Generate.Out, c.Server.Addr)
}
