package config

import "github.com/spf13/viper"

// Default values for settings that have one.
const (
	DefaultFramework     = "react"
	DefaultOut           = "output"
	DefaultMaxDepth      = 256
	DefaultMaxNodes      = 100000
	DefaultServerAddr    = "127.0.0.1:8787"
	DefaultRatePerMinute = 120
	DefaultMaxBodyBytes  = 4 << 20
	DefaultDebounceMS    = 200
	DefaultStorageHost   = "s3.amazonaws.com"
	DefaultLogTheme      = "everforest"

	// ProjectFileName is searched for upward from the working directory.
	ProjectFileName = "sketchflow.toml"
	// UserDirName holds the user config under the home directory.
	UserDirName = ".sketchflow"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SKETCHFLOW"

	DefaultDirPermissions = 0750
)

// DefaultAllowedOrigins admits browsers on the local machine only.
var DefaultAllowedOrigins = []string{"http://localhost", "https://localhost", "http://127.0.0.1"}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.framework", DefaultFramework)
	v.SetDefault("generate.out", DefaultOut)
	v.SetDefault("generate.layout", "")
	v.SetDefault("generate.save_summary", "")

	v.SetDefault("limits.max_depth", DefaultMaxDepth)
	v.SetDefault("limits.max_nodes", DefaultMaxNodes)

	v.SetDefault("layout.engine", "")
	v.SetDefault("adapter_options", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", DefaultLogTheme)

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.rate_per_minute", DefaultRatePerMinute)
	v.SetDefault("server.max_body_bytes", DefaultMaxBodyBytes)
	v.SetDefault("server.allowed_origins", DefaultAllowedOrigins)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)

	v.SetDefault("storage.endpoint", DefaultStorageHost)
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.use_ssl", true)
}

// BindSensitiveEnvVars binds credentials to their conventional variables
// as well as the SKETCHFLOW_* names.
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("storage.access_key", "SKETCHFLOW_STORAGE_ACCESS_KEY", "AWS_ACCESS_KEY_ID")
	v.BindEnv("storage.secret_key", "SKETCHFLOW_STORAGE_SECRET_KEY", "AWS_SECRET_ACCESS_KEY")
	v.BindEnv("storage.region", "SKETCHFLOW_STORAGE_REGION", "AWS_REGION")
}
