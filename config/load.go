package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/teranos/sketchflow/errors"
)

// Options locate configuration sources. Zero values use the process
// working directory and the user's home directory.
type Options struct {
	WorkDir string
	HomeDir string
	// File replaces the project file search when set.
	File string
	// SkipDotEnv disables loading WorkDir/.env.
	SkipDotEnv bool
}

// Loaded is a resolved configuration with the viper instance and the
// sources it was merged from.
type Loaded struct {
	Config  *Config
	Viper   *viper.Viper
	Files   []string
	sources map[string]sourceRef
}

type configFile struct {
	path     string
	source   Source
	required bool
}

// Load merges configuration in precedence order (lowest first):
// defaults, ~/.sketchflow/config.toml, the project sketchflow.toml found
// by searching upward from WorkDir, then SKETCHFLOW_* environment
// variables. A .env file in WorkDir is loaded first and never overrides
// variables that are already set.
func Load(opts Options) (*Loaded, error) {
	if err := opts.resolve(); err != nil {
		return nil, err
	}

	if !opts.SkipDotEnv {
		if err := loadDotEnv(filepath.Join(opts.WorkDir, ".env")); err != nil {
			return nil, err
		}
	}

	v := newViper()
	loaded := &Loaded{Viper: v, sources: make(map[string]sourceRef)}

	var files []configFile
	if opts.HomeDir != "" {
		files = append(files, configFile{filepath.Join(opts.HomeDir, UserDirName, "config.toml"), SourceUser, false})
	}
	if opts.File != "" {
		files = append(files, configFile{opts.File, SourceProject, true})
	} else if project := findProjectConfig(opts.WorkDir); project != "" {
		files = append(files, configFile{project, SourceProject, false})
	}

	for _, f := range files {
		if _, err := os.Stat(f.path); err != nil {
			if f.required {
				return nil, errors.Wrapf(err, "config file %s", f.path)
			}
			continue
		}
		if err := loaded.merge(f.path, f.source); err != nil {
			return nil, err
		}
	}

	cfg, err := Unmarshal(v)
	if err != nil {
		return nil, err
	}
	loaded.Config = cfg
	return loaded, nil
}

// LoadFromFile loads defaults plus a single TOML file, ignoring the
// environment.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return Unmarshal(v)
}

// Unmarshal decodes v into a Config.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

func (o *Options) resolve() error {
	if o.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to determine working directory")
		}
		o.WorkDir = wd
	}
	if o.HomeDir == "" {
		// No home directory only means no user config
		o.HomeDir, _ = os.UserHomeDir()
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindSensitiveEnvVars(v)
	SetDefaults(v)
	return v
}

// merge reads one TOML file into the config layer. File values rank
// below environment variables.
func (l *Loaded) merge(path string, source Source) error {
	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("toml")
	if err := file.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := l.Viper.MergeConfigMap(file.AllSettings()); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", path)
	}
	for _, key := range file.AllKeys() {
		l.sources[key] = sourceRef{source: source, path: path}
	}
	l.Files = append(l.Files, path)
	return nil
}

// findProjectConfig walks up from dir looking for sketchflow.toml.
func findProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load %s", path)
	}
	return nil
}
