package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/sketchflow/errors"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func load(t *testing.T, work, home string) *Loaded {
	t.Helper()
	loaded, err := Load(Options{WorkDir: work, HomeDir: home, SkipDotEnv: true})
	require.NoError(t, err)
	return loaded
}

// =============================================================================
// Loading
// =============================================================================

func TestLoad_Defaults(t *testing.T) {
	cfg := load(t, t.TempDir(), t.TempDir()).Config

	assert.Equal(t, DefaultFramework, cfg.Generate.Framework)
	assert.Equal(t, DefaultOut, cfg.Generate.Out)
	assert.Equal(t, DefaultMaxDepth, cfg.Limits.MaxDepth)
	assert.Equal(t, DefaultMaxNodes, cfg.Limits.MaxNodes)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultRatePerMinute, cfg.Server.RatePerMinute)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.Equal(t, DefaultDebounceMS, cfg.Watch.DebounceMS)
	assert.Equal(t, DefaultLogTheme, cfg.Log.Theme)
	assert.True(t, cfg.Storage.UseSSL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ProjectFileFoundUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ProjectFileName), "[generate]\nframework = \"svelte\"\n")
	work := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(work, 0755))

	loaded := load(t, work, t.TempDir())
	assert.Equal(t, "svelte", loaded.Config.Generate.Framework)
	assert.Equal(t, []string{filepath.Join(root, ProjectFileName)}, loaded.Files)
}

func TestLoad_Precedence(t *testing.T) {
	work, home := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(home, UserDirName, "config.toml"),
		"[generate]\nframework = \"vue\"\nout = \"user-out\"\n")
	writeFile(t, filepath.Join(work, ProjectFileName), "[generate]\nframework = \"svelte\"\n")

	cfg := load(t, work, home).Config
	assert.Equal(t, "svelte", cfg.Generate.Framework, "project beats user")
	assert.Equal(t, "user-out", cfg.Generate.Out, "user beats default")

	t.Setenv("SKETCHFLOW_GENERATE_FRAMEWORK", "angular")
	cfg = load(t, work, home).Config
	assert.Equal(t, "angular", cfg.Generate.Framework, "environment beats files")
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "[server]\naddr = \"0.0.0.0:9000\"\n")

	loaded, err := Load(Options{WorkDir: dir, HomeDir: t.TempDir(), File: path, SkipDotEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", loaded.Config.Server.Addr)

	_, err = Load(Options{WorkDir: dir, File: filepath.Join(dir, "missing.toml"), SkipDotEnv: true})
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	work := t.TempDir()
	writeFile(t, filepath.Join(work, ProjectFileName), "[generate\n")
	_, err := Load(Options{WorkDir: work, HomeDir: t.TempDir(), SkipDotEnv: true})
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	work := t.TempDir()
	writeFile(t, filepath.Join(work, ".env"), "SKETCHFLOW_WATCH_DEBOUNCE_MS=50\n")
	t.Cleanup(func() { os.Unsetenv("SKETCHFLOW_WATCH_DEBOUNCE_MS") })

	loaded, err := Load(Options{WorkDir: work, HomeDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 50, loaded.Config.Watch.DebounceMS)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.toml")
	writeFile(t, path, "[limits]\nmax_depth = 12\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Limits.MaxDepth)
	assert.Equal(t, DefaultMaxNodes, cfg.Limits.MaxNodes)
}

// =============================================================================
// Validation
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero depth", func(c *Config) { c.Limits.MaxDepth = 0 }, "limits.max_depth must be >= 1, got 0"},
		{"zero nodes", func(c *Config) { c.Limits.MaxNodes = 0 }, "limits.max_nodes must be >= 1"},
		{"negative rate", func(c *Config) { c.Server.RatePerMinute = -1 }, "server.rate_per_minute must be >= 0"},
		{"zero body", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "server.max_body_bytes must be > 0"},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -5 }, "watch.debounce_ms must be >= 0"},
		{"layout disagreement", func(c *Config) { c.Generate.Layout = "a"; c.Layout.Engine = "b" }, "disagree"},
		{"bad quoting", func(c *Config) { c.AdapterOptions = `title="unterminated` }, "adapter_options"},
		{"missing framework", func(c *Config) { c.Generate.Framework = "" }, "generate.framework failed required"},
		{"bad address", func(c *Config) { c.Server.Addr = "localhost" }, "server.addr failed hostname_port"},
		{"bad theme", func(c *Config) { c.Log.Theme = "solarized" }, "log.theme failed oneof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := load(t, t.TempDir(), t.TempDir()).Config
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// =============================================================================
// Adapter options
// =============================================================================

func TestParseOptionPairs(t *testing.T) {
	got := ParseOptionPairs([]string{"a=1", "flag", "=skipped", "", " k = v ", "expr=x=y", "a=2"})
	assert.Equal(t, map[string]any{"a": "2", "flag": "true", "k": "v", "expr": "x=y"}, got)
}

func TestSplitOptionString(t *testing.T) {
	words, err := SplitOptionString(`componentName=Landing "title=Hello world" 'x=a b'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"componentName=Landing", "title=Hello world", "x=a b"}, words)

	words, err = SplitOptionString("   ")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestOptionsFor_Layers(t *testing.T) {
	work := t.TempDir()
	writeFile(t, filepath.Join(work, ProjectFileName), `adapter_options = 'title="From config" style=css'

[adapters.three]
sceneBackground = "#000000"
sceneName = "Lobby"
`)
	cfg := load(t, work, t.TempDir()).Config

	got, err := cfg.OptionsFor("three", []string{"sceneBackground=#111111"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"sceneBackground": "#111111",
		"scenename":       "Lobby",
		"title":           "From config",
		"style":           "css",
	}, got)

	got, err = cfg.OptionsFor("react", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "From config", "style": "css"}, got)
}

func TestLoadLayoutFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"layout.json": `{"engine":"stack","options":{"padding":4,"direction":"horizontal"}}`,
		"layout.yaml": "engine: stack\noptions:\n  padding: 4\n  direction: horizontal\n",
		"layout.toml": "engine = \"stack\"\n[options]\npadding = 4\ndirection = \"horizontal\"\n",
	}
	for name, contents := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			writeFile(t, path, contents)

			lc, err := LoadLayoutFile(path)
			require.NoError(t, err)
			assert.Equal(t, "stack", lc.Engine)
			assert.Equal(t, "horizontal", lc.Options["direction"])
			assert.EqualValues(t, 4, lc.Options["padding"])
		})
	}

	_, err := LoadLayoutFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

// =============================================================================
// Introspection and output
// =============================================================================

func TestSettings_Sources(t *testing.T) {
	work := t.TempDir()
	project := filepath.Join(work, ProjectFileName)
	writeFile(t, project, "[generate]\nout = \"dist\"\n")
	t.Setenv("SKETCHFLOW_SERVER_ADDR", "127.0.0.1:9999")

	loaded := load(t, work, t.TempDir())
	byKey := make(map[string]SettingInfo)
	for _, s := range loaded.Settings() {
		byKey[s.Key] = s
	}

	assert.Equal(t, SourceProject, byKey["generate.out"].Source)
	assert.Equal(t, project, byKey["generate.out"].SourcePath)
	assert.Equal(t, SourceEnvironment, byKey["server.addr"].Source)
	assert.Equal(t, "SKETCHFLOW_SERVER_ADDR", byKey["server.addr"].SourcePath)
	assert.Equal(t, "127.0.0.1:9999", byKey["server.addr"].Value)
	assert.Equal(t, SourceDefault, byKey["limits.max_depth"].Source)
}

func TestGet(t *testing.T) {
	loaded := load(t, t.TempDir(), t.TempDir())

	v, err := loaded.Get("Generate.Framework")
	require.NoError(t, err)
	assert.Equal(t, DefaultFramework, v)

	_, err = loaded.Get("nope.nothing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestMarshal(t *testing.T) {
	work := t.TempDir()
	writeFile(t, filepath.Join(work, ProjectFileName), "[storage]\nsecret_key = \"hunter2\"\n")
	loaded := load(t, work, t.TempDir())

	t.Run("json", func(t *testing.T) {
		data, err := loaded.Marshal(FormatJSON)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, DefaultFramework, out["generate"].(map[string]any)["framework"])
		assert.Equal(t, "***", out["storage"].(map[string]any)["secret_key"])
		assert.NotContains(t, string(data), "hunter2")
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := loaded.Marshal(FormatYAML)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, yaml.Unmarshal(data, &out))
		assert.Contains(t, out, "server")
	})

	t.Run("toml", func(t *testing.T) {
		data, err := loaded.Marshal(FormatTOML)
		require.NoError(t, err)
		assert.Contains(t, string(data), "[generate]")
		assert.NotContains(t, string(data), "hunter2")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := loaded.Marshal("ini")
		assert.Error(t, err)
	})
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "SKETCHFLOW_SERVER_RATE_PER_MINUTE", EnvName("server.rate_per_minute"))
}

// =============================================================================
// Persistence
// =============================================================================

func TestWriteProject(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteProject(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ProjectFileName), path)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFramework, cfg.Generate.Framework)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	require.NoError(t, cfg.Validate())

	_, err = WriteProject(dir)
	require.NoError(t, err)
	assert.FileExists(t, path+".back1")

	_, err = WriteProject(dir)
	require.NoError(t, err)
	assert.FileExists(t, path+".back2")
}
