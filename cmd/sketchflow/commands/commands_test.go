package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/output"
	"github.com/teranos/sketchflow/version"
)

const scenarioJSON = `{"id":"d1","name":"T","nodes":[{"id":"f1","type":"frame",
	"layout":{"x":0,"y":0,"width":320,"height":200},
	"children":[{"id":"t1","type":"text","props":{"text":"Hi"},
	"layout":{"x":8,"y":12,"width":100,"height":20},"children":[]}]}]}`

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

// workspace holds an input sketch and an explicit config file so tests
// never pick up configuration from the machine they run on.
type workspace struct {
	dir    string
	input  string
	config string
}

func newWorkspace(t *testing.T, configTOML string) workspace {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())

	ws := workspace{
		dir:    dir,
		input:  filepath.Join(dir, "sketch.json"),
		config: filepath.Join(dir, "sketchflow.toml"),
	}
	require.NoError(t, os.WriteFile(ws.input, []byte(scenarioJSON), 0644))
	require.NoError(t, os.WriteFile(ws.config, []byte(configTOML), 0644))
	return ws
}

func (ws workspace) path(parts ...string) string {
	return filepath.Join(append([]string{ws.dir}, parts...)...)
}

func run(t *testing.T, ws workspace, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", ws.config}, args...))
	err := root.Execute()
	return out.String(), err
}

// =============================================================================
// generate
// =============================================================================

func TestGenerate(t *testing.T) {
	ws := newWorkspace(t, "")
	summary := ws.path("summary.json")

	out, err := run(t, ws, "generate", "-i", ws.input, "-f", "react", "-o", ws.path("out"), "--save-summary", summary)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Generated 1 file(s) for 'react' using layout 'passthrough'.")
	assert.Contains(t, out, "Nodes processed: 1")
	assert.Contains(t, out, "• GeneratedScreen.tsx")

	data, err := os.ReadFile(ws.path("out", "GeneratedScreen.tsx"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `{"Hi"}`)

	data, err = os.ReadFile(summary)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"metadata": {"layoutEngine": "passthrough", "adapter": "react", "nodeCount": 1},
		"files": [{"path": "GeneratedScreen.tsx"}]
	}`, string(data))
}

func TestGenerate_VerbosityCategories(t *testing.T) {
	ws := newWorkspace(t, "")

	out, err := run(t, ws, "generate", "-i", ws.input, "-f", "react", "-o", ws.path("quiet"))
	require.NoError(t, err)
	assert.NotContains(t, out, "[timing]")

	out, err = run(t, ws, "-vvv", "generate", "-i", ws.input, "-f", "react", "-o", ws.path("loud"))
	require.NoError(t, err)
	assert.Contains(t, out, "[timing] react generated in")
	assert.Contains(t, out, "[file-dump] GeneratedScreen.tsx\n")
	assert.Contains(t, out, "[config] loaded "+ws.config)
}

func TestGenerate_SeveralFrameworks(t *testing.T) {
	ws := newWorkspace(t, "")
	summary := ws.path("summary.json")

	out, err := run(t, ws, "generate", "-i", ws.input, "-f", "react, vue", "-o", ws.path("out"), "--save-summary", summary)
	require.NoError(t, err, out)

	assert.FileExists(t, ws.path("out", "react", "GeneratedScreen.tsx"))
	assert.FileExists(t, ws.path("out", "vue", "GeneratedScreen.vue"))

	data, err := os.ReadFile(summary)
	require.NoError(t, err)
	var summaries []output.Summary
	require.NoError(t, json.Unmarshal(data, &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "vue", summaries[1].Metadata.Adapter)
}

func TestGenerate_FailingFrameworkWritesNothing(t *testing.T) {
	ws := newWorkspace(t, "")
	summary := ws.path("summary.json")

	out, err := run(t, ws, "generate", "-i", ws.input, "-f", "react,flutter", "-o", ws.path("out"), "--save-summary", summary)
	require.Error(t, err)
	assert.True(t, errors.IsUnknownAdapterError(err))

	assert.NotContains(t, out, "Generated")
	assert.NoDirExists(t, ws.path("out"))
	assert.NoFileExists(t, summary)
}

func TestGenerate_AdapterOptionLayers(t *testing.T) {
	ws := newWorkspace(t, "[adapters.react]\ncomponentName = \"FromConfig\"\n")

	_, err := run(t, ws, "generate", "-i", ws.input, "-f", "react", "-o", ws.path("a"))
	require.NoError(t, err)
	assert.FileExists(t, ws.path("a", "FromConfig.tsx"))

	_, err = run(t, ws, "generate", "-i", ws.input, "-f", "react", "-o", ws.path("b"),
		"--adapter-option", "componentName=Landing")
	require.NoError(t, err)
	assert.FileExists(t, ws.path("b", "Landing.tsx"))
}

func TestGenerate_DefaultsFromConfig(t *testing.T) {
	ws := newWorkspace(t, "[generate]\nframework = \"svelte\"\n")

	out, err := run(t, ws, "generate", "-i", ws.input, "-o", ws.path("out"))
	require.NoError(t, err, out)
	assert.FileExists(t, ws.path("out", "GeneratedScreen.svelte"))
}

func TestGenerate_LayoutConfigFile(t *testing.T) {
	ws := newWorkspace(t, "")
	layoutFile := ws.path("layout.yaml")
	require.NoError(t, os.WriteFile(layoutFile, []byte("engine: stack\noptions:\n  padding: 4\n"), 0644))

	out, err := run(t, ws, "generate", "-i", ws.input, "-f", "three", "-o", ws.path("out"), "--layout-config", layoutFile)
	require.NoError(t, err, out)
	assert.Contains(t, out, "using layout 'stack'")

	data, err := os.ReadFile(ws.path("out", "GeneratedScene.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"x": 4`)
}

func TestGenerate_YAMLInput(t *testing.T) {
	ws := newWorkspace(t, "")
	input := ws.path("sketch.yaml")
	yamlDoc := "id: d1\nname: T\nnodes:\n  - id: f1\n    type: frame\n    layout: {x: 0, y: 0, width: 10, height: 10}\n    children: []\n"
	require.NoError(t, os.WriteFile(input, []byte(yamlDoc), 0644))

	_, err := run(t, ws, "generate", "-i", input, "-f", "angular", "-o", ws.path("out"))
	require.NoError(t, err)
	assert.FileExists(t, ws.path("out", "generated-screen.ts"))
}

func TestGenerate_Errors(t *testing.T) {
	ws := newWorkspace(t, "")

	_, err := run(t, ws, "generate", "-i", ws.input, "-f", "flutter", "-o", ws.path("out"))
	require.Error(t, err)
	assert.True(t, errors.IsUnknownAdapterError(err))
	assert.Contains(t, errors.FlattenHints(err), "react")

	_, err = run(t, ws, "generate", "-i", ws.path("missing.json"), "-o", ws.path("out"))
	assert.Error(t, err)

	_, err = run(t, ws, "generate", "-o", ws.path("out"))
	assert.Error(t, err, "input is required")

	_, err = run(t, ws, "generate", "-i", ws.input, "--kind", "figma", "-o", ws.path("out"))
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedSourceError(err))
}

// =============================================================================
// check and inspect
// =============================================================================

func TestCheck(t *testing.T) {
	ws := newWorkspace(t, "")
	outDir := ws.path("out")

	out, err := run(t, ws, "check", "-i", ws.input, "-f", "react", "-o", outDir)
	require.ErrorIs(t, err, errOutOfDate)
	assert.Contains(t, out, "GeneratedScreen.tsx (missing)")

	_, err = run(t, ws, "generate", "-i", ws.input, "-f", "react", "-o", outDir)
	require.NoError(t, err)

	out, err = run(t, ws, "check", "-i", ws.input, "-f", "react", "-o", outDir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "react: 1 file(s) up to date")

	require.NoError(t, os.WriteFile(filepath.Join(outDir, "GeneratedScreen.tsx"), []byte("edited"), 0644))
	out, err = run(t, ws, "check", "-i", ws.input, "-f", "react", "-o", outDir)
	require.ErrorIs(t, err, errOutOfDate)
	assert.Contains(t, out, "GeneratedScreen.tsx (changed)")

	_, err = run(t, ws, "check", "-i", ws.input, "-o", "s3://bucket/x")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	ws := newWorkspace(t, "")

	out, err := run(t, ws, "inspect", "-i", ws.input, "-f", "three", "--json")
	require.NoError(t, err, out)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.EqualValues(t, 2, result["nodeCount"])
	assert.Equal(t, "recursive", result["policy"])

	out, err = run(t, ws, "inspect", "-i", ws.input, "-f", "react")
	require.NoError(t, err)
	assert.Contains(t, out, "top-level")

	_, err = run(t, ws, "inspect", "-i", ws.input, "-f", "react,vue")
	assert.Error(t, err)
}

// =============================================================================
// listings, config and version
// =============================================================================

func TestListings(t *testing.T) {
	ws := newWorkspace(t, "")

	out, err := run(t, ws, "list-adapters")
	require.NoError(t, err)
	for _, name := range []string{"react", "next", "vue", "svelte", "angular", "solid", "three"} {
		assert.Contains(t, out, name)
	}

	out, err = run(t, ws, "list-layouts")
	require.NoError(t, err)
	assert.Contains(t, out, "passthrough")
	assert.Contains(t, out, "stack")

	out, err = run(t, ws, "list-parsers")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "vectors"), strings.Index(out, "wireframe"))
	assert.Less(t, strings.Index(out, "wireframe"), strings.Index(out, "yaml"))
}

func TestConfigCommands(t *testing.T) {
	ws := newWorkspace(t, "[generate]\nout = \"dist\"\n\n[storage]\nsecret_key = \"hunter2\"\n")

	out, err := run(t, ws, "config", "get", "generate.out")
	require.NoError(t, err)
	assert.Equal(t, "dist\n", out)

	out, err = run(t, ws, "config", "get", "storage.secret_key")
	require.NoError(t, err)
	assert.Equal(t, "***\n", out)

	_, err = run(t, ws, "config", "get", "no.such.key")
	assert.Error(t, err)

	out, err = run(t, ws, "config", "show", "--format", "json")
	require.NoError(t, err)
	var shown map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "dist", shown["generate"].(map[string]any)["out"])
	assert.NotContains(t, out, "hunter2")

	out, err = run(t, ws, "config", "where")
	require.NoError(t, err)
	assert.Contains(t, out, "project ("+ws.config+")")
	assert.NotContains(t, out, "hunter2")

	out, err = run(t, ws, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestConfigValidate_Invalid(t *testing.T) {
	ws := newWorkspace(t, "[limits]\nmax_depth = 0\n")
	_, err := run(t, ws, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth")
}

func TestConfigInit(t *testing.T) {
	ws := newWorkspace(t, "")
	dir := ws.path("project")

	out, err := run(t, ws, "config", "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "sketchflow.toml"))
	assert.FileExists(t, filepath.Join(dir, "sketchflow.toml"))
}

func TestVersion(t *testing.T) {
	ws := newWorkspace(t, "")
	out, err := run(t, ws, "version", "--json")
	require.NoError(t, err)

	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Version, info.Version)
}
