// Package commands implements the sketchflow command line.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/sketchflow/adapter/builtin"
	"github.com/teranos/sketchflow/codegen"
	"github.com/teranos/sketchflow/config"
	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/layout"
	"github.com/teranos/sketchflow/logger"
	"github.com/teranos/sketchflow/parse"
	"github.com/teranos/sketchflow/sketch"
)

// app is the state shared by every command once flags are parsed.
type app struct {
	configFile string
	jsonLogs   bool
	plain      bool
	verbosity  int

	loaded *config.Loaded
	cfg    *config.Config
	log    *zap.SugaredLogger
}

// NewRootCmd builds the sketchflow command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.Logger}

	root := &cobra.Command{
		Use:   "sketchflow",
		Short: "Generate UI framework code from sketch documents",
		Long: `sketchflow turns a sketch (a tree of positioned visual nodes) into source
files for React, Next.js, Vue, Svelte, Angular, Solid or Three.js.

Configuration sources (later overrides earlier):
  1. Built-in defaults
  2. ~/.sketchflow/config.toml
  3. ./sketchflow.toml (searches up directories)
  4. SKETCHFLOW_* environment variables (.env is loaded first)
  5. Command line flags

Examples:
  sketchflow generate -i sketch.json -f react -o src/generated
  sketchflow generate -i sketch.yaml -f vue,svelte --watch
  sketchflow check -i sketch.json -f react -o src/generated
  sketchflow list-adapters
  sketchflow serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	flags.StringVar(&a.configFile, "config", "", "Config file to use instead of searching for sketchflow.toml")
	flags.BoolVar(&a.jsonLogs, "json-logs", false, "Write logs as JSON")
	flags.BoolVar(&a.plain, "plain", false, "Disable colors and styling")

	root.AddCommand(
		newGenerateCmd(a),
		newCheckCmd(a),
		newInspectCmd(a),
		newListLayoutsCmd(a),
		newListAdaptersCmd(a),
		newListParsersCmd(a),
		newConfigCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads configuration and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	if a.plain {
		pterm.DisableStyling()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to determine working directory")
	}
	home, _ := os.UserHomeDir()

	loaded, err := config.Load(config.Options{WorkDir: workDir, HomeDir: home, File: a.configFile})
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	a.loaded = loaded
	a.cfg = loaded.Config

	a.verbosity, _ = cmd.Flags().GetCount("verbose")
	if err := logger.Initialize(a.jsonLogs || a.cfg.Log.JSON, a.verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.SetTheme(a.cfg.Log.Theme)
	a.log = logger.ComponentLogger("cli")
	logger.Debugw("Configuration loaded",
		logger.FieldPath, loaded.Files,
		"verbosity", logger.LevelName(a.verbosity))

	if a.shows(logger.OutputConfig) {
		for _, f := range loaded.Files {
			a.category(cmd.ErrOrStderr(), logger.OutputConfig, "loaded %s", f)
		}
	}
	return nil
}

// shows reports whether output of the given category is enabled at the
// current verbosity.
func (a *app) shows(category logger.OutputCategory) bool {
	return logger.ShouldOutput(a.verbosity, category)
}

// category prints one line tagged with its output category.
func (a *app) category(w io.Writer, category logger.OutputCategory, format string, args ...any) {
	fmt.Fprintf(w, "[%s] %s\n", logger.CategoryName(category), fmt.Sprintf(format, args...))
}

// generator wires the registries from configuration.
func (a *app) generator() (*codegen.Generator, error) {
	limits := sketch.Limits{MaxDepth: a.cfg.Limits.MaxDepth, MaxNodes: a.cfg.Limits.MaxNodes}
	parsers := parse.NewDefaultRegistry(parse.WithLimits(limits), parse.WithLogger(logger.ComponentLogger("parse")))

	layouts := layout.NewRegistry()
	stack, err := layout.NewStack(layout.Constraints{})
	if err != nil {
		return nil, err
	}
	if err := layouts.Register(stack); err != nil {
		return nil, err
	}

	return codegen.New(parsers, layouts, builtin.NewRegistry(), codegen.WithLogger(logger.ComponentLogger("codegen"))), nil
}
