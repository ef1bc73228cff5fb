package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/sketchflow/codegen"
	"github.com/teranos/sketchflow/config"
	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/output"
	"github.com/teranos/sketchflow/parse"
)

// sourceFlags are the inputs shared by generate, check and inspect.
type sourceFlags struct {
	input      string
	kind       string
	frameworks string
	layout     string
	layoutFile string
	options    []string
}

func (f *sourceFlags) bind(cmd *cobra.Command, frameworkHelp string) {
	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "Sketch document to read (.json, .yaml)")
	flags.StringVar(&f.kind, "kind", "", "Source kind: json, yaml, vectors, wireframe (default from file extension)")
	flags.StringVarP(&f.frameworks, "framework", "f", "", frameworkHelp)
	flags.StringVarP(&f.layout, "layout", "l", "", "Layout engine (default passthrough)")
	flags.StringVar(&f.layoutFile, "layout-config", "", "Layout config file with engine and options (.json, .yaml, .toml)")
	flags.StringArrayVar(&f.options, "adapter-option", nil, "Adapter option key=value (repeatable; bare key means true)")
	_ = cmd.MarkFlagRequired("input")
}

// frameworkList splits the -f value, falling back to the configured
// default framework.
func (a *app) frameworkList(f *sourceFlags) ([]string, error) {
	raw := f.frameworks
	if raw == "" {
		raw = a.cfg.Generate.Framework
	}
	var out []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return nil, errors.NewInvalidRequestError("no framework given")
	}
	return out, nil
}

func (a *app) readSource(f *sourceFlags) (parse.Source, error) {
	data, err := os.ReadFile(f.input)
	if err != nil {
		return parse.Source{}, errors.Wrapf(err, "failed to read %s", f.input)
	}
	kind := parse.Kind(strings.ToLower(f.kind))
	if kind == "" {
		kind = parse.KindFromPath(f.input)
	}
	return parse.Source{Kind: kind, Payload: data}, nil
}

// layoutOptions layers the layout selection: config, then the layout
// config file, then -l.
func (a *app) layoutOptions(f *sourceFlags) (codegen.LayoutOptions, error) {
	lc := a.cfg.Layout
	if lc.Engine == "" {
		lc.Engine = a.cfg.Generate.Layout
	}
	if f.layoutFile != "" {
		fromFile, err := config.LoadLayoutFile(f.layoutFile)
		if err != nil {
			return codegen.LayoutOptions{}, err
		}
		lc = *fromFile
	}
	if f.layout != "" {
		lc.Engine = f.layout
	}
	return codegen.LayoutOptions{Engine: lc.Engine, Options: lc.Options}, nil
}

// requests builds one generation request per framework, each with its own
// adapter option layers.
func (a *app) requests(f *sourceFlags) ([]codegen.Request, error) {
	frameworks, err := a.frameworkList(f)
	if err != nil {
		return nil, err
	}
	src, err := a.readSource(f)
	if err != nil {
		return nil, err
	}
	layoutOpts, err := a.layoutOptions(f)
	if err != nil {
		return nil, err
	}

	reqs := make([]codegen.Request, len(frameworks))
	for i, framework := range frameworks {
		opts, err := a.cfg.OptionsFor(framework, f.options)
		if err != nil {
			return nil, err
		}
		reqs[i] = codegen.Request{
			Source:    src,
			Framework: framework,
			Options:   codegen.Options{Layout: layoutOpts, AdapterOptions: opts},
		}
	}
	return reqs, nil
}

// targetFor places each framework in its own subdirectory when several are
// generated at once, since backends share file names.
func targetFor(out, framework string, many bool) string {
	if !many {
		return out
	}
	if strings.HasPrefix(out, output.ObjectScheme) {
		return strings.TrimSuffix(out, "/") + "/" + framework
	}
	return filepath.Join(out, framework)
}
