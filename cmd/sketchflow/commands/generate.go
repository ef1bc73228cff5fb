package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/sketchflow/codegen"
	"github.com/teranos/sketchflow/logger"
	"github.com/teranos/sketchflow/output"
	"github.com/teranos/sketchflow/watch"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		f           sourceFlags
		out         string
		saveSummary string
		watchInput  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate framework code from a sketch",
		Long: `Parse a sketch document, apply a layout engine and render it with one or
more framework adapters. Several frameworks may be given separated by
commas; each is then written to its own subdirectory of the output.

Output may be a directory or an object storage location (s3://bucket/prefix).
Files whose contents have not changed are not rewritten.`,
		Example: `  sketchflow generate -i sketch.json -f react -o src/generated
  sketchflow generate -i sketch.json -f three --adapter-option sceneBackground=#000000
  sketchflow generate -i wire.json --kind wireframe -f vue,svelte -o out
  sketchflow generate -i sketch.yaml -f next -l stack --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = a.cfg.Generate.Out
			}
			if saveSummary == "" {
				saveSummary = a.cfg.Generate.SaveSummary
			}
			gen, err := a.generator()
			if err != nil {
				return err
			}

			r := &generateRun{app: a, gen: gen, flags: &f, out: out, summary: saveSummary, w: cmd.OutOrStdout()}
			if !watchInput {
				return r.run(cmd.Context())
			}
			return r.watch(cmd.Context())
		},
	}

	f.bind(cmd, "Target framework(s), comma separated (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory or s3://bucket/prefix (default from config)")
	cmd.Flags().StringVar(&saveSummary, "save-summary", "", "Write a JSON summary of generated files to this path")
	cmd.Flags().BoolVar(&watchInput, "watch", false, "Regenerate whenever the input file changes")
	return cmd
}

// generateRun holds the state of one generate invocation. Sinks are kept
// across watch iterations so unchanged files are not rewritten.
type generateRun struct {
	app     *app
	gen     *codegen.Generator
	flags   *sourceFlags
	out     string
	summary string
	w       io.Writer
	sinks   map[string]output.Sink
}

func (r *generateRun) sink(framework string, many bool) (output.Sink, error) {
	if s, ok := r.sinks[framework]; ok {
		return s, nil
	}
	s, err := output.NewSink(targetFor(r.out, framework, many), r.app.cfg.Storage, output.WithLogger(logger.ComponentLogger("output")))
	if err != nil {
		return nil, err
	}
	if r.sinks == nil {
		r.sinks = make(map[string]output.Sink)
	}
	r.sinks[framework] = s
	return s, nil
}

func (r *generateRun) run(ctx context.Context) error {
	reqs, err := r.app.requests(r.flags)
	if err != nil {
		return err
	}
	many := len(reqs) > 1

	// Render everything first so a failing framework leaves no output behind
	generated := make([]*codegen.Artifacts, len(reqs))
	for i, req := range reqs {
		start := time.Now()
		artifacts, err := r.gen.Generate(ctx, req)
		if err != nil {
			return err
		}
		if r.app.shows(logger.OutputTiming) {
			r.app.category(r.w, logger.OutputTiming, "%s generated in %dms", req.Framework, time.Since(start).Milliseconds())
		}
		generated[i] = artifacts
	}

	summaries := make([]output.Summary, 0, len(reqs))
	for i, req := range reqs {
		artifacts := generated[i]
		sink, err := r.sink(req.Framework, many)
		if err != nil {
			return err
		}
		if err := sink.Write(ctx, artifacts.Files); err != nil {
			return err
		}
		printArtifacts(r.w, artifacts, sink.Target())
		if r.app.shows(logger.OutputFileDump) {
			for _, file := range artifacts.Files {
				r.app.category(r.w, logger.OutputFileDump, "%s\n%s", file.Path, file.Contents)
			}
		}
		summaries = append(summaries, output.NewSummary(artifacts))
	}

	if r.summary != "" {
		if err := output.WriteSummary(r.summary, summaries...); err != nil {
			return err
		}
		fmt.Fprintf(r.w, "Summary written to %s\n", r.summary)
	}
	return nil
}

func (r *generateRun) watch(ctx context.Context) error {
	if err := r.run(ctx); err != nil {
		printFailure(r.w, err)
	}

	w, err := watch.New(r.flags.input,
		watch.WithDebounce(time.Duration(r.app.cfg.Watch.DebounceMS)*time.Millisecond),
		watch.WithLogger(logger.ComponentLogger("watch")))
	if err != nil {
		return err
	}
	w.OnChange(func(ctx context.Context, path string) error {
		r.app.log.Infow("Regenerating", logger.FieldPath, path)
		if r.app.shows(logger.OutputWatchEvents) {
			r.app.category(r.w, logger.OutputWatchEvents, "%s changed, regenerating", path)
		}
		if err := r.run(ctx); err != nil {
			printFailure(r.w, err)
			return err
		}
		return nil
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.WithWriter(r.w).Printfln("Watching %s for changes (Ctrl+C to stop)", w.Path())
	return w.Run(ctx)
}
