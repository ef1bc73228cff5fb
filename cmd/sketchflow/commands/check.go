package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/output"
)

// errOutOfDate is returned by check when generated files have drifted.
var errOutOfDate = errors.New("generated output is out of date")

func newCheckCmd(a *app) *cobra.Command {
	var (
		f   sourceFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify generated files are up to date",
		Long: `Generate in memory and compare the result with the files in the output
directory. Exits non-zero when any file is missing or differs, which makes
it suitable for CI.`,
		Example: `  sketchflow check -i sketch.json -f react -o src/generated`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = a.cfg.Generate.Out
			}
			if strings.HasPrefix(out, output.ObjectScheme) {
				return errors.NewInvalidRequestError("check compares against a local directory, not %s", out)
			}

			gen, err := a.generator()
			if err != nil {
				return err
			}
			reqs, err := a.requests(&f)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			drift := false
			for _, req := range reqs {
				artifacts, err := gen.Generate(cmd.Context(), req)
				if err != nil {
					return err
				}
				dir := targetFor(out, req.Framework, len(reqs) > 1)
				result, err := output.Compare(dir, artifacts.Files)
				if err != nil {
					return err
				}
				if result.UpToDate {
					pterm.Success.WithWriter(w).Printfln("%s: %d file(s) up to date in %s", req.Framework, len(artifacts.Files), dir)
					continue
				}
				drift = true
				pterm.Warning.WithWriter(w).Printfln("%s: %d file(s) differ in %s", req.Framework, len(result.Differences), dir)
				for _, d := range result.Differences {
					fmt.Fprintf(w, " %s %s (%s)\n", pterm.Gray("•"), d.Path, d.Reason)
				}
			}
			if drift {
				return errors.WithHint(errOutOfDate, "run sketchflow generate with the same flags to update")
			}
			return nil
		},
	}

	f.bind(cmd, "Target framework(s), comma separated (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory to compare against (default from config)")
	return cmd
}
