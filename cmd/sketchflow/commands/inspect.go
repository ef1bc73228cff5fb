package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/sketchflow/errors"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		f          sourceFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show what an adapter would render",
		Long: `Parse and lay out a sketch, then report the adapter's node and component
counts without generating files. Adapters count either top-level nodes or
the whole tree; the policy is shown alongside the counts.`,
		Example: `  sketchflow inspect -i sketch.json -f three
  sketchflow inspect -i sketch.json -f react --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}
			reqs, err := a.requests(&f)
			if err != nil {
				return err
			}
			if len(reqs) != 1 {
				return errors.NewInvalidRequestError("inspect takes a single framework")
			}

			result, err := gen.Introspect(cmd.Context(), reqs[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return errors.Wrap(err, "failed to encode introspection")
				}
				fmt.Fprintln(w, string(data))
				return nil
			}
			return printTable(w, []string{"ADAPTER", "LAYOUT", "NODES", "COMPONENTS", "POLICY"}, [][]string{{
				result.Metadata.Adapter,
				result.Metadata.LayoutEngine,
				fmt.Sprint(result.NodeCount),
				fmt.Sprint(result.Components),
				string(result.Policy),
			}})
		},
	}

	f.bind(cmd, "Target framework (default from config)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}
