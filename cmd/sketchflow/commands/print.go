package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/sketchflow/codegen"
	"github.com/teranos/sketchflow/errors"
)

func printArtifacts(w io.Writer, art *codegen.Artifacts, target string) {
	fmt.Fprintln(w, pterm.LightGreen(fmt.Sprintf("Generated %d file(s) for '%s' using layout '%s'.",
		len(art.Files), art.Metadata.Adapter, art.Metadata.LayoutEngine)))
	fmt.Fprintf(w, "Nodes processed: %d\n", art.Metadata.NodeCount)
	fmt.Fprintf(w, "Output: %s\n", target)
	for _, f := range art.Files {
		fmt.Fprintf(w, " %s %s\n", pterm.Gray("•"), f.Path)
	}
}

// printFailure reports an error without stopping a long-running command.
func printFailure(w io.Writer, err error) {
	pterm.Error.WithWriter(w).Println(err)
	if hint := strings.TrimSpace(errors.FlattenHints(err)); hint != "" {
		pterm.Info.WithWriter(w).Println(hint)
	}
}

func printTable(w io.Writer, header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}
