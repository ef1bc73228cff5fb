package main

import (
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/sketchflow/cmd/sketchflow/commands"
	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/logger"
)

func main() {
	defer logger.Cleanup()

	if err := commands.NewRootCmd().Execute(); err != nil {
		stderr := pterm.Error.WithWriter(os.Stderr)
		stderr.Println(err)
		if hint := strings.TrimSpace(errors.FlattenHints(err)); hint != "" {
			pterm.Info.WithWriter(os.Stderr).Println(hint)
		}
		os.Exit(1)
	}
}
