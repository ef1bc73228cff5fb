package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/sketchflow/config"
	"github.com/teranos/sketchflow/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sketchflow configuration",
		Long: `Display and manage sketchflow configuration.

Examples:
  sketchflow config show                  # Show effective configuration
  sketchflow config show --format json    # Show configuration as JSON
  sketchflow config get generate.out      # Get a single value
  sketchflow config where                 # Show where each value came from
  sketchflow config validate              # Validate configuration
  sketchflow config init                  # Write sketchflow.toml with defaults`,
	}
	cmd.AddCommand(
		newConfigShowCmd(a),
		newConfigGetCmd(a),
		newConfigWhereCmd(a),
		newConfigValidateCmd(a),
		newConfigInitCmd(),
	)
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.loaded.Marshal(format)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if format != config.FormatJSON {
				fmt.Fprintln(w, "# sketchflow configuration")
			}
			_, err = w.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", config.FormatTOML, "Output format: toml, json, yaml")
	return cmd
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long:  "Get a configuration value using dot notation (e.g., generate.out, server.addr)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := a.loaded.Get(args[0])
			if err != nil {
				return err
			}
			if config.Redacted(args[0]) && value != "" {
				value = "***"
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigWhereCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Show where each setting comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(a.loaded.Files) == 0 {
				fmt.Fprintln(w, "No config files found; using defaults and environment")
			} else {
				for _, f := range a.loaded.Files {
					fmt.Fprintf(w, "Loaded %s\n", f)
				}
			}

			var rows [][]string
			for _, s := range a.loaded.Settings() {
				value := fmt.Sprint(s.Value)
				if config.Redacted(s.Key) && value != "" {
					value = "***"
				}
				origin := string(s.Source)
				if s.SourcePath != "" {
					origin += " (" + s.SourcePath + ")"
				}
				rows = append(rows, []string{s.Key, value, origin})
			}
			return printTable(w, []string{"KEY", "VALUE", "SOURCE"}, rows)
		},
	}
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return errors.Wrap(err, "configuration validation failed")
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Configuration is valid")
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a sketchflow.toml with default settings",
		Long: `Write a sketchflow.toml with default settings to dir (default: the current
directory). An existing file is kept as .back1, older copies rotate to
.back2 and .back3.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			} else if wd, err := os.Getwd(); err == nil {
				dir = wd
			}
			path, err := config.WriteProject(dir)
			if err != nil {
				return err
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Wrote %s", path)
			return nil
		},
	}
}
