package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListLayoutsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-layouts",
		Short: "List registered layout engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}
			var rows [][]string
			for _, e := range gen.Layouts().List() {
				rows = append(rows, []string{e.Name(), e.Version()})
			}
			return printTable(cmd.OutOrStdout(), []string{"ENGINE", "VERSION"}, rows)
		},
	}
}

func newListAdaptersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-adapters",
		Short: "List registered framework adapters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}
			var rows [][]string
			for _, ad := range gen.Adapters().List() {
				rows = append(rows, []string{ad.Framework(), string(ad.Language())})
			}
			return printTable(cmd.OutOrStdout(), []string{"FRAMEWORK", "LANGUAGE"}, rows)
		},
	}
}

func newListParsersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-parsers",
		Short: "List registered parsers in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}
			var rows [][]string
			for i, p := range gen.Parsers().List() {
				rows = append(rows, []string{fmt.Sprint(i + 1), p.Name(), p.Version()})
			}
			return printTable(cmd.OutOrStdout(), []string{"#", "PARSER", "VERSION"}, rows)
		},
	}
}
