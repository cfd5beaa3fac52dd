package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/codeshot/highlight"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List languages the highlighter knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), languagesTable())
			return nil
		},
	}
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), themesTable())
			return nil
		},
	}
}

func languagesTable() string {
	names := highlight.Languages()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strings.Join(highlight.Lookup(name).Aliases(), ", ")})
	}
	return renderTable([]string{"Language", "Aliases"}, rows)
}

func themesTable() string {
	names := highlight.Themes()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		mark := ""
		if name == highlight.DefaultThemeName {
			mark = "default"
		}
		rows = append(rows, []string{name, mark})
	}
	return renderTable([]string{"Theme", ""}, rows)
}
