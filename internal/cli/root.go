package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
// The main package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

// globalFlags are shared by all commands.
type globalFlags struct {
	verbose    bool
	configPath string
}

// Execute runs the codeshot CLI with ctx and returns the first command error.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "codeshot",
		Short:         "codeshot renders source code as syntax-highlighted images",
		Long:          `codeshot turns source code into syntax-highlighted PNG images, from the command line, over HTTP, or through a Telegram bot.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if flags.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			installLogger(logger)
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("codeshot %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to a TOML config file")

	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newLanguagesCmd())
	root.AddCommand(newThemesCmd())

	return root
}
