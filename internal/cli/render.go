package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/codeshot"
	"github.com/gogpu/codeshot/internal/config"
)

type renderOpts struct {
	output      string
	lang        string
	theme       string
	lineNumbers bool
}

func newRenderCmd(flags *globalFlags) *cobra.Command {
	opts := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a source file to PNG",
		Long: `Render a source file to a syntax-highlighted PNG.

The language is taken from --lang, then from the file extension. Reading
from stdin ("-" or no argument) without --lang draws plain text.`,
		Example: `  codeshot render main.go -o main.png
  echo "print('hi')" | codeshot render --lang py -o hi.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("theme") {
				cfg.Render.Theme = opts.theme
			}
			if cmd.Flags().Changed("line-numbers") {
				cfg.Render.LineNumbers = opts.lineNumbers
			}
			return runRender(cmd, cfg.Render, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .png, or stdout for stdin)")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "language hint (name, alias or extension)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "color theme (see 'codeshot themes')")
	cmd.Flags().BoolVarP(&opts.lineNumbers, "line-numbers", "n", false, "draw a line-number gutter")

	return cmd
}

func runRender(cmd *cobra.Command, rc config.Render, path string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	source, err := readSource(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	hint := opts.lang
	if hint == "" && path != "-" {
		hint = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	ropts, err := rendererOptions(rc)
	if err != nil {
		return err
	}
	r, err := codeshot.NewRenderer(ropts...)
	if err != nil {
		return err
	}

	start := time.Now()
	png, err := r.RenderCode(source, hint)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	logger.Debug("rendered", "file", path, "hint", hint, "bytes", len(png), "took", time.Since(start).Round(time.Millisecond))

	out := opts.output
	if out == "" && path != "-" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}
	if out == "" || out == "-" {
		_, err := cmd.OutOrStdout().Write(png)
		return err
	}
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	printSuccess(cmd.ErrOrStderr(), "Wrote %s", out)
	return nil
}

func readSource(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}
