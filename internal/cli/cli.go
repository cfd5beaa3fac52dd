// Package cli implements the codeshot command-line interface.
//
// # Commands
//
//   - render: draw a source file as a PNG
//   - serve: run the HTTP image server, the Telegram bot and the gist sweeper
//   - languages, themes: list what the highlighter supports
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// charmbracelet/log logger is carried through context.Context and installed
// as the slog handler of the rendering library.
package cli
