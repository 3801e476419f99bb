// Package cmdutil provides helpers shared by the gallery commands.
package cmdutil

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/gallery"
	"github.com/agentstation/gallery/cmd/application"
	"github.com/agentstation/gallery/internal/cmd/output"
	"github.com/agentstation/gallery/internal/cmd/table"
)

// CollectionArgs lists the accepted collection arguments for help text
// and shell completion.
var CollectionArgs = []string{"models", "datasources", "projects"}

// CompleteCollections offers collection names for the first positional
// argument.
func CompleteCollections(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return CollectionArgs, cobra.ShellCompDirectiveNoFileComp
}

// Snapshot loads the gallery and returns its current snapshot.
func Snapshot(app application.Application) (*gallery.Snapshot, error) {
	g, err := app.Gallery()
	if err != nil {
		return nil, err
	}
	return g.Snapshot(), nil
}

// Format returns the output format for this invocation: the configured
// one, or table on a terminal and JSON otherwise.
func Format(app application.Application) output.Format {
	return output.DetectFormat(app.OutputFormat())
}

// Write renders data through the configured formatter to the command's
// output stream.
func Write(cmd *cobra.Command, app application.Application, data any, tableFn func(wide bool) table.Data) error {
	return output.Write(cmd.OutOrStdout(), Format(app), data, tableFn)
}

// Statusf prints a human status line to stderr, keeping stdout clean for
// data.
func Statusf(cmd *cobra.Command, symbol, format string, args ...any) {
	writeStatus(cmd.ErrOrStderr(), symbol, fmt.Sprintf(format, args...))
}

func writeStatus(w io.Writer, symbol, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", symbol, msg)
}
