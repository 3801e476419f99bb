// Package generate provides the generate command and its site and docs
// subcommands.
package generate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/gallery/cmd/application"
)

// NewCommand creates the generate command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		GroupID: "core",
		Short:   "Generate the static site or Markdown documentation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newSiteCommand(app))
	cmd.AddCommand(newDocsCommand(app))

	return cmd
}
