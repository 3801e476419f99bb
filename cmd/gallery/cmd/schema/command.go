// Package schema provides the schema command.
package schema

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/gallery/cmd/application"
	"github.com/agentstation/gallery/internal/cmd/output"
	"github.com/agentstation/gallery/pkg/schema"
)

// NewCommand creates the schema command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "schema",
		GroupID: "management",
		Short:   "Print the entry JSON Schema",
		Long: `Print the JSON Schema every catalog record is validated against.
Use -o yaml for a YAML rendering; every other format prints JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := schema.Entry()

			var (
				data []byte
				err  error
			)
			if output.Format(app.OutputFormat()) == output.FormatYAML {
				data, err = s.YAML()
			} else {
				data, err = s.JSON()
			}
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
