// Package list provides the list command.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/gallery/cmd/application"
	"github.com/agentstation/gallery/internal/cmd/cmdutil"
	"github.com/agentstation/gallery/internal/cmd/table"
	"github.com/agentstation/gallery/internal/loader"
	"github.com/agentstation/gallery/pkg/catalogs"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	var rejected bool

	cmd := &cobra.Command{
		Use:     "list [collection]",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List collections, entries or rejected records",
		Long: `Without arguments, list every loaded collection with its entry and
rejected record counts. With a collection (models, datasources or
projects), list its accepted entries in file order.`,
		Example: `  gallery list
  gallery list models -o wide
  gallery list datasources --rejected -o json`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: cmdutil.CompleteCollections,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := cmdutil.Snapshot(app)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				sum := snap.Summary()
				return cmdutil.Write(cmd, app, sum, func(bool) table.Data {
					return table.SummaryToTableData(sum)
				})
			}

			kind, err := catalogs.ParseKind(args[0])
			if err != nil {
				return err
			}

			if rejected {
				records := snap.Rejected(kind)
				if records == nil {
					records = []loader.Rejected{}
				}
				return cmdutil.Write(cmd, app, records, func(bool) table.Data {
					return table.RejectedToTableData(records)
				})
			}

			entries := snap.Collection(kind).Entries()
			return cmdutil.Write(cmd, app, entries, func(wide bool) table.Data {
				return table.EntriesToTableData(entries, snap.Thumbnails(kind), wide)
			})
		},
	}

	cmd.Flags().BoolVar(&rejected, "rejected", false, "list records that failed validation instead of entries")

	return cmd
}
