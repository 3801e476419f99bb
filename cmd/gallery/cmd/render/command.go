// Package render provides the render command.
package render

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/gallery/cmd/application"
	"github.com/agentstation/gallery/internal/cmd/cmdutil"
	"github.com/agentstation/gallery/internal/site"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
	"github.com/agentstation/gallery/pkg/render"
)

// NewCommand creates the render command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		fragment bool
		outFile  string
	)

	cmd := &cobra.Command{
		Use:     "render <collection> [name]",
		GroupID: "core",
		Short:   "Render a collection grid or an entry detail page as HTML",
		Long: `Render the thumbnail grid of a collection, or the detail page of one
entry, to stdout or a file. With --fragment only the grid markup is
written, for embedding into an existing page.`,
		Example: `  gallery render models > models.html
  gallery render models --fragment --base-path /gallery
  gallery render projects plankton-tracker --out plankton.html`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: cmdutil.CompleteCollections,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := catalogs.ParseKind(args[0])
			if err != nil {
				return err
			}
			snap, err := cmdutil.Snapshot(app)
			if err != nil {
				return err
			}

			write := func(w io.Writer) error {
				switch {
				case len(args) == 2:
					return site.WriteDetail(w, snap, kind, args[1], app.BasePath())
				case fragment:
					layout, err := snap.Layout(kind, app.BasePath())
					if err != nil {
						return err
					}
					return render.WriteLayout(w, layout)
				default:
					return site.WriteGrid(w, snap, kind, app.BasePath())
				}
			}

			if outFile == "" {
				return write(cmd.OutOrStdout())
			}
			return writeFile(outFile, write)
		},
	}

	cmd.Flags().BoolVar(&fragment, "fragment", false, "write only the grid markup, without the page shell")
	cmd.Flags().StringVar(&outFile, "out", "", "write to this file instead of stdout")

	return cmd
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	return errors.WrapIO("close", path, f.Close())
}
