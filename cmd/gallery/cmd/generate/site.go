package generate

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/gallery/cmd/application"
	"github.com/agentstation/gallery/internal/cmd/cmdutil"
	"github.com/agentstation/gallery/internal/cmd/emoji"
	"github.com/agentstation/gallery/internal/site"
)

func newSiteCommand(app application.Application) *cobra.Command {
	var skipDetails bool

	cmd := &cobra.Command{
		Use:   "site",
		Short: "Generate the static HTML gallery",
		Long: `Write index.html, one <kind>-grid/index.html per collection and one
<kind>/<name>/index.html per entry into the output directory, and copy
the thumbnails to thumbnails/. Serve the directory from --base-path.`,
		Example: `  gallery generate site --data-dir ./data --thumbnails-dir ./thumbnails --output-dir ./public
  gallery generate site --base-path /gallery --skip-details`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := cmdutil.Snapshot(app)
			if err != nil {
				return err
			}

			config := site.Config{
				OutputDir:   app.OutputDir(),
				BasePath:    app.BasePath(),
				SkipDetails: skipDetails,
			}
			if dir := app.ThumbnailsDir(); dir != "" {
				config.ThumbnailsFS = os.DirFS(dir)
			}

			result, err := site.New(config).Generate(cmd.Context(), snap)
			if err != nil {
				return err
			}

			for _, skipped := range result.Skipped {
				cmdutil.Statusf(cmd, emoji.Warning, "skipped detail page for %s: name is not a safe path segment", skipped)
			}
			cmdutil.Statusf(cmd, emoji.Success, "wrote %d pages and %d thumbnails to %s",
				len(result.Pages), result.Thumbnails, config.OutputDir)

			if !cmdutil.Format(app).IsTable() {
				return cmdutil.Write(cmd, app, result, nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipDetails, "skip-details", false, "do not write per-entry detail pages")

	return cmd
}
