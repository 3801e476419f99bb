package generate

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/gallery/cmd/application"
	"github.com/agentstation/gallery/internal/cmd/cmdutil"
	"github.com/agentstation/gallery/internal/cmd/emoji"
	"github.com/agentstation/gallery/internal/docs"
)

func newDocsCommand(app application.Application) *cobra.Command {
	var (
		outputDir   string
		siteURL     string
		frontMatter bool
	)

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate Markdown documentation for the collections",
		Long: `Write README.md and one Markdown page per collection, listing every
entry with shields.io task badges followed by the rejected records.`,
		Example: `  gallery generate docs --dir ./docs/catalog
  gallery generate docs --site-url https://gallery.example.org --front-matter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := cmdutil.Snapshot(app)
			if err != nil {
				return err
			}

			if outputDir == "" {
				outputDir = filepath.Join(app.OutputDir(), "docs")
			}
			files, err := docs.New(
				docs.WithOutputDir(outputDir),
				docs.WithSiteURL(siteURL),
				docs.WithFrontMatter(frontMatter),
			).Generate(cmd.Context(), snap)
			if err != nil {
				return err
			}

			cmdutil.Statusf(cmd, emoji.Success, "wrote %d documentation files to %s", len(files), outputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "dir", "", "documentation directory (default: <output-dir>/docs)")
	cmd.Flags().StringVar(&siteURL, "site-url", "", "link entry names to detail pages under this URL")
	cmd.Flags().BoolVar(&frontMatter, "front-matter", false, "prefix pages with Hugo front matter")

	return cmd
}
