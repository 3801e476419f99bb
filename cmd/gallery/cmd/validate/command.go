// Package validate provides the validate command.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/gallery/cmd/application"
	"github.com/agentstation/gallery/internal/cmd/cmdutil"
	"github.com/agentstation/gallery/internal/cmd/emoji"
	"github.com/agentstation/gallery/internal/cmd/table"
	"github.com/agentstation/gallery/internal/loader"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
	"github.com/agentstation/gallery/pkg/logging"
)

// Report is the validation outcome of one collection file.
type Report struct {
	File     string            `json:"file" yaml:"file"`
	Kind     catalogs.Kind     `json:"kind" yaml:"kind"`
	Accepted int               `json:"accepted" yaml:"accepted"`
	Rejected []loader.Rejected `json:"rejected" yaml:"rejected"`
}

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:     "validate [file...]",
		GroupID: "management",
		Short:   "Validate collection files against the entry schema",
		Long: `Validate every record of the collections in the data directory, or of
the given files, and report each field error of each rejected record.

The collection of a file is taken from its name (models.json,
datasources.yaml, ...) unless --collection is given. The command fails
when any record is rejected.`,
		Example: `  gallery validate --data-dir ./data
  gallery validate contributions/new-model.json --collection models
  gallery validate data/projects.yaml -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				reports []Report
				err     error
			)
			if len(args) == 0 {
				reports, err = validateLoaded(app)
			} else {
				reports, err = validateFiles(cmd, args, collection)
			}
			if err != nil {
				return err
			}

			failed := 0
			var rejected []loader.Rejected
			for _, r := range reports {
				failed += len(r.Rejected)
				rejected = append(rejected, r.Rejected...)
				if len(r.Rejected) == 0 {
					cmdutil.Statusf(cmd, emoji.Success, "%s: %d entries valid", r.File, r.Accepted)
				} else {
					cmdutil.Statusf(cmd, emoji.Error, "%s: %d accepted, %d rejected", r.File, r.Accepted, len(r.Rejected))
				}
			}

			if failed > 0 {
				if err := cmdutil.Write(cmd, app, reports, func(bool) table.Data {
					return table.RejectedToTableData(rejected)
				}); err != nil {
					return err
				}
				return fmt.Errorf("%d records failed validation", failed)
			}
			if !cmdutil.Format(app).IsTable() {
				return cmdutil.Write(cmd, app, reports, nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&collection, "collection", "c", "", "collection of the given files: models, datasources or projects")
	_ = cmd.RegisterFlagCompletionFunc("collection", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return cmdutil.CollectionArgs, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// validateLoaded reports on the collections the gallery loaded.
func validateLoaded(app application.Application) ([]Report, error) {
	snap, err := cmdutil.Snapshot(app)
	if err != nil {
		return nil, err
	}
	reports := make([]Report, 0, len(snap.Kinds()))
	for _, kind := range snap.Kinds() {
		rejected := snap.Rejected(kind)
		if rejected == nil {
			rejected = []loader.Rejected{}
		}
		reports = append(reports, Report{
			File:     snap.Source(kind),
			Kind:     kind,
			Accepted: snap.Collection(kind).Len(),
			Rejected: rejected,
		})
	}
	return reports, nil
}

// validateFiles parses and validates each file on its own.
func validateFiles(cmd *cobra.Command, files []string, collection string) ([]Report, error) {
	ctx := cmd.Context()
	reports := make([]Report, 0, len(files))
	for _, file := range files {
		kind, err := kindFor(file, collection)
		if err != nil {
			return nil, err
		}
		format, err := loader.FormatFromPath(file)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.WrapIO("read", file, err)
		}

		result, err := loader.Parse(logging.WithCollection(ctx, kind.String()), kind, data, format)
		if err != nil {
			var perr *errors.ParseError
			if errors.As(err, &perr) {
				perr.File = file
			}
			return nil, err
		}
		reports = append(reports, Report{
			File:     file,
			Kind:     kind,
			Accepted: result.Collection.Len(),
			Rejected: result.Rejected,
		})
	}
	return reports, nil
}

func kindFor(file, collection string) (catalogs.Kind, error) {
	if collection != "" {
		return catalogs.ParseKind(collection)
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	kind, err := catalogs.ParseKind(base)
	if err != nil {
		return "", fmt.Errorf("cannot tell the collection of %s from its name, use --collection", file)
	}
	return kind, nil
}
