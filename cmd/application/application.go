// Package application provides the application interface for gallery commands.
//
// Commands and the HTTP server accept this interface rather than the
// concrete App type so they can be tested with application.Mock from
// internal/cmd/application.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            g, err := app.Gallery()
//	            if err != nil {
//	                return err
//	            }
//	            layout, err := g.Snapshot().Layout(catalogs.KindModel, app.BasePath())
//	            // ...
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/gallery"
)

// Application provides what commands need from the running app.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Gallery returns the shared gallery client, loading it on first use.
	Gallery() (gallery.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// BasePath is the URL prefix prepended to generated links.
	BasePath() string

	// ThumbnailsDir is the directory holding <kind>/<name>.jpg images.
	ThumbnailsDir() string

	// OutputDir is where generated site and docs files are written.
	OutputDir() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
