package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/gallery/cmd/gallery/cmd/generate"
	"github.com/agentstation/gallery/cmd/gallery/cmd/list"
	"github.com/agentstation/gallery/cmd/gallery/cmd/render"
	"github.com/agentstation/gallery/cmd/gallery/cmd/schema"
	"github.com/agentstation/gallery/cmd/gallery/cmd/serve"
	"github.com/agentstation/gallery/cmd/gallery/cmd/validate"
	"github.com/agentstation/gallery/cmd/gallery/cmd/version"
	"github.com/agentstation/gallery/internal/cmd/output"
	"github.com/agentstation/gallery/pkg/logging"
)

// Execute runs the gallery CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "gallery",
		Short:   "Scientific model, data source and project gallery",
		Version: a.version,
		Long: `Gallery validates catalog collections of scientific models, data
sources and projects against the entry schema and renders them as
responsive thumbnail grids with task badges and hover popovers.

Collections are read from <data-dir>/models.json, datasources.json and
projects.json (YAML also accepted). Without --data-dir the embedded
sample collections are used.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "management", Title: "Management Commands:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is ./.gallery.yaml or $HOME/.gallery.yaml)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, json, yaml, wide")
	flags.StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.StringVar(&a.config.DataDir, "data-dir", a.config.DataDir, "directory holding the collection files (default: embedded samples)")
	flags.StringVar(&a.config.ThumbnailsDir, "thumbnails-dir", a.config.ThumbnailsDir, "directory holding <kind>/<name>.jpg thumbnails")
	flags.StringVar(&a.config.OutputDir, "output-dir", a.config.OutputDir, "directory generated files are written to")
	flags.StringVar(&a.config.BasePath, "base-path", a.config.BasePath, "URL prefix the gallery is served under, e.g. /gallery")

	rootCmd.SetVersionTemplate("gallery {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed("config") {
		if err := a.config.ApplyFile(mustGetString(cmd, "config"), flags.Changed); err != nil {
			return err
		}
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(render.NewCommand(a))
	rootCmd.AddCommand(generate.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(schema.NewCommand(a))

	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
