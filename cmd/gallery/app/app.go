// Package app provides the application context and dependency management
// for the gallery CLI: configuration, logging and the lazily loaded
// gallery client shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/gallery"
	"github.com/agentstation/gallery/cmd/application"
	"github.com/agentstation/gallery/pkg/constants"
)

var _ application.Application = (*App)(nil)

// App represents the gallery application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// lazy-initialized, singleton
	mu      sync.RWMutex
	gallery gallery.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// BasePath returns the URL prefix for generated links.
func (a *App) BasePath() string {
	return a.config.BasePath
}

// ThumbnailsDir returns the thumbnail image directory.
func (a *App) ThumbnailsDir() string {
	return a.config.ThumbnailsDir
}

// OutputDir returns the directory generated files are written to.
func (a *App) OutputDir() string {
	if a.config.OutputDir == "" {
		return constants.DefaultOutputDir
	}
	return a.config.OutputDir
}

// Gallery returns the gallery client, loading the collections on first
// use. It is safe for concurrent use and only ever loads once.
func (a *App) Gallery() (gallery.Client, error) {
	a.mu.RLock()
	if a.gallery != nil {
		g := a.gallery
		a.mu.RUnlock()
		return g, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.gallery != nil {
		return a.gallery, nil
	}

	g, err := gallery.New(a.galleryOptions()...)
	if err != nil {
		return nil, err
	}
	a.gallery = g
	return g, nil
}

// Shutdown stops background reloads of a loaded gallery.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	g := a.gallery
	a.mu.RUnlock()

	if g == nil {
		return nil
	}
	return g.AutoReloadOff()
}

func (a *App) galleryOptions() []gallery.Option {
	opts := []gallery.Option{
		gallery.WithDataDir(a.config.DataDir),
		gallery.WithThumbnailsDir(a.config.ThumbnailsDir),
		gallery.WithThumbnailURLPrefix(a.config.BasePath + constants.DefaultThumbnailURLPrefix),
		gallery.WithAutoReload(a.config.AutoReload),
	}
	if a.config.AutoReloadInterval > 0 {
		opts = append(opts, gallery.WithAutoReloadInterval(a.config.AutoReloadInterval))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithGallery sets a preloaded gallery client (useful for testing).
func WithGallery(g gallery.Client) Option {
	return func(a *App) error {
		a.gallery = g
		return nil
	}
}
