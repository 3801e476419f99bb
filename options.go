package gallery

import (
	"io/fs"
	"os"
	"time"

	"github.com/agentstation/gallery/internal/embedded"
	"github.com/agentstation/gallery/pkg/constants"
	"github.com/agentstation/gallery/pkg/errors"
)

// options holds the client configuration.
type options struct {
	dataFS  fs.FS
	dataDir string

	thumbnailsFS       fs.FS
	thumbnailURLPrefix string

	autoReload         bool
	autoReloadInterval time.Duration
}

// Option is a function that configures a Client.
type Option func(*options) error

func defaults() *options {
	return &options{
		dataFS:             embedded.Data(),
		dataDir:            ".",
		thumbnailURLPrefix: constants.DefaultThumbnailURLPrefix,
		autoReloadInterval: constants.DefaultReloadInterval,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithDataDir reads collection files from a directory on disk. An empty
// path keeps the embedded sample data.
func WithDataDir(path string) Option {
	return func(o *options) error {
		if path == "" {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return errors.NewConfigError("data_dir", "cannot read "+path, err)
		}
		if !info.IsDir() {
			return errors.NewConfigError("data_dir", path+" is not a directory", nil)
		}
		o.dataFS = os.DirFS(path)
		o.dataDir = "."
		return nil
	}
}

// WithDataFS reads collection files from dir within fsys.
func WithDataFS(fsys fs.FS, dir string) Option {
	return func(o *options) error {
		o.dataFS = fsys
		o.dataDir = dir
		return nil
	}
}

// WithThumbnailsDir looks up thumbnails in <path>/<kind>/<name>.jpg. A
// missing directory simply yields placeholders.
func WithThumbnailsDir(path string) Option {
	return func(o *options) error {
		if path == "" {
			o.thumbnailsFS = nil
			return nil
		}
		o.thumbnailsFS = os.DirFS(path)
		return nil
	}
}

// WithThumbnailsFS looks up thumbnails in <kind>/<name>.jpg within fsys.
func WithThumbnailsFS(fsys fs.FS) Option {
	return func(o *options) error {
		o.thumbnailsFS = fsys
		return nil
	}
}

// WithThumbnailURLPrefix sets the URL thumbnails are referenced under.
// Each kind's images live at <prefix>/<kind>/<file>.
func WithThumbnailURLPrefix(prefix string) Option {
	return func(o *options) error {
		o.thumbnailURLPrefix = prefix
		return nil
	}
}

// WithAutoReload configures whether data files are re-read periodically.
func WithAutoReload(enabled bool) Option {
	return func(o *options) error {
		o.autoReload = enabled
		return nil
	}
}

// WithAutoReloadInterval configures how often automatic reloads run.
func WithAutoReloadInterval(interval time.Duration) Option {
	return func(o *options) error {
		if interval <= 0 {
			return errors.NewConfigError("reload_interval", "interval must be positive", nil)
		}
		o.autoReloadInterval = interval
		return nil
	}
}
