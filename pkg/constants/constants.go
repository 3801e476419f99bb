// Package constants provides shared constants used throughout the gallery
// codebase. This includes file permissions, limits, placeholder styling and
// layout breakpoints that should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Entry field limits declared by the authoring schema
const (
	// MinURLLength is the minimum length of an entry url
	MinURLLength = 1

	// MaxURLLength is the maximum length of an entry url
	MaxURLLength = 65536

	// RecommendedNameLength is the advisory upper bound for entry names
	RecommendedNameLength = 20
)

// Placeholder thumbnail styling
const (
	// PlaceholderFill is the background of a synthesized thumbnail
	PlaceholderFill = "#6f6f6f"

	// PlaceholderTextColor is the label color of a synthesized thumbnail
	PlaceholderTextColor = "white"

	// PlaceholderFontSize is the label size of a synthesized thumbnail
	PlaceholderFontSize = "10pt"

	// PlaceholderAspectRatio keeps synthesized thumbnails square
	PlaceholderAspectRatio = 1.0
)

// Grid column counts per viewport tier
const (
	// ColumnsDefault applies below the first breakpoint
	ColumnsDefault = 1

	// ColumnsMedium applies from the md breakpoint
	ColumnsMedium = 2

	// ColumnsLarge applies from the lg breakpoint
	ColumnsLarge = 3

	// ColumnsExtraLarge applies from the xl breakpoint
	ColumnsExtraLarge = 4
)

// Server defaults
const (
	// DefaultHost is the default bind address
	DefaultHost = "localhost"

	// DefaultPort is the default HTTP port
	DefaultPort = 8080

	// DefaultAPIPrefix is where JSON endpoints are mounted
	DefaultAPIPrefix = "/api/v1"

	// CacheTTL is the default time-to-live for rendered pages
	CacheTTL = 5 * time.Minute

	// ReadTimeout is the default HTTP read timeout
	ReadTimeout = 10 * time.Second

	// WriteTimeout is the default HTTP write timeout
	WriteTimeout = 10 * time.Second

	// IdleTimeout is the default HTTP idle timeout
	IdleTimeout = 120 * time.Second

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout = 5 * time.Second

	// MaxRequestBody bounds a posted record for validation
	MaxRequestBody = 1 << 20
)

// Directory and file defaults
const (
	// DefaultDataDir holds models.json, datasources.json and projects.json
	DefaultDataDir = "./data"

	// DefaultThumbnailsDir holds one sub directory of images per collection
	DefaultThumbnailsDir = "./thumbnails"

	// DefaultOutputDir receives generated site and docs output
	DefaultOutputDir = "./public"

	// ThumbnailExt is the image extension looked up per entry name
	ThumbnailExt = ".jpg"

	// DefaultThumbnailURLPrefix is where thumbnails are served and copied to
	DefaultThumbnailURLPrefix = "/thumbnails"
)

// Reload settings
const (
	// DefaultReloadInterval is how often data files are re-read when
	// automatic reloading is enabled
	DefaultReloadInterval = time.Minute

	// ReloadContextTimeout bounds a single reload
	ReloadContextTimeout = 30 * time.Second
)
