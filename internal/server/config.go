package server

import (
	"time"

	"github.com/agentstation/gallery/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// PathPrefix is where JSON endpoints are mounted.
	PathPrefix string

	// BasePath prefixes generated links when the gallery is served
	// behind a reverse proxy sub path.
	BasePath string

	// ThumbnailsDir is served under /thumbnails/; empty disables it.
	ThumbnailsDir string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Authentication settings
	AuthEnabled bool
	AuthHeader  string
	APIKey      string

	// Performance settings
	RateLimit int // Requests per minute per IP (0 to disable)
	CacheTTL  time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:          constants.DefaultHost,
		Port:          constants.DefaultPort,
		PathPrefix:    constants.DefaultAPIPrefix,
		ThumbnailsDir: constants.DefaultThumbnailsDir,
		CORSOrigins:   []string{},
		AuthHeader:    "X-API-Key",
		RateLimit:     100,
		CacheTTL:      constants.CacheTTL,
		ReadTimeout:   constants.ReadTimeout,
		WriteTimeout:  constants.WriteTimeout,
		IdleTimeout:   constants.IdleTimeout,
	}
}
