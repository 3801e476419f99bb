// Package serve provides the serve command.
package serve

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/gallery/cmd/application"
	"github.com/agentstation/gallery/internal/cmd/cmdutil"
	"github.com/agentstation/gallery/internal/cmd/emoji"
	"github.com/agentstation/gallery/internal/server"
	"github.com/agentstation/gallery/pkg/constants"
)

// shutdownTimeout bounds connection draining after a stop signal.
const shutdownTimeout = 30 * time.Second

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Serve the gallery pages and JSON API",
		Long: `Serve the rendered gallery and a JSON API over the loaded collections.

Features:
  - Grid pages per collection (/model-grid, ...) and entry detail pages
  - JSON API for entries, rejected records and the entry schema (/api/v1)
  - Record validation endpoint (POST /api/v1/validate)
  - Reload endpoint with change notifications over WebSocket
    (/api/v1/updates/ws) and Server-Sent Events (/api/v1/updates/stream)
  - Thumbnails from --thumbnails-dir under /thumbnails/
  - Page caching, rate limiting, CORS and optional API key
    authentication of write endpoints (GALLERY_API_KEY)`,
		Example: `  # Start on the default port with the embedded sample data
  gallery serve

  # Serve real data and reload it every minute
  gallery serve --data-dir ./data --thumbnails-dir ./thumbnails --watch

  # Behind a reverse proxy under /gallery with protected reloads
  GALLERY_API_KEY=secret gallery serve --base-path /gallery --auth`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, app)
		},
	}

	cmd.Flags().Int("port", constants.DefaultPort, "Server port")
	cmd.Flags().String("host", constants.DefaultHost, "Bind address")
	cmd.Flags().String("prefix", constants.DefaultAPIPrefix, "API path prefix")
	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")
	cmd.Flags().Bool("auth", false, "Require an API key for write endpoints")
	cmd.Flags().String("auth-header", "X-API-Key", "Authentication header name")
	cmd.Flags().Int("rate-limit", 100, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", constants.CacheTTL, "Rendered page cache TTL")
	cmd.Flags().Duration("read-timeout", constants.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", constants.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", constants.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().Bool("watch", false, "Reload the data files periodically")

	return cmd
}

func runServer(cmd *cobra.Command, app application.Application) error {
	cfg := parseConfig(cmd, app)
	logger := app.Logger()

	if mustGetBool(cmd, "watch") {
		g, err := app.Gallery()
		if err != nil {
			return err
		}
		if err := g.AutoReloadOn(); err != nil {
			return err
		}
	}

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Start()

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	logger.Info().
		Str("addr", httpServer.Addr).
		Str("prefix", cfg.PathPrefix).
		Str("base_path", cfg.BasePath).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting gallery server")

	return startWithGracefulShutdown(cmd, httpServer, srv, logger)
}

// parseConfig parses command flags into server configuration.
func parseConfig(cmd *cobra.Command, app application.Application) server.Config {
	return server.Config{
		Host:          mustGetString(cmd, "host"),
		Port:          mustGetInt(cmd, "port"),
		PathPrefix:    mustGetString(cmd, "prefix"),
		BasePath:      app.BasePath(),
		ThumbnailsDir: app.ThumbnailsDir(),
		CORSEnabled:   mustGetBool(cmd, "cors") || len(mustGetStringSlice(cmd, "cors-origins")) > 0,
		CORSOrigins:   mustGetStringSlice(cmd, "cors-origins"),
		AuthEnabled:   mustGetBool(cmd, "auth"),
		AuthHeader:    mustGetString(cmd, "auth-header"),
		RateLimit:     mustGetInt(cmd, "rate-limit"),
		CacheTTL:      mustGetDuration(cmd, "cache-ttl"),
		ReadTimeout:   mustGetDuration(cmd, "read-timeout"),
		WriteTimeout:  mustGetDuration(cmd, "write-timeout"),
		IdleTimeout:   mustGetDuration(cmd, "idle-timeout"),
	}
}

// startWithGracefulShutdown runs the HTTP server until it fails or the
// command context is cancelled, then drains connections and stops the
// background services.
func startWithGracefulShutdown(cmd *cobra.Command, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger) error {
	serverErr := make(chan error, 1)

	go func() {
		cmdutil.Statusf(cmd, emoji.Info, "gallery listening on http://%s (Ctrl+C to stop)", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-cmd.Context().Done():
		logger.Info().Msg("Shutdown signal received")
		cmdutil.Statusf(cmd, emoji.Stop, "shutting down gallery server...")

		// the parent context is already cancelled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// stop live streams first so Shutdown does not wait on them
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("Server stopped gracefully")
		cmdutil.Statusf(cmd, emoji.Success, "gallery server stopped")
		return nil
	}
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}
