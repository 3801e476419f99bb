package server

import (
	"net/http"

	"github.com/agentstation/gallery/internal/server/handlers"
	"github.com/agentstation/gallery/internal/server/middleware"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/constants"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(handlers.Options{
		Gallery:        s.gallery,
		Cache:          s.cache,
		Broker:         s.broker,
		WSHub:          s.wsHub,
		SSEBroadcaster: s.sseBroadcaster,
		Upgrader:       s.upgrader,
		Logger:         s.logger,
		BasePath:       s.config.BasePath,
		StartTime:      s.startTime,
	})

	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes. Path wildcards match one
// escaped segment, so entry names containing a slash still resolve.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Pages
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	for _, kind := range catalogs.AllKinds() {
		mux.HandleFunc("GET "+kind.GridPath(), func(w http.ResponseWriter, r *http.Request) {
			h.HandleGrid(w, r, kind)
		})
		mux.HandleFunc("GET /"+kind.String()+"/{name}", func(w http.ResponseWriter, r *http.Request) {
			h.HandleDetail(w, r, kind, r.PathValue("name"))
		})
	}
	if s.config.ThumbnailsDir != "" {
		thumbs := constants.DefaultThumbnailURLPrefix + "/"
		mux.Handle("GET "+thumbs, http.StripPrefix(thumbs, http.FileServer(http.Dir(s.config.ThumbnailsDir))))
	}

	// Health endpoints
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Schema and validation
	mux.HandleFunc("GET "+prefix+"/schema", h.HandleSchemaJSON)
	mux.HandleFunc("GET "+prefix+"/schema.yaml", h.HandleSchemaYAML)
	mux.HandleFunc("POST "+prefix+"/validate", h.HandleValidate)

	// Admin endpoints
	mux.HandleFunc("POST "+prefix+"/reload", h.HandleReload)
	mux.HandleFunc("GET "+prefix+"/stats", h.HandleStats)

	// Real-time endpoints
	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+prefix+"/updates/stream", h.HandleSSE)

	// Collections
	mux.HandleFunc("GET "+prefix+"/rejected/{kind}", h.HandleRejected)
	mux.HandleFunc("GET "+prefix+"/{kind}", h.HandleListEntries)
	mux.HandleFunc("GET "+prefix+"/{kind}/{name}", h.HandleGetEntry)
}

// applyMiddleware wraps handler with the middleware chain. Recovery is
// outermost, then logging, CORS, authentication and rate limiting.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}

	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		if cfg.APIKey != "" {
			authConfig.APIKey = cfg.APIKey
		}
		authConfig.PublicPaths = []string{"/health", cfg.PathPrefix + "/health", cfg.PathPrefix + "/ready"}
		chain = append(chain, middleware.Auth(authConfig, s.logger))
	}

	if cfg.RateLimit > 0 {
		chain = append(chain, middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, s.logger)))
	}

	return middleware.Chain(chain...)(handler)
}
