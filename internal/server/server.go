// Package server provides the HTTP server behind `gallery serve`: the
// rendered grid and detail pages, a JSON API over the loaded
// collections, schema and validation endpoints, and live change
// notifications over WebSocket and Server-Sent Events.
package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/gallery"
	"github.com/agentstation/gallery/cmd/application"
	"github.com/agentstation/gallery/internal/server/cache"
	"github.com/agentstation/gallery/internal/server/events"
	"github.com/agentstation/gallery/internal/server/events/adapters"
	"github.com/agentstation/gallery/internal/server/sse"
	ws "github.com/agentstation/gallery/internal/server/websocket"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/constants"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app            application.Application
	gallery        gallery.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	done           chan struct{}
	started        atomic.Bool
	startTime      time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	g, err := app.Gallery()
	if err != nil {
		return nil, err
	}

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = constants.DefaultAPIPrefix
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		app:            app,
		gallery:        g,
		cache:          cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		startTime: time.Now(),
	}

	s.connectHooks()
	logger.Debug().Msg("Server instance created")
	return s, nil
}

// connectHooks publishes gallery changes to the broker and drops
// rendered pages after every reload.
func (s *Server) connectHooks() {
	s.gallery.OnEntryAdded(func(kind catalogs.Kind, entry catalogs.Entry) {
		s.broker.Publish(events.EntryAdded, map[string]any{
			"kind":  kind,
			"entry": entry,
		})
	})

	s.gallery.OnEntryUpdated(func(kind catalogs.Kind, old, updated catalogs.Entry) {
		s.broker.Publish(events.EntryUpdated, map[string]any{
			"kind":      kind,
			"old_entry": old,
			"new_entry": updated,
		})
	})

	s.gallery.OnEntryRemoved(func(kind catalogs.Kind, entry catalogs.Entry) {
		s.broker.Publish(events.EntryRemoved, map[string]any{
			"kind":  kind,
			"entry": entry,
		})
	})

	s.gallery.OnReloaded(func(snap *gallery.Snapshot) {
		s.cache.Clear()
		s.broker.Publish(events.GalleryReloaded, snap.Summary())
	})

	s.logger.Debug().Msg("Gallery hooks connected to event broker")
}

// Start starts background services (broker, WebSocket hub, SSE broadcaster).
func (s *Server) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	s.logger.Debug().Msg("Starting background services")

	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)
	go func() {
		s.broker.Run(s.ctx)
		close(s.done)
	}()
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops background services and waits for the broker to close
// its subscribers, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()
	s.sseBroadcaster.Close()
	if !s.started.Load() {
		return nil
	}

	select {
	case <-s.done:
		s.logger.Info().Msg("Background services shut down successfully")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
