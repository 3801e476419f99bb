// Package handlers provides HTTP request handlers for the gallery server.
package handlers

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/gallery"
	"github.com/agentstation/gallery/internal/server/cache"
	"github.com/agentstation/gallery/internal/server/events"
	"github.com/agentstation/gallery/internal/server/sse"
	ws "github.com/agentstation/gallery/internal/server/websocket"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	gallery        gallery.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	basePath       string
	startTime      time.Time
}

// Options carries the collaborators shared by every handler.
type Options struct {
	Gallery        gallery.Client
	Cache          *cache.Cache
	Broker         *events.Broker
	WSHub          *ws.Hub
	SSEBroadcaster *sse.Broadcaster
	Upgrader       websocket.Upgrader
	Logger         *zerolog.Logger
	BasePath       string
	StartTime      time.Time
}

// New creates a new Handlers instance.
func New(opts Options) *Handlers {
	return &Handlers{
		gallery:        opts.Gallery,
		cache:          opts.Cache,
		broker:         opts.Broker,
		wsHub:          opts.WSHub,
		sseBroadcaster: opts.SSEBroadcaster,
		upgrader:       opts.Upgrader,
		logger:         opts.Logger,
		basePath:       opts.BasePath,
		startTime:      opts.StartTime,
	}
}

// kind resolves a collection path segment; unknown names are not found.
func kind(segment string) (catalogs.Kind, error) {
	k, err := catalogs.ParseKind(segment)
	if err != nil {
		return "", errors.NewNotFoundError("collection", segment)
	}
	return k, nil
}
