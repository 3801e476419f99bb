// Package gallery provides the entry point for loading and serving a
// scientific resource gallery: collections of models, data sources and
// projects rendered as thumbnail grids.
//
// A Client owns an immutable Snapshot of every collection, its thumbnail
// lookup and the records rejected by validation. Reload re-reads the data
// files and swaps the snapshot atomically, firing hooks for entries that
// were added, updated or removed.
//
// Example usage:
//
//	g, err := gallery.New(gallery.WithDataDir("./data"), gallery.WithThumbnailsDir("./thumbnails"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer g.AutoReloadOff()
//
//	g.OnEntryAdded(func(kind catalogs.Kind, entry catalogs.Entry) {
//	    log.Printf("new %s: %s", kind, entry.Name)
//	})
//
//	layout, err := g.Snapshot().Layout(catalogs.KindModel, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = render.WriteLayout(os.Stdout, layout)
package gallery

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/gallery/pkg/errors"
	"github.com/agentstation/gallery/pkg/logging"
)

// Client manages the loaded gallery with reloads and event hooks.
type Client interface {
	// Snapshot returns the current immutable view of every collection.
	Snapshot() *Snapshot

	// Reloader re-reads the data files
	Reloader

	// AutoReloader provides access to periodic reload controls
	AutoReloader

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	mu       sync.RWMutex
	snapshot *Snapshot

	reloadMu sync.Mutex // serializes reloads

	autoMu       sync.Mutex
	reloadTicker *time.Ticker
	stopCh       chan struct{}
	reloadCancel context.CancelFunc

	hooks *hooks
}

// New creates a Client and performs the initial load.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	g := &client{
		options:  o,
		snapshot: emptySnapshot(),
		stopCh:   make(chan struct{}),
		hooks:    newHooks(),
	}

	if err := g.Reload(context.Background()); err != nil {
		return nil, errors.NewConfigError("gallery", "initial load failed", err)
	}

	if o.autoReload {
		if err := g.AutoReloadOn(); err != nil {
			return nil, err
		}
	}

	logging.Debug().
		Int("collections", len(g.Snapshot().Kinds())).
		Msg("Gallery ready")
	return g, nil
}

// Snapshot returns the current snapshot. Snapshots are never mutated, so
// the result may be used freely after later reloads.
func (c *client) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}
