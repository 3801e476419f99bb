package gallery

import (
	"reflect"
	"sync"

	"github.com/agentstation/gallery/pkg/catalogs"
)

// Hook function types for gallery events
type (
	// EntryAddedHook is called when an entry appears after a reload
	EntryAddedHook func(kind catalogs.Kind, entry catalogs.Entry)

	// EntryUpdatedHook is called when an entry changed after a reload
	EntryUpdatedHook func(kind catalogs.Kind, old, updated catalogs.Entry)

	// EntryRemovedHook is called when an entry disappears after a reload
	EntryRemovedHook func(kind catalogs.Kind, entry catalogs.Entry)

	// ReloadedHook is called once per successful reload
	ReloadedHook func(snapshot *Snapshot)
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hooks provides event callback registration.
type Hooks interface {
	OnEntryAdded(EntryAddedHook)
	OnEntryUpdated(EntryUpdatedHook)
	OnEntryRemoved(EntryRemovedHook)
	OnReloaded(ReloadedHook)
}

// hooks manages event callbacks for gallery changes
type hooks struct {
	mu             sync.RWMutex
	onEntryAdded   []EntryAddedHook
	onEntryUpdated []EntryUpdatedHook
	onEntryRemoved []EntryRemovedHook
	onReloaded     []ReloadedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnEntryAdded registers a callback for entries added by a reload
func (c *client) OnEntryAdded(fn EntryAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onEntryAdded = append(c.hooks.onEntryAdded, fn)
}

// OnEntryUpdated registers a callback for entries changed by a reload
func (c *client) OnEntryUpdated(fn EntryUpdatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onEntryUpdated = append(c.hooks.onEntryUpdated, fn)
}

// OnEntryRemoved registers a callback for entries removed by a reload
func (c *client) OnEntryRemoved(fn EntryRemovedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onEntryRemoved = append(c.hooks.onEntryRemoved, fn)
}

// OnReloaded registers a callback run after every successful reload
func (c *client) OnReloaded(fn ReloadedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onReloaded = append(c.hooks.onReloaded, fn)
}

// triggerReload compares the old and new snapshots per kind and fires
// entry hooks in collection order, then the reload hooks.
func (h *hooks) triggerReload(prev, next *Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, kind := range catalogs.AllKinds() {
		oldEntries := prev.Collection(kind)
		newEntries := next.Collection(kind)

		for _, entry := range newEntries.Entries() {
			if old, ok := oldEntries.Lookup(entry.Name); ok {
				if !reflect.DeepEqual(*old, *entry) {
					for _, hook := range h.onEntryUpdated {
						hook(kind, *old, *entry)
					}
				}
				continue
			}
			for _, hook := range h.onEntryAdded {
				hook(kind, *entry)
			}
		}

		for _, old := range oldEntries.Entries() {
			if _, ok := newEntries.Lookup(old.Name); !ok {
				for _, hook := range h.onEntryRemoved {
					hook(kind, *old)
				}
			}
		}
	}

	for _, hook := range h.onReloaded {
		hook(next)
	}
}
