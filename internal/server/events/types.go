// Package events fans gallery changes out to the real-time transports.
//
// The gallery client's hooks publish into a Broker, which delivers each
// event to every registered Subscriber (the SSE broadcaster and the
// WebSocket hub, through the adapters package).
package events

import "time"

// EventType represents the type of gallery event.
type EventType string

// Event types for gallery changes.
const (
	// Entry events, one per changed entry after a reload.
	EntryAdded   EventType = "entry.added"
	EntryUpdated EventType = "entry.updated"
	EntryRemoved EventType = "entry.removed"

	// GalleryReloaded follows every successful reload.
	GalleryReloaded EventType = "gallery.reloaded"

	// ClientConnected is sent to a transport client when it attaches.
	ClientConnected EventType = "client.connected"
)

// Event represents a gallery event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Subscriber consumes the event stream. Send must not block.
type Subscriber interface {
	Send(Event) error
	Close() error
}
