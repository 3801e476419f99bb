// Package adapters connects the event broker to the SSE and WebSocket
// transports.
package adapters

import (
	"github.com/agentstation/gallery/internal/server/events"
	"github.com/agentstation/gallery/internal/server/sse"
	ws "github.com/agentstation/gallery/internal/server/websocket"
)

// SSESubscriber forwards broker events to an SSE broadcaster.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates an SSE subscriber adapter.
func NewSSESubscriber(b *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: b}
}

// Send implements events.Subscriber.
func (s *SSESubscriber) Send(event events.Event) error {
	s.broadcaster.Broadcast(sse.Event{
		Event: string(event.Type),
		Data:  event.Data,
	})
	return nil
}

// Close ends the broadcaster's open streams.
func (s *SSESubscriber) Close() error {
	s.broadcaster.Close()
	return nil
}

// WebSocketSubscriber forwards broker events to a WebSocket hub.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a WebSocket subscriber adapter.
func NewWebSocketSubscriber(h *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: h}
}

// Send implements events.Subscriber.
func (s *WebSocketSubscriber) Send(event events.Event) error {
	s.hub.Broadcast(ws.Message{
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
		Data:      event.Data,
	})
	return nil
}

// Close is a no-op; the hub shuts down with its own context.
func (s *WebSocketSubscriber) Close() error {
	return nil
}
