package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// mockSubscriber is a mock subscriber for testing.
type mockSubscriber struct {
	events []Event
	mu     sync.Mutex
	closed bool
}

func (m *mockSubscriber) Send(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSubscriber) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func (m *mockSubscriber) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestBroker_SubscribeBeforeRun(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	sub := &mockSubscriber{}
	b.Subscribe(sub)
	if got := b.SubscriberCount(); got != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", got)
	}
}

func TestBroker_Delivery(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	first, second := &mockSubscriber{}, &mockSubscriber{}
	b.Subscribe(first)
	b.Subscribe(second)

	b.Publish(EntryAdded, map[string]any{"name": "stardist"})
	b.Publish(GalleryReloaded, nil)

	waitFor(t, func() bool { return first.EventCount() == 2 && second.EventCount() == 2 })

	if got := b.EventsPublished(); got != 2 {
		t.Errorf("EventsPublished() = %d, want 2", got)
	}
	if got := b.EventsDropped(); got != 0 {
		t.Errorf("EventsDropped() = %d, want 0", got)
	}

	first.mu.Lock()
	if first.events[0].Type != EntryAdded {
		t.Errorf("first event type = %s, want %s", first.events[0].Type, EntryAdded)
	}
	if first.events[0].Timestamp.IsZero() {
		t.Error("event timestamp not set")
	}
	first.mu.Unlock()
}

func TestBroker_Unsubscribe(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	sub := &mockSubscriber{}
	b.Subscribe(sub)
	b.Unsubscribe(sub)

	if got := b.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", got)
	}
	if !sub.IsClosed() {
		t.Error("unsubscribed subscriber was not closed")
	}

	// Unknown subscribers are ignored.
	b.Unsubscribe(&mockSubscriber{})
}

func TestBroker_DropsWhenQueueFull(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	// Nothing drains the queue without Run.
	for i := 0; i < queueSize+5; i++ {
		b.Publish(EntryUpdated, i)
	}

	if got := b.QueueDepth(); got != queueSize {
		t.Errorf("QueueDepth() = %d, want %d", got, queueSize)
	}
	if got := b.EventsPublished(); got != queueSize {
		t.Errorf("EventsPublished() = %d, want %d", got, queueSize)
	}
	if got := b.EventsDropped(); got != 5 {
		t.Errorf("EventsDropped() = %d, want 5", got)
	}
}

func TestBroker_ShutdownClosesSubscribers(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	sub := &mockSubscriber{}
	b.Subscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if !sub.IsClosed() {
		t.Error("subscriber not closed on shutdown")
	}
	if got := b.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", got)
	}
}
