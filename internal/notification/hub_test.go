package notification

import (
	"encoding/json"
	"testing"
	"time"
)

func receive(t *testing.T, ch chan []byte) Event {
	t.Helper()
	select {
	case payload := <-ch:
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("invalid event payload: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe()
	b := hub.Subscribe()

	if hub.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", hub.Count())
	}

	hub.Publish("order_completed", map[string]string{"bill_number": "20250601-0001"})

	for _, ch := range []chan []byte{a, b} {
		event := receive(t, ch)
		if event.Type != "order_completed" {
			t.Errorf("event type = %q, want order_completed", event.Type)
		}
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe()
	b := hub.Subscribe()

	hub.Unsubscribe(a)
	if hub.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", hub.Count())
	}

	// closed channel must not receive further events
	if _, ok := <-a; ok {
		t.Error("expected closed channel for unsubscribed listener")
	}

	hub.Publish("order_completed", nil)
	receive(t, b)

	// double unsubscribe is a no-op
	hub.Unsubscribe(a)
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	slow := hub.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish("order_completed", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}

	// subscriber still holds up to its buffer of events
	if len(slow) == 0 {
		t.Error("expected buffered events for slow subscriber")
	}
}
