package notification

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rasoilabs/pos-backend/pkg/logger"
)

var activeSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "pos_notification_subscribers",
		Help: "Number of connected notification stream subscribers",
	},
)

// Event is one message pushed to stream subscribers
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans events out to all connected subscribers. Slow subscribers are
// skipped rather than blocking the publisher; a subscriber whose buffer
// stays full misses events instead of stalling checkout.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan []byte]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan []byte]struct{})}
}

// Subscribe registers a new listener and returns its channel
func (h *Hub) Subscribe() chan []byte {
	ch := make(chan []byte, 16)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	count := len(h.subscribers)
	h.mu.Unlock()

	activeSubscribers.Set(float64(count))
	return ch
}

// Unsubscribe removes a listener. The channel is closed so a draining
// reader terminates.
func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
	count := len(h.subscribers)
	h.mu.Unlock()

	activeSubscribers.Set(float64(count))
}

// Publish serializes the event once and offers it to every subscriber
func (h *Hub) Publish(eventType string, data interface{}) {
	event := Event{Type: eventType, Data: data, Timestamp: time.Now()}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to serialize event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- payload:
		default:
			// buffer full, drop for this subscriber
		}
	}
}

// Count returns the number of connected subscribers
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
