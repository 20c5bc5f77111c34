package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rasoilabs/pos-backend/internal/notification"
	"github.com/rasoilabs/pos-backend/pkg/logger"
)

// NotificationHandler serves the live event stream
type NotificationHandler struct {
	hub *notification.Hub
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(hub *notification.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *NotificationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/notifications", h.Stream).Methods("GET")
	router.HandleFunc("/api/notifications/status", h.Status).Methods("GET")
}

// Stream handles GET /api/notifications as a server-sent event stream.
// The connection stays open until the client disconnects.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Streaming not supported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	logger.Info(r.Context()).Int("subscribers", h.hub.Count()).Msg("Notification stream opened")

	fmt.Fprintf(w, "event: connected\ndata: {\"connected\": true}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			logger.Info(r.Context()).Msg("Notification stream closed")
			return
		case payload, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// Status handles GET /api/notifications/status
func (h *NotificationHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{
		"activeConnections": h.hub.Count(),
	}})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
