package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rasoilabs/pos-backend/internal/seed"
	"github.com/rasoilabs/pos-backend/pkg/logger"
)

// SeedHandler exposes the one-shot database seeding endpoint
type SeedHandler struct {
	seeder *seed.Seeder
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(seeder *seed.Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *SeedHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/seed", h.Seed).Methods("POST")
}

// Seed handles POST /api/seed
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.seeder.Run()
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Seeding failed")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Seeding failed"})
		return
	}

	message := "Database seeded successfully"
	if result.AlreadySeeded {
		message = "Database already seeded"
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: result})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
