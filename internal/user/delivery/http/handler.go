package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rasoilabs/pos-backend/internal/user/domain"
	"github.com/rasoilabs/pos-backend/internal/user/usecase/command"
	"github.com/rasoilabs/pos-backend/internal/user/usecase/query"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/logger"
	"github.com/rasoilabs/pos-backend/pkg/middleware"
)

var loginAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pos_login_attempts_total",
		Help: "Total number of login attempts by outcome",
	},
	[]string{"outcome"},
)

// UserHandler handles HTTP requests for staff accounts and login
type UserHandler struct {
	loginHandler *command.LoginUserHandler
	listHandler  *query.ListUsersHandler
	limiter      *middleware.RateLimiter
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	return &UserHandler{
		loginHandler: command.NewLoginUserHandler(repo),
		listHandler:  query.NewListUsersHandler(repo),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SetRateLimiter guards the login endpoint against PIN brute forcing.
// Must be called before RegisterRoutes.
func (h *UserHandler) SetRateLimiter(limiter *middleware.RateLimiter) {
	h.limiter = limiter
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	login := h.Login
	if h.limiter != nil {
		login = h.limiter.Middleware(login)
	}
	router.HandleFunc("/api/auth/login", login).Methods("POST")
	router.HandleFunc("/api/users", AdminMiddleware(h.ListUsers)).Methods("GET")
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		PIN      string `json:"pin"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Username == "" || req.PIN == "" {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Username and PIN are required"})
		return
	}

	cmd := command.LoginUserCommand{Username: req.Username, PIN: req.PIN}

	resp, err := h.loginHandler.Handle(cmd)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, command.ErrInvalidCredentials) {
			// Same message for unknown user and wrong PIN
			respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Invalid credentials"})
			return
		}
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Login failed")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Login failed"})
		return
	}

	loginAttempts.WithLabelValues("success").Inc()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"user": map[string]interface{}{
				"id":       resp.User.ID,
				"username": resp.User.Username,
				"role":     resp.User.Role,
			},
			"token": resp.Token,
		},
	})
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.listHandler.Handle(query.ListUsersQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list users")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list users"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: users})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
