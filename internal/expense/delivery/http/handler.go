package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/rasoilabs/pos-backend/internal/expense/domain"
	"github.com/rasoilabs/pos-backend/internal/expense/usecase/command"
	"github.com/rasoilabs/pos-backend/internal/expense/usecase/query"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/logger"
	"github.com/rasoilabs/pos-backend/pkg/middleware"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_expense_requests_total",
			Help: "Total number of requests to expense endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_expense_request_duration_seconds",
			Help:    "Duration of expense requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// ExpenseHandler handles HTTP requests for operating costs
type ExpenseHandler struct {
	createExpense *command.CreateExpenseHandler
	updateExpense *command.UpdateExpenseHandler
	deleteExpense *command.DeleteExpenseHandler
	listExpenses  *query.ListExpensesHandler

	redis *redis.Client
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(repo domain.ExpenseRepository, redisClient *redis.Client) *ExpenseHandler {
	return &ExpenseHandler{
		createExpense: command.NewCreateExpenseHandler(repo),
		updateExpense: command.NewUpdateExpenseHandler(repo),
		deleteExpense: command.NewDeleteExpenseHandler(repo),
		listExpenses:  query.NewListExpensesHandler(repo),
		redis:         redisClient,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ExpenseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/expenses", metricsMiddleware("/api/expenses", h.ListExpenses)).Methods("GET")
	router.HandleFunc("/api/expenses", metricsMiddleware("/api/expenses", h.CreateExpense)).Methods("POST")
	router.HandleFunc("/api/expenses/{id}", metricsMiddleware("/api/expenses/{id}", h.UpdateExpense)).Methods("PUT")
	router.HandleFunc("/api/expenses/{id}", metricsMiddleware("/api/expenses/{id}", h.DeleteExpense)).Methods("DELETE")
}

// ListExpenses handles GET /api/expenses
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.listExpenses.Handle(query.ListExpensesQuery{
		Filter: domain.ExpenseFilter{
			Date:     q.Get("date"),
			From:     q.Get("from"),
			To:       q.Get("to"),
			Category: q.Get("category"),
		},
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list expenses")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list expenses"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// CreateExpense handles POST /api/expenses
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		ExpenseDate string  `json:"expense_date"`
		Notes       string  `json:"notes"`
		CreatedBy   uint    `json:"created_by"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	expense, err := h.createExpense.Handle(command.CreateExpenseCommand{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		ExpenseDate: req.ExpenseDate,
		Notes:       req.Notes,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to create expense")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create expense"})
		return
	}

	h.invalidateProfitLoss()

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Expense created successfully", Data: expense})
}

// UpdateExpense handles PUT /api/expenses/{id}
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid expense ID"})
		return
	}

	var req struct {
		Description *string  `json:"description"`
		Amount      *float64 `json:"amount"`
		Category    *string  `json:"category"`
		ExpenseDate *string  `json:"expense_date"`
		Notes       *string  `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	expense, err := h.updateExpense.Handle(command.UpdateExpenseCommand{
		ID:          uint(id),
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		ExpenseDate: req.ExpenseDate,
		Notes:       req.Notes,
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to update expense")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update expense"})
		return
	}

	h.invalidateProfitLoss()

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Expense updated successfully", Data: expense})
}

// DeleteExpense handles DELETE /api/expenses/{id}
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid expense ID"})
		return
	}

	if err := h.deleteExpense.Handle(command.DeleteExpenseCommand{ID: uint(id)}); err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to delete expense")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to delete expense"})
		return
	}

	h.invalidateProfitLoss()

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Expense deleted successfully"})
}

// invalidateProfitLoss drops cached profit-loss reports after an expense
// write
func (h *ExpenseHandler) invalidateProfitLoss() {
	if err := middleware.InvalidateCache(h.redis, "/api/profit-loss"); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to invalidate profit-loss cache")
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
