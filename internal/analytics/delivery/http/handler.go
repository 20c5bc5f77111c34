package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rasoilabs/pos-backend/internal/analytics/usecase/query"
	expensedomain "github.com/rasoilabs/pos-backend/internal/expense/domain"
	orderdomain "github.com/rasoilabs/pos-backend/internal/order/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/logger"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_analytics_requests_total",
			Help: "Total number of requests to analytics endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_analytics_request_duration_seconds",
			Help:    "Duration of analytics requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// AnalyticsHandler handles HTTP requests for reports
type AnalyticsHandler struct {
	getAnalytics  *query.GetAnalyticsHandler
	getProfitLoss *query.GetProfitLossHandler
	getDailySales *query.GetDailySalesHandler
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(orders orderdomain.OrderRepository, expenses expensedomain.ExpenseRepository) *AnalyticsHandler {
	return &AnalyticsHandler{
		getAnalytics:  query.NewGetAnalyticsHandler(orders),
		getProfitLoss: query.NewGetProfitLossHandler(orders, expenses),
		getDailySales: query.NewGetDailySalesHandler(orders),
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

func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/analytics", metricsMiddleware("/api/analytics", h.GetAnalytics)).Methods("GET")
	router.HandleFunc("/api/profit-loss", metricsMiddleware("/api/profit-loss", h.GetProfitLoss)).Methods("GET")
	router.HandleFunc("/api/sales", metricsMiddleware("/api/sales", h.GetDailySales)).Methods("GET")
}

// GetAnalytics handles GET /api/analytics
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	report, err := h.getAnalytics.Handle(query.GetAnalyticsQuery{
		Period: q.Get("period"),
		Date:   q.Get("date"),
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to build analytics report")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to build analytics report"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: report})
}

// GetProfitLoss handles GET /api/profit-loss
func (h *AnalyticsHandler) GetProfitLoss(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	report, err := h.getProfitLoss.Handle(query.GetProfitLossQuery{
		Period:    q.Get("period"),
		Date:      q.Get("date"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to build profit-loss report")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to build profit-loss report"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: report})
}

// GetDailySales handles GET /api/sales
func (h *AnalyticsHandler) GetDailySales(w http.ResponseWriter, r *http.Request) {
	summary, err := h.getDailySales.Handle(query.GetDailySalesQuery{
		Date: r.URL.Query().Get("date"),
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to build sales summary")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to build sales summary"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: summary})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
