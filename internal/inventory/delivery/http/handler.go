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

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
	"github.com/rasoilabs/pos-backend/internal/inventory/usecase/command"
	"github.com/rasoilabs/pos-backend/internal/inventory/usecase/query"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/logger"
	"github.com/rasoilabs/pos-backend/pkg/middleware"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_inventory_requests_total",
			Help: "Total number of requests to inventory endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_inventory_request_duration_seconds",
			Help:    "Duration of inventory requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	stockChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_inventory_stock_changes_total",
			Help: "Total number of stock mutations by change type",
		},
		[]string{"change_type"},
	)
)

// InventoryHandler handles HTTP requests for stock tracking
type InventoryHandler struct {
	restock     *command.RestockHandler
	adjust      *command.AdjustStockHandler
	acknowledge *command.AcknowledgeNotificationHandler

	getReport         *query.GetReportHandler
	listHistory       *query.ListHistoryHandler
	listNotifications *query.ListNotificationsHandler

	redis *redis.Client
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	products catalogdomain.ProductRepository,
	inventory domain.InventoryRepository,
	redisClient *redis.Client,
) *InventoryHandler {
	return &InventoryHandler{
		restock:           command.NewRestockHandler(inventory),
		adjust:            command.NewAdjustStockHandler(inventory),
		acknowledge:       command.NewAcknowledgeNotificationHandler(inventory),
		getReport:         query.NewGetReportHandler(products, inventory),
		listHistory:       query.NewListHistoryHandler(inventory),
		listNotifications: query.NewListNotificationsHandler(inventory),
		redis:             redisClient,
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

func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/inventory", metricsMiddleware("/api/inventory", h.GetReport)).Methods("GET")
	router.HandleFunc("/api/inventory", metricsMiddleware("/api/inventory", h.Restock)).Methods("POST")
	router.HandleFunc("/api/inventory/adjust", metricsMiddleware("/api/inventory/adjust", h.Adjust)).Methods("POST")
	router.HandleFunc("/api/inventory/history", metricsMiddleware("/api/inventory/history", h.ListHistory)).Methods("GET")
	router.HandleFunc("/api/inventory/notifications", metricsMiddleware("/api/inventory/notifications", h.ListNotifications)).Methods("GET")
	router.HandleFunc("/api/inventory/notifications", metricsMiddleware("/api/inventory/notifications", h.Acknowledge)).Methods("POST")
}

// GetReport handles GET /api/inventory
func (h *InventoryHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.getReport.Handle(query.GetReportQuery{Type: r.URL.Query().Get("type")})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to build stock report")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to build stock report"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: report})
}

// Restock handles POST /api/inventory
func (h *InventoryHandler) Restock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID uint   `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Notes     string `json:"notes"`
		CreatedBy *uint  `json:"created_by"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.restock.Handle(command.RestockCommand{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to restock product")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to restock product"})
		return
	}

	stockChanges.WithLabelValues(domain.ChangePurchase).Inc()
	h.invalidateStockCaches()
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock updated successfully", Data: result})
}

// Adjust handles POST /api/inventory/adjust
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID uint   `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Notes     string `json:"notes"`
		CreatedBy *uint  `json:"created_by"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.adjust.Handle(command.AdjustStockCommand{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to adjust stock")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to adjust stock"})
		return
	}

	stockChanges.WithLabelValues(domain.ChangeAdjustment).Inc()
	h.invalidateStockCaches()
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock adjusted successfully", Data: result})
}

// ListHistory handles GET /api/inventory/history
func (h *InventoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	productID, _ := strconv.ParseUint(r.URL.Query().Get("productId"), 10, 32)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.listHistory.Handle(query.ListHistoryQuery{
		ProductID: uint(productID),
		Limit:     limit,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list inventory history")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list inventory history"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: history})
}

// ListNotifications handles GET /api/inventory/notifications
func (h *InventoryHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	unacknowledgedOnly := r.URL.Query().Get("unacknowledged") == "true"

	notifications, err := h.listNotifications.Handle(query.ListNotificationsQuery{
		UnacknowledgedOnly: unacknowledgedOnly,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list notifications")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list notifications"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: notifications})
}

// Acknowledge handles POST /api/inventory/notifications
func (h *InventoryHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NotificationID uint  `json:"notification_id"`
		AcknowledgedBy *uint `json:"acknowledged_by"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	notification, err := h.acknowledge.Handle(command.AcknowledgeNotificationCommand{
		NotificationID: req.NotificationID,
		AcknowledgedBy: req.AcknowledgedBy,
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to acknowledge notification")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to acknowledge notification"})
		return
	}

	h.invalidateStockCaches()
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Notification acknowledged", Data: notification})
}

// invalidateStockCaches drops cached stock reports and product listings
// after a stock mutation. The /api/inventory prefix also covers the
// history and notification listings.
func (h *InventoryHandler) invalidateStockCaches() {
	for _, path := range []string{"/api/inventory", "/api/products"} {
		if err := middleware.InvalidateCache(h.redis, path); err != nil {
			logger.Logger.Warn().Err(err).Str("path", path).Msg("Failed to invalidate cache")
		}
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
