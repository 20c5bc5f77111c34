package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	customerdomain "github.com/rasoilabs/pos-backend/internal/customer/domain"
	"github.com/rasoilabs/pos-backend/internal/order/domain"
	"github.com/rasoilabs/pos-backend/internal/order/usecase/command"
	"github.com/rasoilabs/pos-backend/internal/order/usecase/query"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/logger"
	"github.com/rasoilabs/pos-backend/pkg/middleware"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_order_requests_total",
			Help: "Total number of requests to order endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_order_request_duration_seconds",
			Help:    "Duration of order requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	ordersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_orders_created_total",
			Help: "Total number of completed orders by payment mode",
		},
		[]string{"payment_mode", "order_type"},
	)
	revenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_order_revenue_total",
			Help: "Cumulative order revenue in rupees",
		},
	)
)

// OrderHandler handles HTTP requests for checkout and order history
type OrderHandler struct {
	createOrder *command.CreateOrderHandler
	listOrders  *query.ListOrdersHandler
	getOrder    *query.GetOrderHandler

	redis *redis.Client
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	orders domain.OrderRepository,
	products catalogdomain.ProductRepository,
	customers customerdomain.CustomerRepository,
	publisher command.EventPublisher,
	redisClient *redis.Client,
) *OrderHandler {
	return &OrderHandler{
		createOrder: command.NewCreateOrderHandler(orders, products, customers, publisher),
		listOrders:  query.NewListOrdersHandler(orders),
		getOrder:    query.NewGetOrderHandler(orders, customers),
		redis:       redisClient,
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

func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", metricsMiddleware("/api/orders", h.ListOrders)).Methods("GET")
	router.HandleFunc("/api/orders", metricsMiddleware("/api/orders", h.CreateOrder)).Methods("POST")
	router.HandleFunc("/api/orders/{id}", metricsMiddleware("/api/orders/{id}", h.GetOrder)).Methods("GET")
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderType   string `json:"order_type"`
		PaymentMode string `json:"payment_mode"`
		Items       []struct {
			ProductID uint `json:"product_id"`
			Quantity  int  `json:"quantity"`
		} `json:"items"`
		Notes       string  `json:"notes"`
		CustomerID  *uint   `json:"customer_id"`
		AdvanceUsed float64 `json:"advance_used"`
		CreatedBy   uint    `json:"created_by"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	items := make([]command.OrderItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = command.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	order, err := h.createOrder.Handle(command.CreateOrderCommand{
		OrderType:   req.OrderType,
		PaymentMode: req.PaymentMode,
		Items:       items,
		Notes:       req.Notes,
		CustomerID:  req.CustomerID,
		AdvanceUsed: req.AdvanceUsed,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientAdvance) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Insufficient advance balance"})
			return
		}
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to create order")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create order"})
		return
	}

	ordersCreated.WithLabelValues(order.PaymentMode, order.OrderType).Inc()
	revenueTotal.Add(order.TotalAmount)
	h.invalidateReportCaches()

	logger.Info(r.Context()).
		Str("bill_number", order.BillNumber).
		Float64("total_amount", order.TotalAmount).
		Msg("Order completed")

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Order created successfully", Data: order})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.OrderFilter{
		Date:        q.Get("date"),
		From:        q.Get("from"),
		To:          q.Get("to"),
		OrderType:   q.Get("orderType"),
		PaymentMode: q.Get("paymentMode"),
		Status:      q.Get("status"),
		BillNumber:  q.Get("billNumber"),
	}
	if v, err := strconv.ParseFloat(q.Get("minAmount"), 64); err == nil {
		filter.MinAmount = &v
	}
	if v, err := strconv.ParseFloat(q.Get("maxAmount"), 64); err == nil {
		filter.MaxAmount = &v
	}
	if v, err := strconv.ParseUint(q.Get("customerId"), 10, 32); err == nil {
		filter.CustomerID = uint(v)
	}

	orders, err := h.listOrders.Handle(query.ListOrdersQuery{Filter: filter})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list orders"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid order ID"})
		return
	}

	detail, err := h.getOrder.Handle(query.GetOrderQuery{ID: uint(id)})
	if err != nil {
		if errors.Is(err, query.ErrOrderNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Order not found"})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to fetch order")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch order"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: detail})
}

// invalidateReportCaches drops cached listings that a new order makes stale
func (h *OrderHandler) invalidateReportCaches() {
	for _, path := range []string{"/api/orders", "/api/products", "/api/inventory", "/api/analytics", "/api/sales", "/api/profit-loss"} {
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
