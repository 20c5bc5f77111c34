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

	"github.com/rasoilabs/pos-backend/internal/catalog/domain"
	"github.com/rasoilabs/pos-backend/internal/catalog/usecase/command"
	"github.com/rasoilabs/pos-backend/internal/catalog/usecase/query"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/logger"
	"github.com/rasoilabs/pos-backend/pkg/middleware"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_catalog_requests_total",
			Help: "Total number of requests to catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	totalProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pos_catalog_total_products",
			Help: "Total number of products in the catalog",
		},
	)
)

// CatalogHandler handles HTTP requests for categories and products
type CatalogHandler struct {
	createProduct  *command.CreateProductHandler
	updateProduct  *command.UpdateProductHandler
	deleteProduct  *command.DeleteProductHandler
	createCategory *command.CreateCategoryHandler

	listProducts   *query.ListProductsHandler
	listCategories *query.ListCategoriesHandler

	products domain.ProductRepository
	redis    *redis.Client
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	products domain.ProductRepository,
	categories domain.CategoryRepository,
	stock command.StockRecorder,
	redisClient *redis.Client,
) *CatalogHandler {
	return &CatalogHandler{
		createProduct:  command.NewCreateProductHandler(products, categories, stock),
		updateProduct:  command.NewUpdateProductHandler(products, categories),
		deleteProduct:  command.NewDeleteProductHandler(products),
		createCategory: command.NewCreateCategoryHandler(categories),
		listProducts:   query.NewListProductsHandler(products),
		listCategories: query.NewListCategoriesHandler(categories),
		products:       products,
		redis:          redisClient,
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

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/categories", metricsMiddleware("/api/categories", h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/categories", metricsMiddleware("/api/categories", h.CreateCategory)).Methods("POST")
	router.HandleFunc("/api/products", metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products", metricsMiddleware("/api/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}", metricsMiddleware("/api/products/{id}", h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/api/products/{id}", metricsMiddleware("/api/products/{id}", h.DeleteProduct)).Methods("DELETE")
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategories.Handle(query.ListCategoriesQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list categories"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: categories})
}

// CreateCategory handles POST /api/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		DisplayOrder int    `json:"display_order"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	category, err := h.createCategory.Handle(command.CreateCategoryCommand{
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to create category")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create category"})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Category created successfully", Data: category})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, _ := strconv.ParseUint(r.URL.Query().Get("categoryId"), 10, 32)
	enabledOnly := r.URL.Query().Get("enabledOnly") == "true"

	products, err := h.listProducts.Handle(query.ListProductsQuery{
		CategoryID:  uint(categoryID),
		EnabledOnly: enabledOnly,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name              string  `json:"name"`
		CategoryID        uint    `json:"category_id"`
		Price             *float64 `json:"price"`
		StockQuantity     int     `json:"stock_quantity"`
		LowStockThreshold int     `json:"low_stock_threshold"`
		CreatedBy         *uint   `json:"created_by"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Price == nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Missing required fields"})
		return
	}

	product, err := h.createProduct.Handle(command.CreateProductCommand{
		Name:              req.Name,
		CategoryID:        req.CategoryID,
		Price:             *req.Price,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		CreatedBy:         req.CreatedBy,
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create product"})
		return
	}

	h.invalidateProducts()
	h.updateProductsMetric()

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Product created successfully", Data: product})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Name              *string  `json:"name"`
		CategoryID        *uint    `json:"category_id"`
		Price             *float64 `json:"price"`
		Enabled           *bool    `json:"enabled"`
		LowStockThreshold *int     `json:"low_stock_threshold"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.updateProduct.Handle(command.UpdateProductCommand{
		ID:                uint(id),
		Name:              req.Name,
		CategoryID:        req.CategoryID,
		Price:             req.Price,
		Enabled:           req.Enabled,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to update product")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update product"})
		return
	}

	h.invalidateProducts()

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product updated successfully", Data: product})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	if err := h.deleteProduct.Handle(command.DeleteProductCommand{ID: uint(id)}); err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to delete product")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to delete product"})
		return
	}

	h.invalidateProducts()
	h.updateProductsMetric()

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
}

func (h *CatalogHandler) invalidateProducts() {
	if err := middleware.InvalidateCache(h.redis, "/api/products"); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to invalidate product cache")
	}
}

// updateProductsMetric updates the total products gauge
func (h *CatalogHandler) updateProductsMetric() {
	count, err := h.products.Count()
	if err == nil {
		totalProducts.Set(float64(count))
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
