package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	analyticsDelivery "github.com/rasoilabs/pos-backend/internal/analytics/delivery/http"
	catalogDelivery "github.com/rasoilabs/pos-backend/internal/catalog/delivery/http"
	catalogrepo "github.com/rasoilabs/pos-backend/internal/catalog/repository"
	customerDelivery "github.com/rasoilabs/pos-backend/internal/customer/delivery/http"
	customerrepo "github.com/rasoilabs/pos-backend/internal/customer/repository"
	expenseDelivery "github.com/rasoilabs/pos-backend/internal/expense/delivery/http"
	expenserepo "github.com/rasoilabs/pos-backend/internal/expense/repository"
	inventoryDelivery "github.com/rasoilabs/pos-backend/internal/inventory/delivery/http"
	inventoryrepo "github.com/rasoilabs/pos-backend/internal/inventory/repository"
	"github.com/rasoilabs/pos-backend/internal/notification"
	notificationDelivery "github.com/rasoilabs/pos-backend/internal/notification/delivery/http"
	orderDelivery "github.com/rasoilabs/pos-backend/internal/order/delivery/http"
	orderrepo "github.com/rasoilabs/pos-backend/internal/order/repository"
	"github.com/rasoilabs/pos-backend/internal/seed"
	seedDelivery "github.com/rasoilabs/pos-backend/internal/seed/delivery/http"
	userDelivery "github.com/rasoilabs/pos-backend/internal/user/delivery/http"
	userrepo "github.com/rasoilabs/pos-backend/internal/user/repository"
	"github.com/rasoilabs/pos-backend/kafka"
	"github.com/rasoilabs/pos-backend/pkg/database"
	"github.com/rasoilabs/pos-backend/pkg/logger"
	"github.com/rasoilabs/pos-backend/pkg/middleware"
	"github.com/rasoilabs/pos-backend/pkg/tracing"
)

func main() {
	isDev := getEnv("ENV", "development") == "development"
	logger.Init("pos-backend", isDev)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	tp, err := tracing.InitTracer("pos-backend")
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	}

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "posdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Repositories
	userRepo := userrepo.NewGormUserRepository(db)
	categoryRepo := catalogrepo.NewGormCategoryRepository(db)
	productRepo := catalogrepo.NewGormProductRepository(db)
	inventoryRepo := inventoryrepo.NewGormInventoryRepository(db)
	orderRepo := orderrepo.NewGormOrderRepository(db)
	customerRepo := customerrepo.NewGormCustomerRepository(db)
	expenseRepo := expenserepo.NewGormExpenseRepository(db)

	for name, migrate := range map[string]func() error{
		"users":     userRepo.AutoMigrate,
		"catalog":   categoryRepo.AutoMigrate,
		"products":  productRepo.AutoMigrate,
		"inventory": inventoryRepo.AutoMigrate,
		"orders":    orderRepo.AutoMigrate,
		"customers": customerRepo.AutoMigrate,
		"expenses":  expenseRepo.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Str("schema", name).Msg("Failed to run migrations")
		}
	}

	// Optional Redis for response caching and login rate limiting
	var redisClient *redis.Client
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Redis unavailable, caching disabled")
			redisClient = nil
		}
	}

	// Optional Kafka fan-out for multi-instance deployments
	hub := notification.NewHub()
	var producer *kafka.Publisher
	var consumer *kafka.Consumer
	if getEnv("KAFKA_ENABLED", "false") == "true" {
		brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")

		producer, err = kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka publisher unavailable")
		}

		consumer, err = kafka.NewConsumer(brokers, getEnv("KAFKA_GROUP_ID", "pos-backend"), []string{kafka.TopicOrderCompleted})
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka consumer unavailable")
		} else {
			consumer.RegisterHandler(kafka.EventTypeOrderCompleted, func(ctx context.Context, event kafka.OrderCompletedEvent) error {
				hub.Publish(notification.EventOrderCompleted, event)
				return nil
			})
			if err := consumer.Start(context.Background()); err != nil {
				logger.Logger.Warn().Err(err).Msg("Kafka consumer failed to start")
			}
		}
	}

	publisher := notification.NewOrderPublisher(hub, producer)

	// Handlers
	userHandler := userDelivery.NewUserHandler(userRepo)
	if redisClient != nil {
		userHandler.SetRateLimiter(middleware.NewRateLimiter(redisClient, 10, time.Minute))
	}
	catalogHandler := catalogDelivery.NewCatalogHandler(productRepo, categoryRepo, inventoryRepo, redisClient)
	inventoryHandler := inventoryDelivery.NewInventoryHandler(productRepo, inventoryRepo, redisClient)
	orderHandler := orderDelivery.NewOrderHandler(orderRepo, productRepo, customerRepo, publisher, redisClient)
	customerHandler := customerDelivery.NewCustomerHandler(customerRepo, orderRepo)
	expenseHandler := expenseDelivery.NewExpenseHandler(expenseRepo, redisClient)
	analyticsHandler := analyticsDelivery.NewAnalyticsHandler(orderRepo, expenseRepo)
	notificationHandler := notificationDelivery.NewNotificationHandler(hub)
	seedHandler := seedDelivery.NewSeedHandler(seed.NewSeeder(userRepo, categoryRepo, productRepo))

	router := mux.NewRouter()
	for _, h := range []interface{ RegisterRoutes(*mux.Router) }{
		userHandler,
		catalogHandler,
		inventoryHandler,
		orderHandler,
		customerHandler,
		expenseHandler,
		analyticsHandler,
		notificationHandler,
		seedHandler,
	} {
		h.RegisterRoutes(router)
	}

	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	// Middleware chain: logging -> tracing -> cache -> CORS
	cacheConfig := middleware.DefaultCacheConfig()
	cacheConfig.Paths = []string{
		"/api/products",
		"/api/categories",
		"/api/analytics",
		"/api/sales",
		"/api/profit-loss",
		"/api/inventory",
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	var handler http.Handler = router
	handler = middleware.Cache(redisClient, cacheConfig)(handler)
	handler = middleware.Tracing("pos-backend", handler)
	handler = middleware.Logging(handler)
	handler = c.Handler(handler)

	port := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:        ":" + port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("port", port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
	if producer != nil {
		producer.Close()
	}
	if consumer != nil {
		consumer.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if tp != nil {
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Warn().Err(err).Msg("Tracer shutdown failed")
		}
	}

	logger.Logger.Info().Msg("Server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
