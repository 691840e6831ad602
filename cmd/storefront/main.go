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

	"github.com/glowmart/storefront/internal/cart"
	cartHTTP "github.com/glowmart/storefront/internal/cart/delivery/http"
	cartDomain "github.com/glowmart/storefront/internal/cart/domain"
	cartRepo "github.com/glowmart/storefront/internal/cart/repository"
	"github.com/glowmart/storefront/internal/cart/usecase/command"
	catalogHTTP "github.com/glowmart/storefront/internal/catalog/delivery/http"
	"github.com/glowmart/storefront/internal/catalog/source"
	"github.com/glowmart/storefront/kafka"
	"github.com/glowmart/storefront/pkg/logger"
	"github.com/glowmart/storefront/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting storefront service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Cart persistence: Redis when reachable, in-memory otherwise. Carts
	// still work for the lifetime of the process without Redis.
	var repo cartDomain.CartRepository
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Msg("Redis unreachable, carts will not survive restarts")
		repo = cartRepo.NewMemoryCartRepository()
	} else {
		logger.Logger.Info().Str("addr", redisClient.Options().Addr).Msg("Connected to Redis")
		repo = cartRepo.NewRedisCartRepository(redisClient, cartRepo.DefaultCartTTL)
	}
	cancel()

	store := cart.NewStore(repo)

	// Checkout event publisher when brokers are configured
	var publisher command.EventPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		kafkaPublisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, checkouts will not emit events")
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}
	} else {
		logger.Logger.Info().Msg("KAFKA_BROKERS not set, checkouts will not emit events")
	}

	// Product source client for the catalog
	sourceURL := getEnv("PRODUCT_SOURCE_URL", "http://localhost:8081")
	sourceClient := source.NewClient(sourceURL, 10*time.Second)

	cartHandler := cartHTTP.NewCartHandler(store, publisher)
	catalogHandler := catalogHTTP.NewCatalogHandler(sourceClient)

	logger.Logger.Info().
		Str("product_source", sourceURL).
		Msg("Storefront handlers initialized")

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8085")
	startHTTPServer(cartHandler, catalogHandler, redisClient, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(cartHandler *cartHTTP.CartHandler, catalogHandler *catalogHTTP.CatalogHandler, redisClient *redis.Client, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register routes
	cartHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true,"message":"Storefront service is healthy"}`))
	}).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
