package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/souq/backend/internal/application/catalog"
	identityapp "github.com/souq/backend/internal/application/identity"
	orderapp "github.com/souq/backend/internal/application/order"
	"github.com/souq/backend/internal/infrastructure/ai"
	"github.com/souq/backend/internal/infrastructure/auth"
	"github.com/souq/backend/internal/infrastructure/cache"
	"github.com/souq/backend/internal/infrastructure/config"
	"github.com/souq/backend/internal/infrastructure/logger"
	"github.com/souq/backend/internal/infrastructure/payment"
	"github.com/souq/backend/internal/infrastructure/persistence"
	"github.com/souq/backend/internal/infrastructure/storage"
	"github.com/souq/backend/internal/interfaces/http/handler"
	"github.com/souq/backend/internal/interfaces/http/middleware"
	"github.com/souq/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Souq Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Idempotency store for webhook replay protection
	idempotencyStore := cache.NewIdempotencyStore(cfg.Redis, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	localPaymentRepo := persistence.NewGormLocalPaymentRepository(db.DB)
	reconStore := persistence.NewGormReconciliationStore(db.DB)

	// External services
	stripeGateway, err := payment.NewStripeGateway(cfg.Stripe, log)
	if err != nil {
		log.Fatal("Failed to initialize Stripe gateway", zap.Error(err))
	}
	webhookVerifier := payment.NewStripeWebhookVerifier(cfg.Stripe, log)

	descGen := ai.NewOpenAIDescriptionGenerator(cfg.OpenAI, log)

	objectStorage, err := storage.NewS3ObjectStorage(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	shopService := catalogapp.NewShopService(shopRepo, userRepo, log)
	productService := catalogapp.NewProductService(productRepo, shopRepo, descGen, objectStorage, log)
	orderService := orderapp.NewOrderService(orderRepo, log)

	commissionPolicy := orderapp.NewFixedCommissionPolicy(cfg.Commission.Rate)
	paymentService := orderapp.NewPaymentService(
		orderRepo, localPaymentRepo, reconStore,
		stripeGateway, idempotencyStore, commissionPolicy, log,
	)
	reconciliationService := orderapp.NewReconciliationService(
		orderRepo, localPaymentRepo, reconStore, commissionPolicy, log,
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report validation errors using JSON field names
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and logging can tag
	// their output with it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow))
	}

	// Register route groups
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewSystemHandler(db)).
		Register(handler.NewAuthHandler(authService, jwtService)).
		Register(handler.NewShopHandler(shopService, jwtService)).
		Register(handler.NewProductHandler(productService, jwtService)).
		Register(handler.NewOrderHandler(orderService, jwtService)).
		Register(handler.NewPaymentHandler(paymentService, webhookVerifier, jwtService, log)).
		Register(handler.NewAdminHandler(reconciliationService, jwtService)).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
