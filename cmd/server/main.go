package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/adapter"
	"github.com/cinemax-hub/service-checkout/internal/application"
	"github.com/cinemax-hub/service-checkout/internal/common/auth"
	"github.com/cinemax-hub/service-checkout/internal/common/database"
	commonEvents "github.com/cinemax-hub/service-checkout/internal/common/events"
	"github.com/cinemax-hub/service-checkout/internal/common/health"
	"github.com/cinemax-hub/service-checkout/internal/common/kafka"
	"github.com/cinemax-hub/service-checkout/internal/common/logger"
	"github.com/cinemax-hub/service-checkout/internal/common/middleware"
	"github.com/cinemax-hub/service-checkout/internal/config"
	checkoutEvents "github.com/cinemax-hub/service-checkout/internal/events"
	"github.com/cinemax-hub/service-checkout/internal/handler"
	"github.com/cinemax-hub/service-checkout/internal/repository"
	"github.com/cinemax-hub/service-checkout/internal/saga"
	"github.com/cinemax-hub/service-checkout/internal/scheduler"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ticketQRSize = 256

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, commonEvents.Source)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting service-checkout",
		zap.String("port", cfg.Port),
		zap.String("event_broker", cfg.EventConfig.Broker),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&repository.ProfileModel{},
		&repository.CredentialModel{},
		&repository.PurchaseModel{},
		&repository.PromoModel{},
		&repository.MovieModel{},
		&repository.ShowtimeModel{},
		&repository.ConcessionModel{},
		&repository.ReviewModel{},
	); err != nil {
		zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
	}
	zapLogger.Info("database migration completed")

	// Connect to Redis for checkout sessions
	rdb, err := database.ConnectRedis(cfg.RedisConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTTL)

	// Initialize event publisher
	publisher, err := newPublisher(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize event publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Initialize repositories
	purchaseRepo := repository.NewPurchaseRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	promoRepo := repository.NewGormPromoRepository(db)
	catalogRepo := repository.NewGormCatalogRepository(db)
	sessionStore := repository.NewRedisSessionStore(rdb, cfg.CheckoutConfig.SessionTTL)

	// Initialize saga service
	sagaService := saga.NewBookingSagaService(purchaseRepo, purchaseRepo, publisher, zapLogger)

	// Initialize application services
	catalogService := application.NewCatalogService(catalogRepo, profileRepo, zapLogger)
	promoService := application.NewPromoService(promoRepo, zapLogger)
	creditService := application.NewCreditService(purchaseRepo, purchaseRepo, publisher, zapLogger)
	bookingService := application.NewBookingService(
		purchaseRepo,
		profileRepo,
		adapter.NewQRTicketRenderer(ticketQRSize),
		publisher,
		zapLogger,
	)
	checkoutService := application.NewCheckoutService(
		sessionStore,
		catalogRepo,
		promoService,
		profileRepo,
		sagaService,
		cfg.CheckoutConfig.SeatOccupancyRate,
		nil,
		zapLogger,
	)

	identityProvider := adapter.NewLocalIdentityProvider(credentialRepo, cfg.CheckoutConfig.SignupBonusPoints, zapLogger)
	resolver := application.NewProfileResolver(
		profileRepo,
		cfg.CheckoutConfig.ProfileResolveRetries,
		cfg.CheckoutConfig.ProfileResolveInterval,
		zapLogger,
	)
	identityService := application.NewIdentityService(identityProvider, resolver, jwtManager, publisher, zapLogger)
	defer identityService.Close()

	// Seed reference data on a fresh database
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogService.SeedIfEmpty(seedCtx); err != nil {
		zapLogger.Fatal("failed to seed catalogs", zap.Error(err))
	}
	if err := promoService.SeedIfEmpty(seedCtx); err != nil {
		zapLogger.Fatal("failed to seed promo codes", zap.Error(err))
	}
	seedCancel()

	// Start the pending-credit consumer on the configured broker
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	creditConsumer, err := newCreditConsumer(cfg, creditService, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to create credit event consumer", zap.Error(err))
	}
	defer creditConsumer.Close()

	go func() {
		zapLogger.Info("starting credit event consumer", zap.String("broker", cfg.EventConfig.Broker))
		if err := creditConsumer.Start(consumerCtx); err != nil {
			if consumerCtx.Err() == nil {
				zapLogger.Error("credit event consumer failed", zap.Error(err))
			}
		}
	}()

	// Start the pending-credit sweep
	reconciler, err := scheduler.NewCreditReconciler(
		creditService,
		cfg.CheckoutConfig.ReconcileInterval,
		cfg.CheckoutConfig.ReconcileMinAge,
		zapLogger,
	)
	if err != nil {
		zapLogger.Fatal("failed to create credit reconciler", zap.Error(err))
	}
	reconciler.Start()

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, rdb, commonEvents.Source)
	healthHandler.RegisterRoutes(router)

	// Register API routes
	apiV1 := router.Group("/api/v1")
	handler.NewAuthHandler(identityService).RegisterRoutes(apiV1, jwtManager)
	handler.NewCatalogHandler(catalogService).RegisterRoutes(apiV1, jwtManager)
	handler.NewPromoHandler(promoService).RegisterRoutes(apiV1)
	handler.NewCheckoutHandler(checkoutService).RegisterRoutes(apiV1, jwtManager)
	handler.NewBookingHandler(bookingService).RegisterRoutes(apiV1, jwtManager)
	handler.NewAdminHandler(bookingService, promoService, creditService, cfg.CheckoutConfig.ReconcileMinAge).
		RegisterRoutes(apiV1, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down service-checkout...")

	consumerCancel()
	if err := reconciler.Stop(); err != nil {
		zapLogger.Error("credit reconciler shutdown failed", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("service-checkout stopped")
}

// newPublisher returns the event publisher selected by EVENT_BROKER.
type creditConsumer interface {
	Start(ctx context.Context) error
	Close() error
}

// newCreditConsumer listens for booking.credit_pending on the same broker events are published to.
func newCreditConsumer(cfg *config.ServiceConfig, credits checkoutEvents.CreditRetrier, zapLogger *zap.Logger) (creditConsumer, error) {
	if cfg.EventConfig.Broker == config.BrokerRabbitMQ {
		return checkoutEvents.NewAMQPCreditConsumer(cfg.EventConfig.RabbitMQURL, credits, zapLogger)
	}
	groupID := cfg.KafkaConfig.GroupPrefix + "checkout-credits"
	return checkoutEvents.NewCreditEventConsumer(cfg.KafkaConfig.Brokers, groupID, credits, zapLogger), nil
}

func newPublisher(cfg *config.ServiceConfig, zapLogger *zap.Logger) (commonEvents.Publisher, error) {
	if cfg.EventConfig.Broker == config.BrokerRabbitMQ {
		return checkoutEvents.NewAMQPPublisher(cfg.EventConfig.RabbitMQURL, zapLogger)
	}
	producer := kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
	return checkoutEvents.NewKafkaPublisher(producer), nil
}
