//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/adapter"
	"github.com/cinemax-hub/service-checkout/internal/application"
	"github.com/cinemax-hub/service-checkout/internal/common/auth"
	"github.com/cinemax-hub/service-checkout/internal/common/kafka"
	checkoutEvents "github.com/cinemax-hub/service-checkout/internal/events"
	"github.com/cinemax-hub/service-checkout/internal/repository"
	"github.com/cinemax-hub/service-checkout/internal/saga"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	Redis        *redis.Client
	KafkaBrokers []string
	Cleanup      func()
}

// checkoutStack holds wired-up checkout service components.
type checkoutStack struct {
	Identity        *application.IdentityService
	Catalog         *application.CatalogService
	Checkout        *application.CheckoutService
	Bookings        *application.BookingService
	Credits         *application.CreditService
	Purchases       *repository.PurchaseRepositoryImpl
	Consumer        *checkoutEvents.CreditEventConsumer
	CleanupProducer func()
}

// setupContainers starts PostgreSQL, Redis and Kafka testcontainers.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_checkout",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_checkout sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.ProfileModel{},
		&repository.CredentialModel{},
		&repository.PurchaseModel{},
		&repository.PromoModel{},
		&repository.MovieModel{},
		&repository.ShowtimeModel{},
		&repository.ConcessionModel{},
		&repository.ReviewModel{},
	))

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start Redis container")

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: net.JoinHostPort(redisHost, redisPort.Port())})
	require.NoError(t, rdb.Ping(ctx).Err())

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, "cinema.booking.events", "cinema.user.events")

	cleanup := func() {
		_ = rdb.Close()
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		Redis:        rdb,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupCheckoutStack wires up the full checkout service stack and seeds the catalogs.
func setupCheckoutStack(t *testing.T, infra *testInfra) *checkoutStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	purchases := repository.NewPurchaseRepository(infra.DB)
	profiles := repository.NewProfileRepository(infra.DB)
	catalogRepo := repository.NewGormCatalogRepository(infra.DB)
	sessions := repository.NewRedisSessionStore(infra.Redis, 10*time.Minute)

	producer := kafka.NewProducer(infra.KafkaBrokers, logger)
	publisher := checkoutEvents.NewKafkaPublisher(producer)

	catalogSvc := application.NewCatalogService(catalogRepo, profiles, logger)
	require.NoError(t, catalogSvc.SeedIfEmpty(ctx))
	promoSvc := application.NewPromoService(repository.NewGormPromoRepository(infra.DB), logger)
	require.NoError(t, promoSvc.SeedIfEmpty(ctx))

	sagaSvc := saga.NewBookingSagaService(purchases, purchases, publisher, logger)
	creditSvc := application.NewCreditService(purchases, purchases, publisher, logger)

	// Zero occupancy keeps every seat selectable.
	checkoutSvc := application.NewCheckoutService(sessions, catalogRepo, promoSvc, profiles, sagaSvc, 0, nil, logger)
	bookingSvc := application.NewBookingService(purchases, profiles, adapter.NewQRTicketRenderer(128), publisher, logger)

	provider := adapter.NewLocalIdentityProvider(repository.NewCredentialRepository(infra.DB), 100, logger)
	resolver := application.NewProfileResolver(profiles, 3, 200*time.Millisecond, logger)
	identitySvc := application.NewIdentityService(provider, resolver, auth.NewJWTManager("it-secret", time.Minute), publisher, logger)
	t.Cleanup(identitySvc.Close)

	groupID := fmt.Sprintf("test-checkout-%s", uuid.New().String()[:8])
	consumer := checkoutEvents.NewCreditEventConsumer(infra.KafkaBrokers, groupID, creditSvc, logger)

	return &checkoutStack{
		Identity:        identitySvc,
		Catalog:         catalogSvc,
		Checkout:        checkoutSvc,
		Bookings:        bookingSvc,
		Credits:         creditSvc,
		Purchases:       purchases,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// signUp creates a user through the identity service and returns its ID.
func signUp(t *testing.T, stack *checkoutStack, email string) uuid.UUID {
	t.Helper()
	result, err := stack.Identity.SignUp(context.Background(), application.SignUpRequest{
		Name:            "Ana Souza",
		Email:           email,
		Password:        "secret123",
		ConfirmPassword: "secret123",
		AcceptTerms:     true,
	})
	require.NoError(t, err, "signup failed")
	return result.Profile.ID
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForCreditStatus polls the purchases table until credit_status matches.
func waitForCreditStatus(t *testing.T, db *gorm.DB, bookingID uuid.UUID, expected string, timeout time.Duration) repository.PurchaseModel {
	t.Helper()
	var result repository.PurchaseModel
	require.Eventually(t, func() bool {
		var model repository.PurchaseModel
		if err := db.Where("id = ?", bookingID).First(&model).Error; err != nil {
			return false
		}
		if model.CreditStatus == expected {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "purchase did not reach credit status %s", expected)
	return result
}

// loyaltyPoints reads a profile's stored balance.
func loyaltyPoints(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var model repository.ProfileModel
	require.NoError(t, db.Where("id = ?", userID).First(&model).Error)
	return model.LoyaltyPoints
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
