package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BrokerKafka, cfg.EventConfig.Broker)
	assert.Equal(t, 30*time.Minute, cfg.CheckoutConfig.SessionTTL)
	assert.Equal(t, 3, cfg.CheckoutConfig.ProfileResolveRetries)
	assert.Equal(t, time.Second, cfg.CheckoutConfig.ProfileResolveInterval)
	assert.Equal(t, time.Minute, cfg.CheckoutConfig.ReconcileInterval)
	assert.Equal(t, 30*time.Second, cfg.CheckoutConfig.ReconcileMinAge)
	assert.Equal(t, int64(100), cfg.CheckoutConfig.SignupBonusPoints)
	assert.InDelta(t, 0.25, cfg.CheckoutConfig.SeatOccupancyRate, 1e-9)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("EVENT_BROKER", "RabbitMQ")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("SIGNUP_BONUS_POINTS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BrokerRabbitMQ, cfg.EventConfig.Broker)
	assert.Equal(t, 5*time.Minute, cfg.CheckoutConfig.SessionTTL)
	assert.Equal(t, int64(250), cfg.CheckoutConfig.SignupBonusPoints)
}

func TestLoad_RejectsUnknownBroker(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("EVENT_BROKER", "nats")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadOccupancy(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SEAT_OCCUPANCY_RATE", "1.5")

	_, err := Load()
	assert.Error(t, err)
}
