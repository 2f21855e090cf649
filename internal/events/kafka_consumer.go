package events

import (
	"context"

	"github.com/cinemax-hub/service-checkout/internal/common/events"
	"github.com/cinemax-hub/service-checkout/internal/common/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CreditEventConsumer listens to booking events on Kafka and retries pending loyalty credits.
type CreditEventConsumer struct {
	consumer *kafka.Consumer
	handler  *creditPendingHandler
}

// NewCreditEventConsumer creates a new consumer for booking events.
func NewCreditEventConsumer(
	brokers []string,
	groupID string,
	credits CreditRetrier,
	logger *zap.Logger,
) *CreditEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicBookingEvents, logger)
	return &CreditEventConsumer{
		consumer: consumer,
		handler:  &creditPendingHandler{credits: credits, logger: logger},
	}
}

// Start begins consuming booking events. It blocks until the context is cancelled.
func (c *CreditEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

func (c *CreditEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	return c.handler.handle(ctx, msg.Value)
}

// Close closes the underlying Kafka consumer.
func (c *CreditEventConsumer) Close() error {
	return c.consumer.Close()
}
