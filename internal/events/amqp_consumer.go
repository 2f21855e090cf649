package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinemax-hub/service-checkout/internal/common/events"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// CreditQueue is the durable queue bound to booking.credit_pending.
const CreditQueue = "checkout.credit-pending"

// AMQPCreditConsumer retries pending loyalty credits published on RabbitMQ.
type AMQPCreditConsumer struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	handler *creditPendingHandler
	logger  *zap.Logger
}

// NewAMQPCreditConsumer dials url, declares the booking exchange and binds CreditQueue to it.
func NewAMQPCreditConsumer(url string, credits CreditRetrier, logger *zap.Logger) (*AMQPCreditConsumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	setup := func() error {
		if err := ch.ExchangeDeclare(events.TopicBookingEvents, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			return fmt.Errorf("rabbitmq exchange declare: %w", err)
		}
		if _, err := ch.QueueDeclare(CreditQueue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("rabbitmq queue declare: %w", err)
		}
		if err := ch.QueueBind(CreditQueue, events.BookingCreditPending, events.TopicBookingEvents, false, nil); err != nil {
			return fmt.Errorf("rabbitmq queue bind: %w", err)
		}
		return ch.Qos(10, 0, false)
	}
	if err := setup(); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPCreditConsumer{
		conn:    conn,
		ch:      ch,
		handler: &creditPendingHandler{credits: credits, logger: logger},
		logger:  logger,
	}, nil
}

// Start consumes CreditQueue until ctx is cancelled or the channel closes.
func (c *AMQPCreditConsumer) Start(ctx context.Context) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, CreditQueue, "service-checkout", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			c.process(ctx, d)
		}
	}
}

// process acks handled deliveries and drops undecodable ones.
func (c *AMQPCreditConsumer) process(ctx context.Context, d amqp.Delivery) {
	if err := c.handler.handle(ctx, d.Body); err != nil {
		if nackErr := d.Nack(false, false); nackErr != nil {
			c.logger.Warn("rabbitmq nack failed", zap.Error(nackErr))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		c.logger.Warn("rabbitmq ack failed", zap.Error(err))
	}
}

// Close closes channel and connection.
func (c *AMQPCreditConsumer) Close() error {
	if err := c.ch.Close(); err != nil {
		c.logger.Warn("rabbitmq channel close failed", zap.Error(err))
	}
	return c.conn.Close()
}
