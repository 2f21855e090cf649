package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/common/events"
	"github.com/cinemax-hub/service-checkout/internal/common/kafka"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPPublisher publishes the same CloudEvents to a RabbitMQ topic exchange.
// The Kafka topic becomes the exchange name and the event type the routing key.
type AMQPPublisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       *amqp.Channel
	declared map[string]bool
	logger   *zap.Logger
}

// NewAMQPPublisher dials url and opens a channel.
func NewAMQPPublisher(url string, logger *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	return &AMQPPublisher{
		conn:     conn,
		ch:       ch,
		declared: make(map[string]bool),
		logger:   logger,
	}, nil
}

// Publish sends a persistent message. Channels are not goroutine safe, hence the lock.
func (p *AMQPPublisher) Publish(ctx context.Context, topic, eventType, key string, data interface{}) error {
	ce, err := kafka.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		return fmt.Errorf("failed to create cloud event: %w", err)
	}
	body, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("failed to marshal cloud event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared[topic] {
		if err := p.ch.ExchangeDeclare(topic, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			return fmt.Errorf("rabbitmq exchange declare: %w", err)
		}
		p.declared[topic] = true
	}

	err = p.ch.PublishWithContext(ctx, topic, eventType, false, false, amqp.Publishing{
		ContentType:   "application/cloudevents+json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     ce.ID,
		CorrelationId: key,
		Type:          eventType,
		Timestamp:     time.Now().UTC(),
		Body:          body,
	})
	if err != nil {
		p.logger.Error("failed to publish event",
			zap.String("exchange", topic),
			zap.String("type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Close closes channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		p.logger.Warn("rabbitmq channel close failed", zap.Error(err))
	}
	return p.conn.Close()
}
