package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicNotificationCreated carries one models.Notification per message, JSON
// encoded. In-process subscribers drive the per-user SSE streams; the Kafka
// mirror (when configured) makes the same events available to other services.
const TopicNotificationCreated = "notifications.created"

// EventPublisher is the write side of the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// Bus is an in-process watermill pub/sub with an optional Kafka mirror.
type Bus struct {
	channel *gochannel.GoChannel
	kafka   message.Publisher
	logger  *slog.Logger
}

// NewBus creates the event bus. kafkaBrokers may be empty; when set, every
// published event is also mirrored to Kafka.
func NewBus(kafkaBrokers []string, logger *slog.Logger) (*Bus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	bus := &Bus{
		channel: gochannel.NewGoChannel(gochannel.Config{}, wmLogger),
		logger:  logger,
	}

	if len(kafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:   kafkaBrokers,
			Marshaler: kafka.DefaultMarshaler{},
		}, wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
		}
		bus.kafka = publisher
	}

	return bus, nil
}

// Publish encodes payload as JSON and publishes it on the in-process channel
// and, when configured, the Kafka mirror. A mirror failure is logged, not
// returned: local delivery already succeeded.
func (b *Bus) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	if err := b.channel.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	if b.kafka != nil {
		mirror := message.NewMessage(msg.UUID, data)
		if err := b.kafka.Publish(topic, mirror); err != nil {
			b.logger.Warn("Failed to mirror event to kafka", "topic", topic, "error", err)
		}
	}

	return nil
}

// Subscribe returns a channel of messages for a topic. The subscription is
// torn down when ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.channel.Subscribe(ctx, topic)
}

// Close shuts down the bus and the Kafka mirror.
func (b *Bus) Close() error {
	if b.kafka != nil {
		if err := b.kafka.Close(); err != nil {
			b.logger.Warn("Failed to close kafka publisher", "error", err)
		}
	}
	return b.channel.Close()
}
