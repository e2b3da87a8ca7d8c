package facades

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/student-housing/internal/config"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// KafkaWriter is the subset of *kafka.Writer used for publishing.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                    // Flushes and closes the writer
}

// EventPublisher publishes domain events after successful mutations.
// Publishing is best effort: failures are logged and never reach the caller.
type EventPublisher struct {
	writer KafkaWriter
}

func NewEventPublisher(writer KafkaWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// NewKafkaWriter returns nil when no brokers are configured.
func NewKafkaWriter(cfg config.KafkaConfig) KafkaWriter {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

// Publish writes event keyed by its entity id.
func (p *EventPublisher) Publish(ctx context.Context, event models.Event) {
	if p == nil || p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event_type", event.Type, "key", event.Key)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_type", event.Type, "key", event.Key, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_type", event.Type, "key", event.Key, "error", err)
		return
	}
	logger.Log.Infow("Event published to Kafka", "event_id", event.ID, "event_type", event.Type, "key", event.Key)
}

// Close flushes pending messages.
func (p *EventPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
