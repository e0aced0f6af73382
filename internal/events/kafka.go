// ABOUTME: Kafka publisher for location events
// ABOUTME: Writes JSON events keyed by location id with type and time headers

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/harper/aquaguard/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher produces location events to a Kafka topic.
type KafkaPublisher struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a producer for topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger, metrics *observability.Metrics) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, logger: logger, metrics: metrics}
}

// Publish writes one event. Events for the same location share a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event LocationEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		p.metrics.EventPublishError.Inc()
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.EventPublishError.Inc()
		return fmt.Errorf("write location event: %w", err)
	}
	p.metrics.EventsPublished.Inc()
	p.logger.Debug("location event published", "type", event.Type, "location_id", event.Location.ID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a LocationEvent into a Kafka message.
func serializeToMessage(event LocationEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize location event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatInt(event.Location.ID, 10)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "occurred_at", Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}
