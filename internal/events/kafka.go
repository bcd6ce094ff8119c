package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/complior/engine/internal/logger"
)

const defaultTopic = "complior-events"

// KafkaMirror publishes a JSON-encoded copy of every emitted event to an
// external Kafka topic for out-of-process observers (audit pipelines,
// other engine instances). It is write-only and fire-and-forget: a publish
// failure is logged, never returned, so it can never affect the
// synchronous in-process delivery the Bus guarantees.
type KafkaMirror struct {
	writer *kafka.Writer
	log    logger.Interface
}

// NewKafkaMirror builds a mirror against the given brokers. Call only when
// KAFKA_BROKERS is configured; the caller owns deciding whether to wire one
// in at all.
func NewKafkaMirror(brokers []string, log logger.Interface) *KafkaMirror {
	mirrorLog := log.WithComponent("kafka-mirror")
	return &KafkaMirror{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    defaultTopic,
			Balancer: &kafka.LeastBytes{},
			Async:    true,
			Completion: func(_ []kafka.Message, err error) {
				if err != nil {
					mirrorLog.Warn("failed to publish event to kafka mirror")
				}
			},
		},
		log: mirrorLog,
	}
}

// Mirror implements the events.Mirror interface.
func (k *KafkaMirror) Mirror(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		k.log.Warn("failed to marshal event for kafka mirror")
		return
	}
	if err := k.writer.WriteMessages(ctx, kafka.Message{Key: []byte(event.ID), Value: data}); err != nil {
		k.log.Warn("failed to publish event to kafka mirror")
	}
}

// Close releases the underlying Kafka writer.
func (k *KafkaMirror) Close() error {
	return k.writer.Close()
}
