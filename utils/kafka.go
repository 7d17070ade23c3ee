package utils

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/assetverse/assetverse-backend/config"
)

const DefaultEventTopic = "asset-events"

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the producer for the asset lifecycle event stream.
// The backend keeps working without Kafka; publishing becomes a no-op.
func InitializeKafka(cfg *config.Config) {
	brokers := cfg.KafkaBrokers
	if brokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, event publishing disabled")
		return
	}

	topic := cfg.KafkaTopic
	if topic == "" {
		topic = DefaultEventTopic
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Printf("✅ Kafka producer ready (brokers=%s topic=%s)", brokers, topic)
}

// PublishEvent writes one JSON event keyed by the subject email. Failures are
// logged and swallowed: the event stream is a side channel, never a gate on
// the request path.
func PublishEvent(ctx context.Context, key string, payload interface{}) {
	if kafkaWriter == nil {
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️ Kafka event marshal failed: %v", err)
		return
	}

	if err := kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	}); err != nil {
		log.Printf("⚠️ Kafka publish failed: %v", err)
	}
}

// NewEventReader builds a consumer for the lifecycle topic, used by the
// notification module.
func NewEventReader(cfg *config.Config, groupID string) *kafka.Reader {
	if cfg.KafkaBrokers == "" {
		return nil
	}

	topic := cfg.KafkaTopic
	if topic == "" {
		topic = DefaultEventTopic
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
