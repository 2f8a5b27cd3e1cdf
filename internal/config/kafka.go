package config

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter returns nil when no brokers are configured; order events are
// then skipped.
func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.OrderTopic,
		Balancer:               &kafka.LeastBytes{}, // Balancer for selecting partition
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}
