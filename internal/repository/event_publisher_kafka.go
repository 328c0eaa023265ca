package repository

import (
	"context"

	"CoinWatch/internal/domain/models"
	drepo "CoinWatch/internal/domain/repository"
	pkgkafka "CoinWatch/pkg/kafka"
)

// KafkaEventPublisher mirrors signal-change events to a Kafka topic for
// downstream consumers. Keyed by symbol for per-symbol ordering.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, change models.SignalChange) error {
	return p.producer.Publish(ctx, p.topic, []byte(change.Symbol), change)
}

func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}

var _ drepo.EventPublisher = (*KafkaEventPublisher)(nil)
