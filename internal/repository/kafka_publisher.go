package repository

import (
	"context"

	"BreadthPulse/internal/domain/models"
	"BreadthPulse/internal/domain/repository"
	pkgkafka "BreadthPulse/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Events are keyed by
// calendar date so replays of the same day land on the same partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev *repository.SnapshotEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(models.DateKey(ev.Date)), ev)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
