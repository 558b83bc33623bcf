package repository

import (
	"context"
	"time"

	"CovidPulse/internal/domain/models"
	"CovidPulse/internal/domain/repository"
)

// publisher is the part of pkg/kafka.Producer the notifier needs.
type publisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaNotifier mirrors every notification onto a Kafka topic, keyed by region.
type KafkaNotifier struct {
	producer publisher
	topic    string
}

// NewKafkaNotifier creates a Kafka notification sink.
func NewKafkaNotifier(producer publisher, topic string) repository.Notifier {
	return &KafkaNotifier{producer: producer, topic: topic}
}

func (p *KafkaNotifier) Notify(ctx context.Context, n models.Notification) error {
	return p.producer.Publish(ctx, p.topic, []byte(n.Region), map[string]interface{}{
		"kind":       n.Kind,
		"region":     n.Region,
		"title":      n.Title,
		"message":    n.Message,
		"timeout_ms": n.Timeout.Milliseconds(),
		"sent_at":    n.SentAt.UTC().Format(time.RFC3339),
	})
}

func (p *KafkaNotifier) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
