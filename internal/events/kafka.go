package events

import (
	"context"
	"encoding/json"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"freightline/internal/config"
	"freightline/internal/logger"
)

// Writer is the subset of the segmentio kafka.Writer the producer needs,
// kept as an interface so tests can inject a recorder.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// KafkaPublisher mirrors shipment lifecycle events onto a Kafka topic for
// downstream consumers. The shipment id keys the message so events for one
// shipment stay ordered within a partition.
type KafkaPublisher struct {
	writer Writer
}

func NewKafkaPublisher(cfg *config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &skafka.Writer{
			Addr:     skafka.TCP(cfg.Broker),
			Topic:    cfg.Topic,
			Balancer: &skafka.LeastBytes{},
		},
	}
}

func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal shipment event", zap.Error(err))
		return
	}

	msg := skafka.Message{
		Key:   []byte(event.ShipmentID.String()),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error("Kafka write failed",
			zap.String("shipment_id", event.ShipmentID.String()),
			zap.Error(err),
		)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
