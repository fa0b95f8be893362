package events

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"freightline/internal/config"
	"freightline/internal/logger"
	pkgmqtt "freightline/pkg/mqtt"
)

// MQTTPublisher mirrors change events onto per-shipment MQTT topics
// (<prefix>/<shipment-id>), retained, so live-tracking widgets can subscribe
// over MQTT-over-websockets instead of polling.
type MQTTPublisher struct {
	client      *pkgmqtt.Client
	topicPrefix string
}

func NewMQTTPublisher(cfg *config.MQTTConfig) (*MQTTPublisher, error) {
	client := pkgmqtt.NewClient(&pkgmqtt.Config{
		Broker:   cfg.Broker,
		ClientID: cfg.ClientID,
		Username: cfg.Username,
		Password: cfg.Password,
	})

	if err := client.Connect(); err != nil {
		return nil, err
	}

	return &MQTTPublisher{
		client:      client,
		topicPrefix: cfg.TopicPrefix,
	}, nil
}

func (p *MQTTPublisher) Publish(_ context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal shipment event", zap.Error(err))
		return
	}

	topic := fmt.Sprintf("%s/%s", p.topicPrefix, event.ShipmentID)
	if err := p.client.Publish(topic, 1, true, payload); err != nil {
		logger.Error("MQTT publish failed",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect()
}
