package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []skafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...skafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisher(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewKafkaPublisherWithWriter(writer)

	shipmentID := uuid.New()
	publisher.Publish(context.Background(), Event{
		Type:       TypeUpdate,
		Table:      "shipments",
		ShipmentID: shipmentID,
		Action:     "stop",
		At:         time.Now(),
	})

	require.Len(t, writer.messages, 1)
	assert.Equal(t, shipmentID.String(), string(writer.messages[0].Key))

	var got Event
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &got))
	assert.Equal(t, TypeUpdate, got.Type)
	assert.Equal(t, "stop", got.Action)
}

func TestKafkaPublisherSwallowsWriteErrors(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unreachable")}
	publisher := NewKafkaPublisherWithWriter(writer)

	// Publish must not propagate the failure; mutations never depend on the
	// mirror being up.
	publisher.Publish(context.Background(), Event{
		Type:       TypeInsert,
		ShipmentID: uuid.New(),
	})
}

func TestFanout(t *testing.T) {
	first := &fakeWriter{}
	second := &fakeWriter{}

	fanout := NewFanout(NewKafkaPublisherWithWriter(first))
	fanout.Add(NewKafkaPublisherWithWriter(second))

	fanout.Publish(context.Background(), Event{Type: TypeDelete, ShipmentID: uuid.New()})

	assert.Len(t, first.messages, 1)
	assert.Len(t, second.messages, 1)
}
