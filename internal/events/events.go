package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type mirrors the change-notification kinds a store subscription delivers.
type Type string

const (
	TypeInsert Type = "INSERT"
	TypeUpdate Type = "UPDATE"
	TypeDelete Type = "DELETE"
)

// Event is one shipment change notification. Record carries the entity
// snapshot after the change; it is nil for deletes.
type Event struct {
	Type       Type        `json:"type"`
	Table      string      `json:"table"`
	ShipmentID uuid.UUID   `json:"shipment_id"`
	AdminID    uuid.UUID   `json:"admin_id"`
	Action     string      `json:"action,omitempty"`
	Record     interface{} `json:"record,omitempty"`
	At         time.Time   `json:"at"`
}

// Publisher delivers change events to one transport. Publish must not block
// the mutation path; failures are logged by implementations, never returned
// to the operator.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Fanout forwards each event to every configured transport: the in-process
// websocket hub always, MQTT and Kafka when configured. Last notification
// wins on the consumer side; there is no sequence reconciliation.
type Fanout struct {
	publishers []Publisher
}

func NewFanout(publishers ...Publisher) *Fanout {
	return &Fanout{publishers: publishers}
}

func (f *Fanout) Add(p Publisher) {
	f.publishers = append(f.publishers, p)
}

func (f *Fanout) Publish(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	for _, p := range f.publishers {
		p.Publish(ctx, event)
	}
}
