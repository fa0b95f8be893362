package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"freightline/internal/events"
	"freightline/internal/logger"
	"freightline/internal/metrics"

	"github.com/google/uuid"
)

// Hub fans shipment change events out to websocket subscribers. A subscriber
// watches either one shipment (the public tracking page) or every shipment of
// an admin (the dashboard list). Delivery is best-effort: a subscriber whose
// buffer is full is dropped rather than allowed to stall the broadcast.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
}

type Subscriber struct {
	// Exactly one of ShipmentID / AdminID is set.
	ShipmentID uuid.UUID
	AdminID    uuid.UUID
	Send       chan []byte
}

const subscriberBuffer = 16

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
	}
}

func (h *Hub) Subscribe(shipmentID, adminID uuid.UUID) *Subscriber {
	sub := &Subscriber{
		ShipmentID: shipmentID,
		AdminID:    adminID,
		Send:       make(chan []byte, subscriberBuffer),
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	count := len(h.subscribers)
	h.mu.Unlock()

	metrics.RealtimeSubscribers.Set(float64(count))
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.Send)
	}
	count := len(h.subscribers)
	h.mu.Unlock()

	metrics.RealtimeSubscribers.Set(float64(count))
}

func (sub *Subscriber) matches(event events.Event) bool {
	if sub.ShipmentID != uuid.Nil {
		return sub.ShipmentID == event.ShipmentID
	}
	return sub.AdminID != uuid.Nil && sub.AdminID == event.AdminID
}

// Publish implements events.Publisher.
func (h *Hub) Publish(_ context.Context, event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal realtime event", zap.Error(err))
		return
	}

	var stalled []*Subscriber

	h.mu.RLock()
	for sub := range h.subscribers {
		if !sub.matches(event) {
			continue
		}
		select {
		case sub.Send <- payload:
		default:
			stalled = append(stalled, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range stalled {
		logger.Warn("Dropping stalled realtime subscriber",
			zap.String("shipment_id", sub.ShipmentID.String()),
		)
		h.Unsubscribe(sub)
	}
}
