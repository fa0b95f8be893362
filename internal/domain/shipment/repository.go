package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence operations for shipments and their
// checkpoints. Checkpoints are owned rows: they are created with the shipment
// and removed by the store's referential cascade on delete.
type Repository interface {
	// Create persists the shipment and its checkpoints in one transaction.
	Create(ctx context.Context, shipment *Shipment) error
	GetByID(ctx context.Context, shipmentID uuid.UUID) (*Shipment, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]*Shipment, error)
	Update(ctx context.Context, shipment *Shipment) error
	// UpdateFields applies a partial snake_case column update.
	UpdateFields(ctx context.Context, shipmentID uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, shipmentID uuid.UUID) error

	UpdateCheckpointLocation(ctx context.Context, checkpointID uuid.UUID, location string) error
	UpdateCheckpointStatuses(ctx context.Context, shipmentID uuid.UUID, statuses map[uuid.UUID]CheckpointStatus) error
}

// Clock abstracts wall-clock reads so the temporal logic stays testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
