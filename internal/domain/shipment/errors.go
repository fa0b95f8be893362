package shipment

import "errors"

var (
	ErrShipmentNotFound  = errors.New("shipment not found")
	ErrShipmentExists    = errors.New("shipment already exists")
	ErrShipmentStopped   = errors.New("shipment is stopped")
	ErrShipmentTerminated = errors.New("shipment is terminated")
	ErrNotPaused         = errors.New("shipment is not paused")
	ErrNotStopped        = errors.New("shipment is not stopped")
	ErrNotTerminated     = errors.New("shipment is not terminated")
	ErrStopReasonRequired = errors.New("a reason is required to stop a shipment")
	ErrCheckpointCount   = errors.New("a shipment needs between 5 and 12 checkpoints")
	ErrImageCount        = errors.New("a shipment needs between 3 and 6 image URLs")
	ErrInvalidImageURL   = errors.New("image URLs must start with http:// or https://")
	ErrCheckpointIndex   = errors.New("checkpoint index out of range")
)
