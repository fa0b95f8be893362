package shipment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusInTransit Status = "in_transit" // Actively moving along the route
	StatusPaused    Status = "paused"     // Temporarily held, countdown frozen
	StatusStopped   Status = "stopped"    // Held with a reason, or terminated
	StatusDelivered Status = "delivered"  // Countdown elapsed
)

type TransportMode string

const (
	ModeAirFreight    TransportMode = "Air Freight"
	ModeOceanCargo    TransportMode = "Ocean Cargo"
	ModeLandTransport TransportMode = "Land Transport"
	ModeDoorToDoor    TransportMode = "Door to Door"
)

// IsFlight reports whether the route display collapses to origin and
// destination only, the way air shipments are shown on the tracking page.
func (m TransportMode) IsFlight() bool {
	return m == ModeAirFreight
}

// Shipment is the tracked logistics record. Its ID doubles as the public
// tracking code, so it is client-generatable at creation time.
type Shipment struct {
	ID      uuid.UUID `json:"id"`
	AdminID uuid.UUID `json:"admin_id"`

	// Parties
	SenderName    string `json:"sender_name"`
	SenderPhone   string `json:"sender_phone"`
	SenderEmail   string `json:"sender_email"`
	ReceiverName  string `json:"receiver_name"`
	ReceiverPhone string `json:"receiver_phone"`
	ReceiverEmail string `json:"receiver_email"`

	// Route
	PickupLocation  string `json:"pickup_location"`
	DeliveryAddress string `json:"delivery_address"`
	Warehouse       string `json:"warehouse"`

	// Logistics
	Transportation   TransportMode `json:"transportation"`
	PackageName      string        `json:"package_name"`
	Cost             *float64      `json:"cost"`
	Paid             bool          `json:"paid"`
	VehiclesCount    int           `json:"vehicles_count"`
	VehicleType      string        `json:"vehicle_type"`
	DriverName       string        `json:"driver_name"`
	DriverExperience string        `json:"driver_experience"`
	DriverImageURL   string        `json:"driver_image_url"`

	// Media. Product images are external URLs; only the route screenshot is
	// uploaded through this service.
	Images             []string `json:"images"`
	RouteScreenshotURL string   `json:"route_screenshot_url"`

	// Countdown window: operator-entered synthetic ETA, the sole source of
	// the completion percentage when configured.
	CountdownDuration  int        `json:"countdown_duration"` // seconds
	CountdownStartTime *time.Time `json:"countdown_start_time"`

	// Temporal state flags
	Paused             bool       `json:"paused"`
	PauseTimestamp     *time.Time `json:"pause_timestamp"`
	Stopped            bool       `json:"stopped"`
	StopReason         string     `json:"stop_reason"`
	StopTimestamp      *time.Time `json:"stop_timestamp"`
	Terminated         bool       `json:"terminated"`
	TerminateTimestamp *time.Time `json:"terminate_timestamp"`
	ProgressBarPaused  bool       `json:"progress_bar_paused"` // cosmetic freeze only

	// Fallback when no countdown window is configured.
	CurrentCheckpointIndex int `json:"current_checkpoint_index"`

	Status Status `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Checkpoints []Checkpoint `json:"checkpoints,omitempty"`
}

// HasCountdown reports whether the countdown calculator applies; when it does
// not, progress falls back to the checkpoint index estimate.
func (s *Shipment) HasCountdown() bool {
	return s.CountdownDuration > 0 && s.CountdownStartTime != nil
}

// DisplayStatus resolves the single state that best describes the shipment:
// terminated supersedes stopped, stopped takes precedence over paused.
func (s *Shipment) DisplayStatus() string {
	switch {
	case s.Terminated:
		return "Terminated"
	case s.Stopped:
		return "Stopped"
	case s.Paused:
		return "Paused"
	default:
		return "In Transit"
	}
}

type CheckpointStatus string

const (
	CheckpointPending   CheckpointStatus = "pending"
	CheckpointCurrent   CheckpointStatus = "current"
	CheckpointCompleted CheckpointStatus = "completed"
	// CheckpointStopped is a display-only override on the first pending
	// checkpoint of a stopped shipment. It is never persisted.
	CheckpointStopped CheckpointStatus = "stopped"
)

// Checkpoint is an operator-entered waypoint. Order is the 1-based insertion
// sequence; the percent position along the route is recomputed on every read
// and never stored.
type Checkpoint struct {
	ID              uuid.UUID        `json:"id"`
	ShipmentID      uuid.UUID        `json:"shipment_id"`
	Location        string           `json:"location"`
	CheckpointOrder int              `json:"checkpoint_order"`
	Status          CheckpointStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Checkpoint count bounds enforced at creation time. The count is immutable
// afterwards; only locations may be edited.
const (
	MinCheckpoints = 5
	MaxCheckpoints = 12
)

// Image URL count bounds.
const (
	MinImages = 3
	MaxImages = 6
)

// PlaceholderAdminID identifies the demo admin used when no session subject
// exists. The admin concept is cosmetic, not a security boundary.
var PlaceholderAdminID = uuid.MustParse("00000000-0000-0000-0000-000000000000")
