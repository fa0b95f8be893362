package admin

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
type CreateShipmentRequest struct {
	// The tracking code. Client-generated when present, minted here otherwise.
	ID *uuid.UUID `json:"id" validate:"omitempty"`

	SenderName    string `json:"sender_name"`
	SenderPhone   string `json:"sender_phone" validate:"omitempty,phone"`
	SenderEmail   string `json:"sender_email" validate:"omitempty,email"`
	ReceiverName  string `json:"receiver_name"`
	ReceiverPhone string `json:"receiver_phone" validate:"omitempty,phone"`
	ReceiverEmail string `json:"receiver_email"`

	PickupLocation  string `json:"pickup_location"`
	DeliveryAddress string `json:"delivery_address"`
	Warehouse       string `json:"warehouse"`

	Transportation   string   `json:"transportation" validate:"required,transport_mode"`
	PackageName      string   `json:"package_name"`
	Cost             *float64 `json:"cost" validate:"omitempty,min=0"`
	Paid             bool     `json:"paid"`
	VehiclesCount    int      `json:"vehicles_count" validate:"omitempty,min=0"`
	VehicleType      string   `json:"vehicle_type"`
	DriverName       string   `json:"driver_name"`
	DriverExperience string   `json:"driver_experience"`
	DriverImageURL   string   `json:"driver_image_url" validate:"omitempty,image_url"`

	// The form exposes twelve checkpoint slots; blanks are skipped and the
	// non-blank count must land between 5 and 12.
	Checkpoints []string `json:"checkpoints"`

	Images []string `json:"images"`

	// Countdown window. Zero falls back to 24 hours starting now.
	CountdownDuration  int        `json:"countdown_duration" validate:"omitempty,min=0"`
	CountdownStartTime *time.Time `json:"countdown_start_time"`
}

type UpdateShipmentRequest struct {
	SenderName    *string `json:"sender_name"`
	SenderPhone   *string `json:"sender_phone" validate:"omitempty,phone"`
	SenderEmail   *string `json:"sender_email" validate:"omitempty,email"`
	ReceiverName  *string `json:"receiver_name"`
	ReceiverPhone *string `json:"receiver_phone" validate:"omitempty,phone"`
	ReceiverEmail *string `json:"receiver_email"`

	PickupLocation  *string `json:"pickup_location"`
	DeliveryAddress *string `json:"delivery_address"`
	Warehouse       *string `json:"warehouse"`

	Transportation   *string  `json:"transportation" validate:"omitempty,transport_mode"`
	PackageName      *string  `json:"package_name"`
	Cost             *float64 `json:"cost" validate:"omitempty,min=0"`
	Paid             *bool    `json:"paid"`
	VehiclesCount    *int     `json:"vehicles_count" validate:"omitempty,min=0"`
	VehicleType      *string  `json:"vehicle_type"`
	DriverName       *string  `json:"driver_name"`
	DriverExperience *string  `json:"driver_experience"`
	DriverImageURL   *string  `json:"driver_image_url" validate:"omitempty,image_url"`

	Images *[]string `json:"images"`

	CountdownDuration  *int       `json:"countdown_duration" validate:"omitempty,min=0"`
	CountdownStartTime *time.Time `json:"countdown_start_time"`
}

type StopShipmentRequest struct {
	Reason string `json:"reason"`
}

type SelectCheckpointRequest struct {
	Index int `json:"index"`
}

type SetProgressRequest struct {
	Percent int `json:"percent" validate:"min=0,max=100"`
}

type EditCheckpointRequest struct {
	Location string `json:"location"`
}

type UnlockRequest struct {
	Taps int `json:"taps"`
}

type SessionResponse struct {
	Token   string    `json:"token"`
	AdminID uuid.UUID `json:"admin_id"`
}
