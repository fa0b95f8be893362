package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImageURLs persists the ordered product-image URL list as a jsonb column.
type ImageURLs []string

func (u ImageURLs) Value() (driver.Value, error) {
	if u == nil {
		u = ImageURLs{}
	}
	return json.Marshal(u)
}

func (u *ImageURLs) Scan(value interface{}) error {
	if value == nil {
		*u = ImageURLs{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for image urls: %T", value)
	}

	return json.Unmarshal(raw, u)
}

// ShipmentModel represents the database model for shipments
type ShipmentModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	AdminID uuid.UUID `gorm:"type:uuid;not null;index"`

	SenderName    string `gorm:"type:text;not null"`
	SenderPhone   string `gorm:"type:text;not null"`
	SenderEmail   string `gorm:"type:text"`
	ReceiverName  string `gorm:"type:text;not null"`
	ReceiverPhone string `gorm:"type:text;not null"`
	ReceiverEmail string `gorm:"type:text"`

	PickupLocation  string `gorm:"type:text"`
	DeliveryAddress string `gorm:"type:text;not null"`
	Warehouse       string `gorm:"type:text"`

	Transportation   string   `gorm:"type:text;not null"`
	PackageName      string   `gorm:"type:text"`
	Cost             *float64 `gorm:"type:decimal(12,2)"`
	Paid             bool     `gorm:"not null;default:false"`
	VehiclesCount    int      `gorm:"type:integer;default:0"`
	VehicleType      string   `gorm:"type:text"`
	DriverName       string   `gorm:"type:text"`
	DriverExperience string   `gorm:"type:text"`
	DriverImageURL   string   `gorm:"type:text"`

	Images             ImageURLs `gorm:"type:jsonb"`
	RouteScreenshotURL string    `gorm:"type:text"`

	CountdownDuration  int        `gorm:"type:integer;default:0"`
	CountdownStartTime *time.Time `gorm:"type:timestamptz"`

	Paused             bool       `gorm:"not null;default:false"`
	PauseTimestamp     *time.Time `gorm:"type:timestamptz"`
	Stopped            bool       `gorm:"not null;default:false"`
	StopReason         string     `gorm:"type:text"`
	StopTimestamp      *time.Time `gorm:"type:timestamptz"`
	Terminated         bool       `gorm:"not null;default:false"`
	TerminateTimestamp *time.Time `gorm:"type:timestamptz"`
	ProgressBarPaused  bool       `gorm:"not null;default:false"`

	CurrentCheckpointIndex int    `gorm:"type:integer;not null;default:0"`
	Status                 string `gorm:"type:text;not null;default:'in_transit';index"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	// Checkpoints cascade-delete with their shipment; no application code
	// cleans them up.
	Checkpoints []CheckpointModel `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}

// CheckpointModel represents the database model for route checkpoints
type CheckpointModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ShipmentID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Location        string    `gorm:"type:text;not null"`
	CheckpointOrder int       `gorm:"type:integer;not null"`
	Status          string    `gorm:"type:text;not null;default:'pending'"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (CheckpointModel) TableName() string {
	return "checkpoints"
}
