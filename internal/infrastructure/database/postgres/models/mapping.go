package models

import (
	"freightline/internal/domain/shipment"
)

// The snake_case persisted rows are decoded into the one canonical entity
// here and nowhere else; everything downstream works with the typed record.

func ToShipmentEntity(m *ShipmentModel) *shipment.Shipment {
	s := &shipment.Shipment{
		ID:      m.ID,
		AdminID: m.AdminID,

		SenderName:    m.SenderName,
		SenderPhone:   m.SenderPhone,
		SenderEmail:   m.SenderEmail,
		ReceiverName:  m.ReceiverName,
		ReceiverPhone: m.ReceiverPhone,
		ReceiverEmail: m.ReceiverEmail,

		PickupLocation:  m.PickupLocation,
		DeliveryAddress: m.DeliveryAddress,
		Warehouse:       m.Warehouse,

		Transportation:   shipment.TransportMode(m.Transportation),
		PackageName:      m.PackageName,
		Cost:             m.Cost,
		Paid:             m.Paid,
		VehiclesCount:    m.VehiclesCount,
		VehicleType:      m.VehicleType,
		DriverName:       m.DriverName,
		DriverExperience: m.DriverExperience,
		DriverImageURL:   m.DriverImageURL,

		Images:             m.Images,
		RouteScreenshotURL: m.RouteScreenshotURL,

		CountdownDuration:  m.CountdownDuration,
		CountdownStartTime: m.CountdownStartTime,

		Paused:             m.Paused,
		PauseTimestamp:     m.PauseTimestamp,
		Stopped:            m.Stopped,
		StopReason:         m.StopReason,
		StopTimestamp:      m.StopTimestamp,
		Terminated:         m.Terminated,
		TerminateTimestamp: m.TerminateTimestamp,
		ProgressBarPaused:  m.ProgressBarPaused,

		CurrentCheckpointIndex: m.CurrentCheckpointIndex,
		Status:                 shipment.Status(m.Status),

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	for _, cp := range m.Checkpoints {
		s.Checkpoints = append(s.Checkpoints, *ToCheckpointEntity(&cp))
	}

	return s
}

func ToShipmentModel(s *shipment.Shipment) *ShipmentModel {
	m := &ShipmentModel{
		ID:      s.ID,
		AdminID: s.AdminID,

		SenderName:    s.SenderName,
		SenderPhone:   s.SenderPhone,
		SenderEmail:   s.SenderEmail,
		ReceiverName:  s.ReceiverName,
		ReceiverPhone: s.ReceiverPhone,
		ReceiverEmail: s.ReceiverEmail,

		PickupLocation:  s.PickupLocation,
		DeliveryAddress: s.DeliveryAddress,
		Warehouse:       s.Warehouse,

		Transportation:   string(s.Transportation),
		PackageName:      s.PackageName,
		Cost:             s.Cost,
		Paid:             s.Paid,
		VehiclesCount:    s.VehiclesCount,
		VehicleType:      s.VehicleType,
		DriverName:       s.DriverName,
		DriverExperience: s.DriverExperience,
		DriverImageURL:   s.DriverImageURL,

		Images:             s.Images,
		RouteScreenshotURL: s.RouteScreenshotURL,

		CountdownDuration:  s.CountdownDuration,
		CountdownStartTime: s.CountdownStartTime,

		Paused:             s.Paused,
		PauseTimestamp:     s.PauseTimestamp,
		Stopped:            s.Stopped,
		StopReason:         s.StopReason,
		StopTimestamp:      s.StopTimestamp,
		Terminated:         s.Terminated,
		TerminateTimestamp: s.TerminateTimestamp,
		ProgressBarPaused:  s.ProgressBarPaused,

		CurrentCheckpointIndex: s.CurrentCheckpointIndex,
		Status:                 string(s.Status),

		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	for _, cp := range s.Checkpoints {
		m.Checkpoints = append(m.Checkpoints, *ToCheckpointModel(&cp))
	}

	return m
}

func ToCheckpointEntity(m *CheckpointModel) *shipment.Checkpoint {
	return &shipment.Checkpoint{
		ID:              m.ID,
		ShipmentID:      m.ShipmentID,
		Location:        m.Location,
		CheckpointOrder: m.CheckpointOrder,
		Status:          shipment.CheckpointStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToCheckpointModel(c *shipment.Checkpoint) *CheckpointModel {
	return &CheckpointModel{
		ID:              c.ID,
		ShipmentID:      c.ShipmentID,
		Location:        c.Location,
		CheckpointOrder: c.CheckpointOrder,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
