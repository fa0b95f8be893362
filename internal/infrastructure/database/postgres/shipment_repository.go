package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freightline/internal/domain/shipment"
	"freightline/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShipmentRepository struct {
	db *DB
}

func NewShipmentRepository(db *DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// Create writes the shipment and its checkpoints in a single transaction, so
// a checkpoint failure cannot leave an orphaned shipment behind.
func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Status == "" {
		s.Status = shipment.StatusInTransit
	}

	for i := range s.Checkpoints {
		if s.Checkpoints[i].ID == uuid.Nil {
			s.Checkpoints[i].ID = uuid.New()
		}
		s.Checkpoints[i].ShipmentID = s.ID
		s.Checkpoints[i].CheckpointOrder = i + 1
		if s.Checkpoints[i].Status == "" {
			s.Checkpoints[i].Status = shipment.CheckpointPending
		}
		s.Checkpoints[i].CreatedAt = now
		s.Checkpoints[i].UpdatedAt = now
	}

	dbModel := models.ToShipmentModel(s)
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(dbModel).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create shipment: %w", err)
	}

	return nil
}

func (r *ShipmentRepository) GetByID(ctx context.Context, shipmentID uuid.UUID) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Preload("Checkpoints", func(db *gorm.DB) *gorm.DB {
			return db.Order("checkpoint_order ASC")
		}).
		Where("id = ?", shipmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return models.ToShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]*shipment.Shipment, error) {
	var dbModels []models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Preload("Checkpoints", func(db *gorm.DB) *gorm.DB {
			return db.Order("checkpoint_order ASC")
		}).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, 0, len(dbModels))
	for i := range dbModels {
		shipments = append(shipments, models.ToShipmentEntity(&dbModels[i]))
	}

	return shipments, nil
}

func (r *ShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	s.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"sender_name":              s.SenderName,
			"sender_phone":             s.SenderPhone,
			"sender_email":             s.SenderEmail,
			"receiver_name":            s.ReceiverName,
			"receiver_phone":           s.ReceiverPhone,
			"receiver_email":           s.ReceiverEmail,
			"pickup_location":          s.PickupLocation,
			"delivery_address":         s.DeliveryAddress,
			"warehouse":                s.Warehouse,
			"transportation":           string(s.Transportation),
			"package_name":             s.PackageName,
			"cost":                     s.Cost,
			"paid":                     s.Paid,
			"vehicles_count":           s.VehiclesCount,
			"vehicle_type":             s.VehicleType,
			"driver_name":              s.DriverName,
			"driver_experience":        s.DriverExperience,
			"driver_image_url":         s.DriverImageURL,
			"images":                   models.ImageURLs(s.Images),
			"route_screenshot_url":     s.RouteScreenshotURL,
			"countdown_duration":       s.CountdownDuration,
			"countdown_start_time":     s.CountdownStartTime,
			"paused":                   s.Paused,
			"pause_timestamp":          s.PauseTimestamp,
			"stopped":                  s.Stopped,
			"stop_reason":              s.StopReason,
			"stop_timestamp":           s.StopTimestamp,
			"terminated":               s.Terminated,
			"terminate_timestamp":      s.TerminateTimestamp,
			"progress_bar_paused":      s.ProgressBarPaused,
			"current_checkpoint_index": s.CurrentCheckpointIndex,
			"status":                   string(s.Status),
			"updated_at":               s.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

func (r *ShipmentRepository) UpdateFields(ctx context.Context, shipmentID uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	if urls, ok := fields["images"].([]string); ok {
		fields["images"] = models.ImageURLs(urls)
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", shipmentID).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

func (r *ShipmentRepository) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", shipmentID).
		Delete(&models.ShipmentModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

func (r *ShipmentRepository) UpdateCheckpointLocation(ctx context.Context, checkpointID uuid.UUID, location string) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.CheckpointModel{}).
		Where("id = ?", checkpointID).
		Updates(map[string]interface{}{
			"location":   location,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update checkpoint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

// UpdateCheckpointStatuses persists recomputed checkpoint statuses. Display
// overrides like "stopped" are never written; the persisted value is always
// pending, current or completed.
func (r *ShipmentRepository) UpdateCheckpointStatuses(ctx context.Context, shipmentID uuid.UUID, statuses map[uuid.UUID]shipment.CheckpointStatus) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, status := range statuses {
			if status == shipment.CheckpointStopped {
				status = shipment.CheckpointPending
			}
			err := tx.Model(&models.CheckpointModel{}).
				Where("id = ? AND shipment_id = ?", id, shipmentID).
				Updates(map[string]interface{}{
					"status":     string(status),
					"updated_at": time.Now(),
				}).Error
			if err != nil {
				return fmt.Errorf("failed to update checkpoint status: %w", err)
			}
		}
		return nil
	})
}
