package admin

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freightline/internal/config"
	domainShipment "freightline/internal/domain/shipment"
	"freightline/internal/events"
	"freightline/internal/logger"
	"freightline/internal/metrics"
	"freightline/internal/tracking"
	appErrors "freightline/pkg/errors"
	"freightline/pkg/utils"
)

// CacheInvalidator drops a cached tracking view after a mutation.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, trackingID string) error
}

// Service is the admin state controller: it translates dashboard actions into
// store mutations while keeping the countdown window, the flags and the
// checkpoint index consistent with each other.
type Service struct {
	repo     domainShipment.Repository
	notifier events.Publisher
	cache    CacheInvalidator
	clock    domainShipment.Clock
	cfg      *config.Config
}

func NewService(
	repo domainShipment.Repository,
	notifier events.Publisher,
	cache CacheInvalidator,
	clock domainShipment.Clock,
	cfg *config.Config,
) *Service {
	if clock == nil {
		clock = domainShipment.SystemClock{}
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		cache:    cache,
		clock:    clock,
		cfg:      cfg,
	}
}

// Unlock exchanges the hidden gesture for a session token. Five taps on the
// logo is the whole ceremony; this is a convenience gate, not authentication.
func (s *Service) Unlock(req *UnlockRequest) (*SessionResponse, error) {
	if req.Taps < s.cfg.Session.TapThreshold {
		return nil, appErrors.ErrUnlockRejected
	}

	adminID := domainShipment.PlaceholderAdminID
	token, err := utils.GenerateSessionToken(adminID, s.cfg.Session.Secret, s.cfg.Session.Expiry())
	if err != nil {
		return nil, appErrors.NewAppError("SESSION_ERROR", "Failed to create session", err)
	}

	logger.Info("Admin dashboard unlocked",
		zap.String("admin_id", adminID.String()),
	)

	return &SessionResponse{Token: token, AdminID: adminID}, nil
}

const defaultCountdownSeconds = 24 * 3600

func (s *Service) Create(ctx context.Context, adminID uuid.UUID, req *CreateShipmentRequest) (*domainShipment.Shipment, error) {
	if err := ValidateCreate(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	id := uuid.New()
	if req.ID != nil && *req.ID != uuid.Nil {
		id = *req.ID
	}

	duration := req.CountdownDuration
	if duration <= 0 {
		duration = defaultCountdownSeconds
	}
	start := now
	if req.CountdownStartTime != nil {
		start = *req.CountdownStartTime
	}

	entity := &domainShipment.Shipment{
		ID:      id,
		AdminID: adminID,

		SenderName:    strings.TrimSpace(req.SenderName),
		SenderPhone:   strings.TrimSpace(req.SenderPhone),
		SenderEmail:   strings.TrimSpace(req.SenderEmail),
		ReceiverName:  strings.TrimSpace(req.ReceiverName),
		ReceiverPhone: strings.TrimSpace(req.ReceiverPhone),
		ReceiverEmail: strings.TrimSpace(req.ReceiverEmail),

		PickupLocation:  strings.TrimSpace(req.PickupLocation),
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		Warehouse:       strings.TrimSpace(req.Warehouse),

		Transportation:   domainShipment.TransportMode(req.Transportation),
		PackageName:      strings.TrimSpace(req.PackageName),
		Cost:             req.Cost,
		Paid:             req.Paid,
		VehiclesCount:    req.VehiclesCount,
		VehicleType:      req.VehicleType,
		DriverName:       req.DriverName,
		DriverExperience: req.DriverExperience,
		DriverImageURL:   req.DriverImageURL,

		Images: req.Images,

		CountdownDuration:  duration,
		CountdownStartTime: &start,

		CurrentCheckpointIndex: 0,
		Status:                 domainShipment.StatusInTransit,
	}

	for _, location := range NonBlankCheckpoints(req.Checkpoints) {
		entity.Checkpoints = append(entity.Checkpoints, domainShipment.Checkpoint{
			ID:       uuid.New(),
			Location: location,
			Status:   domainShipment.CheckpointPending,
		})
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create").Inc()
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, entity.ID)
	if err != nil {
		return nil, err
	}

	metrics.ShipmentsCreatedTotal.Inc()
	logger.Info("Shipment created",
		zap.String("shipment_id", created.ID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("transportation", string(created.Transportation)),
		zap.Int("checkpoints", len(created.Checkpoints)),
	)

	s.notify(ctx, events.TypeInsert, "create", created)
	return created, nil
}

func (s *Service) Get(ctx context.Context, shipmentID uuid.UUID) (*domainShipment.Shipment, error) {
	return s.repo.GetByID(ctx, shipmentID)
}

func (s *Service) List(ctx context.Context, adminID uuid.UUID) ([]*domainShipment.Shipment, error) {
	return s.repo.ListByAdmin(ctx, adminID)
}

func (s *Service) Update(ctx context.Context, shipmentID uuid.UUID, req *UpdateShipmentRequest) (*domainShipment.Shipment, error) {
	if err := ValidateUpdate(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			fields[column] = strings.TrimSpace(*v)
		}
	}

	setString("sender_name", req.SenderName)
	setString("sender_phone", req.SenderPhone)
	setString("sender_email", req.SenderEmail)
	setString("receiver_name", req.ReceiverName)
	setString("receiver_phone", req.ReceiverPhone)
	setString("receiver_email", req.ReceiverEmail)
	setString("pickup_location", req.PickupLocation)
	setString("delivery_address", req.DeliveryAddress)
	setString("warehouse", req.Warehouse)
	setString("transportation", req.Transportation)
	setString("package_name", req.PackageName)
	setString("vehicle_type", req.VehicleType)
	setString("driver_name", req.DriverName)
	setString("driver_experience", req.DriverExperience)
	setString("driver_image_url", req.DriverImageURL)

	if req.Cost != nil {
		fields["cost"] = *req.Cost
	}
	if req.Paid != nil {
		fields["paid"] = *req.Paid
	}
	if req.VehiclesCount != nil {
		fields["vehicles_count"] = *req.VehiclesCount
	}
	if req.Images != nil {
		fields["images"] = *req.Images
	}
	if req.CountdownDuration != nil {
		fields["countdown_duration"] = *req.CountdownDuration
	}
	if req.CountdownStartTime != nil {
		fields["countdown_start_time"] = *req.CountdownStartTime
	}

	if len(fields) == 0 {
		return existing, nil
	}

	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("update").Inc()
		return nil, err
	}

	return s.reloadAndNotify(ctx, shipmentID, "update")
}

func (s *Service) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shipmentID); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("delete").Inc()
		return err
	}

	logger.Info("Shipment deleted",
		zap.String("shipment_id", shipmentID.String()),
	)

	s.invalidate(ctx, shipmentID)
	if s.notifier != nil {
		s.notifier.Publish(ctx, events.Event{
			Type:       events.TypeDelete,
			Table:      "shipments",
			ShipmentID: shipmentID,
			AdminID:    existing.AdminID,
			Action:     "delete",
		})
	}
	return nil
}

// Pause freezes the countdown at the current instant. The window itself is
// left alone; Resume compensates for the pause span.
func (s *Service) Pause(ctx context.Context, shipmentID uuid.UUID) (*domainShipment.Shipment, error) {
	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if existing.Terminated {
		return nil, domainShipment.ErrShipmentTerminated
	}
	if existing.Stopped {
		return nil, domainShipment.ErrShipmentStopped
	}
	if existing.Paused {
		return existing, nil
	}

	now := s.clock.Now()
	fields := map[string]interface{}{
		"paused":          true,
		"pause_timestamp": now,
		"status":          string(domainShipment.StatusPaused),
	}
	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("pause").Inc()
		return nil, err
	}

	metrics.StateTransitionsTotal.WithLabelValues("pause").Inc()
	return s.reloadAndNotify(ctx, shipmentID, "pause")
}

// Resume lifts a pause. The countdown window shifts forward by exactly the
// pause duration, so the percentage picks up where it froze.
func (s *Service) Resume(ctx context.Context, shipmentID uuid.UUID) (*domainShipment.Shipment, error) {
	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if !existing.Paused {
		return nil, domainShipment.ErrNotPaused
	}

	now := s.clock.Now()
	fields := map[string]interface{}{
		"paused":          false,
		"pause_timestamp": nil,
		"status":          string(domainShipment.StatusInTransit),
	}
	if existing.PauseTimestamp != nil && existing.CountdownStartTime != nil {
		newStart := tracking.ShiftStartForward(*existing.CountdownStartTime, *existing.PauseTimestamp, now)
		fields["countdown_start_time"] = newStart
	}

	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("resume").Inc()
		return nil, err
	}

	metrics.StateTransitionsTotal.WithLabelValues("resume").Inc()
	return s.reloadAndNotify(ctx, shipmentID, "resume")
}

// Stop halts the shipment with an operator-entered reason. Progress freezes
// at the stop instant.
func (s *Service) Stop(ctx context.Context, shipmentID uuid.UUID, req *StopShipmentRequest) (*domainShipment.Shipment, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, domainShipment.ErrStopReasonRequired
	}

	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if existing.Stopped {
		return existing, nil
	}

	now := s.clock.Now()
	fields := map[string]interface{}{
		"stopped":        true,
		"stop_reason":    reason,
		"stop_timestamp": now,
		"status":         string(domainShipment.StatusStopped),
	}
	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("stop").Inc()
		return nil, err
	}

	metrics.StateTransitionsTotal.WithLabelValues("stop").Inc()
	logger.Info("Shipment stopped",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("reason", reason),
	)
	return s.reloadAndNotify(ctx, shipmentID, "stop")
}

// ResumeFromStop lifts a stop. The countdown window shifts forward by the
// stopped span, mirroring Resume, so lifting a stop never jumps the
// percentage ahead of where it froze.
func (s *Service) ResumeFromStop(ctx context.Context, shipmentID uuid.UUID) (*domainShipment.Shipment, error) {
	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if !existing.Stopped {
		return nil, domainShipment.ErrNotStopped
	}

	now := s.clock.Now()
	fields := map[string]interface{}{
		"stopped":         false,
		"stop_reason":     "",
		"stop_timestamp":  nil,
		"paused":          false,
		"pause_timestamp": nil,
		"status":          string(domainShipment.StatusInTransit),
	}
	if existing.StopTimestamp != nil && existing.CountdownStartTime != nil {
		newStart := tracking.ShiftStartForward(*existing.CountdownStartTime, *existing.StopTimestamp, now)
		fields["countdown_start_time"] = newStart
	}

	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("resume_from_stop").Inc()
		return nil, err
	}

	metrics.StateTransitionsTotal.WithLabelValues("resume_from_stop").Inc()
	return s.reloadAndNotify(ctx, shipmentID, "resume_from_stop")
}

// Terminate is the harder stop: a separate flag, deliberately less casual to
// reverse than Stop.
func (s *Service) Terminate(ctx context.Context, shipmentID uuid.UUID) (*domainShipment.Shipment, error) {
	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if existing.Terminated {
		return existing, nil
	}

	now := s.clock.Now()
	fields := map[string]interface{}{
		"terminated":          true,
		"terminate_timestamp": now,
		"status":              string(domainShipment.StatusStopped),
	}
	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("terminate").Inc()
		return nil, err
	}

	metrics.StateTransitionsTotal.WithLabelValues("terminate").Inc()
	return s.reloadAndNotify(ctx, shipmentID, "terminate")
}

func (s *Service) Reactivate(ctx context.Context, shipmentID uuid.UUID) (*domainShipment.Shipment, error) {
	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if !existing.Terminated {
		return nil, domainShipment.ErrNotTerminated
	}

	now := s.clock.Now()
	fields := map[string]interface{}{
		"terminated":          false,
		"terminate_timestamp": nil,
		"status":              string(domainShipment.StatusInTransit),
	}
	if existing.TerminateTimestamp != nil && existing.CountdownStartTime != nil {
		newStart := tracking.ShiftStartForward(*existing.CountdownStartTime, *existing.TerminateTimestamp, now)
		fields["countdown_start_time"] = newStart
	}

	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("reactivate").Inc()
		return nil, err
	}

	metrics.StateTransitionsTotal.WithLabelValues("reactivate").Inc()
	return s.reloadAndNotify(ctx, shipmentID, "reactivate")
}

// SelectCheckpoint pins the shipment to a checkpoint. When a countdown is
// configured the window is back-computed so the derived percentage lands on
// that checkpoint's position; the two representations never drift apart.
func (s *Service) SelectCheckpoint(ctx context.Context, shipmentID uuid.UUID, req *SelectCheckpointRequest) (*domainShipment.Shipment, error) {
	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if req.Index < 0 || req.Index >= len(existing.Checkpoints) {
		return nil, domainShipment.ErrCheckpointIndex
	}

	fields := map[string]interface{}{
		"current_checkpoint_index": req.Index,
	}
	if existing.CountdownDuration > 0 {
		pos := tracking.CheckpointPosition(req.Index, len(existing.Checkpoints))
		fields["countdown_start_time"] = tracking.StartForProgress(s.clock.Now(), existing.CountdownDuration, pos)
	}

	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("select_checkpoint").Inc()
		return nil, err
	}

	return s.reloadAndNotify(ctx, shipmentID, "select_checkpoint")
}

// SetProgress moves the slider: the countdown window is back-computed for the
// percentage and the checkpoint index follows.
func (s *Service) SetProgress(ctx context.Context, shipmentID uuid.UUID, req *SetProgressRequest) (*domainShipment.Shipment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if existing.Stopped {
		return nil, domainShipment.ErrShipmentStopped
	}

	index := tracking.NearestCheckpointIndex(req.Percent, len(existing.Checkpoints))
	fields := map[string]interface{}{
		"current_checkpoint_index": index,
	}
	if existing.CountdownDuration > 0 {
		fields["countdown_start_time"] = tracking.StartForProgress(s.clock.Now(), existing.CountdownDuration, req.Percent)
	}

	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("set_progress").Inc()
		return nil, err
	}

	return s.reloadAndNotify(ctx, shipmentID, "set_progress")
}

// ToggleProgressBarPause flips the cosmetic animation freeze. It is
// independent of the logistic pause and never touches the countdown window.
func (s *Service) ToggleProgressBarPause(ctx context.Context, shipmentID uuid.UUID) (*domainShipment.Shipment, error) {
	existing, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"progress_bar_paused": !existing.ProgressBarPaused,
	}
	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		return nil, err
	}

	return s.reloadAndNotify(ctx, shipmentID, "toggle_progress_bar")
}

// EditCheckpoint renames a waypoint. The count stays immutable after
// creation; only locations can change.
func (s *Service) EditCheckpoint(ctx context.Context, shipmentID, checkpointID uuid.UUID, req *EditCheckpointRequest) (*domainShipment.Shipment, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "checkpoint location is required", nil)
	}

	if err := s.repo.UpdateCheckpointLocation(ctx, checkpointID, location); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("edit_checkpoint").Inc()
		return nil, err
	}

	return s.reloadAndNotify(ctx, shipmentID, "edit_checkpoint")
}

// AttachRouteScreenshot records the uploaded screenshot's public URL.
func (s *Service) AttachRouteScreenshot(ctx context.Context, shipmentID uuid.UUID, url string) (*domainShipment.Shipment, error) {
	fields := map[string]interface{}{
		"route_screenshot_url": url,
	}
	if err := s.repo.UpdateFields(ctx, shipmentID, fields); err != nil {
		return nil, err
	}

	return s.reloadAndNotify(ctx, shipmentID, "attach_screenshot")
}

// reloadAndNotify refetches the mutated shipment, persists recomputed
// checkpoint statuses, invalidates the tracking cache and fans the change out.
func (s *Service) reloadAndNotify(ctx context.Context, shipmentID uuid.UUID, action string) (*domainShipment.Shipment, error) {
	updated, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	s.syncCheckpointStatuses(ctx, updated)
	s.invalidate(ctx, shipmentID)
	s.notify(ctx, events.TypeUpdate, action, updated)

	return updated, nil
}

// syncCheckpointStatuses writes back the statuses derived from the current
// percentage. Best effort: the persisted value is advisory, every reader
// recomputes from the percentage anyway.
func (s *Service) syncCheckpointStatuses(ctx context.Context, sh *domainShipment.Shipment) {
	n := len(sh.Checkpoints)
	if n == 0 {
		return
	}

	progress := tracking.Progress(sh, s.clock.Now())
	derived := tracking.AssignStatuses(n, progress, false)

	statuses := make(map[uuid.UUID]domainShipment.CheckpointStatus, n)
	changed := false
	for i, cp := range sh.Checkpoints {
		statuses[cp.ID] = derived[i]
		if cp.Status != derived[i] {
			changed = true
		}
	}
	if !changed {
		return
	}

	if err := s.repo.UpdateCheckpointStatuses(ctx, sh.ID, statuses); err != nil {
		logger.Warn("Failed to persist checkpoint statuses",
			zap.String("shipment_id", sh.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) invalidate(ctx context.Context, shipmentID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, shipmentID.String()); err != nil {
		logger.Warn("Failed to invalidate tracking cache",
			zap.String("shipment_id", shipmentID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) notify(ctx context.Context, eventType events.Type, action string, sh *domainShipment.Shipment) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(ctx, events.Event{
		Type:       eventType,
		Table:      "shipments",
		ShipmentID: sh.ID,
		AdminID:    sh.AdminID,
		Action:     action,
		Record:     sh,
		At:         time.Now(),
	})
}
