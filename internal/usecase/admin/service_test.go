package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightline/internal/config"
	domainShipment "freightline/internal/domain/shipment"
	"freightline/internal/events"
	"freightline/internal/tracking"
	appErrors "freightline/pkg/errors"
)

// fakeRepository is an in-memory shipment.Repository that applies UpdateFields
// maps the way the store would, so the service's column updates stay honest.
type fakeRepository struct {
	shipments map[uuid.UUID]*domainShipment.Shipment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{shipments: make(map[uuid.UUID]*domainShipment.Shipment)}
}

func (r *fakeRepository) Create(ctx context.Context, s *domainShipment.Shipment) error {
	if _, ok := r.shipments[s.ID]; ok {
		return domainShipment.ErrShipmentExists
	}
	for i := range s.Checkpoints {
		s.Checkpoints[i].ShipmentID = s.ID
		s.Checkpoints[i].CheckpointOrder = i + 1
	}
	clone := *s
	r.shipments[s.ID] = &clone
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domainShipment.Shipment, error) {
	s, ok := r.shipments[id]
	if !ok {
		return nil, domainShipment.ErrShipmentNotFound
	}
	clone := *s
	clone.Checkpoints = append([]domainShipment.Checkpoint(nil), s.Checkpoints...)
	return &clone, nil
}

func (r *fakeRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]*domainShipment.Shipment, error) {
	var out []*domainShipment.Shipment
	for _, s := range r.shipments {
		if s.AdminID == adminID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeRepository) Update(ctx context.Context, s *domainShipment.Shipment) error {
	if _, ok := r.shipments[s.ID]; !ok {
		return domainShipment.ErrShipmentNotFound
	}
	clone := *s
	r.shipments[s.ID] = &clone
	return nil
}

func (r *fakeRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	s, ok := r.shipments[id]
	if !ok {
		return domainShipment.ErrShipmentNotFound
	}
	for column, value := range fields {
		switch column {
		case "paused":
			s.Paused = value.(bool)
		case "pause_timestamp":
			s.PauseTimestamp = asTimePtr(value)
		case "stopped":
			s.Stopped = value.(bool)
		case "stop_reason":
			s.StopReason = value.(string)
		case "stop_timestamp":
			s.StopTimestamp = asTimePtr(value)
		case "terminated":
			s.Terminated = value.(bool)
		case "terminate_timestamp":
			s.TerminateTimestamp = asTimePtr(value)
		case "progress_bar_paused":
			s.ProgressBarPaused = value.(bool)
		case "countdown_start_time":
			s.CountdownStartTime = asTimePtr(value)
		case "countdown_duration":
			s.CountdownDuration = value.(int)
		case "current_checkpoint_index":
			s.CurrentCheckpointIndex = value.(int)
		case "status":
			s.Status = domainShipment.Status(value.(string))
		case "route_screenshot_url":
			s.RouteScreenshotURL = value.(string)
		case "sender_name":
			s.SenderName = value.(string)
		case "images":
			s.Images = value.([]string)
		}
	}
	return nil
}

func asTimePtr(v interface{}) *time.Time {
	if v == nil {
		return nil
	}
	t := v.(time.Time)
	return &t
}

func (r *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.shipments[id]; !ok {
		return domainShipment.ErrShipmentNotFound
	}
	delete(r.shipments, id)
	return nil
}

func (r *fakeRepository) UpdateCheckpointLocation(ctx context.Context, checkpointID uuid.UUID, location string) error {
	for _, s := range r.shipments {
		for i := range s.Checkpoints {
			if s.Checkpoints[i].ID == checkpointID {
				s.Checkpoints[i].Location = location
				return nil
			}
		}
	}
	return domainShipment.ErrShipmentNotFound
}

func (r *fakeRepository) UpdateCheckpointStatuses(ctx context.Context, shipmentID uuid.UUID, statuses map[uuid.UUID]domainShipment.CheckpointStatus) error {
	s, ok := r.shipments[shipmentID]
	if !ok {
		return domainShipment.ErrShipmentNotFound
	}
	for i := range s.Checkpoints {
		if st, ok := statuses[s.Checkpoints[i].ID]; ok {
			s.Checkpoints[i].Status = st
		}
	}
	return nil
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) {
	p.published = append(p.published, e)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.TapThreshold = 5
	cfg.Session.ExpiryMinutes = 120
	return cfg
}

func newTestService(t *testing.T) (*Service, *fakeRepository, *recordingPublisher, *fixedClock) {
	t.Helper()
	repo := newFakeRepository()
	pub := &recordingPublisher{}
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewService(repo, pub, nil, clock, testConfig()), repo, pub, clock
}

func validCreateRequest() *CreateShipmentRequest {
	return &CreateShipmentRequest{
		SenderName:      "Acme Exports",
		SenderPhone:     "+14155550100",
		ReceiverName:    "Jordan Blake",
		ReceiverPhone:   "+442071234567",
		ReceiverEmail:   "jordan@example.com",
		PickupLocation:  "Shanghai, CN",
		DeliveryAddress: "Rotterdam, NL",
		Transportation:  "Ocean Cargo",
		PackageName:     "Industrial pumps",
		Checkpoints: []string{
			"Shanghai Port", "Singapore", "Suez Canal", "Gibraltar", "Rotterdam Port",
			"", "", "", "", "", "", "",
		},
		Images: []string{
			"https://img.example.com/a.jpg",
			"https://img.example.com/b.jpg",
			"https://img.example.com/c.jpg",
		},
	}
}

func TestUnlock(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	t.Run("below threshold rejected", func(t *testing.T) {
		_, err := svc.Unlock(&UnlockRequest{Taps: 4})
		assert.ErrorIs(t, err, appErrors.ErrUnlockRejected)
	})

	t.Run("at threshold issues token", func(t *testing.T) {
		resp, err := svc.Unlock(&UnlockRequest{Taps: 5})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, domainShipment.PlaceholderAdminID, resp.AdminID)
	})
}

func TestCreateShipment(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request with blanks skipped", func(t *testing.T) {
		svc, _, pub, clock := newTestService(t)
		created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, validCreateRequest())
		require.NoError(t, err)

		assert.Len(t, created.Checkpoints, 5)
		assert.Equal(t, "Suez Canal", created.Checkpoints[2].Location)
		assert.Equal(t, 3, created.Checkpoints[2].CheckpointOrder)
		assert.Equal(t, domainShipment.StatusInTransit, created.Status)

		// Defaults: 24h window starting now.
		assert.Equal(t, 24*3600, created.CountdownDuration)
		require.NotNil(t, created.CountdownStartTime)
		assert.Equal(t, clock.now, *created.CountdownStartTime)

		require.Len(t, pub.published, 1)
		assert.Equal(t, events.TypeInsert, pub.published[0].Type)
		assert.Equal(t, created.ID, pub.published[0].ShipmentID)
	})

	t.Run("client tracking code honored", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		req := validCreateRequest()
		id := uuid.New()
		req.ID = &id
		created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, req)
		require.NoError(t, err)
		assert.Equal(t, id, created.ID)
	})

	t.Run("checkpoint count bounds", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		for _, tc := range []struct {
			count int
			ok    bool
		}{
			{4, false},
			{5, true},
			{12, true},
			{13, false},
		} {
			req := validCreateRequest()
			req.Checkpoints = make([]string, tc.count)
			for i := range req.Checkpoints {
				req.Checkpoints[i] = "Stop"
			}
			_, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, req)
			if tc.ok {
				assert.NoError(t, err, "count %d", tc.count)
			} else {
				assert.ErrorIs(t, err, domainShipment.ErrCheckpointCount, "count %d", tc.count)
			}
		}
	})

	t.Run("image count bounds", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		for _, tc := range []struct {
			count int
			ok    bool
		}{
			{2, false},
			{3, true},
			{6, true},
			{7, false},
		} {
			req := validCreateRequest()
			req.Images = make([]string, tc.count)
			for i := range req.Images {
				req.Images[i] = "https://img.example.com/p.jpg"
			}
			_, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, req)
			if tc.ok {
				assert.NoError(t, err, "count %d", tc.count)
			} else {
				assert.ErrorIs(t, err, domainShipment.ErrImageCount, "count %d", tc.count)
			}
		}
	})

	t.Run("malformed image URL rejected", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		req := validCreateRequest()
		req.Images[1] = "ftp://img.example.com/b.jpg"
		_, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, req)
		assert.ErrorIs(t, err, domainShipment.ErrInvalidImageURL)
	})

	t.Run("missing receiver phone rejected with field message", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		req := validCreateRequest()
		req.ReceiverPhone = "   "
		_, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, req)
		require.Error(t, err)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Message, "receiver phone")
	})
}

func TestPauseResume(t *testing.T) {
	ctx := context.Background()
	svc, _, _, clock := newTestService(t)

	created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, validCreateRequest())
	require.NoError(t, err)

	// Run half the window down, then pause.
	clock.now = clock.now.Add(12 * time.Hour)
	paused, err := svc.Pause(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, paused.Paused)
	require.NotNil(t, paused.PauseTimestamp)
	assert.Equal(t, clock.now, *paused.PauseTimestamp)

	// Two hours of pause must not move the percentage.
	clock.now = clock.now.Add(2 * time.Hour)
	assert.Equal(t, 50, tracking.Progress(paused, clock.now))

	resumed, err := svc.Resume(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, resumed.Paused)
	assert.Nil(t, resumed.PauseTimestamp)

	// The window shifted forward by the pause span, so progress resumes at 50%.
	assert.Equal(t, 50, tracking.Progress(resumed, clock.now))
	require.NotNil(t, resumed.CountdownStartTime)
	assert.Equal(t, created.CountdownStartTime.Add(2*time.Hour), *resumed.CountdownStartTime)
}

func TestResumeRequiresPause(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Resume(ctx, created.ID)
	assert.ErrorIs(t, err, domainShipment.ErrNotPaused)
}

func TestStopAndResumeFromStop(t *testing.T) {
	ctx := context.Background()
	svc, _, _, clock := newTestService(t)

	created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, validCreateRequest())
	require.NoError(t, err)

	t.Run("stop without reason rejected", func(t *testing.T) {
		_, err := svc.Stop(ctx, created.ID, &StopShipmentRequest{Reason: "  "})
		assert.ErrorIs(t, err, domainShipment.ErrStopReasonRequired)
	})

	clock.now = clock.now.Add(6 * time.Hour) // 25%
	stopped, err := svc.Stop(ctx, created.ID, &StopShipmentRequest{Reason: "customs hold"})
	require.NoError(t, err)
	assert.True(t, stopped.Stopped)
	assert.Equal(t, "customs hold", stopped.StopReason)
	assert.Equal(t, domainShipment.StatusStopped, stopped.Status)
	assert.Equal(t, "Stopped", stopped.DisplayStatus())

	// Frozen at the stop instant regardless of elapsed wall time.
	clock.now = clock.now.Add(10 * time.Hour)
	assert.Equal(t, 25, tracking.Progress(stopped, clock.now))

	t.Run("stopped shipment rejects pause and slider", func(t *testing.T) {
		_, err := svc.Pause(ctx, created.ID)
		assert.ErrorIs(t, err, domainShipment.ErrShipmentStopped)
		_, err = svc.SetProgress(ctx, created.ID, &SetProgressRequest{Percent: 80})
		assert.ErrorIs(t, err, domainShipment.ErrShipmentStopped)
	})

	resumed, err := svc.ResumeFromStop(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, resumed.Stopped)
	assert.Empty(t, resumed.StopReason)
	assert.Nil(t, resumed.StopTimestamp)
	assert.Equal(t, domainShipment.StatusInTransit, resumed.Status)

	// The stopped span is compensated: still 25% right after resuming.
	assert.Equal(t, 25, tracking.Progress(resumed, clock.now))
}

func TestTerminateAndReactivate(t *testing.T) {
	ctx := context.Background()
	svc, _, _, clock := newTestService(t)

	created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, validCreateRequest())
	require.NoError(t, err)

	terminated, err := svc.Terminate(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, terminated.Terminated)
	assert.Equal(t, "Terminated", terminated.DisplayStatus())

	// Terminated supersedes stopped in the display resolution.
	_, err = svc.Stop(ctx, created.ID, &StopShipmentRequest{Reason: "abandoned"})
	require.NoError(t, err)
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Terminated", got.DisplayStatus())

	_, err = svc.ResumeFromStop(ctx, created.ID)
	require.NoError(t, err)

	clock.now = clock.now.Add(3 * time.Hour)
	reactivated, err := svc.Reactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, reactivated.Terminated)
	assert.Nil(t, reactivated.TerminateTimestamp)
	assert.Equal(t, domainShipment.StatusInTransit, reactivated.Status)
}

func TestSelectCheckpoint(t *testing.T) {
	ctx := context.Background()
	svc, _, _, clock := newTestService(t)

	created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, validCreateRequest())
	require.NoError(t, err)

	t.Run("index out of range", func(t *testing.T) {
		_, err := svc.SelectCheckpoint(ctx, created.ID, &SelectCheckpointRequest{Index: 5})
		assert.ErrorIs(t, err, domainShipment.ErrCheckpointIndex)
		_, err = svc.SelectCheckpoint(ctx, created.ID, &SelectCheckpointRequest{Index: -1})
		assert.ErrorIs(t, err, domainShipment.ErrCheckpointIndex)
	})

	t.Run("window back-computed to checkpoint position", func(t *testing.T) {
		updated, err := svc.SelectCheckpoint(ctx, created.ID, &SelectCheckpointRequest{Index: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.CurrentCheckpointIndex)

		// Third of five checkpoints sits at 50%; reaching a position completes it.
		assert.Equal(t, 50, tracking.Progress(updated, clock.now))
		assert.Equal(t, domainShipment.CheckpointCompleted, updated.Checkpoints[0].Status)
		assert.Equal(t, domainShipment.CheckpointCompleted, updated.Checkpoints[2].Status)
		assert.Equal(t, domainShipment.CheckpointPending, updated.Checkpoints[4].Status)
	})
}

func TestSetProgress(t *testing.T) {
	ctx := context.Background()
	svc, _, _, clock := newTestService(t)

	created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.SetProgress(ctx, created.ID, &SetProgressRequest{Percent: 70})
	require.NoError(t, err)

	assert.Equal(t, 70, tracking.Progress(updated, clock.now))
	// 70% with five checkpoints: positions 17/33/50/67/83, nearest at-or-below is index 3.
	assert.Equal(t, 3, updated.CurrentCheckpointIndex)

	_, err = svc.SetProgress(ctx, created.ID, &SetProgressRequest{Percent: 101})
	assert.Error(t, err)
}

func TestToggleProgressBarPause(t *testing.T) {
	ctx := context.Background()
	svc, _, _, clock := newTestService(t)

	created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, validCreateRequest())
	require.NoError(t, err)

	clock.now = clock.now.Add(6 * time.Hour)
	toggled, err := svc.ToggleProgressBarPause(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.ProgressBarPaused)

	// Cosmetic only: the countdown keeps running underneath.
	clock.now = clock.now.Add(6 * time.Hour)
	assert.Equal(t, 50, tracking.Progress(toggled, clock.now))

	back, err := svc.ToggleProgressBarPause(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, back.ProgressBarPaused)
}

func TestEditCheckpoint(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.EditCheckpoint(ctx, created.ID, created.Checkpoints[1].ID, &EditCheckpointRequest{Location: "Port Klang"})
	require.NoError(t, err)
	assert.Equal(t, "Port Klang", updated.Checkpoints[1].Location)
	assert.Len(t, updated.Checkpoints, 5)

	_, err = svc.EditCheckpoint(ctx, created.ID, created.Checkpoints[1].ID, &EditCheckpointRequest{Location: " "})
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, pub, _ := newTestService(t)

	created, err := svc.Create(ctx, domainShipment.PlaceholderAdminID, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domainShipment.ErrShipmentNotFound)

	last := pub.published[len(pub.published)-1]
	assert.Equal(t, events.TypeDelete, last.Type)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domainShipment.ErrShipmentNotFound)
}
