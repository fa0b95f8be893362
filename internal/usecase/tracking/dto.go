package tracking

import (
	"time"

	"github.com/google/uuid"

	domainShipment "freightline/internal/domain/shipment"
	calc "freightline/internal/tracking"
)

// CheckpointView is a waypoint as the tracking page renders it. Position and
// status are derived, never read from the store.
type CheckpointView struct {
	ID              uuid.UUID `json:"id"`
	Location        string    `json:"location"`
	PositionPercent int       `json:"position_percent"`
	Status          string    `json:"status"`
}

// View is the public read model for one tracking lookup. It is the single
// place shipment state is translated for display; every derived field is
// computed here exactly once.
type View struct {
	ID             uuid.UUID `json:"id"`
	TrackingNumber string    `json:"tracking_number"`

	SenderName    string `json:"sender_name"`
	ReceiverName  string `json:"receiver_name"`
	ReceiverPhone string `json:"receiver_phone"`

	PickupLocation  string `json:"pickup_location"`
	DeliveryAddress string `json:"delivery_address"`
	Warehouse       string `json:"warehouse,omitempty"`

	Transportation string   `json:"transportation"`
	PackageName    string   `json:"package_name"`
	Images         []string `json:"images"`

	Progress          int    `json:"progress"`
	RemainingTime     string `json:"remaining_time"`
	Status            string `json:"status"`
	StopReason        string `json:"stop_reason,omitempty"`
	ProgressBarPaused bool   `json:"progress_bar_paused"`

	Checkpoints []CheckpointView `json:"checkpoints"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewView derives the tracking page model from a shipment at an instant.
func NewView(s *domainShipment.Shipment, now time.Time) *View {
	progress := calc.Progress(s, now)

	v := &View{
		ID:             s.ID,
		TrackingNumber: s.ID.String(),

		SenderName:    s.SenderName,
		ReceiverName:  s.ReceiverName,
		ReceiverPhone: s.ReceiverPhone,

		PickupLocation:  s.PickupLocation,
		DeliveryAddress: s.DeliveryAddress,
		Warehouse:       s.Warehouse,

		Transportation: string(s.Transportation),
		PackageName:    s.PackageName,
		Images:         s.Images,

		Progress:          progress,
		RemainingTime:     remainingTime(s, now),
		Status:            displayStatus(s, progress),
		StopReason:        s.StopReason,
		ProgressBarPaused: s.ProgressBarPaused,

		Checkpoints: checkpointViews(s, progress),

		UpdatedAt: s.UpdatedAt,
	}

	return v
}

// displayStatus resolves the one label the public page shows. The frozen
// states win over the derived delivered state.
func displayStatus(s *domainShipment.Shipment, progress int) string {
	switch {
	case s.Terminated:
		return "Terminated"
	case s.Stopped:
		return "Stopped"
	case s.Paused:
		return "Paused"
	case progress >= 100:
		return "Delivered"
	default:
		return "In Transit"
	}
}

func remainingTime(s *domainShipment.Shipment, now time.Time) string {
	if !s.HasCountdown() {
		return ""
	}
	return calc.RemainingTime(*s.CountdownStartTime, s.CountdownDuration, calc.EffectiveNow(s, now))
}

// checkpointViews derives positions and statuses for all checkpoints, then
// collapses flights to origin and destination only.
func checkpointViews(s *domainShipment.Shipment, progress int) []CheckpointView {
	n := len(s.Checkpoints)
	if n == 0 {
		return []CheckpointView{}
	}

	statuses := calc.AssignStatuses(n, progress, s.Stopped || s.Terminated)

	views := make([]CheckpointView, n)
	for i, cp := range s.Checkpoints {
		views[i] = CheckpointView{
			ID:              cp.ID,
			Location:        cp.Location,
			PositionPercent: calc.CheckpointPosition(i, n),
			Status:          string(statuses[i]),
		}
	}

	if s.Transportation.IsFlight() && n > 2 {
		return []CheckpointView{views[0], views[n-1]}
	}

	return views
}
