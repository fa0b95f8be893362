package tracking

import (
	"math"

	"freightline/internal/domain/shipment"
)

// CheckpointPosition places the i-th of n checkpoints along the route:
// round((i+1)/(n+1)*100). Positions are evenly spaced with a margin on both
// ends, never exactly 0 or 100, and are recomputed on every read.
func CheckpointPosition(i, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Round(float64(i+1) / float64(n+1) * 100))
}

// Tolerance is the window below a checkpoint's position within which it shows
// as "current": half a segment, but at least 5 points.
func Tolerance(n int) int {
	half := int(math.Round(100 / float64(n+1) / 2))
	if half < 5 {
		return 5
	}
	return half
}

// AssignStatuses derives the display status of each of n checkpoints from the
// current percentage. When the shipment is stopped, the first checkpoint left
// pending is overridden to "stopped" so attention lands where the route halted;
// at most one checkpoint carries that override.
func AssignStatuses(n, progress int, stopped bool) []shipment.CheckpointStatus {
	statuses := make([]shipment.CheckpointStatus, n)
	w := Tolerance(n)

	for i := 0; i < n; i++ {
		pos := CheckpointPosition(i, n)
		switch {
		case progress >= pos:
			statuses[i] = shipment.CheckpointCompleted
		case progress >= pos-w:
			statuses[i] = shipment.CheckpointCurrent
		default:
			statuses[i] = shipment.CheckpointPending
		}
	}

	if stopped {
		for i := 0; i < n; i++ {
			if statuses[i] == shipment.CheckpointPending {
				statuses[i] = shipment.CheckpointStopped
				break
			}
		}
	}

	return statuses
}

// NearestCheckpointIndex maps a percentage back to the last checkpoint whose
// position it has reached. Used when the progress slider moves so the stored
// index follows the countdown window.
func NearestCheckpointIndex(percent, n int) int {
	index := 0
	for i := 0; i < n; i++ {
		if percent >= CheckpointPosition(i, n) {
			index = i
		}
	}
	return index
}
