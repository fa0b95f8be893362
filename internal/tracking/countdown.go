package tracking

import (
	"fmt"
	"math"
	"time"

	"freightline/internal/domain/shipment"
)

// CountdownProgress maps a countdown window onto a completion percentage.
// A non-positive duration means no countdown is configured and yields 0;
// callers fall back to the checkpoint-index estimate in that case.
func CountdownProgress(start time.Time, durationSec int, now time.Time) int {
	if durationSec <= 0 {
		return 0
	}

	elapsed := now.Sub(start)
	total := time.Duration(durationSec) * time.Second

	if elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return 100
	}

	return int(math.Round(float64(elapsed) / float64(total) * 100))
}

// FallbackProgress estimates the percentage from the manually set checkpoint
// index when no countdown window exists.
func FallbackProgress(index, count int) int {
	if count <= 0 || index < 0 {
		return 0
	}
	if index >= count {
		index = count - 1
	}
	return int(math.Round(float64(index+1) / float64(count+1) * 100))
}

// Progress derives the current completion percentage for a shipment. While
// paused or stopped, the freeze timestamp stands in for the wall clock so the
// percentage cannot advance.
func Progress(s *shipment.Shipment, now time.Time) int {
	if !s.HasCountdown() {
		return FallbackProgress(s.CurrentCheckpointIndex, len(s.Checkpoints))
	}
	return CountdownProgress(*s.CountdownStartTime, s.CountdownDuration, EffectiveNow(s, now))
}

// EffectiveNow picks the instant progress is computed against. Terminated
// supersedes stopped, stopped takes precedence over paused; a flag without a
// recorded timestamp falls through to the wall clock.
func EffectiveNow(s *shipment.Shipment, now time.Time) time.Time {
	switch {
	case s.Terminated && s.TerminateTimestamp != nil:
		return *s.TerminateTimestamp
	case s.Stopped && s.StopTimestamp != nil:
		return *s.StopTimestamp
	case s.Paused && s.PauseTimestamp != nil:
		return *s.PauseTimestamp
	default:
		return now
	}
}

// RemainingTime renders the countdown remainder for display, down to seconds
// near the end.
func RemainingTime(start time.Time, durationSec int, now time.Time) string {
	total := time.Duration(durationSec) * time.Second
	remaining := total - now.Sub(start)

	if remaining <= 0 {
		return "Completed"
	}

	totalSeconds := int(remaining / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm remaining", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds remaining", minutes, seconds)
	}
	return fmt.Sprintf("%ds remaining", seconds)
}

// StartForProgress back-computes the countdown start that would place the
// shipment at the given percentage right now. Manual checkpoint selection and
// the progress slider both write the window through this so the countdown and
// the checkpoint index never drift apart.
func StartForProgress(now time.Time, durationSec int, percent int) time.Time {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	elapsed := time.Duration(float64(percent) / 100 * float64(durationSec) * float64(time.Second))
	return now.Add(-elapsed)
}

// ShiftStartForward advances the countdown window by the span between
// frozenAt and resumedAt, so the percentage computed at the freeze instant
// stays valid at the resume instant. Used by resume-from-pause and
// resume-from-stop alike.
func ShiftStartForward(start, frozenAt, resumedAt time.Time) time.Time {
	held := resumedAt.Sub(frozenAt)
	if held < 0 {
		held = 0
	}
	return start.Add(held)
}
