package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"freightline/internal/domain/shipment"
)

func TestCountdownProgress(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		start       time.Time
		durationSec int
		want        int
	}{
		{"not started yet", now.Add(1 * time.Hour), 3600, 0},
		{"exactly at start", now, 3600, 0},
		{"halfway through 24h", now.Add(-12 * time.Hour), 86400, 50},
		{"quarter through", now.Add(-6 * time.Hour), 86400, 25},
		{"at the end", now.Add(-1 * time.Hour), 3600, 100},
		{"past the end", now.Add(-48 * time.Hour), 86400, 100},
		{"zero duration", now.Add(-1 * time.Hour), 0, 0},
		{"negative duration", now.Add(-1 * time.Hour), -60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountdownProgress(tt.start, tt.durationSec, now))
		})
	}
}

func TestCountdownProgressMonotonic(t *testing.T) {
	start := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	durationSec := 86400

	prev := 0
	for elapsed := 0; elapsed <= durationSec+3600; elapsed += 600 {
		now := start.Add(time.Duration(elapsed) * time.Second)
		p := CountdownProgress(start, durationSec, now)
		assert.GreaterOrEqual(t, p, prev, "progress went backwards at elapsed=%d", elapsed)
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 100)
		prev = p
	}
}

func TestFallbackProgress(t *testing.T) {
	tests := []struct {
		name  string
		index int
		count int
		want  int
	}{
		{"no checkpoints", 0, 0, 0},
		{"first of five", 0, 5, 17},
		{"third of five", 2, 5, 50},
		{"last of five", 4, 5, 83},
		{"index beyond count clamps", 9, 5, 83},
		{"negative index", -1, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackProgress(tt.index, tt.count))
		})
	}
}

func TestProgressUsesFreezeTimestamps(t *testing.T) {
	start := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	pausedAt := start.Add(12 * time.Hour)
	now := start.Add(20 * time.Hour)

	s := &shipment.Shipment{
		CountdownDuration:  86400,
		CountdownStartTime: &start,
		Paused:             true,
		PauseTimestamp:     &pausedAt,
	}

	// Eight hours pass while paused; the percentage must not move.
	assert.Equal(t, 50, Progress(s, now))

	// Stop takes precedence over pause for the freeze point.
	stoppedAt := start.Add(6 * time.Hour)
	s.Stopped = true
	s.StopTimestamp = &stoppedAt
	assert.Equal(t, 25, Progress(s, now))
}

func TestProgressFallsBackWithoutCountdown(t *testing.T) {
	s := &shipment.Shipment{
		CurrentCheckpointIndex: 2,
		Checkpoints:            make([]shipment.Checkpoint, 5),
	}
	assert.Equal(t, 50, Progress(s, time.Now()))
}

func TestShiftStartForward(t *testing.T) {
	start := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	pausedAt := start.Add(12 * time.Hour)

	t.Run("zero-length pause leaves the window untouched", func(t *testing.T) {
		assert.Equal(t, start, ShiftStartForward(start, pausedAt, pausedAt))
	})

	t.Run("window shifts by exactly the pause duration", func(t *testing.T) {
		resumedAt := pausedAt.Add(2 * time.Hour)
		newStart := ShiftStartForward(start, pausedAt, resumedAt)
		assert.Equal(t, start.Add(2*time.Hour), newStart)

		// Percentage right after resume matches the percentage at the pause
		// instant: the pause was lossless.
		before := CountdownProgress(start, 86400, pausedAt)
		after := CountdownProgress(newStart, 86400, resumedAt)
		assert.Equal(t, before, after)
		assert.Equal(t, 50, after)
	})

	t.Run("clock running backwards is treated as zero", func(t *testing.T) {
		assert.Equal(t, start, ShiftStartForward(start, pausedAt, pausedAt.Add(-time.Minute)))
	})
}

func TestStartForProgress(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	for _, percent := range []int{0, 17, 50, 83, 100} {
		start := StartForProgress(now, 86400, percent)
		assert.Equal(t, percent, CountdownProgress(start, 86400, now), "percent=%d", percent)
	}

	t.Run("out-of-range percent clamps", func(t *testing.T) {
		assert.Equal(t, now, StartForProgress(now, 86400, -10))
		assert.Equal(t, 100, CountdownProgress(StartForProgress(now, 86400, 140), 86400, now))
	})
}

func TestRemainingTime(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		start       time.Time
		durationSec int
		want        string
	}{
		{"hours left", now.Add(-12 * time.Hour), 86400, "12h 0m remaining"},
		{"minutes left", now.Add(-50 * time.Minute), 3600, "10m 0s remaining"},
		{"seconds left", now.Add(-3555 * time.Second), 3600, "45s remaining"},
		{"elapsed", now.Add(-2 * time.Hour), 3600, "Completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemainingTime(tt.start, tt.durationSec, now))
		})
	}
}
