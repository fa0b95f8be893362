package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"freightline/internal/domain/shipment"
)

func TestCheckpointPositionSpacing(t *testing.T) {
	for n := shipment.MinCheckpoints; n <= shipment.MaxCheckpoints; n++ {
		prev := 0
		for i := 0; i < n; i++ {
			pos := CheckpointPosition(i, n)
			assert.Greater(t, pos, 0, "n=%d i=%d", n, i)
			assert.Less(t, pos, 100, "n=%d i=%d", n, i)
			assert.Greater(t, pos, prev, "positions must be strictly increasing, n=%d i=%d", n, i)
			prev = pos
		}
	}
}

func TestCheckpointPositionValues(t *testing.T) {
	// Five checkpoints: 17, 33, 50, 67, 83.
	want := []int{17, 33, 50, 67, 83}
	for i, w := range want {
		assert.Equal(t, w, CheckpointPosition(i, 5))
	}

	assert.Equal(t, 0, CheckpointPosition(0, 0))
}

func TestTolerance(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{5, 8},   // round(100/6/2)
		{9, 5},   // round(100/10/2)
		{12, 5},  // floor of half a segment is below 5
		{3, 13},  // round(100/4/2)
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Tolerance(tt.n), "n=%d", tt.n)
	}
}

func TestAssignStatuses(t *testing.T) {
	// Five checkpoints at 17/33/50/67/83, tolerance 8.
	t.Run("halfway", func(t *testing.T) {
		statuses := AssignStatuses(5, 50, false)
		assert.Equal(t, []shipment.CheckpointStatus{
			shipment.CheckpointCompleted,
			shipment.CheckpointCompleted,
			shipment.CheckpointCompleted,
			shipment.CheckpointPending,
			shipment.CheckpointPending,
		}, statuses)
	})

	t.Run("inside the tolerance window", func(t *testing.T) {
		statuses := AssignStatuses(5, 60, false)
		assert.Equal(t, shipment.CheckpointCurrent, statuses[3])
	})

	t.Run("nothing reached", func(t *testing.T) {
		statuses := AssignStatuses(5, 0, false)
		for _, st := range statuses {
			assert.Equal(t, shipment.CheckpointPending, st)
		}
	})

	t.Run("everything reached", func(t *testing.T) {
		statuses := AssignStatuses(5, 100, false)
		for _, st := range statuses {
			assert.Equal(t, shipment.CheckpointCompleted, st)
		}
	})

	t.Run("completed never crosses the tolerance line", func(t *testing.T) {
		for p := 0; p <= 100; p++ {
			w := Tolerance(5)
			for i, st := range AssignStatuses(5, p, false) {
				pos := CheckpointPosition(i, 5)
				if st == shipment.CheckpointCompleted {
					assert.LessOrEqual(t, pos, p, "p=%d i=%d", p, i)
				}
				if pos > p+w {
					assert.Equal(t, shipment.CheckpointPending, st, "p=%d i=%d", p, i)
				}
			}
		}
	})
}

func TestAssignStatusesStoppedOverride(t *testing.T) {
	statuses := AssignStatuses(5, 50, true)

	stoppedCount := 0
	for _, st := range statuses {
		if st == shipment.CheckpointStopped {
			stoppedCount++
		}
	}
	assert.Equal(t, 1, stoppedCount, "exactly one checkpoint carries the stopped override")
	assert.Equal(t, shipment.CheckpointStopped, statuses[3], "the first pending checkpoint is flagged")
	assert.Equal(t, shipment.CheckpointPending, statuses[4])
}

func TestAssignStatusesStoppedWithNothingPending(t *testing.T) {
	statuses := AssignStatuses(5, 100, true)
	for _, st := range statuses {
		assert.Equal(t, shipment.CheckpointCompleted, st)
	}
}

func TestNearestCheckpointIndex(t *testing.T) {
	tests := []struct {
		percent int
		want    int
	}{
		{0, 0},
		{17, 0},
		{32, 0},
		{33, 1},
		{50, 2},
		{82, 3},
		{100, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NearestCheckpointIndex(tt.percent, 5), "percent=%d", tt.percent)
	}
}
