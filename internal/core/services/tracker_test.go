package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerInitialState(t *testing.T) {
	tracker := NewMetricsTracker()
	processed, avg, rate := tracker.Snapshot()

	assert.Zero(t, processed)
	assert.Zero(t, avg)
	assert.Equal(t, 1.0, rate)
}

func TestTrackerEWMA(t *testing.T) {
	tracker := NewMetricsTracker()

	tracker.RecordSuccess(2.0)
	_, avg, _ := tracker.Snapshot()
	// 0*0.9 + 2.0*0.1
	assert.InDelta(t, 0.2, avg, 1e-9)

	tracker.RecordSuccess(3.0)
	_, avg, _ = tracker.Snapshot()
	// 0.2*0.9 + 3.0*0.1
	assert.InDelta(t, 0.48, avg, 1e-9)
}

func TestTrackerSuccessRate(t *testing.T) {
	tracker := NewMetricsTracker()

	tracker.RecordSuccess(1.0)
	_, _, rate := tracker.Snapshot()
	assert.InDelta(t, 1.0, rate, 1e-9)

	tracker.RecordFailure()
	_, _, rate = tracker.Snapshot()
	// (1.0*1 + 0)/2
	assert.InDelta(t, 0.5, rate, 1e-9)

	tracker.RecordSuccess(1.0)
	_, _, rate = tracker.Snapshot()
	// (0.5*2 + 1)/3
	assert.InDelta(t, 2.0/3.0, rate, 1e-9)
}

func TestTrackerFailureDoesNotMoveAverage(t *testing.T) {
	tracker := NewMetricsTracker()
	tracker.RecordSuccess(5.0)
	_, before, _ := tracker.Snapshot()

	tracker.RecordFailure()
	processed, after, _ := tracker.Snapshot()

	assert.Equal(t, int64(2), processed)
	assert.Equal(t, before, after)
}
