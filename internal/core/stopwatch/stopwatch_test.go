package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotaclock/internal/core/model"
	"rotaclock/internal/core/schedule"
)

func newStopwatch(t *testing.T) (*Stopwatch, *schedule.Manual) {
	t.Helper()
	manual := schedule.NewManual(time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC))
	watch, err := New(Deps{Scheduler: manual}, model.StopwatchConfig{RefreshInterval: 10 * time.Millisecond})
	require.NoError(t, err)
	return watch, manual
}

func TestNew_RequiresScheduler(t *testing.T) {
	_, err := New(Deps{}, model.StopwatchConfig{})
	assert.ErrorIs(t, err, model.ErrMissingDependency)
}

func TestInitialState(t *testing.T) {
	watch, _ := newStopwatch(t)
	snapshot := watch.Snapshot()
	assert.False(t, snapshot.Running)
	assert.Equal(t, "00:00:00.00", snapshot.Display.String())
	assert.Equal(t, "Start", snapshot.PrimaryLabel)
	assert.Equal(t, "Reset", snapshot.SecondaryLabel)
	assert.False(t, snapshot.SecondaryEnabled)
}

func TestStartStop_AccumulatesWallClock(t *testing.T) {
	watch, manual := newStopwatch(t)

	watch.Primary()
	snapshot := watch.Snapshot()
	assert.True(t, snapshot.Running)
	assert.Equal(t, "Stop", snapshot.PrimaryLabel)
	assert.Equal(t, "Lap", snapshot.SecondaryLabel)
	assert.True(t, snapshot.SecondaryEnabled)

	manual.Advance(1234 * time.Millisecond)
	watch.Primary()
	first := watch.Elapsed()
	assert.Equal(t, 1234*time.Millisecond, first)
	assert.Equal(t, 0, manual.Pending(), "refresh tick cancelled on stop")

	manual.Advance(time.Hour)
	assert.Equal(t, first, watch.Elapsed(), "no time accrues while stopped")

	watch.Primary()
	manual.Advance(766 * time.Millisecond)
	watch.Primary()
	assert.Equal(t, 2*time.Second, watch.Elapsed())
	assert.GreaterOrEqual(t, watch.Elapsed(), first)

	snapshot = watch.Snapshot()
	assert.Equal(t, "Start", snapshot.PrimaryLabel)
	assert.Equal(t, "Reset", snapshot.SecondaryLabel)
	assert.True(t, snapshot.SecondaryEnabled)
}

func TestRefresh_EmitsFromClockNotTickCount(t *testing.T) {
	watch, manual := newStopwatch(t)
	events := watch.Subscribe(256)

	watch.Primary()
	<-events
	manual.Advance(55 * time.Millisecond)

	var last Event
	count := 0
	for len(events) > 0 {
		last = <-events
		count++
	}
	assert.Equal(t, 5, count)
	assert.Equal(t, EventRefresh, last.Type)
	assert.Equal(t, "05", last.Snapshot.Display.Centiseconds)
	assert.Equal(t, 55*time.Millisecond, watch.Elapsed())
}

func TestSecondary_RecordsLapsMostRecentFirst(t *testing.T) {
	watch, manual := newStopwatch(t)
	watch.Primary()

	manual.Advance(1500 * time.Millisecond)
	watch.Secondary()
	manual.Advance(2 * time.Second)
	watch.Secondary()

	laps := watch.Snapshot().Laps
	require.Len(t, laps, 2)
	assert.Equal(t, 2, laps[0].Index)
	assert.Equal(t, "00:00:03.50", laps[0].Display)
	assert.Equal(t, 1, laps[1].Index)
	assert.Equal(t, 1500*time.Millisecond, laps[1].Elapsed)

	watch.Primary()
	watch.Primary()
	manual.Advance(time.Second)
	watch.Secondary()
	assert.Equal(t, 3, watch.Snapshot().Laps[0].Index, "counter persists until reset")
}

func TestSecondary_ResetWhileStopped(t *testing.T) {
	watch, manual := newStopwatch(t)
	watch.Primary()
	manual.Advance(3 * time.Second)
	watch.Secondary()
	watch.Primary()

	watch.Secondary()

	snapshot := watch.Snapshot()
	assert.Equal(t, time.Duration(0), snapshot.Elapsed)
	assert.Empty(t, snapshot.Laps)
	assert.False(t, snapshot.SecondaryEnabled)
	assert.Equal(t, "00:00:00.00", snapshot.Display.String())

	watch.Primary()
	manual.Advance(time.Second)
	watch.Secondary()
	assert.Equal(t, 1, watch.Snapshot().Laps[0].Index)
}

func TestSnapshot_LapsAreCopied(t *testing.T) {
	watch, manual := newStopwatch(t)
	watch.Primary()
	manual.Advance(time.Second)
	watch.Secondary()

	snapshot := watch.Snapshot()
	snapshot.Laps[0].Index = 99
	assert.Equal(t, 1, watch.Snapshot().Laps[0].Index)
}
