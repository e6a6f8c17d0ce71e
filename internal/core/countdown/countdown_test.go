package countdown

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotaclock/internal/core/model"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/core/soundtest"
)

func newCountdown(t *testing.T) (*Countdown, *schedule.Manual, *soundtest.Recorder) {
	t.Helper()
	manual := schedule.NewManual(time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC))
	sound := &soundtest.Recorder{}
	countdown, err := New(Deps{Scheduler: manual, Sound: sound}, model.CountdownConfig{TickInterval: time.Second})
	require.NoError(t, err)
	return countdown, manual, sound
}

func TestParseField(t *testing.T) {
	tests := map[string]int{
		"":    0,
		"  5": 5,
		"-3":  0,
		"abc": 0,
		"90":  90,
		"1.5": 0,
	}
	for input, expected := range tests {
		assert.Equal(t, expected, ParseField(input), input)
	}
}

func TestNew_RequiresPorts(t *testing.T) {
	_, err := New(Deps{}, model.CountdownConfig{})
	assert.ErrorIs(t, err, model.ErrMissingDependency)
}

func TestStart_ZeroDurationIsNoop(t *testing.T) {
	countdown, manual, _ := newCountdown(t)

	err := countdown.Start("0", "0")
	assert.ErrorIs(t, err, ErrEmptyDuration)

	snapshot := countdown.Snapshot()
	assert.Equal(t, StateIdle, snapshot.State)
	assert.True(t, snapshot.StartEnabled)
	assert.Equal(t, statusEmpty, snapshot.Status)
	assert.Equal(t, 0, manual.Pending())

	assert.ErrorIs(t, countdown.Start("", "junk"), ErrEmptyDuration)
}

func TestTotalSeconds(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		seconds int
		want    int
		ok      bool
	}{
		{name: "minute and a half", minutes: 1, seconds: 30, want: 90, ok: true},
		{name: "largest minutes", minutes: maxMinutes, seconds: 59, want: maxMinutes*60 + 59, ok: true},
		{name: "minutes overflow", minutes: maxMinutes + 1, ok: false},
		{name: "seconds overflow", minutes: maxMinutes, seconds: math.MaxInt, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TotalSeconds(tt.minutes, tt.seconds)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStart_HugeMinutesRejected(t *testing.T) {
	countdown, manual, _ := newCountdown(t)

	for _, minutes := range []string{"307445734561825861", "153722867280912931"} {
		err := countdown.Start(minutes, "0")
		assert.ErrorIs(t, err, ErrDurationTooLong, minutes)
	}

	snapshot := countdown.Snapshot()
	assert.Equal(t, StateIdle, snapshot.State)
	assert.Equal(t, statusTooLong, snapshot.Status)
	assert.Equal(t, 0, manual.Pending())
}

func TestStart_RunsToFinished(t *testing.T) {
	countdown, manual, sound := newCountdown(t)

	require.NoError(t, countdown.Start("1", "30"))
	snapshot := countdown.Snapshot()
	assert.Equal(t, StateRunning, snapshot.State)
	assert.Equal(t, 90, snapshot.Remaining)
	assert.Equal(t, "01:30", snapshot.Display)
	assert.False(t, snapshot.InputsEnabled)
	assert.False(t, snapshot.StartEnabled)
	assert.True(t, snapshot.PauseEnabled)
	assert.True(t, snapshot.ResetEnabled)

	assert.ErrorIs(t, countdown.Start("0", "5"), ErrNotIdle)

	manual.Advance(89 * time.Second)
	snapshot = countdown.Snapshot()
	assert.Equal(t, StateRunning, snapshot.State)
	assert.Equal(t, 1, snapshot.Remaining)
	assert.Equal(t, "00:01", snapshot.Display)

	manual.Advance(time.Second)
	snapshot = countdown.Snapshot()
	assert.Equal(t, StateFinished, snapshot.State)
	assert.True(t, snapshot.Finished)
	assert.Equal(t, "00:00", snapshot.Display)
	assert.False(t, snapshot.PauseEnabled)
	assert.True(t, sound.Playing())
	assert.True(t, sound.Looping())
	assert.Equal(t, 0, manual.Pending())

	countdown.PauseOrResume()
	assert.Equal(t, StateFinished, countdown.Snapshot().State)
}

func TestPauseResume_PreservesRemaining(t *testing.T) {
	countdown, manual, _ := newCountdown(t)
	require.NoError(t, countdown.StartSeconds(10))
	manual.Advance(3 * time.Second)

	countdown.PauseOrResume()
	snapshot := countdown.Snapshot()
	assert.Equal(t, StatePaused, snapshot.State)
	assert.Equal(t, "Resume", snapshot.PauseLabel)
	assert.Equal(t, 7, snapshot.Remaining)

	manual.Advance(time.Minute)
	assert.Equal(t, 7, countdown.Snapshot().Remaining)

	countdown.PauseOrResume()
	snapshot = countdown.Snapshot()
	assert.Equal(t, StateRunning, snapshot.State)
	assert.Equal(t, "Pause", snapshot.PauseLabel)

	manual.Advance(2 * time.Second)
	assert.Equal(t, 5, countdown.Snapshot().Remaining)
}

func TestPauseOrResume_IdleIsNoop(t *testing.T) {
	countdown, manual, _ := newCountdown(t)
	countdown.PauseOrResume()
	assert.Equal(t, StateIdle, countdown.Snapshot().State)
	assert.Equal(t, 0, manual.Pending())
}

func TestReset_FromEveryState(t *testing.T) {
	prepare := map[string]func(*Countdown, *schedule.Manual){
		"idle": func(*Countdown, *schedule.Manual) {},
		"running": func(countdown *Countdown, _ *schedule.Manual) {
			_ = countdown.StartSeconds(30)
		},
		"paused": func(countdown *Countdown, manual *schedule.Manual) {
			_ = countdown.StartSeconds(30)
			manual.Advance(4 * time.Second)
			countdown.PauseOrResume()
		},
		"finished": func(countdown *Countdown, manual *schedule.Manual) {
			_ = countdown.StartSeconds(2)
			manual.Advance(2 * time.Second)
		},
	}

	for name, setup := range prepare {
		t.Run(name, func(t *testing.T) {
			countdown, manual, sound := newCountdown(t)
			setup(countdown, manual)
			events := countdown.Subscribe(4)

			countdown.Reset()

			snapshot := countdown.Snapshot()
			assert.Equal(t, StateIdle, snapshot.State)
			assert.Equal(t, 0, snapshot.Remaining)
			assert.False(t, snapshot.Finished)
			assert.True(t, snapshot.InputsEnabled)
			assert.True(t, snapshot.StartEnabled)
			assert.False(t, snapshot.PauseEnabled)
			assert.Equal(t, "Pause", snapshot.PauseLabel)
			assert.False(t, sound.Playing())
			assert.True(t, sound.AtStart())
			assert.Equal(t, 0, manual.Pending())

			event := <-events
			assert.Equal(t, EventReset, event.Type)
		})
	}
}

func TestFinish_PlaybackFailureStillFinishes(t *testing.T) {
	countdown, manual, sound := newCountdown(t)
	sound.PlayErr = errors.New("no audio device")
	require.NoError(t, countdown.StartSeconds(1))

	manual.Advance(time.Second)

	assert.True(t, countdown.Snapshot().Finished)
}
