package countdown

import (
	"time"

	"rotaclock/internal/core/clockfmt"
)

// State represents the countdown lifecycle.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// EventType defines the type of countdown event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventReset       EventType = "reset"
	EventStatus      EventType = "status"
)

// Event represents a countdown update for observers.
// EventReset tells renderers to clear their duration inputs.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Snapshot projects the countdown state onto the panel controls.
type Snapshot struct {
	State         State
	Remaining     int
	Display       string
	Status        string
	InputsEnabled bool
	StartEnabled  bool
	PauseEnabled  bool
	PauseLabel    string
	ResetEnabled  bool
	Finished      bool
}

const (
	labelPause  = "Pause"
	labelResume = "Resume"
)

func project(state State, remaining int, status string) Snapshot {
	snapshot := Snapshot{
		State:         state,
		Remaining:     remaining,
		Display:       clockfmt.Countdown(remaining),
		Status:        status,
		InputsEnabled: state == StateIdle,
		StartEnabled:  state == StateIdle,
		PauseEnabled:  state == StateRunning || state == StatePaused,
		PauseLabel:    labelPause,
		ResetEnabled:  state != StateIdle,
		Finished:      state == StateFinished,
	}
	if state == StatePaused {
		snapshot.PauseLabel = labelResume
	}
	return snapshot
}
