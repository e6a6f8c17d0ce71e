package alarm

import "time"

// State represents the alarm lifecycle.
type State string

const (
	StateIdle    State = "idle"
	StateArmed   State = "armed"
	StateRinging State = "ringing"
)

// EventType defines the type of alarm event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventStatus      EventType = "status"
)

// Event represents an alarm update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Snapshot projects the alarm state onto the panel controls.
type Snapshot struct {
	State        State
	Target       time.Time
	Status       string
	InputEnabled bool
	SetEnabled   bool
	ClearEnabled bool
	ClearLabel   string
	Alarming     bool
}

const (
	labelClear = "Clear"
	labelStop  = "Stop"
)

func project(state State, target time.Time, status string) Snapshot {
	snapshot := Snapshot{
		State:        state,
		Target:       target,
		Status:       status,
		InputEnabled: state == StateIdle,
		SetEnabled:   state == StateIdle,
		ClearEnabled: state != StateIdle,
		ClearLabel:   labelClear,
		Alarming:     state == StateRinging,
	}
	if state == StateRinging {
		snapshot.ClearLabel = labelStop
	}
	return snapshot
}
