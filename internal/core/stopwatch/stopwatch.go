package stopwatch

import (
	"sync"
	"time"

	"rotaclock/internal/core/clockfmt"
	"rotaclock/internal/core/model"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/logger"
)

// EventType defines the type of stopwatch event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventRefresh     EventType = "refresh"
	EventLap         EventType = "lap"
	EventReset       EventType = "reset"
)

// Lap is one recorded split.
type Lap struct {
	Index   int
	Elapsed time.Duration
	Display string
}

// Snapshot projects the stopwatch state onto the panel controls.
type Snapshot struct {
	Running          bool
	Elapsed          time.Duration
	Display          clockfmt.Parts
	PrimaryLabel     string
	SecondaryLabel   string
	SecondaryEnabled bool
	Laps             []Lap
}

// Event represents a stopwatch update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

const (
	labelStart = "Start"
	labelStop  = "Stop"
	labelLap   = "Lap"
	labelReset = "Reset"
)

// Deps lists the ports the stopwatch needs.
type Deps struct {
	Scheduler schedule.Scheduler
	Logger    *logger.Logger
}

// Stopwatch accumulates elapsed time across start/stop cycles and records laps.
type Stopwatch struct {
	mu               sync.Mutex
	config           model.StopwatchConfig
	scheduler        schedule.Scheduler
	log              *logger.Logger
	accumulated      time.Duration
	startedAt        time.Time
	running          bool
	laps             []Lap
	lapCounter       int
	secondaryEnabled bool
	refresh          schedule.Handle
	events           []chan Event
}

// New creates a stopped stopwatch at zero.
func New(deps Deps, config model.StopwatchConfig) (*Stopwatch, error) {
	if deps.Scheduler == nil {
		return nil, model.MissingDependency("stopwatch scheduler")
	}
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = 10 * time.Millisecond
	}
	return &Stopwatch{
		config:     config,
		scheduler:  deps.Scheduler,
		log:        deps.Logger.With("panel", "stopwatch"),
		lapCounter: 1,
	}, nil
}

// Subscribe registers a new observer channel.
func (watch *Stopwatch) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	watch.mu.Lock()
	watch.events = append(watch.events, ch)
	watch.mu.Unlock()
	return ch
}

// Snapshot returns the current projection computed from the clock.
func (watch *Stopwatch) Snapshot() Snapshot {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.snapshotLocked()
}

// Elapsed returns the total elapsed time.
func (watch *Stopwatch) Elapsed() time.Duration {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.elapsedLocked()
}

// Primary starts or stops the stopwatch.
func (watch *Stopwatch) Primary() {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if watch.running {
		watch.scheduler.Cancel(watch.refresh)
		watch.refresh = 0
		watch.accumulated += watch.scheduler.Now().Sub(watch.startedAt)
		watch.startedAt = time.Time{}
		watch.running = false
		watch.log.With("elapsed", watch.accumulated.String()).Debug("stopwatch stopped")
	} else {
		watch.startedAt = watch.scheduler.Now()
		watch.running = true
		watch.secondaryEnabled = true
		watch.refresh = watch.scheduler.Every(watch.config.RefreshInterval, watch.tick)
		watch.log.Debug("stopwatch started")
	}
	watch.emitLocked(EventStateChange)
}

// Secondary records a lap while running and resets while stopped.
func (watch *Stopwatch) Secondary() {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if watch.running {
		elapsed := watch.elapsedLocked()
		lap := Lap{
			Index:   watch.lapCounter,
			Elapsed: elapsed,
			Display: clockfmt.Elapsed(elapsed).String(),
		}
		watch.lapCounter++
		watch.laps = append([]Lap{lap}, watch.laps...)
		watch.emitLocked(EventLap)
		return
	}

	if !watch.secondaryEnabled {
		return
	}
	watch.accumulated = 0
	watch.startedAt = time.Time{}
	watch.lapCounter = 1
	watch.laps = nil
	watch.secondaryEnabled = false
	watch.emitLocked(EventReset)
}

func (watch *Stopwatch) tick() {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if !watch.running {
		return
	}
	watch.emitLocked(EventRefresh)
}

func (watch *Stopwatch) elapsedLocked() time.Duration {
	if !watch.running {
		return watch.accumulated
	}
	return watch.accumulated + watch.scheduler.Now().Sub(watch.startedAt)
}

func (watch *Stopwatch) snapshotLocked() Snapshot {
	elapsed := watch.elapsedLocked()
	snapshot := Snapshot{
		Running:          watch.running,
		Elapsed:          elapsed,
		Display:          clockfmt.Elapsed(elapsed),
		PrimaryLabel:     labelStart,
		SecondaryLabel:   labelReset,
		SecondaryEnabled: watch.secondaryEnabled,
		Laps:             append([]Lap(nil), watch.laps...),
	}
	if watch.running {
		snapshot.PrimaryLabel = labelStop
		snapshot.SecondaryLabel = labelLap
	}
	return snapshot
}

func (watch *Stopwatch) emitLocked(eventType EventType) {
	event := Event{
		Type:     eventType,
		Snapshot: watch.snapshotLocked(),
		At:       watch.scheduler.Now(),
	}
	for _, ch := range watch.events {
		select {
		case ch <- event:
		default:
		}
	}
}
