package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rotaclock/internal/core/model"
	"rotaclock/internal/logger"
)

var (
	// ErrLocationDenied indicates location access was refused.
	ErrLocationDenied = errors.New("location permission denied")
	// ErrLocationUnavailable indicates no location provider could answer.
	ErrLocationUnavailable = errors.New("location unavailable")
)

// VisibleThreshold is the visible fraction that triggers the fetch sequence.
const VisibleThreshold = 0.1

// Locator resolves the device position once.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Fetcher loads current conditions for a position.
type Fetcher interface {
	Current(ctx context.Context, at Coordinates) (Conditions, error)
}

// State represents the weather panel lifecycle.
type State string

const (
	StateIdle     State = "idle"
	StateLocating State = "locating"
	StateFetching State = "fetching"
	StateLoaded   State = "loaded"
	StateFailed   State = "failed"
)

// Snapshot projects the panel state onto the card.
type Snapshot struct {
	State      State
	Loaded     bool
	Conditions Conditions
	Error      string
}

// Event represents a weather panel update for observers.
type Event struct {
	Snapshot Snapshot
	At       time.Time
}

// Deps lists the ports the weather panel needs.
// Dispatch runs continuations on the UI loop; nil runs them inline.
type Deps struct {
	Locator  Locator
	Fetcher  Fetcher
	Dispatch func(func())
	Logger   *logger.Logger
}

// Panel runs the locate-then-fetch sequence at most once.
type Panel struct {
	mu         sync.Mutex
	locator    Locator
	fetcher    Fetcher
	dispatch   func(func())
	log        *logger.Logger
	triggered  bool
	state      State
	conditions Conditions
	errMsg     string
	done       chan struct{}
	events     []chan Event
}

// NewPanel creates an idle weather panel.
func NewPanel(deps Deps) (*Panel, error) {
	if deps.Locator == nil {
		return nil, model.MissingDependency("weather locator")
	}
	if deps.Fetcher == nil {
		return nil, model.MissingDependency("weather fetcher")
	}
	dispatch := deps.Dispatch
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Panel{
		locator:  deps.Locator,
		fetcher:  deps.Fetcher,
		dispatch: dispatch,
		log:      deps.Logger.With("panel", "weather"),
		state:    StateIdle,
		done:     make(chan struct{}),
	}, nil
}

// Subscribe registers a new observer channel.
func (panel *Panel) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	panel.mu.Lock()
	panel.events = append(panel.events, ch)
	panel.mu.Unlock()
	return ch
}

// Snapshot returns the current projection.
func (panel *Panel) Snapshot() Snapshot {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	return panel.snapshotLocked()
}

// Done is closed once the sequence has finished, successfully or not.
func (panel *Panel) Done() <-chan struct{} {
	return panel.done
}

// Visible reports the visible fraction of the panel. The first report at or above
// VisibleThreshold starts the sequence; later reports never start another one.
func (panel *Panel) Visible(ctx context.Context, fraction float64) bool {
	if fraction < VisibleThreshold {
		return false
	}

	panel.mu.Lock()
	if panel.triggered {
		panel.mu.Unlock()
		return false
	}
	panel.triggered = true
	panel.state = StateLocating
	panel.emitLocked()
	panel.mu.Unlock()

	go panel.run(ctx)
	return true
}

func (panel *Panel) run(ctx context.Context) {
	coords, err := panel.locator.Locate(ctx)
	if err != nil {
		panel.log.Warn(err, "geolocation failed")
		panel.finish(func() {
			panel.failLocked(fmt.Sprintf("Unable to retrieve your location: %s", locationReason(err)))
		})
		return
	}

	panel.dispatch(func() {
		panel.mu.Lock()
		panel.state = StateFetching
		panel.emitLocked()
		panel.mu.Unlock()
	})

	conditions, err := panel.fetcher.Current(ctx, coords)
	if err != nil {
		panel.log.Warn(err, "weather fetch failed")
		panel.finish(func() {
			panel.failLocked(fmt.Sprintf("Weather unavailable: %v", err))
		})
		return
	}

	panel.finish(func() {
		panel.state = StateLoaded
		panel.conditions = conditions
		panel.errMsg = ""
		panel.log.With("city", conditions.City).Info("weather loaded")
	})
}

func (panel *Panel) finish(apply func()) {
	panel.dispatch(func() {
		panel.mu.Lock()
		apply()
		panel.emitLocked()
		panel.mu.Unlock()
		close(panel.done)
	})
}

func (panel *Panel) failLocked(message string) {
	panel.state = StateFailed
	panel.errMsg = message
}

func locationReason(err error) string {
	switch {
	case errors.Is(err, ErrLocationDenied):
		return "permission denied"
	case errors.Is(err, ErrLocationUnavailable):
		return "position unavailable"
	default:
		return err.Error()
	}
}

func (panel *Panel) snapshotLocked() Snapshot {
	return Snapshot{
		State:      panel.state,
		Loaded:     panel.state == StateLoaded,
		Conditions: panel.conditions,
		Error:      panel.errMsg,
	}
}

func (panel *Panel) emitLocked() {
	event := Event{Snapshot: panel.snapshotLocked(), At: time.Now()}
	for _, ch := range panel.events {
		select {
		case ch <- event:
		default:
		}
	}
}
