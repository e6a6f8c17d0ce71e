package countdown

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"rotaclock/internal/core/model"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/logger"
)

var (
	// ErrEmptyDuration indicates the requested duration was not positive.
	ErrEmptyDuration = errors.New("countdown duration must be positive")
	// ErrNotIdle indicates a countdown is already in progress.
	ErrNotIdle = errors.New("countdown already started")
	// ErrDurationTooLong indicates minutes and seconds do not fit in a countdown.
	ErrDurationTooLong = errors.New("countdown duration too long")
)

const (
	statusEmpty   = "Enter minutes or seconds to start."
	statusTooLong = "That duration is too long."
)

const maxMinutes = (math.MaxInt - 59) / 60

// Deps lists the ports the countdown needs.
type Deps struct {
	Scheduler schedule.Scheduler
	Sound     model.Sound
	Logger    *logger.Logger
}

// Countdown is a single countdown timer with pause and reset.
type Countdown struct {
	mu        sync.Mutex
	config    model.CountdownConfig
	scheduler schedule.Scheduler
	sound     model.Sound
	log       *logger.Logger
	state     State
	remaining int
	run       schedule.Handle
	status    string
	events    []chan Event
}

// New creates an idle countdown.
func New(deps Deps, config model.CountdownConfig) (*Countdown, error) {
	if deps.Scheduler == nil {
		return nil, model.MissingDependency("countdown scheduler")
	}
	if deps.Sound == nil {
		return nil, model.MissingDependency("countdown sound")
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	return &Countdown{
		config:    config,
		scheduler: deps.Scheduler,
		sound:     deps.Sound,
		log:       deps.Logger.With("panel", "timer"),
		state:     StateIdle,
	}, nil
}

// ParseField reads a duration field as a non-negative integer. Anything else counts as zero.
func ParseField(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

// Subscribe registers a new observer channel.
func (countdown *Countdown) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	countdown.mu.Lock()
	countdown.events = append(countdown.events, ch)
	countdown.mu.Unlock()
	return ch
}

// Snapshot returns the current projection.
func (countdown *Countdown) Snapshot() Snapshot {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.snapshotLocked()
}

// Start parses the minute and second fields and starts counting down.
func (countdown *Countdown) Start(minutes, seconds string) error {
	total, ok := TotalSeconds(ParseField(minutes), ParseField(seconds))
	if !ok {
		countdown.mu.Lock()
		defer countdown.mu.Unlock()
		if countdown.state != StateIdle {
			return ErrNotIdle
		}
		countdown.status = statusTooLong
		countdown.emitLocked(EventStatus)
		return ErrDurationTooLong
	}
	return countdown.StartSeconds(total)
}

// TotalSeconds returns minutes*60+seconds, or false when the sum does not fit in an int.
func TotalSeconds(minutes, seconds int) (int, bool) {
	if minutes < 0 || seconds < 0 || minutes > maxMinutes {
		return 0, false
	}
	if seconds > math.MaxInt-minutes*60 {
		return 0, false
	}
	return minutes*60 + seconds, true
}

// StartSeconds starts counting down from total seconds.
func (countdown *Countdown) StartSeconds(total int) error {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()

	if countdown.state != StateIdle {
		return ErrNotIdle
	}
	if total <= 0 {
		countdown.status = statusEmpty
		countdown.emitLocked(EventStatus)
		return ErrEmptyDuration
	}

	countdown.remaining = total
	countdown.status = ""
	countdown.state = StateRunning
	countdown.run = countdown.scheduler.Every(countdown.config.TickInterval, countdown.tick)
	countdown.emitLocked(EventStateChange)
	countdown.log.With("seconds", total).Info("countdown started")
	return nil
}

// PauseOrResume toggles a running countdown. It is a no-op when idle or finished.
func (countdown *Countdown) PauseOrResume() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()

	switch countdown.state {
	case StateRunning:
		countdown.cancelRunLocked()
		countdown.state = StatePaused
	case StatePaused:
		countdown.state = StateRunning
		countdown.run = countdown.scheduler.Every(countdown.config.TickInterval, countdown.tick)
	default:
		return
	}
	countdown.emitLocked(EventStateChange)
}

// Reset returns to idle from any state and silences the alert.
func (countdown *Countdown) Reset() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()

	countdown.cancelRunLocked()
	countdown.remaining = 0
	countdown.sound.Pause()
	countdown.sound.Rewind()
	countdown.state = StateIdle
	countdown.status = ""
	countdown.emitLocked(EventReset)
}

func (countdown *Countdown) tick() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()

	if countdown.state != StateRunning {
		return
	}
	countdown.remaining--
	if countdown.remaining > 0 {
		countdown.emitLocked(EventTick)
		return
	}

	countdown.remaining = 0
	countdown.cancelRunLocked()
	countdown.state = StateFinished
	countdown.sound.SetLoop(true)
	if err := countdown.sound.Play(); err != nil {
		countdown.log.Warn(err, "timer tone failed to start")
	}
	countdown.emitLocked(EventStateChange)
	countdown.log.Info("countdown finished")
}

func (countdown *Countdown) cancelRunLocked() {
	if countdown.run != 0 {
		countdown.scheduler.Cancel(countdown.run)
		countdown.run = 0
	}
}

func (countdown *Countdown) snapshotLocked() Snapshot {
	return project(countdown.state, countdown.remaining, countdown.status)
}

func (countdown *Countdown) emitLocked(eventType EventType) {
	event := Event{
		Type:     eventType,
		Snapshot: countdown.snapshotLocked(),
		At:       countdown.scheduler.Now(),
	}
	for _, ch := range countdown.events {
		select {
		case ch <- event:
		default:
		}
	}
}
