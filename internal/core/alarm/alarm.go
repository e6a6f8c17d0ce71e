package alarm

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"rotaclock/internal/core/clockfmt"
	"rotaclock/internal/core/model"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/logger"
)

var (
	// ErrInvalidTime indicates the time-of-day input was empty or unparseable.
	ErrInvalidTime = errors.New("invalid alarm time")
	// ErrAlreadyArmed indicates an alarm is pending or ringing.
	ErrAlreadyArmed = errors.New("alarm already set")
)

const (
	statusInvalid = "Please choose a valid alarm time."
	statusCleared = "Alarm cleared."
	statusRinging = "Wake up!"
)

var timeLayouts = []string{"15:04", "15:04:05"}

// Deps lists the ports the alarm needs.
type Deps struct {
	Scheduler schedule.Scheduler
	Sound     model.Sound
	Logger    *logger.Logger
}

// Alarm holds a single pending wake-up.
type Alarm struct {
	mu           sync.Mutex
	config       model.AlarmConfig
	scheduler    schedule.Scheduler
	sound        model.Sound
	log          *logger.Logger
	state        State
	target       time.Time
	pending      schedule.Handle
	status       string
	statusHandle schedule.Handle
	events       []chan Event
}

// New creates an idle alarm.
func New(deps Deps, config model.AlarmConfig) (*Alarm, error) {
	if deps.Scheduler == nil {
		return nil, model.MissingDependency("alarm scheduler")
	}
	if deps.Sound == nil {
		return nil, model.MissingDependency("alarm sound")
	}
	if config.StatusClearDelay <= 0 {
		config.StatusClearDelay = 3 * time.Second
	}
	return &Alarm{
		config:    config,
		scheduler: deps.Scheduler,
		sound:     deps.Sound,
		log:       deps.Logger.With("panel", "alarm"),
		state:     StateIdle,
	}, nil
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS on a 24-hour clock.
func ParseTimeOfDay(input string) (hour, minute, second int, err error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return 0, 0, 0, fmt.Errorf("%w: empty", ErrInvalidTime)
	}
	for _, layout := range timeLayouts {
		parsed, parseErr := time.Parse(layout, value)
		if parseErr == nil {
			return parsed.Hour(), parsed.Minute(), parsed.Second(), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
}

// NextOccurrence returns the next instant strictly after now at the given time of day,
// rolling forward to tomorrow when today's occurrence is not in the future.
func NextOccurrence(now time.Time, hour, minute, second int) (time.Time, time.Duration) {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, 0, now.Location())
	if !target.After(now) {
		// Same wall-clock time tomorrow, which is not 24h away across a DST change.
		target = time.Date(now.Year(), now.Month(), now.Day()+1, hour, minute, second, 0, now.Location())
	}
	return target, target.Sub(now)
}

// Subscribe registers a new observer channel.
func (alarm *Alarm) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	alarm.mu.Lock()
	alarm.events = append(alarm.events, ch)
	alarm.mu.Unlock()
	return ch
}

// Snapshot returns the current projection.
func (alarm *Alarm) Snapshot() Snapshot {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()
	return alarm.snapshotLocked()
}

// Set arms the alarm for the next occurrence of input.
func (alarm *Alarm) Set(input string) error {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()

	if alarm.state != StateIdle {
		return ErrAlreadyArmed
	}

	hour, minute, second, err := ParseTimeOfDay(input)
	if err != nil {
		alarm.setStatusLocked(statusInvalid, false)
		alarm.emitLocked(EventStatus)
		return err
	}

	target, delay := NextOccurrence(alarm.scheduler.Now(), hour, minute, second)
	alarm.target = target
	alarm.pending = alarm.scheduler.Once(delay, alarm.ring)
	alarm.state = StateArmed
	alarm.setStatusLocked(fmt.Sprintf("Alarm set for %s, rings in %s.", clockfmt.TimeOfDay(target), clockfmt.Until(delay)), false)
	alarm.emitLocked(EventStateChange)

	alarm.log.WithFields(map[string]any{
		"target": target.Format(time.RFC3339),
		"delay":  delay.String(),
	}).Info("alarm armed")
	return nil
}

// Clear cancels a pending alarm or silences a ringing one. It is a no-op when idle.
func (alarm *Alarm) Clear() {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()

	if alarm.state == StateIdle {
		return
	}
	if alarm.pending != 0 {
		alarm.scheduler.Cancel(alarm.pending)
		alarm.pending = 0
	}
	alarm.sound.Pause()
	alarm.sound.Rewind()

	alarm.state = StateIdle
	alarm.target = time.Time{}
	alarm.setStatusLocked(statusCleared, true)
	alarm.emitLocked(EventStateChange)
	alarm.log.Info("alarm cleared")
}

func (alarm *Alarm) ring() {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()

	if alarm.state != StateArmed {
		return
	}
	alarm.pending = 0
	alarm.state = StateRinging

	alarm.sound.SetLoop(true)
	if err := alarm.sound.Play(); err != nil {
		alarm.log.Warn(err, "alarm tone failed to start")
	}

	alarm.setStatusLocked(statusRinging, false)
	alarm.emitLocked(EventStateChange)
	alarm.log.Info("alarm ringing")
}

func (alarm *Alarm) setStatusLocked(status string, transient bool) {
	if alarm.statusHandle != 0 {
		alarm.scheduler.Cancel(alarm.statusHandle)
		alarm.statusHandle = 0
	}
	alarm.status = status
	if transient {
		alarm.statusHandle = alarm.scheduler.Once(alarm.config.StatusClearDelay, alarm.expireStatus)
	}
}

func (alarm *Alarm) expireStatus() {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()
	alarm.statusHandle = 0
	alarm.status = ""
	alarm.emitLocked(EventStatus)
}

func (alarm *Alarm) snapshotLocked() Snapshot {
	return project(alarm.state, alarm.target, alarm.status)
}

func (alarm *Alarm) emitLocked(eventType EventType) {
	event := Event{
		Type:     eventType,
		Snapshot: alarm.snapshotLocked(),
		At:       alarm.scheduler.Now(),
	}
	for _, ch := range alarm.events {
		select {
		case ch <- event:
		default:
		}
	}
}
