package router

import (
	"errors"
	"image/color"
	"sync"
	"time"

	"rotaclock/internal/logger"
)

// ErrNoOrientationSource indicates no orientation source accepted a registration.
var ErrNoOrientationSource = errors.New("no orientation source available")

// Orientation is the physical rotation reported by the platform.
type Orientation string

const (
	PortraitPrimary    Orientation = "portrait-primary"
	PortraitSecondary  Orientation = "portrait-secondary"
	LandscapePrimary   Orientation = "landscape-primary"
	LandscapeSecondary Orientation = "landscape-secondary"
	Unknown            Orientation = "unknown"
)

// Panel names one of the four mutually exclusive views.
type Panel string

const (
	PanelAlarm     Panel = "alarm"
	PanelTimer     Panel = "timer"
	PanelStopwatch Panel = "stopwatch"
	PanelWeather   Panel = "weather"
)

// Panels lists every panel in display order.
var Panels = []Panel{PanelAlarm, PanelTimer, PanelStopwatch, PanelWeather}

// PanelFor maps an orientation to its panel. Unrecognised readings fall back to the alarm.
func PanelFor(orientation Orientation) Panel {
	switch orientation {
	case PortraitPrimary:
		return PanelAlarm
	case PortraitSecondary:
		return PanelTimer
	case LandscapeSecondary:
		return PanelStopwatch
	case LandscapePrimary:
		return PanelWeather
	default:
		return PanelAlarm
	}
}

// Source delivers orientation readings.
// Register returns false when the source is unavailable on this platform.
type Source interface {
	Name() string
	Current() Orientation
	Register(notify func()) bool
}

// Event reports a routing decision.
type Event struct {
	Orientation Orientation
	Panel       Panel
	Previous    Panel
	ChromeColor color.NRGBA
	At          time.Time
}

// Router keeps exactly one panel active.
type Router struct {
	mu      sync.Mutex
	log     *logger.Logger
	palette map[Panel]color.NRGBA
	active  Panel
	source  Source
	events  []chan Event
}

// New creates a router with the alarm panel active.
func New(palette map[Panel]color.NRGBA, log *logger.Logger) *Router {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Router{
		log:     log,
		palette: palette,
		active:  PanelAlarm,
	}
}

// DefaultPalette returns each panel's background color, reused as the chrome hint.
func DefaultPalette() map[Panel]color.NRGBA {
	return map[Panel]color.NRGBA{
		PanelAlarm:     {R: 0x1f, G: 0x3b, B: 0x73, A: 0xff},
		PanelTimer:     {R: 0x7a, G: 0x2e, B: 0x3b, A: 0xff},
		PanelStopwatch: {R: 0x1e, G: 0x5f, B: 0x4a, A: 0xff},
		PanelWeather:   {R: 0x2a, G: 0x6f, B: 0x97, A: 0xff},
	}
}

// Subscribe registers a new observer channel.
func (router *Router) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	router.mu.Lock()
	router.events = append(router.events, ch)
	router.mu.Unlock()
	return ch
}

// Start registers with the first source that accepts and routes once with its current reading.
// Without any source the router routes the unknown orientation and reports ErrNoOrientationSource.
func (router *Router) Start(sources ...Source) (Source, error) {
	for _, source := range sources {
		if source == nil {
			continue
		}
		current := source
		if !current.Register(func() { router.Route(current.Current()) }) {
			router.log.With("source", current.Name()).Debug("orientation source unavailable")
			continue
		}
		router.mu.Lock()
		router.source = current
		router.mu.Unlock()
		router.log.With("source", current.Name()).Info("orientation source registered")
		router.Route(current.Current())
		return current, nil
	}

	router.Route(Unknown)
	return nil, ErrNoOrientationSource
}

// Route activates the panel for orientation and hides the rest.
func (router *Router) Route(orientation Orientation) Event {
	router.mu.Lock()
	panel := PanelFor(orientation)
	event := Event{
		Orientation: orientation,
		Panel:       panel,
		Previous:    router.active,
		ChromeColor: router.palette[panel],
		At:          time.Now(),
	}
	router.active = panel
	router.emitLocked(event)
	router.mu.Unlock()

	router.log.WithFields(map[string]any{
		"orientation": string(orientation),
		"panel":       string(panel),
	}).Debug("routed")
	return event
}

// Active returns the visible panel.
func (router *Router) Active() Panel {
	router.mu.Lock()
	defer router.mu.Unlock()
	return router.active
}

// Visible reports whether panel is the active one.
func (router *Router) Visible(panel Panel) bool {
	return router.Active() == panel
}

// ChromeColor returns the color hint of the active panel.
func (router *Router) ChromeColor() color.NRGBA {
	router.mu.Lock()
	defer router.mu.Unlock()
	return router.palette[router.active]
}

func (router *Router) emitLocked(event Event) {
	for _, ch := range router.events {
		select {
		case ch <- event:
		default:
		}
	}
}
