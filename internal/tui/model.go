package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rotaclock/internal/core/alarm"
	"rotaclock/internal/core/countdown"
	"rotaclock/internal/core/model"
	"rotaclock/internal/core/router"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/core/stopwatch"
	"rotaclock/internal/core/theme"
	"rotaclock/internal/core/weather"
	"rotaclock/internal/logger"
	"rotaclock/internal/ui/animation"
)

// Rotator selects an orientation on devices without a rotation sensor.
type Rotator interface {
	Rotate(orientation router.Orientation)
}

// Deps lists the components the terminal rendition drives.
type Deps struct {
	Router    *router.Router
	Rotator   Rotator
	Alarm     *alarm.Alarm
	Countdown *countdown.Countdown
	Stopwatch *stopwatch.Stopwatch
	Weather   *weather.Panel
	Theme     *theme.Controller
	Scheduler schedule.Scheduler
	Bridge    *Bridge
	Logger    *logger.Logger
}

const (
	focusMinutes = iota
	focusSeconds
)

// Model is the bubbletea state of the terminal widget.
type Model struct {
	deps         Deps
	ctx          context.Context
	pulse        *animation.Engine
	alarmInput   textinput.Model
	minutesInput textinput.Model
	secondsInput textinput.Model
	timerFocus   int
	spinner      spinner.Model
	highlighted  bool
	alerting     bool
	width        int
	quitting     bool
}

// NewModel builds the terminal model. The clock header refreshes through the scheduler
// until ctx ends.
func NewModel(ctx context.Context, deps Deps, config model.WidgetConfig) (Model, error) {
	switch {
	case deps.Router == nil:
		return Model{}, model.MissingDependency("router")
	case deps.Rotator == nil:
		return Model{}, model.MissingDependency("rotator")
	case deps.Alarm == nil:
		return Model{}, model.MissingDependency("alarm")
	case deps.Countdown == nil:
		return Model{}, model.MissingDependency("countdown")
	case deps.Stopwatch == nil:
		return Model{}, model.MissingDependency("stopwatch")
	case deps.Weather == nil:
		return Model{}, model.MissingDependency("weather panel")
	case deps.Theme == nil:
		return Model{}, model.MissingDependency("theme controller")
	case deps.Scheduler == nil:
		return Model{}, model.MissingDependency("scheduler")
	case deps.Bridge == nil:
		return Model{}, model.MissingDependency("bridge")
	}

	alarmInput := textinput.New()
	alarmInput.Placeholder = "07:30"
	alarmInput.CharLimit = 8
	alarmInput.Prompt = "Alarm time: "

	minutesInput := textinput.New()
	minutesInput.Placeholder = "min"
	minutesInput.CharLimit = 4
	minutesInput.Prompt = "Minutes: "

	secondsInput := textinput.New()
	secondsInput.Placeholder = "sec"
	secondsInput.CharLimit = 4
	secondsInput.Prompt = "Seconds: "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerTint

	bridge := deps.Bridge
	m := Model{
		deps:         deps,
		ctx:          ctx,
		alarmInput:   alarmInput,
		minutesInput: minutesInput,
		secondsInput: secondsInput,
		spinner:      s,
		pulse: animation.New(animation.ConfigFor(config.PulseInterval), func(on bool) {
			bridge.Send(pulseMsg{on: on})
		}),
	}
	// The callback only has to wake the update loop; View reads the clock itself.
	clock := deps.Scheduler.Every(config.ClockRefresh, func() {})
	pulse := m.pulse
	go func() {
		<-ctx.Done()
		deps.Scheduler.Cancel(clock)
		pulse.Stop()
	}()

	m.focusActive()
	return m, nil
}

// Init starts cursor blinking and loads the weather when it is the first panel.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.panelCmd())
}

// ApplyTheme is the theme.Controller hook for the terminal.
func ApplyTheme(variant theme.Variant) {
	lipgloss.SetHasDarkBackground(variant == theme.Dark)
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// focusActive focuses the inputs that belong to the visible panel.
func (m *Model) focusActive() {
	m.alarmInput.Blur()
	m.minutesInput.Blur()
	m.secondsInput.Blur()

	switch m.deps.Router.Active() {
	case router.PanelAlarm:
		m.alarmInput.Focus()
	case router.PanelTimer:
		if m.timerFocus == focusSeconds {
			m.secondsInput.Focus()
		} else {
			m.minutesInput.Focus()
		}
	}
}

// panelCmd starts the weather sequence the first time its panel is shown.
func (m Model) panelCmd() tea.Cmd {
	if m.deps.Router.Active() != router.PanelWeather {
		return nil
	}
	if m.deps.Weather.Visible(m.ctx, 1) {
		return m.spinner.Tick
	}
	return nil
}

// syncAlert follows the alarm and countdown alert flags with the pulse.
func (m *Model) syncAlert() {
	alerting := m.deps.Alarm.Snapshot().Alarming || m.deps.Countdown.Snapshot().Finished
	if alerting == m.alerting {
		return
	}
	m.alerting = alerting
	if !alerting {
		m.highlighted = false
	}
	m.pulse.Sync(m.ctx, alerting)
}
