package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rotaclock/internal/core/clockfmt"
	"rotaclock/internal/core/router"
	"rotaclock/internal/core/stopwatch"
	"rotaclock/internal/core/weather"
)

const maxLapRows = 8

var panelTitles = map[router.Panel]string{
	router.PanelAlarm:     "Alarm",
	router.PanelTimer:     "Timer",
	router.PanelStopwatch: "Stopwatch",
	router.PanelWeather:   "Weather",
}

var panelHelp = map[router.Panel]string{
	router.PanelAlarm:     "enter set • ctrl+x clear/stop",
	router.PanelTimer:     "tab switch field • enter start • ctrl+p pause/resume • ctrl+r reset",
	router.PanelStopwatch: "enter start/stop • space lap/reset",
	router.PanelWeather:   "",
}

// View renders the active panel under a chrome bar colored for it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	panel := m.deps.Router.Active()

	sections := []string{m.chrome(panel)}
	if banner := m.alertBanner(); banner != "" {
		sections = append(sections, banner)
	}

	var body string
	switch panel {
	case router.PanelTimer:
		body = m.timerView()
	case router.PanelStopwatch:
		body = m.stopwatchView()
	case router.PanelWeather:
		body = m.weatherView()
	default:
		body = m.alarmView()
	}
	sections = append(sections, bodyStyle.Render(body), helpStyle.Render(m.help(panel)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) chrome(panel router.Panel) string {
	bar := lipgloss.NewStyle().Background(hexColor(m.deps.Router.ChromeColor()))
	title := titleStyle.Inherit(bar).Render(fmt.Sprintf("Rotaclock • %s", panelTitles[panel]))
	variant := themeStyle.Inherit(bar).Render(string(m.deps.Theme.Current()))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(variant)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, bar.Render(strings.Repeat(" ", gap)), variant)
}

func (m Model) alertBanner() string {
	var text string
	switch {
	case m.deps.Alarm.Snapshot().Alarming:
		text = "⏰ Wake up! (alarm panel: ctrl+x)"
	case m.deps.Countdown.Snapshot().Finished:
		text = "⏳ Time is up! (timer panel: ctrl+r)"
	default:
		return ""
	}
	if m.highlighted {
		return alertStyle.Render(text)
	}
	return alertDimmed.Render(text)
}

func (m Model) alarmView() string {
	now := m.deps.Scheduler.Now()
	snapshot := m.deps.Alarm.Snapshot()
	lines := []string{
		clockStyle.Render(clockfmt.Clock(now)),
		dateStyle.Render(clockfmt.Date(now)),
		"",
		m.alarmInput.View(),
		button("Set alarm", snapshot.SetEnabled) + " " + button(snapshot.ClearLabel, snapshot.ClearEnabled),
	}
	if snapshot.Status != "" {
		lines = append(lines, statusStyle.Render(snapshot.Status))
	}
	return strings.Join(lines, "\n")
}

func (m Model) timerView() string {
	snapshot := m.deps.Countdown.Snapshot()
	lines := []string{
		bigStyle.Render(snapshot.Display),
		m.minutesInput.View(),
		m.secondsInput.View(),
		button("Start", snapshot.StartEnabled) + " " + button(snapshot.PauseLabel, snapshot.PauseEnabled) + " " + button("Reset", snapshot.ResetEnabled),
	}
	if snapshot.Status != "" {
		lines = append(lines, statusStyle.Render(snapshot.Status))
	}
	return strings.Join(lines, "\n")
}

func (m Model) stopwatchView() string {
	snapshot := m.deps.Stopwatch.Snapshot()
	lines := []string{
		bigStyle.Render(snapshot.Display.String()),
		button(snapshot.PrimaryLabel, true) + " " + button(snapshot.SecondaryLabel, snapshot.SecondaryEnabled),
	}
	lines = append(lines, lapLines(snapshot.Laps)...)
	return strings.Join(lines, "\n")
}

func lapLines(laps []stopwatch.Lap) []string {
	lines := make([]string, 0, len(laps))
	for i, lap := range laps {
		if i == maxLapRows {
			lines = append(lines, lapStyle.Render(fmt.Sprintf("… %d more", len(laps)-maxLapRows)))
			break
		}
		lines = append(lines, lapStyle.Render(fmt.Sprintf("Lap %d: %s", lap.Index, lap.Display)))
	}
	return lines
}

func (m Model) weatherView() string {
	snapshot := m.deps.Weather.Snapshot()
	switch snapshot.State {
	case weather.StateLoaded:
		conditions := snapshot.Conditions
		return strings.Join([]string{
			clockStyle.Render(conditions.City),
			bigStyle.Render(fmt.Sprintf("%d°C", conditions.Temperature)),
			conditions.Description,
		}, "\n")
	case weather.StateFailed:
		return errorStyle.Render(snapshot.Error)
	case weather.StateLocating:
		return m.spinner.View() + " Locating…"
	case weather.StateFetching:
		return m.spinner.View() + " Fetching weather…"
	default:
		return "Rotate here to load the weather."
	}
}

func (m Model) help(panel router.Panel) string {
	parts := []string{"ctrl+←↑→↓ rotate", "ctrl+t theme", "esc quit"}
	if extra := panelHelp[panel]; extra != "" {
		parts = append([]string{extra}, parts...)
	}
	return strings.Join(parts, " • ")
}

func (m Model) weatherLoading() bool {
	state := m.deps.Weather.Snapshot().State
	return state == weather.StateLocating || state == weather.StateFetching
}
