package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"rotaclock/internal/core/router"
)

var rotationKeys = map[tea.KeyType]router.Orientation{
	tea.KeyCtrlUp:    router.PortraitPrimary,
	tea.KeyCtrlDown:  router.PortraitSecondary,
	tea.KeyCtrlRight: router.LandscapeSecondary,
	tea.KeyCtrlLeft:  router.LandscapePrimary,
}

// Update handles Bubbletea messages and drives the widget components.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		if msg.fn != nil {
			msg.fn()
		}
		m.syncAlert()
		return m, nil
	case pulseMsg:
		m.highlighted = msg.on && m.alerting
		return m, nil
	case spinner.TickMsg:
		if !m.weatherLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyCtrlT:
		m.deps.Theme.Toggle()
		return m, nil
	}

	if orientation, ok := rotationKeys[msg.Type]; ok {
		m.deps.Rotator.Rotate(orientation)
		m.focusActive()
		return m, m.panelCmd()
	}

	var cmd tea.Cmd
	switch m.deps.Router.Active() {
	case router.PanelAlarm:
		cmd = m.alarmKey(msg)
	case router.PanelTimer:
		cmd = m.timerKey(msg)
	case router.PanelStopwatch:
		m.stopwatchKey(msg)
	}
	m.syncAlert()
	return m, cmd
}

func (m *Model) alarmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		if err := m.deps.Alarm.Set(m.alarmInput.Value()); err != nil {
			m.deps.Logger.With("error", err.Error()).Debug("input rejected")
		}
		return nil
	case tea.KeyCtrlX:
		m.deps.Alarm.Clear()
		return nil
	}
	if !m.deps.Alarm.Snapshot().InputEnabled {
		return nil
	}
	var cmd tea.Cmd
	m.alarmInput, cmd = m.alarmInput.Update(msg)
	return cmd
}

func (m *Model) timerKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		m.timerFocus = (m.timerFocus + 1) % 2
		m.focusActive()
		return nil
	case tea.KeyEnter:
		if err := m.deps.Countdown.Start(m.minutesInput.Value(), m.secondsInput.Value()); err != nil {
			m.deps.Logger.With("error", err.Error()).Debug("input rejected")
		}
		return nil
	case tea.KeyCtrlP:
		m.deps.Countdown.PauseOrResume()
		return nil
	case tea.KeyCtrlR:
		m.deps.Countdown.Reset()
		m.minutesInput.Reset()
		m.secondsInput.Reset()
		return nil
	}
	if !m.deps.Countdown.Snapshot().InputsEnabled {
		return nil
	}
	var cmd tea.Cmd
	if m.timerFocus == focusSeconds {
		m.secondsInput, cmd = m.secondsInput.Update(msg)
	} else {
		m.minutesInput, cmd = m.minutesInput.Update(msg)
	}
	return cmd
}

func (m *Model) stopwatchKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.deps.Stopwatch.Primary()
	case tea.KeySpace:
		m.deps.Stopwatch.Secondary()
	}
}
