package panels

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"rotaclock/internal/core/alarm"
	"rotaclock/internal/core/clockfmt"
	"rotaclock/internal/core/schedule"
)

// AlarmView renders the alarm panel with its wall-clock header.
type AlarmView struct {
	alarm       *alarm.Alarm
	scheduler   schedule.Scheduler
	refresh     time.Duration
	clockHandle schedule.Handle
	clockText   *canvas.Text
	dateLabel   *widget.Label
	entry       *widget.Entry
	setButton   *widget.Button
	clearButton *widget.Button
	status      *widget.Label
	background  *canvas.Rectangle
	root        fyne.CanvasObject
}

// NewAlarmView builds the alarm panel.
func NewAlarmView(target *alarm.Alarm, scheduler schedule.Scheduler, clockRefresh time.Duration, background color.Color) *AlarmView {
	view := &AlarmView{
		alarm:      target,
		scheduler:  scheduler,
		refresh:    clockRefresh,
		clockText:  canvas.NewText("--:--:--", color.White),
		dateLabel:  widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		entry:      widget.NewEntry(),
		status:     widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		background: canvas.NewRectangle(background),
	}
	view.clockText.TextSize = 48
	view.clockText.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	view.clockText.Alignment = fyne.TextAlignCenter

	view.entry.SetPlaceHolder("07:30")
	view.entry.OnSubmitted = func(string) { view.Set() }
	view.setButton = widget.NewButton("Set alarm", view.Set)
	view.clearButton = widget.NewButton("Clear", view.Clear)

	content := container.NewVBox(
		layout.NewSpacer(),
		view.clockText,
		view.dateLabel,
		container.NewPadded(view.entry),
		container.NewGridWithColumns(2, view.setButton, view.clearButton),
		view.status,
		layout.NewSpacer(),
	)
	view.root = container.NewStack(view.background, container.NewPadded(content))
	view.Refresh()
	return view
}

// Root returns the panel's canvas object.
func (view *AlarmView) Root() fyne.CanvasObject {
	return view.root
}

// StartClock refreshes the header on the scheduler until StopClock.
func (view *AlarmView) StartClock() {
	view.StopClock()
	view.tickClock()
	view.clockHandle = view.scheduler.Every(view.refresh, view.tickClock)
}

// StopClock stops the header refresh.
func (view *AlarmView) StopClock() {
	if view.clockHandle != 0 {
		view.scheduler.Cancel(view.clockHandle)
		view.clockHandle = 0
	}
}

// Set arms the alarm from the entry. Failures are already shown in the status line.
func (view *AlarmView) Set() {
	_ = view.alarm.Set(view.entry.Text)
	view.Refresh()
}

// Clear disarms or silences the alarm.
func (view *AlarmView) Clear() {
	view.alarm.Clear()
	view.Refresh()
}

// Refresh renders the current alarm snapshot.
func (view *AlarmView) Refresh() {
	snapshot := view.alarm.Snapshot()
	setEnabled(view.entry, snapshot.InputEnabled)
	setEnabled(view.setButton, snapshot.SetEnabled)
	setEnabled(view.clearButton, snapshot.ClearEnabled)
	view.clearButton.SetText(snapshot.ClearLabel)
	view.status.SetText(snapshot.Status)
}

// SetBackground recolors the panel.
func (view *AlarmView) SetBackground(fill color.Color) {
	view.background.FillColor = fill
	view.background.Refresh()
}

func (view *AlarmView) tickClock() {
	now := view.scheduler.Now()
	view.clockText.Text = clockfmt.Clock(now)
	view.clockText.Refresh()
	view.dateLabel.SetText(clockfmt.Date(now))
}

type disableable interface {
	Enable()
	Disable()
}

func setEnabled(control disableable, enabled bool) {
	if enabled {
		control.Enable()
		return
	}
	control.Disable()
}
