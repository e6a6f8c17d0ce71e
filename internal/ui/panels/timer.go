package panels

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"rotaclock/internal/core/countdown"
)

// TimerView renders the countdown panel.
type TimerView struct {
	countdown   *countdown.Countdown
	minutes     *widget.Entry
	seconds     *widget.Entry
	display     *canvas.Text
	startButton *widget.Button
	pauseButton *widget.Button
	resetButton *widget.Button
	status      *widget.Label
	finished    *widget.Label
	background  *canvas.Rectangle
	root        fyne.CanvasObject
}

// NewTimerView builds the timer panel.
func NewTimerView(target *countdown.Countdown, background color.Color) *TimerView {
	view := &TimerView{
		countdown:  target,
		minutes:    widget.NewEntry(),
		seconds:    widget.NewEntry(),
		display:    canvas.NewText("00:00", color.White),
		status:     widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		finished:   widget.NewLabelWithStyle("Time is up!", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		background: canvas.NewRectangle(background),
	}
	view.display.TextSize = 56
	view.display.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	view.display.Alignment = fyne.TextAlignCenter

	view.minutes.SetPlaceHolder("min")
	view.seconds.SetPlaceHolder("sec")
	view.seconds.OnSubmitted = func(string) { view.Start() }
	view.startButton = widget.NewButton("Start", view.Start)
	view.pauseButton = widget.NewButton("Pause", view.PauseOrResume)
	view.resetButton = widget.NewButton("Reset", view.Reset)

	content := container.NewVBox(
		layout.NewSpacer(),
		view.display,
		view.finished,
		container.NewGridWithColumns(2, view.minutes, view.seconds),
		container.NewGridWithColumns(3, view.startButton, view.pauseButton, view.resetButton),
		view.status,
		layout.NewSpacer(),
	)
	view.root = container.NewStack(view.background, container.NewPadded(content))
	view.Refresh()
	return view
}

// Root returns the panel's canvas object.
func (view *TimerView) Root() fyne.CanvasObject {
	return view.root
}

// Start begins a countdown from the two inputs.
func (view *TimerView) Start() {
	_ = view.countdown.Start(view.minutes.Text, view.seconds.Text)
	view.Refresh()
}

// PauseOrResume toggles the running countdown.
func (view *TimerView) PauseOrResume() {
	view.countdown.PauseOrResume()
	view.Refresh()
}

// Reset returns to idle and clears the inputs.
func (view *TimerView) Reset() {
	view.countdown.Reset()
	view.clearInputs()
	view.Refresh()
}

// Handle applies one countdown event.
func (view *TimerView) Handle(event countdown.Event) {
	if event.Type == countdown.EventReset {
		view.clearInputs()
	}
	view.Refresh()
}

// Refresh renders the current countdown snapshot.
func (view *TimerView) Refresh() {
	snapshot := view.countdown.Snapshot()
	view.display.Text = snapshot.Display
	view.display.Refresh()
	setEnabled(view.minutes, snapshot.InputsEnabled)
	setEnabled(view.seconds, snapshot.InputsEnabled)
	setEnabled(view.startButton, snapshot.StartEnabled)
	setEnabled(view.pauseButton, snapshot.PauseEnabled)
	setEnabled(view.resetButton, snapshot.ResetEnabled)
	view.pauseButton.SetText(snapshot.PauseLabel)
	view.status.SetText(snapshot.Status)
	if snapshot.Finished {
		view.finished.Show()
	} else {
		view.finished.Hide()
	}
}

// SetBackground recolors the panel.
func (view *TimerView) SetBackground(fill color.Color) {
	view.background.FillColor = fill
	view.background.Refresh()
}

func (view *TimerView) clearInputs() {
	view.minutes.SetText("")
	view.seconds.SetText("")
}
