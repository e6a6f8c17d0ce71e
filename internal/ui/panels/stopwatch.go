package panels

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"rotaclock/internal/core/stopwatch"
)

// StopwatchView renders the stopwatch panel and its lap list.
type StopwatchView struct {
	stopwatch       *stopwatch.Stopwatch
	display         *canvas.Text
	primaryButton   *widget.Button
	secondaryButton *widget.Button
	laps            []stopwatch.Lap
	lapList         *widget.List
	background      *canvas.Rectangle
	root            fyne.CanvasObject
}

// NewStopwatchView builds the stopwatch panel.
func NewStopwatchView(target *stopwatch.Stopwatch, background color.Color) *StopwatchView {
	view := &StopwatchView{
		stopwatch:  target,
		display:    canvas.NewText("00:00:00.00", color.White),
		background: canvas.NewRectangle(background),
	}
	view.display.TextSize = 44
	view.display.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	view.display.Alignment = fyne.TextAlignCenter

	view.primaryButton = widget.NewButton("Start", view.Primary)
	view.secondaryButton = widget.NewButton("Lap", view.Secondary)
	view.lapList = widget.NewList(
		func() int { return len(view.laps) },
		func() fyne.CanvasObject { return widget.NewLabel("Lap 00: 00:00:00.00") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(view.laps) {
				return
			}
			item.(*widget.Label).SetText(LapLine(view.laps[id]))
		},
	)

	header := container.NewVBox(
		view.display,
		container.NewGridWithColumns(2, view.primaryButton, view.secondaryButton),
	)
	content := container.NewBorder(container.NewPadded(header), nil, nil, nil, view.lapList)
	view.root = container.NewStack(view.background, container.NewPadded(content))
	view.Refresh()
	return view
}

// LapLine formats one lap row.
func LapLine(lap stopwatch.Lap) string {
	return fmt.Sprintf("Lap %d: %s", lap.Index, lap.Display)
}

// Root returns the panel's canvas object.
func (view *StopwatchView) Root() fyne.CanvasObject {
	return view.root
}

// Primary starts or stops the stopwatch.
func (view *StopwatchView) Primary() {
	view.stopwatch.Primary()
	view.Refresh()
}

// Secondary records a lap or resets.
func (view *StopwatchView) Secondary() {
	view.stopwatch.Secondary()
	view.Refresh()
}

// Refresh renders the current stopwatch snapshot.
func (view *StopwatchView) Refresh() {
	snapshot := view.stopwatch.Snapshot()
	view.display.Text = snapshot.Display.String()
	view.display.Refresh()
	view.primaryButton.SetText(snapshot.PrimaryLabel)
	view.secondaryButton.SetText(snapshot.SecondaryLabel)
	setEnabled(view.secondaryButton, snapshot.SecondaryEnabled)

	if lapsChanged(view.laps, snapshot.Laps) {
		view.laps = snapshot.Laps
		view.lapList.Refresh()
	}
}

// SetBackground recolors the panel.
func (view *StopwatchView) SetBackground(fill color.Color) {
	view.background.FillColor = fill
	view.background.Refresh()
}

func lapsChanged(shown, current []stopwatch.Lap) bool {
	if len(shown) != len(current) {
		return true
	}
	return len(current) > 0 && shown[0].Index != current[0].Index
}
