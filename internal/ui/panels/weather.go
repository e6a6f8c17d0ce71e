package panels

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"rotaclock/internal/core/weather"
	"rotaclock/internal/logger"
)

// IconLoader fetches an icon image by URL.
type IconLoader func(url string) (fyne.Resource, error)

// WeatherView renders the weather card.
type WeatherView struct {
	panel       *weather.Panel
	loadIcon    IconLoader
	dispatch    func(func())
	log         *logger.Logger
	iconURL     string
	city        *widget.Label
	temperature *canvas.Text
	description *widget.Label
	icon        *canvas.Image
	message     *widget.Label
	card        fyne.CanvasObject
	background  *canvas.Rectangle
	root        fyne.CanvasObject
}

// NewWeatherView builds the weather panel. loadIcon runs off the UI loop and
// its result is handed back through dispatch.
func NewWeatherView(panel *weather.Panel, loadIcon IconLoader, dispatch func(func()), background color.Color, log *logger.Logger) *WeatherView {
	if loadIcon == nil {
		loadIcon = fyne.LoadResourceFromURLString
	}
	view := &WeatherView{
		panel:       panel,
		loadIcon:    loadIcon,
		dispatch:    dispatch,
		log:         log,
		city:        widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		temperature: canvas.NewText("", color.White),
		description: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		icon:        canvas.NewImageFromResource(nil),
		message:     widget.NewLabelWithStyle("Rotate here to load the weather.", fyne.TextAlignCenter, fyne.TextStyle{}),
		background:  canvas.NewRectangle(background),
	}
	view.temperature.TextSize = 48
	view.temperature.TextStyle = fyne.TextStyle{Bold: true}
	view.temperature.Alignment = fyne.TextAlignCenter
	view.icon.FillMode = canvas.ImageFillContain
	view.icon.SetMinSize(fyne.NewSize(100, 100))
	view.message.Wrapping = fyne.TextWrapWord

	view.card = container.NewVBox(view.city, view.icon, view.temperature, view.description)
	content := container.NewVBox(layout.NewSpacer(), view.card, view.message, layout.NewSpacer())
	view.root = container.NewStack(view.background, container.NewPadded(content))
	view.Refresh()
	return view
}

// Root returns the panel's canvas object.
func (view *WeatherView) Root() fyne.CanvasObject {
	return view.root
}

// Refresh renders the current weather snapshot.
func (view *WeatherView) Refresh() {
	snapshot := view.panel.Snapshot()
	switch snapshot.State {
	case weather.StateLoaded:
		conditions := snapshot.Conditions
		view.city.SetText(conditions.City)
		view.temperature.Text = fmt.Sprintf("%d°C", conditions.Temperature)
		view.temperature.Refresh()
		view.description.SetText(conditions.Description)
		view.card.Show()
		view.message.Hide()
		view.requestIcon(conditions)
	case weather.StateFailed:
		view.card.Hide()
		view.message.SetText(snapshot.Error)
		view.message.Show()
	case weather.StateLocating, weather.StateFetching:
		view.card.Hide()
		view.message.SetText("Loading weather…")
		view.message.Show()
	default:
		view.card.Hide()
		view.message.Show()
	}
}

// SetBackground recolors the panel.
func (view *WeatherView) SetBackground(fill color.Color) {
	view.background.FillColor = fill
	view.background.Refresh()
}

func (view *WeatherView) requestIcon(conditions weather.Conditions) {
	if conditions.Icon == "" {
		return
	}
	url := conditions.IconURL()
	if url == view.iconURL {
		return
	}
	view.iconURL = url

	go func() {
		resource, err := view.loadIcon(url)
		if err != nil {
			view.log.Warn(err, "weather icon unavailable")
			return
		}
		view.dispatch(func() {
			view.icon.Resource = resource
			view.icon.Refresh()
		})
	}()
}
