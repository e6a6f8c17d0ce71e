package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Window handles the preferences UI.
type Window struct {
	window          fyne.Window
	settings        Settings
	onSave          func(Settings)
	onCancel        func()
	apiKey          *widget.Entry
	baseURL         *widget.Entry
	fixedLocation   *widget.Check
	latitude        *widget.Entry
	longitude       *widget.Entry
	locateByIP      *widget.Check
	locationEnabled *widget.Check
	refresh         *widget.Entry
	clearDelay      *widget.Entry
	pulse           *widget.Entry
	logLevel        *widget.Select
	startAtLogin    *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Rotaclock Settings")

	apiKey := widget.NewPasswordEntry()
	apiKey.SetPlaceHolder("OpenWeatherMap API key")
	baseURL := widget.NewEntry()
	baseURL.SetPlaceHolder("default endpoint")

	fixedLocation := widget.NewCheck("Use fixed coordinates", nil)
	latitude := widget.NewEntry()
	longitude := widget.NewEntry()
	locateByIP := widget.NewCheck("Locate by IP address", nil)
	locationEnabled := widget.NewCheck("Allow location access", nil)

	refresh := widget.NewEntry()
	clearDelay := widget.NewEntry()
	pulse := widget.NewEntry()
	logLevel := widget.NewSelect(logLevels, nil)
	startAtLogin := widget.NewCheck("Start at login", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Weather", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		apiKey,
		baseURL,
		widget.NewLabelWithStyle("Location", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		locationEnabled,
		locateByIP,
		fixedLocation,
		container.NewGridWithColumns(2, latitude, longitude),
		widget.NewLabelWithStyle("Timing", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Stopwatch refresh"), refresh, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Clear status after"), clearDelay, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Alert pulse"), pulse, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Log level"), logLevel),
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		startAtLogin,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.Resize(fyne.NewSize(420, 520))

	prefs := &Window{
		window:          window,
		onSave:          onSave,
		apiKey:          apiKey,
		baseURL:         baseURL,
		fixedLocation:   fixedLocation,
		latitude:        latitude,
		longitude:       longitude,
		locateByIP:      locateByIP,
		locationEnabled: locationEnabled,
		refresh:         refresh,
		clearDelay:      clearDelay,
		pulse:           pulse,
		logLevel:        logLevel,
		startAtLogin:    startAtLogin,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		prefs.UpdateSettings(prefs.settings)
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets the handler run when editing is abandoned.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.apiKey.SetText(settings.WeatherAPIKey)
	prefs.baseURL.SetText(settings.WeatherBaseURL)
	prefs.fixedLocation.SetChecked(settings.FixedLocation)
	prefs.latitude.SetText(formatCoordinate(settings.FixedLocation, settings.Latitude))
	prefs.longitude.SetText(formatCoordinate(settings.FixedLocation, settings.Longitude))
	prefs.locateByIP.SetChecked(settings.LocateByIP)
	prefs.locationEnabled.SetChecked(settings.LocationEnabled)
	prefs.refresh.SetText(strconv.FormatInt(settings.StopwatchRefresh.Milliseconds(), 10))
	prefs.clearDelay.SetText(strconv.Itoa(int(settings.StatusClearDelay.Seconds())))
	prefs.pulse.SetText(strconv.FormatInt(settings.PulseInterval.Milliseconds(), 10))
	prefs.logLevel.SetSelected(settings.LogLevel)
	prefs.startAtLogin.SetChecked(settings.StartAtLogin)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.WeatherAPIKey = strings.TrimSpace(prefs.apiKey.Text)
	settings.WeatherBaseURL = strings.TrimSpace(prefs.baseURL.Text)
	settings.LocateByIP = prefs.locateByIP.Checked
	settings.LocationEnabled = prefs.locationEnabled.Checked
	settings.StartAtLogin = prefs.startAtLogin.Checked

	latitude, latOK := parseCoordinate(prefs.latitude.Text, 90)
	longitude, lonOK := parseCoordinate(prefs.longitude.Text, 180)
	settings.FixedLocation = prefs.fixedLocation.Checked && latOK && lonOK
	if settings.FixedLocation {
		settings.Latitude = latitude
		settings.Longitude = longitude
	}

	if millis, ok := parsePositiveInt(prefs.refresh.Text); ok {
		settings.StopwatchRefresh = time.Duration(millis) * time.Millisecond
	}
	if seconds, ok := parsePositiveInt(prefs.clearDelay.Text); ok {
		settings.StatusClearDelay = time.Duration(seconds) * time.Second
	}
	if millis, ok := parsePositiveInt(prefs.pulse.Text); ok {
		settings.PulseInterval = time.Duration(millis) * time.Millisecond
	}
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parseCoordinate(value string, limit float64) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed < -limit || parsed > limit {
		return 0, false
	}
	return parsed, true
}

func formatCoordinate(set bool, value float64) string {
	if !set {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
