package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_SaveParsesFields(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) { saved = append(saved, settings) })

	test.Type(prefs.apiKey, "secret")
	prefs.fixedLocation.SetChecked(true)
	prefs.latitude.SetText("52.52")
	prefs.longitude.SetText("13.405")
	prefs.refresh.SetText("25")
	prefs.clearDelay.SetText("nope")
	prefs.pulse.SetText("750")
	prefs.logLevel.SetSelected("debug")
	test.Tap(prefs.startAtLogin)

	prefs.handleSave()

	require.Len(t, saved, 1)
	got := saved[0]
	assert.Equal(t, "secret", got.WeatherAPIKey)
	assert.True(t, got.FixedLocation)
	assert.Equal(t, 52.52, got.Latitude)
	assert.Equal(t, 13.405, got.Longitude)
	assert.Equal(t, 25*time.Millisecond, got.StopwatchRefresh)
	assert.Equal(t, 3*time.Second, got.StatusClearDelay, "invalid input keeps the old value")
	assert.True(t, got.StartAtLogin)
	assert.Equal(t, 750*time.Millisecond, got.PulseInterval)
	assert.Equal(t, "debug", got.LogLevel)
}

func TestWindow_FixedLocationNeedsValidCoordinates(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) { saved = settings })

	prefs.fixedLocation.SetChecked(true)
	prefs.latitude.SetText("91")
	prefs.longitude.SetText("10")
	prefs.handleSave()

	assert.False(t, saved.FixedLocation)
}

func TestWindow_UpdateSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	prefs := New(app, DefaultSettings(), nil)
	settings := DefaultSettings()
	settings.FixedLocation = true
	settings.Latitude = -33.5
	settings.Longitude = 151
	prefs.UpdateSettings(settings)

	assert.Equal(t, "-33.5", prefs.latitude.Text)
	assert.Equal(t, "151", prefs.longitude.Text)
	assert.Equal(t, "10", prefs.refresh.Text)
	assert.Equal(t, "info", prefs.logLevel.Selected)
}
