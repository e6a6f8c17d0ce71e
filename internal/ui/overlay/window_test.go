package overlay

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestPending(t *testing.T) {
	assert.Equal(t, AlertNone, Pending(false, false))
	assert.Equal(t, AlertAlarm, Pending(true, false))
	assert.Equal(t, AlertTimer, Pending(false, true))
	assert.Equal(t, AlertAlarm, Pending(true, true))
}

func TestWindow_SyncAndStop(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	alert := New(app, DefaultConfig())

	var stopped []AlertKind
	alert.SetOnStop(func(kind AlertKind) { stopped = append(stopped, kind) })

	test.Tap(alert.stopButton)
	assert.Empty(t, stopped, "stop without an alert does nothing")

	alert.Sync(AlertTimer)
	assert.Equal(t, AlertTimer, alert.Current())
	assert.Equal(t, "Timer", alert.titleLabel.Text)

	alert.Sync(AlertAlarm)
	assert.Equal(t, "Wake up!", alert.messageLabel.Text)

	test.Tap(alert.stopButton)
	assert.Equal(t, []AlertKind{AlertAlarm}, stopped)

	alert.Sync(AlertNone)
	assert.Equal(t, AlertNone, alert.Current())
}

func TestWindow_Highlight(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	config := DefaultConfig()
	alert := New(app, config)

	alert.SetHighlight(true)
	highlighted := alert.background.FillColor
	alert.SetHighlight(false)

	assert.NotEqual(t, highlighted, alert.background.FillColor)
}

func TestWithLayered(t *testing.T) {
	style, changed := withLayered(0x10)
	assert.True(t, changed)
	assert.Equal(t, uintptr(0x10)|wsExLayered, style)

	style, changed = withLayered(style)
	assert.False(t, changed)
	assert.Equal(t, uintptr(0x10)|wsExLayered, style)
}
