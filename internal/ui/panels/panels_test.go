package panels

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	fynetheme "fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotaclock/internal/core/alarm"
	"rotaclock/internal/core/countdown"
	"rotaclock/internal/core/model"
	"rotaclock/internal/core/router"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/core/soundtest"
	"rotaclock/internal/core/stopwatch"
	"rotaclock/internal/core/theme"
	"rotaclock/internal/core/weather"
	"rotaclock/internal/platform"
	"rotaclock/internal/ui/overlay"
)

type queue struct {
	mu      sync.Mutex
	pending []func()
}

func (q *queue) dispatch(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

func (q *queue) drain() {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

type stubLocator struct{}

func (stubLocator) Locate(context.Context) (weather.Coordinates, error) {
	return weather.Coordinates{Latitude: 1, Longitude: 2}, nil
}

type countingFetcher struct {
	calls atomic.Int32
}

func (fetcher *countingFetcher) Current(context.Context, weather.Coordinates) (weather.Conditions, error) {
	fetcher.calls.Add(1)
	return weather.Conditions{City: "Lisbon", Temperature: 21, Description: "clear sky", Icon: "01d"}, nil
}

type memoryStore map[string]string

func (store memoryStore) String(key string) string    { return store[key] }
func (store memoryStore) SetString(key, value string) { store[key] = value }

type fixture struct {
	app        fyne.App
	manual     *schedule.Manual
	queue      *queue
	alarmSound *soundtest.Recorder
	timerSound *soundtest.Recorder
	fetcher    *countingFetcher
	deps       Deps
	panels     []router.Panel
	alerts     []bool
	host       *MainWindow
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	fx := &fixture{
		app:        app,
		manual:     schedule.NewManual(time.Date(2026, time.October, 19, 6, 0, 0, 0, time.UTC)),
		queue:      &queue{},
		alarmSound: &soundtest.Recorder{},
		timerSound: &soundtest.Recorder{},
		fetcher:    &countingFetcher{},
	}
	config := model.DefaultWidgetConfig()
	config.PulseInterval = time.Hour

	alarmPanel, err := alarm.New(alarm.Deps{Scheduler: fx.manual, Sound: fx.alarmSound}, config.Alarm)
	require.NoError(t, err)
	timerPanel, err := countdown.New(countdown.Deps{Scheduler: fx.manual, Sound: fx.timerSound}, config.Countdown)
	require.NoError(t, err)
	watch, err := stopwatch.New(stopwatch.Deps{Scheduler: fx.manual}, config.Stopwatch)
	require.NoError(t, err)
	weatherPanel, err := weather.NewPanel(weather.Deps{Locator: stubLocator{}, Fetcher: fx.fetcher})
	require.NoError(t, err)

	fx.deps = Deps{
		App:        app,
		Router:     router.New(nil, nil),
		Alarm:      alarmPanel,
		Countdown:  timerPanel,
		Stopwatch:  watch,
		Weather:    weatherPanel,
		Theme:      theme.NewController(memoryStore{}, nil, nil, nil),
		Scheduler:  fx.manual,
		Watcher:    platform.NewResizeWatcher(),
		Alert:      overlay.New(app, overlay.DefaultConfig()),
		Dispatch:   fx.queue.dispatch,
		IconLoader: func(string) (fyne.Resource, error) { return nil, errors.New("offline") },
	}
	fx.host, err = New(fx.deps, config, Hooks{
		OnPanel: func(panel router.Panel) { fx.panels = append(fx.panels, panel) },
		OnAlert: func(alerting bool) { fx.alerts = append(fx.alerts, alerting) },
	})
	require.NoError(t, err)
	return fx
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Deps{}, model.DefaultWidgetConfig(), Hooks{})
	assert.ErrorIs(t, err, model.ErrMissingDependency)
}

func TestMainWindow_ShowsRoutedPanel(t *testing.T) {
	fx := newFixture(t)
	host := fx.host
	assert.Equal(t, router.PanelAlarm, host.Active())

	event := fx.deps.Router.Route(router.PortraitSecondary)
	host.ShowPanel(event.Panel)

	assert.Equal(t, router.PanelTimer, host.Active())
	assert.True(t, host.timer.Root().Visible())
	assert.False(t, host.alarm.Root().Visible())
	assert.False(t, host.stopwatch.Root().Visible())
	assert.False(t, host.weather.Root().Visible())
	assert.Equal(t, router.DefaultPalette()[router.PanelTimer], host.chrome.FillColor)
	assert.Equal(t, "Timer", host.title.Text)
	assert.Equal(t, router.PanelTimer, fx.panels[len(fx.panels)-1])
}

func TestMainWindow_WeatherLoadsOnceWhenShown(t *testing.T) {
	fx := newFixture(t)

	fx.host.ShowPanel(router.PanelWeather)
	fx.host.ShowPanel(router.PanelAlarm)
	fx.host.ShowPanel(router.PanelWeather)

	select {
	case <-fx.deps.Weather.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("weather sequence did not finish")
	}
	assert.Equal(t, int32(1), fx.fetcher.calls.Load())

	fx.host.weather.Refresh()
	assert.Equal(t, "Lisbon", fx.host.weather.city.Text)
	assert.Equal(t, "21°C", fx.host.weather.temperature.Text)
	assert.True(t, fx.host.weather.card.Visible())
}

func TestMainWindow_AlertStopClearsAlarm(t *testing.T) {
	fx := newFixture(t)
	host := fx.host

	host.alarm.entry.SetText("06:00:05")
	host.alarm.Set()
	fx.manual.Advance(5 * time.Second)
	require.True(t, fx.alarmSound.Playing())

	host.SyncAlert()
	assert.Equal(t, overlay.AlertAlarm, host.Alerting())
	assert.Equal(t, overlay.AlertAlarm, fx.deps.Alert.Current())
	assert.True(t, host.pulse.Running())

	host.stopAlert(overlay.AlertAlarm)
	assert.Equal(t, overlay.AlertNone, host.Alerting())
	assert.False(t, fx.alarmSound.Playing())
	assert.False(t, host.pulse.Running())
	assert.Equal(t, []bool{true, false}, fx.alerts)
}

func TestMainWindow_AlertStopResetsTimer(t *testing.T) {
	fx := newFixture(t)
	host := fx.host

	host.timer.seconds.SetText("2")
	host.timer.Start()
	fx.manual.Advance(2 * time.Second)
	host.timer.Refresh()
	require.True(t, host.timer.finished.Visible())

	host.SyncAlert()
	require.Equal(t, overlay.AlertTimer, host.Alerting())

	fx.queue.drain()
	host.setHighlight(true)
	assert.Equal(t, pulseColor, host.timer.background.FillColor)

	host.stopAlert(overlay.AlertTimer)
	fx.queue.drain()
	assert.Equal(t, overlay.AlertNone, host.Alerting())
	assert.Equal(t, "", host.timer.seconds.Text)
	assert.Equal(t, "00:00", host.timer.display.Text)
	assert.Equal(t, router.DefaultPalette()[router.PanelTimer], host.timer.background.FillColor)
}

func TestAlarmView_ClockAndStatus(t *testing.T) {
	fx := newFixture(t)
	view := fx.host.alarm

	view.StartClock()
	assert.Equal(t, "06:00:00", view.clockText.Text)
	assert.Equal(t, "Monday, October 19", view.dateLabel.Text)

	fx.manual.Advance(2 * time.Second)
	assert.Equal(t, "06:00:02", view.clockText.Text)

	view.entry.SetText("nonsense")
	view.Set()
	assert.Equal(t, "Please choose a valid alarm time.", view.status.Text)

	view.entry.SetText("07:30")
	view.Set()
	assert.True(t, strings.HasPrefix(view.status.Text, "Alarm set for 07:30"))
	assert.True(t, view.entry.Disabled())
	assert.True(t, view.setButton.Disabled())
	assert.False(t, view.clearButton.Disabled())

	view.StopClock()
	fx.manual.Advance(5 * time.Second)
	assert.Equal(t, "06:00:02", view.clockText.Text)
}

func TestTimerView_PauseLabel(t *testing.T) {
	fx := newFixture(t)
	view := fx.host.timer

	view.minutes.SetText("1")
	view.Start()
	assert.True(t, view.minutes.Disabled())
	assert.Equal(t, "Pause", view.pauseButton.Text)

	view.PauseOrResume()
	assert.Equal(t, "Resume", view.pauseButton.Text)

	view.Handle(countdown.Event{Type: countdown.EventReset})
	assert.Equal(t, "", view.minutes.Text)
}

func TestStopwatchView_Laps(t *testing.T) {
	fx := newFixture(t)
	view := fx.host.stopwatch

	view.Primary()
	fx.manual.Advance(1500 * time.Millisecond)
	view.Secondary()
	require.Len(t, view.laps, 1)
	assert.Equal(t, "Lap 1: "+view.laps[0].Display, LapLine(view.laps[0]))
	assert.Equal(t, "Stop", view.primaryButton.Text)

	view.Primary()
	assert.Equal(t, "Reset", view.secondaryButton.Text)
	view.Secondary()
	assert.Empty(t, view.laps)
	assert.Equal(t, "00:00:00.00", view.display.Text)
}

func TestThemeFor(t *testing.T) {
	dark := ThemeFor(theme.Dark)
	light := ThemeFor(theme.Light)
	assert.NotEqual(t,
		dark.Color(fynetheme.ColorNameBackground, fynetheme.VariantLight),
		light.Color(fynetheme.ColorNameBackground, fynetheme.VariantLight),
	)
}
