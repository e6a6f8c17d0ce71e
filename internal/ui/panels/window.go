package panels

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"rotaclock/internal/core/alarm"
	"rotaclock/internal/core/countdown"
	"rotaclock/internal/core/model"
	"rotaclock/internal/core/router"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/core/stopwatch"
	"rotaclock/internal/core/theme"
	"rotaclock/internal/core/weather"
	"rotaclock/internal/logger"
	"rotaclock/internal/platform"
	"rotaclock/internal/ui/animation"
	"rotaclock/internal/ui/overlay"
)

// pulseColor is the panel background while an alert pulse is highlighted.
var pulseColor = color.NRGBA{R: 0xc6, G: 0x3b, B: 0x2f, A: 0xff}

// Deps lists everything the main window renders or drives.
// Rotate and Alert are desktop-only and may be nil.
type Deps struct {
	App        fyne.App
	Router     *router.Router
	Alarm      *alarm.Alarm
	Countdown  *countdown.Countdown
	Stopwatch  *stopwatch.Stopwatch
	Weather    *weather.Panel
	Theme      *theme.Controller
	Scheduler  schedule.Scheduler
	Watcher    *platform.ResizeWatcher
	Rotate     func(router.Orientation)
	Alert      *overlay.Window
	Dispatch   func(func())
	IconLoader IconLoader
	Logger     *logger.Logger
}

// Hooks observe window-level changes, for the tray.
type Hooks struct {
	OnPanel func(router.Panel)
	OnAlert func(alerting bool)
}

// MainWindow hosts the four panels and shows the one the router selects.
type MainWindow struct {
	deps        Deps
	hooks       Hooks
	window      fyne.Window
	palette     map[router.Panel]color.NRGBA
	chrome      *canvas.Rectangle
	title       *canvas.Text
	alarm       *AlarmView
	timer       *TimerView
	stopwatch   *StopwatchView
	weather     *WeatherView
	pulse       *animation.Engine
	ctx         context.Context
	active      router.Panel
	alert       overlay.AlertKind
	highlighted bool
}

// New builds the main window. It is not shown until Show.
func New(deps Deps, config model.WidgetConfig, hooks Hooks) (*MainWindow, error) {
	switch {
	case deps.App == nil:
		return nil, model.MissingDependency("fyne app")
	case deps.Router == nil:
		return nil, model.MissingDependency("router")
	case deps.Alarm == nil:
		return nil, model.MissingDependency("alarm")
	case deps.Countdown == nil:
		return nil, model.MissingDependency("countdown")
	case deps.Stopwatch == nil:
		return nil, model.MissingDependency("stopwatch")
	case deps.Weather == nil:
		return nil, model.MissingDependency("weather panel")
	case deps.Theme == nil:
		return nil, model.MissingDependency("theme controller")
	case deps.Scheduler == nil:
		return nil, model.MissingDependency("scheduler")
	case deps.Watcher == nil:
		return nil, model.MissingDependency("resize watcher")
	}
	if deps.Dispatch == nil {
		deps.Dispatch = fyne.Do
	}

	host := &MainWindow{
		deps:    deps,
		hooks:   hooks,
		palette: router.DefaultPalette(),
		ctx:     context.Background(),
	}
	host.alarm = NewAlarmView(deps.Alarm, deps.Scheduler, config.ClockRefresh, host.palette[router.PanelAlarm])
	host.timer = NewTimerView(deps.Countdown, host.palette[router.PanelTimer])
	host.stopwatch = NewStopwatchView(deps.Stopwatch, host.palette[router.PanelStopwatch])
	host.weather = NewWeatherView(deps.Weather, deps.IconLoader, deps.Dispatch, host.palette[router.PanelWeather], deps.Logger)
	host.pulse = animation.New(animation.ConfigFor(config.PulseInterval), func(on bool) {
		deps.Dispatch(func() { host.setHighlight(on) })
	})
	if deps.Alert != nil {
		deps.Alert.SetOnStop(host.stopAlert)
	}

	host.window = deps.App.NewWindow("Rotaclock")
	if icon := deps.App.Icon(); icon != nil {
		host.window.SetIcon(icon)
	}
	host.window.SetContent(host.build())
	host.window.Resize(fyne.NewSize(360, 640))
	host.bindShortcuts()
	host.ShowPanel(deps.Router.Active())
	return host, nil
}

// Start subscribes the views to their components and starts the clock header.
// Subscriptions end with ctx.
func (host *MainWindow) Start(ctx context.Context) {
	host.ctx = ctx
	dispatch := host.deps.Dispatch

	watch(ctx, host.deps.Router.Subscribe(8), dispatch, func(event router.Event) {
		host.ShowPanel(event.Panel)
	})
	watch(ctx, host.deps.Alarm.Subscribe(8), dispatch, func(alarm.Event) {
		host.alarm.Refresh()
		host.SyncAlert()
	})
	watch(ctx, host.deps.Countdown.Subscribe(8), dispatch, func(event countdown.Event) {
		host.timer.Handle(event)
		host.SyncAlert()
	})
	watch(ctx, host.deps.Stopwatch.Subscribe(32), dispatch, func(stopwatch.Event) {
		host.stopwatch.Refresh()
	})
	watch(ctx, host.deps.Weather.Subscribe(4), dispatch, func(weather.Event) {
		host.weather.Refresh()
	})

	host.alarm.StartClock()
	host.ShowPanel(host.deps.Router.Active())
	go func() {
		<-ctx.Done()
		host.pulse.Stop()
	}()
}

// Show raises the window.
func (host *MainWindow) Show() {
	host.window.Show()
	host.window.RequestFocus()
}

// HideOnClose keeps the app alive in the tray when the window is closed.
func (host *MainWindow) HideOnClose() {
	host.window.SetCloseIntercept(host.window.Hide)
}

// Window returns the underlying fyne window.
func (host *MainWindow) Window() fyne.Window {
	return host.window
}

// Active returns the visible panel.
func (host *MainWindow) Active() router.Panel {
	return host.active
}

// ShowPanel shows panel, hides the others and recolors the chrome.
// Showing the weather panel reports it fully visible.
func (host *MainWindow) ShowPanel(panel router.Panel) {
	for _, candidate := range router.Panels {
		root := host.rootOf(candidate)
		if candidate == panel {
			root.Show()
		} else {
			root.Hide()
		}
	}
	host.active = panel
	host.chrome.FillColor = host.palette[panel]
	host.chrome.Refresh()
	host.title.Text = panelTitle(panel)
	host.title.Refresh()

	if panel == router.PanelWeather {
		host.deps.Weather.Visible(host.ctx, 1)
	}
	if host.hooks.OnPanel != nil {
		host.hooks.OnPanel(panel)
	}
}

// SyncAlert reconciles the alert window and pulse with the alarm and countdown.
func (host *MainWindow) SyncAlert() {
	kind := overlay.Pending(host.deps.Alarm.Snapshot().Alarming, host.deps.Countdown.Snapshot().Finished)
	if kind == host.alert {
		return
	}
	if host.highlighted {
		host.setHighlight(false)
	}
	host.alert = kind

	if host.deps.Alert != nil {
		host.deps.Alert.Sync(kind)
	}
	host.pulse.Sync(host.ctx, kind != overlay.AlertNone)
	if host.hooks.OnAlert != nil {
		host.hooks.OnAlert(kind != overlay.AlertNone)
	}
}

// Alerting returns the alert currently pulsing.
func (host *MainWindow) Alerting() overlay.AlertKind {
	return host.alert
}

func (host *MainWindow) stopAlert(kind overlay.AlertKind) {
	switch kind {
	case overlay.AlertAlarm:
		host.alarm.Clear()
	case overlay.AlertTimer:
		host.timer.Reset()
	}
	host.SyncAlert()
}

func (host *MainWindow) setHighlight(on bool) {
	host.highlighted = on
	alarmFill := host.palette[router.PanelAlarm]
	timerFill := host.palette[router.PanelTimer]
	if on {
		switch host.alert {
		case overlay.AlertAlarm:
			alarmFill = pulseColor
		case overlay.AlertTimer:
			timerFill = pulseColor
		}
	}
	host.alarm.SetBackground(alarmFill)
	host.timer.SetBackground(timerFill)
	if host.deps.Alert != nil {
		host.deps.Alert.SetHighlight(on)
	}
}

func (host *MainWindow) build() fyne.CanvasObject {
	host.chrome = canvas.NewRectangle(host.palette[router.PanelAlarm])
	host.title = canvas.NewText("", color.White)
	host.title.TextStyle = fyne.TextStyle{Bold: true}
	host.title.TextSize = 18

	themeButton := widget.NewButtonWithIcon("", fynetheme.ColorPaletteIcon(), func() {
		host.deps.Theme.Toggle()
	})
	bar := container.NewStack(host.chrome, container.NewPadded(container.NewHBox(host.title, layout.NewSpacer(), themeButton)))

	panels := container.NewStack(host.alarm.Root(), host.timer.Root(), host.stopwatch.Root(), host.weather.Root())
	return container.New(host.deps.Watcher, container.NewBorder(bar, nil, nil, nil, panels))
}

func (host *MainWindow) bindShortcuts() {
	surface := host.window.Canvas()
	surface.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyT, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		host.deps.Theme.Toggle()
	})
	if host.deps.Rotate == nil {
		return
	}
	for key, orientation := range RotationKeys {
		surface.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
			host.deps.Rotate(orientation)
		})
	}
}

// RotationKeys maps ctrl+arrow shortcuts onto simulated orientations.
var RotationKeys = map[fyne.KeyName]router.Orientation{
	fyne.KeyUp:    router.PortraitPrimary,
	fyne.KeyDown:  router.PortraitSecondary,
	fyne.KeyRight: router.LandscapeSecondary,
	fyne.KeyLeft:  router.LandscapePrimary,
}

func (host *MainWindow) rootOf(panel router.Panel) fyne.CanvasObject {
	switch panel {
	case router.PanelTimer:
		return host.timer.Root()
	case router.PanelStopwatch:
		return host.stopwatch.Root()
	case router.PanelWeather:
		return host.weather.Root()
	default:
		return host.alarm.Root()
	}
}

func panelTitle(panel router.Panel) string {
	switch panel {
	case router.PanelTimer:
		return "Timer"
	case router.PanelStopwatch:
		return "Stopwatch"
	case router.PanelWeather:
		return "Weather"
	default:
		return "Alarm"
	}
}
