package overlay

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// AlertKind identifies what is ringing.
type AlertKind string

const (
	AlertNone  AlertKind = ""
	AlertAlarm AlertKind = "alarm"
	AlertTimer AlertKind = "timer"
)

// Config defines alert window visuals.
type Config struct {
	Opacity   uint8
	Highlight color.NRGBA
}

// DefaultConfig returns the alert window visuals.
func DefaultConfig() Config {
	return Config{
		Opacity:   230,
		Highlight: color.NRGBA{R: 0xc6, G: 0x3b, B: 0x2f, A: 0xff},
	}
}

// Alert is the text shown for one ringing source.
type Alert struct {
	Kind    AlertKind
	Title   string
	Message string
}

// Describe returns the alert text for kind.
func Describe(kind AlertKind) Alert {
	switch kind {
	case AlertAlarm:
		return Alert{Kind: kind, Title: "Alarm", Message: "Wake up!"}
	case AlertTimer:
		return Alert{Kind: kind, Title: "Timer", Message: "Time is up!"}
	default:
		return Alert{Kind: AlertNone}
	}
}

// Pending picks the alert to show. The alarm wins when both ring.
func Pending(alarmRinging, timerFinished bool) AlertKind {
	switch {
	case alarmRinging:
		return AlertAlarm
	case timerFinished:
		return AlertTimer
	default:
		return AlertNone
	}
}

// Window is the borderless alert shown while the alarm rings or the timer is finished.
// All methods must run on the UI loop.
type Window struct {
	window       fyne.Window
	config       Config
	background   *canvas.Rectangle
	titleLabel   *canvas.Text
	messageLabel *canvas.Text
	stopButton   *widget.Button
	current      AlertKind
	onStop       func(AlertKind)
}

const (
	alertWidthFraction  = float32(0.18)
	alertHeightFraction = float32(0.16)
	defaultScreenWidth  = float32(1920)
	defaultScreenHeight = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden alert window.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Rotaclock alert")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{A: config.Opacity})

	titleLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	messageLabel := canvas.NewText("", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	messageLabel.TextSize = 16

	stopButton := widget.NewButton("Stop", nil)

	content := container.New(&alertLayout{}, titleLabel, messageLabel, stopButton)
	window.SetContent(container.NewStack(background, content))

	alert := &Window{
		window:       window,
		config:       config,
		background:   background,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
		stopButton:   stopButton,
	}
	stopButton.OnTapped = alert.stop
	return alert
}

// SetOnStop sets the Stop handler. It receives the alert being dismissed.
func (alert *Window) SetOnStop(handler func(AlertKind)) {
	alert.onStop = handler
}

// Sync shows, retitles or hides the window to match kind.
func (alert *Window) Sync(kind AlertKind) {
	if kind == alert.current {
		return
	}
	if kind == AlertNone {
		alert.Hide()
		return
	}
	alert.Show(Describe(kind))
}

// Show displays an alert.
func (alert *Window) Show(content Alert) {
	alert.current = content.Kind
	alert.titleLabel.Text = content.Title
	alert.titleLabel.Refresh()
	alert.messageLabel.Text = content.Message
	alert.messageLabel.Refresh()

	alert.resizeToScreenFraction()
	alert.window.Show()
	alert.window.RequestFocus()
	alert.applyNativeOpacity(alert.config.Opacity)
}

// Hide closes the alert.
func (alert *Window) Hide() {
	alert.current = AlertNone
	alert.SetHighlight(false)
	alert.window.Hide()
}

// Current returns the alert on screen.
func (alert *Window) Current() AlertKind {
	return alert.current
}

// SetHighlight switches the background between the highlight and the plain color.
func (alert *Window) SetHighlight(on bool) {
	fill := color.NRGBA{A: alert.config.Opacity}
	if on {
		fill = alert.config.Highlight
		fill.A = alert.config.Opacity
	}
	alert.background.FillColor = fill
	alert.background.Refresh()
}

func (alert *Window) stop() {
	kind := alert.current
	if kind == AlertNone {
		return
	}
	if alert.onStop != nil {
		alert.onStop(kind)
	}
}

func (alert *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := alert.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	size := fyne.NewSize(screenSize.Width*alertWidthFraction, screenSize.Height*alertHeightFraction)
	alert.window.Resize(size.Max(alert.window.Content().MinSize()))
	alert.window.CenterOnScreen()
}

type alertLayout struct{}

func (layout *alertLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	title, message, stop := objects[0], objects[1], objects[2]

	pad := size.Height * 0.08
	width := size.Width - pad*2
	if width < 0 {
		width = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(width, titleSize.Height))

	messageSize := message.MinSize()
	message.Move(fyne.NewPos(pad, pad+titleSize.Height+6))
	message.Resize(fyne.NewSize(width, messageSize.Height))

	stopSize := stop.MinSize()
	stopWidth := stopSize.Width * 1.4
	if stopWidth > width {
		stopWidth = width
	}
	x := size.Width - pad - stopWidth
	y := size.Height - pad - stopSize.Height
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	stop.Move(fyne.NewPos(x, y))
	stop.Resize(fyne.NewSize(stopWidth, stopSize.Height))
}

func (layout *alertLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	width := float32(0)
	height := float32(0)
	for _, object := range objects {
		size := object.MinSize()
		width = fyne.Max(width, size.Width)
		height += size.Height
	}
	return fyne.NewSize(width+40, height+40)
}
