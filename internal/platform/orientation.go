package platform

import (
	"sync"

	"fyne.io/fyne/v2"

	"rotaclock/internal/core/router"
)

// ResizeWatcher is a stacking layout that reports size changes of its container.
type ResizeWatcher struct {
	mu        sync.Mutex
	size      fyne.Size
	listeners []func()
}

// NewResizeWatcher creates a watcher; use it as the layout of the root container.
func NewResizeWatcher() *ResizeWatcher {
	return &ResizeWatcher{}
}

// OnResize registers fn to run after every size change.
func (watcher *ResizeWatcher) OnResize(fn func()) {
	watcher.mu.Lock()
	watcher.listeners = append(watcher.listeners, fn)
	watcher.mu.Unlock()
}

// Size returns the last laid out size.
func (watcher *ResizeWatcher) Size() fyne.Size {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	return watcher.size
}

// Layout stacks objects over the full area.
func (watcher *ResizeWatcher) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, object := range objects {
		object.Move(fyne.NewPos(0, 0))
		object.Resize(size)
	}

	watcher.mu.Lock()
	changed := size != watcher.size
	watcher.size = size
	listeners := append([]func(){}, watcher.listeners...)
	watcher.mu.Unlock()

	if !changed {
		return
	}
	for _, listener := range listeners {
		listener()
	}
}

// MinSize is the largest child minimum.
func (watcher *ResizeWatcher) MinSize(objects []fyne.CanvasObject) fyne.Size {
	minSize := fyne.NewSize(0, 0)
	for _, object := range objects {
		minSize = minSize.Max(object.MinSize())
	}
	return minSize
}

type orientationDevice interface {
	Orientation() fyne.DeviceOrientation
	IsMobile() bool
}

// DeviceSource reads the rotation sensor on mobile devices.
type DeviceSource struct {
	device  orientationDevice
	watcher *ResizeWatcher
}

// NewDeviceSource creates the native orientation source.
func NewDeviceSource(device orientationDevice, watcher *ResizeWatcher) *DeviceSource {
	return &DeviceSource{device: device, watcher: watcher}
}

// Name identifies the source.
func (source *DeviceSource) Name() string { return "device" }

// Current maps the sensor reading.
func (source *DeviceSource) Current() router.Orientation {
	return FromDevice(source.device.Orientation())
}

// Register subscribes to rotations. Desktop devices have no sensor.
func (source *DeviceSource) Register(notify func()) bool {
	if source.device == nil || !source.device.IsMobile() {
		return false
	}
	source.watcher.OnResize(notify)
	return true
}

// FromDevice maps a fyne orientation onto the router's orientation.
func FromDevice(orientation fyne.DeviceOrientation) router.Orientation {
	switch orientation {
	case fyne.OrientationVertical:
		return router.PortraitPrimary
	case fyne.OrientationVerticalUpsideDown:
		return router.PortraitSecondary
	case fyne.OrientationHorizontalLeft:
		return router.LandscapePrimary
	case fyne.OrientationHorizontalRight:
		return router.LandscapeSecondary
	default:
		return router.Unknown
	}
}

// SimulatedSource lets desktop users pick the rotation from the tray or keyboard.
type SimulatedSource struct {
	mu          sync.Mutex
	desktop     bool
	orientation router.Orientation
	notify      func()
}

// NewSimulatedSource creates a source starting in portrait. It only registers on desktops.
func NewSimulatedSource(desktop bool) *SimulatedSource {
	return &SimulatedSource{desktop: desktop, orientation: router.PortraitPrimary}
}

// Name identifies the source.
func (source *SimulatedSource) Name() string { return "simulated" }

// Current returns the selected rotation.
func (source *SimulatedSource) Current() router.Orientation {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.orientation
}

// Register subscribes to Rotate calls.
func (source *SimulatedSource) Register(notify func()) bool {
	if !source.desktop {
		return false
	}
	source.mu.Lock()
	source.notify = notify
	source.mu.Unlock()
	return true
}

// Rotate selects orientation and notifies the router.
func (source *SimulatedSource) Rotate(orientation router.Orientation) {
	source.mu.Lock()
	source.orientation = orientation
	notify := source.notify
	source.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// AspectSource derives a coarse orientation from the window's aspect ratio.
type AspectSource struct {
	watcher *ResizeWatcher
}

// NewAspectSource creates the fallback source.
func NewAspectSource(watcher *ResizeWatcher) *AspectSource {
	return &AspectSource{watcher: watcher}
}

// Name identifies the source.
func (source *AspectSource) Name() string { return "aspect" }

// Current re-derives the orientation from the latest size.
func (source *AspectSource) Current() router.Orientation {
	size := source.watcher.Size()
	switch {
	case size.Width <= 0 || size.Height <= 0:
		return router.Unknown
	case size.Width > size.Height:
		return router.LandscapePrimary
	default:
		return router.PortraitPrimary
	}
}

// Register subscribes to resizes.
func (source *AspectSource) Register(notify func()) bool {
	source.watcher.OnResize(notify)
	return true
}
