package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"rotaclock/internal/core/router"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnRotate      func(router.Orientation)
	OnToggleTheme func()
	OnPreferences func()
	OnQuit        func()
}

// trayApp is the part of desktop.App the manager needs.
type trayApp interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

var rotations = []struct {
	label       string
	orientation router.Orientation
}{
	{"Portrait (alarm)", router.PortraitPrimary},
	{"Upside down (timer)", router.PortraitSecondary},
	{"Landscape right (stopwatch)", router.LandscapeSecondary},
	{"Landscape left (weather)", router.LandscapePrimary},
}

// Manager handles system tray state.
type Manager struct {
	app         trayApp
	statusItem  *fyne.MenuItem
	rotateItem  *fyne.MenuItem
	themeItem   *fyne.MenuItem
	callbacks   Callbacks
	statusLabel string
	alerting    bool
}

// New creates a tray manager with the provided callbacks.
func New(app trayApp, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Panel: starting...", nil)
	manager.statusItem.Disabled = true

	items := make([]*fyne.MenuItem, 0, len(rotations))
	for _, rotation := range rotations {
		orientation := rotation.orientation
		items = append(items, fyne.NewMenuItem(rotation.label, func() {
			if manager.callbacks.OnRotate != nil {
				manager.callbacks.OnRotate(orientation)
			}
		}))
	}
	manager.rotateItem = fyne.NewMenuItem("Rotate", nil)
	manager.rotateItem.ChildMenu = fyne.NewMenu("", items...)

	manager.themeItem = fyne.NewMenuItem("Toggle theme", func() {
		if manager.callbacks.OnToggleTheme != nil {
			manager.callbacks.OnToggleTheme()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetPanel updates the status label with the visible panel.
func (manager *Manager) SetPanel(panel router.Panel) {
	manager.statusLabel = string(panel)
	manager.refreshStatus()
}

// SetAlerting marks the status while an alert rings.
func (manager *Manager) SetAlerting(alerting bool) {
	manager.alerting = alerting
	manager.refreshStatus()
}

// Status returns the status item label.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.alerting {
		status = fmt.Sprintf("%s (ringing)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Panel: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Rotaclock",
		manager.statusItem,
		fyne.NewMenuItem("Show", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.rotateItem,
		manager.themeItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
