package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"rotaclock/internal/core/router"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/core/theme"
	"rotaclock/internal/platform"
	"rotaclock/internal/storage"
	"rotaclock/internal/ui/overlay"
	"rotaclock/internal/ui/panels"
	"rotaclock/internal/ui/preferences"
	"rotaclock/internal/ui/tray"
	"rotaclock/resources"
)

func runGUI(parent context.Context, flags *rootFlags) error {
	settings, settingsPath, settingsErr := loadSettings(flags)
	log, err := newLogger(flags, settings, os.Stderr)
	if err != nil {
		return err
	}
	if settingsErr != nil {
		log.Warn(settingsErr, "settings unavailable, using defaults")
	}

	guard, err := platform.AcquireSingleInstance(appName, log)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Info("already running, asked the other instance to show itself")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.AppLogo))
	fyneApp.Lifecycle().SetOnStopped(cancel)

	desktopApp, hasTray := fyneApp.(desktop.App)
	isDesktop := !fyne.CurrentDevice().IsMobile()

	themes := theme.NewController(fyneApp.Preferences(), panels.SystemDark(fyneApp), panels.ApplyTheme(fyneApp), log)
	themes.Load()

	config := settings.WidgetConfig()
	scheduler := schedule.NewReal(fyne.Do)
	core, err := buildWidget(platformWidgetDeps(settings, scheduler, fyne.Do, log), config)
	if err != nil {
		return err
	}

	watcher := platform.NewResizeWatcher()
	simulated := platform.NewSimulatedSource(isDesktop)
	panelRouter := router.New(nil, log)

	deps := panels.Deps{
		App:       fyneApp,
		Router:    panelRouter,
		Alarm:     core.alarm,
		Countdown: core.countdown,
		Stopwatch: core.stopwatch,
		Weather:   core.weather,
		Theme:     themes,
		Scheduler: scheduler,
		Watcher:   watcher,
		Dispatch:  fyne.Do,
		Logger:    log,
	}
	if isDesktop {
		deps.Rotate = simulated.Rotate
		deps.Alert = overlay.New(fyneApp, overlay.DefaultConfig())
	}

	var trayManager *tray.Manager
	host, err := panels.New(deps, config, panels.Hooks{
		OnPanel: func(panel router.Panel) {
			if trayManager != nil {
				trayManager.SetPanel(panel)
			}
		},
		OnAlert: func(alerting bool) {
			if trayManager != nil {
				trayManager.SetAlerting(alerting)
			}
		},
	})
	if err != nil {
		return err
	}

	var loginItem *platform.LoginItem
	if isDesktop {
		loginItem = newLoginItem(log)
		syncLoginItem(loginItem, settings.StartAtLogin, log)
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if settingsPath == "" {
			log.Warn(errors.New("no settings path"), "settings not saved")
			return
		}
		if err := storage.SaveSettings(settingsPath, updated); err != nil {
			log.Error(err, "save settings")
			return
		}
		syncLoginItem(loginItem, updated.StartAtLogin, log)
		log.With("path", settingsPath).Info("settings saved, restart to apply")
	})

	if hasTray && isDesktop {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        host.Show,
			OnRotate:      simulated.Rotate,
			OnToggleTheme: func() { themes.Toggle() },
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustLogo(resources.AppLogo))
		trayManager.SetPanel(host.Active())
		host.HideOnClose()
	}

	guard.Serve(func() {
		fyne.Do(host.Show)
	})

	host.Start(ctx)
	source, err := panelRouter.Start(platform.NewDeviceSource(fyne.CurrentDevice(), watcher), simulated, platform.NewAspectSource(watcher))
	if err != nil {
		log.Warn(err, "no orientation source, showing the alarm panel")
	} else {
		log.With("source", source.Name()).Info("orientation routing started")
	}

	host.Show()
	fyneApp.Run()
	return nil
}
