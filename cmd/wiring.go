package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"rotaclock/internal/core/alarm"
	"rotaclock/internal/core/countdown"
	"rotaclock/internal/core/model"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/core/stopwatch"
	"rotaclock/internal/core/weather"
	"rotaclock/internal/logger"
	"rotaclock/internal/platform"
	"rotaclock/internal/storage"
	"rotaclock/internal/ui/preferences"
	"rotaclock/resources"
)

// widget bundles the four panel state machines shared by both renditions.
type widget struct {
	alarm     *alarm.Alarm
	countdown *countdown.Countdown
	stopwatch *stopwatch.Stopwatch
	weather   *weather.Panel
}

type widgetDeps struct {
	scheduler  schedule.Scheduler
	alarmSound model.Sound
	timerSound model.Sound
	locator    weather.Locator
	fetcher    weather.Fetcher
	dispatch   func(func())
	log        *logger.Logger
}

func buildWidget(deps widgetDeps, config model.WidgetConfig) (*widget, error) {
	alarmPanel, err := alarm.New(alarm.Deps{
		Scheduler: deps.scheduler,
		Sound:     deps.alarmSound,
		Logger:    deps.log,
	}, config.Alarm)
	if err != nil {
		return nil, fmt.Errorf("create alarm: %w", err)
	}

	timerPanel, err := countdown.New(countdown.Deps{
		Scheduler: deps.scheduler,
		Sound:     deps.timerSound,
		Logger:    deps.log,
	}, config.Countdown)
	if err != nil {
		return nil, fmt.Errorf("create timer: %w", err)
	}

	watch, err := stopwatch.New(stopwatch.Deps{
		Scheduler: deps.scheduler,
		Logger:    deps.log,
	}, config.Stopwatch)
	if err != nil {
		return nil, fmt.Errorf("create stopwatch: %w", err)
	}

	weatherPanel, err := weather.NewPanel(weather.Deps{
		Locator:  deps.locator,
		Fetcher:  deps.fetcher,
		Dispatch: deps.dispatch,
		Logger:   deps.log,
	})
	if err != nil {
		return nil, fmt.Errorf("create weather panel: %w", err)
	}

	return &widget{
		alarm:     alarmPanel,
		countdown: timerPanel,
		stopwatch: watch,
		weather:   weatherPanel,
	}, nil
}

// platformWidgetDeps wires the embedded tones, the geolocation provider and the
// weather client chosen by settings.
func platformWidgetDeps(settings preferences.Settings, scheduler schedule.Scheduler, dispatch func(func()), log *logger.Logger) widgetDeps {
	return widgetDeps{
		scheduler:  scheduler,
		alarmSound: platform.NewSound("alarm", resources.MustSound(resources.AlarmSound), log),
		timerSound: platform.NewSound("timer", resources.MustSound(resources.TimerSound), log),
		locator:    platform.LocatorFor(settings),
		fetcher:    weather.NewClient(settings.WeatherAPIKey, settings.WeatherBaseURL),
		dispatch:   dispatch,
		log:        log,
	}
}

// loadSettings resolves the settings path and reads it. Unreadable or invalid
// files fall back to defaults; the error is returned for logging.
func loadSettings(flags *rootFlags) (preferences.Settings, string, error) {
	path := flags.configPath
	if path == "" {
		resolved, err := storage.SettingsPath(appName)
		if err != nil {
			return preferences.DefaultSettings(), "", err
		}
		path = resolved
	}

	settings, err := storage.LoadSettings(path)
	if err != nil {
		return preferences.DefaultSettings(), path, err
	}
	return settings, path, nil
}

func newLogger(flags *rootFlags, settings preferences.Settings, writer io.Writer) (*logger.Logger, error) {
	level := settings.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: flags.logHuman,
		Writer:        writer,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}

// newLoginItem returns nil when the running executable cannot be resolved.
func newLoginItem(log *logger.Logger) *platform.LoginItem {
	execPath, err := os.Executable()
	if err != nil {
		log.Warn(err, "resolve executable, start at login unavailable")
		return nil
	}
	item, err := platform.NewLoginItem(appName, execPath, log)
	if err != nil {
		log.Warn(err, "start at login unavailable")
		return nil
	}
	return item
}

func syncLoginItem(item *platform.LoginItem, enabled bool, log *logger.Logger) {
	if item == nil {
		return
	}
	if err := item.Apply(enabled); err != nil {
		if errors.Is(err, platform.ErrLoginItemUnsupported) {
			log.Debug("start at login not supported here")
			return
		}
		log.Error(err, "update start at login")
	}
}
