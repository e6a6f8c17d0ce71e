package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"rotaclock/internal/core/model"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/core/soundtest"
	"rotaclock/internal/core/weather"
	"rotaclock/internal/platform"
	"rotaclock/internal/ui/preferences"
)

type noFetch struct{}

func (noFetch) Current(context.Context, weather.Coordinates) (weather.Conditions, error) {
	return weather.Conditions{}, weather.ErrMissingAPIKey
}

func TestBuildWidget(t *testing.T) {
	deps := widgetDeps{
		scheduler:  schedule.NewManual(time.Now()),
		alarmSound: &soundtest.Recorder{},
		timerSound: &soundtest.Recorder{},
		locator:    platform.DisabledLocator{},
		fetcher:    noFetch{},
	}

	core, err := buildWidget(deps, model.DefaultWidgetConfig())
	require.NoError(t, err)
	require.NotNil(t, core.alarm)
	require.NotNil(t, core.countdown)
	require.NotNil(t, core.stopwatch)
	require.NotNil(t, core.weather)

	deps.timerSound = nil
	_, err = buildWidget(deps, model.DefaultWidgetConfig())
	require.ErrorIs(t, err, model.ErrMissingDependency)
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings, resolved, err := loadSettings(&rootFlags{configPath: path})
	require.NoError(t, err)
	require.Equal(t, path, resolved)
	require.Equal(t, preferences.DefaultSettings(), settings)

	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o644))
	settings, _, err = loadSettings(&rootFlags{configPath: path})
	require.Error(t, err)
	require.Equal(t, preferences.DefaultSettings(), settings)
}

func TestNewLoggerPrefersFlagLevel(t *testing.T) {
	settings := preferences.DefaultSettings()
	buf := &bytes.Buffer{}

	log, err := newLogger(&rootFlags{logLevel: "debug"}, settings, buf)
	require.NoError(t, err)
	log.Debug("visible")
	require.Contains(t, buf.String(), "visible")

	_, err = newLogger(&rootFlags{logLevel: "chatty"}, settings, buf)
	require.Error(t, err)
}

func TestTUICommandNeedsTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal")
	}
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"tui"})

	require.ErrorIs(t, root.Execute(), errNotTerminal)
}

func TestSyncLoginItemToleratesMissingItem(t *testing.T) {
	log, err := newLogger(&rootFlags{}, preferences.DefaultSettings(), &bytes.Buffer{})
	require.NoError(t, err)
	require.NotPanics(t, func() { syncLoginItem(nil, true, log) })
}
