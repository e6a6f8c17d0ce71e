package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rotaclock/internal/core/router"
	"rotaclock/internal/core/schedule"
	"rotaclock/internal/core/theme"
	"rotaclock/internal/platform"
	"rotaclock/internal/storage"
	"rotaclock/internal/tui"
)

const logFileName = "rotaclock.log"

var errNotTerminal = errors.New("the terminal rendition needs an interactive terminal")

func newTUICmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the widget in the terminal",
		Long:  `Run the four panels in the terminal. ctrl+arrow keys stand in for rotating the device.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}
			return runTUI(cmd.Context(), flags)
		},
	}

	return cmd
}

func runTUI(parent context.Context, flags *rootFlags) error {
	settings, settingsPath, settingsErr := loadSettings(flags)

	logFile, err := openLogFile(settingsPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	log, err := newLogger(flags, settings, logFile)
	if err != nil {
		return err
	}
	if settingsErr != nil {
		log.Warn(settingsErr, "settings unavailable, using defaults")
	}

	prefsPath, err := storage.PreferencesPath(appName)
	if err != nil {
		return fmt.Errorf("resolve preferences path: %w", err)
	}
	prefs, err := storage.OpenPreferences(prefsPath)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	themes := theme.NewController(prefs, lipgloss.HasDarkBackground, tui.ApplyTheme, log)
	themes.Load()

	bridge := tui.NewBridge()
	defer bridge.Close()

	config := settings.WidgetConfig()
	scheduler := schedule.NewReal(bridge.Dispatch)
	core, err := buildWidget(platformWidgetDeps(settings, scheduler, bridge.Dispatch, log), config)
	if err != nil {
		return err
	}

	simulated := platform.NewSimulatedSource(true)
	panelRouter := router.New(nil, log)
	if _, err := panelRouter.Start(simulated); err != nil {
		return err
	}

	model, err := tui.NewModel(ctx, tui.Deps{
		Router:    panelRouter,
		Rotator:   simulated,
		Alarm:     core.alarm,
		Countdown: core.countdown,
		Stopwatch: core.stopwatch,
		Weather:   core.weather,
		Theme:     themes,
		Scheduler: scheduler,
		Bridge:    bridge,
		Logger:    log,
	}, config)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Attach(program)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	if err := prefs.Err(); err != nil {
		log.Warn(err, "theme preference not saved")
	}
	return nil
}

// openLogFile appends to the log next to the settings file so output never reaches the screen.
func openLogFile(settingsPath string) (*os.File, error) {
	dir := os.TempDir()
	if settingsPath != "" {
		dir = filepath.Dir(settingsPath)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
