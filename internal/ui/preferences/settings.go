package preferences

import (
	"time"

	"rotaclock/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	WeatherAPIKey  string
	WeatherBaseURL string

	FixedLocation   bool
	Latitude        float64
	Longitude       float64
	LocateByIP      bool
	LocationEnabled bool

	StopwatchRefresh time.Duration
	StatusClearDelay time.Duration
	PulseInterval    time.Duration

	LogLevel     string
	StartAtLogin bool
}

// DefaultSettings returns default settings for the widget.
func DefaultSettings() Settings {
	return Settings{
		LocateByIP:       true,
		LocationEnabled:  true,
		StopwatchRefresh: 10 * time.Millisecond,
		StatusClearDelay: 3 * time.Second,
		PulseInterval:    500 * time.Millisecond,
		LogLevel:         "info",
	}
}

// WidgetConfig converts settings to the panel timings.
func (settings Settings) WidgetConfig() model.WidgetConfig {
	config := model.DefaultWidgetConfig()
	if settings.StopwatchRefresh > 0 {
		config.Stopwatch.RefreshInterval = settings.StopwatchRefresh
	}
	if settings.StatusClearDelay > 0 {
		config.Alarm.StatusClearDelay = settings.StatusClearDelay
	}
	if settings.PulseInterval > 0 {
		config.PulseInterval = settings.PulseInterval
	}
	return config
}
