package model

import "time"

// AlarmConfig defines alarm panel timings.
type AlarmConfig struct {
	StatusClearDelay time.Duration
}

// CountdownConfig defines countdown panel timings.
type CountdownConfig struct {
	TickInterval time.Duration
}

// StopwatchConfig defines stopwatch panel timings.
type StopwatchConfig struct {
	RefreshInterval time.Duration
}

// WidgetConfig contains runtime settings shared by every panel state machine.
type WidgetConfig struct {
	Alarm     AlarmConfig
	Countdown CountdownConfig
	Stopwatch StopwatchConfig

	ClockRefresh  time.Duration
	PulseInterval time.Duration
}

// DefaultWidgetConfig returns the timings used when no settings file overrides them.
func DefaultWidgetConfig() WidgetConfig {
	return WidgetConfig{
		Alarm:         AlarmConfig{StatusClearDelay: 3 * time.Second},
		Countdown:     CountdownConfig{TickInterval: time.Second},
		Stopwatch:     StopwatchConfig{RefreshInterval: 10 * time.Millisecond},
		ClockRefresh:  time.Second,
		PulseInterval: 500 * time.Millisecond,
	}
}
