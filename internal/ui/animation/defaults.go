package animation

import "time"

// DefaultConfig returns the alert pulse timing.
func DefaultConfig() Config {
	return Config{
		Interval: 500 * time.Millisecond,
	}
}

// ConfigFor builds a config from a pulse interval, falling back to the default when unset.
func ConfigFor(interval time.Duration) Config {
	config := DefaultConfig()
	if interval > 0 {
		config.Interval = interval
	}
	return config
}
