// Package clockfmt renders durations and wall-clock instants for the panels.
package clockfmt

import (
	"fmt"
	"time"
)

// Parts holds the zero-padded fields of an elapsed duration.
type Parts struct {
	Hours        string
	Minutes      string
	Seconds      string
	Centiseconds string
}

// String joins the parts as HH:MM:SS.cc.
func (parts Parts) String() string {
	return fmt.Sprintf("%s:%s:%s.%s", parts.Hours, parts.Minutes, parts.Seconds, parts.Centiseconds)
}

// Elapsed splits an elapsed duration. Hours carry past 24 without wrapping and
// centiseconds are truncated.
func Elapsed(elapsed time.Duration) Parts {
	if elapsed < 0 {
		elapsed = 0
	}
	ms := elapsed.Milliseconds()
	return Parts{
		Hours:        fmt.Sprintf("%02d", ms/3_600_000),
		Minutes:      fmt.Sprintf("%02d", (ms/60_000)%60),
		Seconds:      fmt.Sprintf("%02d", (ms/1000)%60),
		Centiseconds: fmt.Sprintf("%02d", (ms%1000)/10),
	}
}

// Countdown renders whole seconds as MM:SS. Minutes are not capped at 59.
func Countdown(remainingSeconds int) string {
	if remainingSeconds < 0 {
		remainingSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", remainingSeconds/60, remainingSeconds%60)
}

// Clock renders the time of day as HH:MM:SS.
func Clock(now time.Time) string {
	return now.Format("15:04:05")
}

// TimeOfDay renders the time of day as HH:MM.
func TimeOfDay(now time.Time) string {
	return now.Format("15:04")
}

// Date renders the long weekday and date, e.g. "Monday, October 19".
func Date(now time.Time) string {
	return now.Format("Monday, January 2")
}

// Until renders a positive delay as "5h 07m" or "45s" for status messages.
func Until(delay time.Duration) string {
	if delay < 0 {
		delay = 0
	}
	delay = delay.Round(time.Second)
	hours := int(delay / time.Hour)
	minutes := int(delay%time.Hour) / int(time.Minute)
	seconds := int(delay%time.Minute) / int(time.Second)
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %02ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
