package schedule

import (
	"sync"
	"time"
)

type manualEntry struct {
	due      time.Time
	interval time.Duration
	fn       func()
}

// Manual is a deterministic Scheduler whose clock only moves on Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	next    Handle
	pending map[Handle]*manualEntry
}

// NewManual creates a manual scheduler set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:     start,
		pending: make(map[Handle]*manualEntry),
	}
}

// Now returns the manual clock time.
func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// Once registers fn to run once the clock has advanced by delay.
func (manual *Manual) Once(delay time.Duration, fn func()) Handle {
	return manual.add(delay, 0, fn)
}

// Every registers fn to run each interval.
func (manual *Manual) Every(interval time.Duration, fn func()) Handle {
	if interval < minInterval {
		interval = minInterval
	}
	return manual.add(interval, interval, fn)
}

// Cancel drops handle.
func (manual *Manual) Cancel(handle Handle) {
	manual.mu.Lock()
	delete(manual.pending, handle)
	manual.mu.Unlock()
}

// Pending reports how many callbacks are still registered.
func (manual *Manual) Pending() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return len(manual.pending)
}

// Advance moves the clock forward by delta, firing due callbacks in time order.
func (manual *Manual) Advance(delta time.Duration) {
	manual.mu.Lock()
	target := manual.now.Add(delta)
	for {
		handle, entry := manual.earliestLocked(target)
		if entry == nil {
			break
		}
		manual.now = entry.due
		if entry.interval > 0 {
			entry.due = entry.due.Add(entry.interval)
		} else {
			delete(manual.pending, handle)
		}
		fn := entry.fn
		manual.mu.Unlock()
		fn()
		manual.mu.Lock()
	}
	manual.now = target
	manual.mu.Unlock()
}

func (manual *Manual) add(delay, interval time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.next++
	manual.pending[manual.next] = &manualEntry{
		due:      manual.now.Add(delay),
		interval: interval,
		fn:       fn,
	}
	return manual.next
}

func (manual *Manual) earliestLocked(limit time.Time) (Handle, *manualEntry) {
	var (
		bestHandle Handle
		best       *manualEntry
	)
	for handle, entry := range manual.pending {
		if entry.due.After(limit) {
			continue
		}
		if best == nil || entry.due.Before(best.due) || (entry.due.Equal(best.due) && handle < bestHandle) {
			bestHandle = handle
			best = entry
		}
	}
	return bestHandle, best
}
