// Package schedule provides the timer port used by the panel state machines.
//
// Callbacks are delivered through a Dispatcher so that every state mutation
// happens on the UI loop. A cancelled handle never runs, even when its
// callback was already queued on the dispatcher.
package schedule

import (
	"sync"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle means "none".
type Handle uint64

// Clock reports the current wall-clock instant.
type Clock interface {
	Now() time.Time
}

// Scheduler registers one-shot and periodic callbacks.
type Scheduler interface {
	Clock
	Once(delay time.Duration, fn func()) Handle
	Every(interval time.Duration, fn func()) Handle
	Cancel(handle Handle)
}

// Dispatcher runs fn on the UI loop.
type Dispatcher func(fn func())

const minInterval = time.Millisecond

// Real schedules callbacks on the Go runtime timers.
type Real struct {
	mu       sync.Mutex
	dispatch Dispatcher
	next     Handle
	active   map[Handle]func()
}

// NewReal creates a scheduler that hands callbacks to dispatch.
// A nil dispatch runs callbacks on the timer goroutine.
func NewReal(dispatch Dispatcher) *Real {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Real{
		dispatch: dispatch,
		active:   make(map[Handle]func()),
	}
}

// Now returns the system time.
func (real *Real) Now() time.Time {
	return time.Now()
}

// Once runs fn after delay.
func (real *Real) Once(delay time.Duration, fn func()) Handle {
	real.mu.Lock()
	defer real.mu.Unlock()

	real.next++
	handle := real.next
	timer := time.AfterFunc(delay, func() {
		real.dispatch(func() {
			if !real.release(handle) {
				return
			}
			fn()
		})
	})
	real.active[handle] = func() { timer.Stop() }
	return handle
}

// Every runs fn each interval until cancelled.
func (real *Real) Every(interval time.Duration, fn func()) Handle {
	if interval < minInterval {
		interval = minInterval
	}

	real.mu.Lock()
	defer real.mu.Unlock()

	real.next++
	handle := real.next
	stopCh := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				real.dispatch(func() {
					if !real.live(handle) {
						return
					}
					fn()
				})
			}
		}
	}()
	real.active[handle] = func() { close(stopCh) }
	return handle
}

// Cancel invalidates handle. Cancelling an unknown or fired handle is a no-op.
func (real *Real) Cancel(handle Handle) {
	real.mu.Lock()
	stop, ok := real.active[handle]
	delete(real.active, handle)
	real.mu.Unlock()

	if ok {
		stop()
	}
}

func (real *Real) live(handle Handle) bool {
	real.mu.Lock()
	defer real.mu.Unlock()
	_, ok := real.active[handle]
	return ok
}

func (real *Real) release(handle Handle) bool {
	real.mu.Lock()
	defer real.mu.Unlock()
	if _, ok := real.active[handle]; !ok {
		return false
	}
	delete(real.active, handle)
	return true
}
