package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains pulse timing values.
type Config struct {
	// Interval is the time spent in each of the highlighted and plain phases.
	Interval time.Duration
}

// Engine toggles an alert highlight on and off while an alert is active.
type Engine struct {
	mu      sync.Mutex
	config  Config
	update  func(highlighted bool)
	cancel  context.CancelFunc
	running bool
}

// New creates a new pulse engine. update receives every phase change and
// must hand the change to the UI loop itself.
func New(config Config, update func(highlighted bool)) *Engine {
	if config.Interval <= 0 {
		config = DefaultConfig()
	}
	return &Engine{
		config: config,
		update: update,
	}
}

// Start begins pulsing. Starting a running engine keeps the current cycle.
func (engine *Engine) Start(ctx context.Context) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.running {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.running = true
	engine.setLocked(runCtx, true)

	go engine.run(runCtx)
}

// Stop terminates the pulse and leaves the highlight off.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.running {
		return
	}
	engine.cancel()
	engine.cancel = nil
	engine.running = false
	if engine.update != nil {
		engine.update(false)
	}
}

// Sync starts or stops the pulse to follow an alert flag.
func (engine *Engine) Sync(ctx context.Context, active bool) {
	if active {
		engine.Start(ctx)
		return
	}
	engine.Stop()
}

// Running reports whether the pulse is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

func (engine *Engine) run(ctx context.Context) {
	highlighted := true
	for {
		if !sleepWithContext(ctx, engine.config.Interval) {
			return
		}
		highlighted = !highlighted

		engine.mu.Lock()
		engine.setLocked(ctx, highlighted)
		engine.mu.Unlock()
	}
}

// setLocked skips updates from a cycle that was already stopped.
func (engine *Engine) setLocked(ctx context.Context, highlighted bool) {
	if ctx.Err() != nil || engine.update == nil {
		return
	}
	engine.update(highlighted)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
