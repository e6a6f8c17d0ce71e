package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// dispatchMsg carries a callback to run on the program's update loop.
type dispatchMsg struct {
	fn func()
}

// pulseMsg flips the alert highlight.
type pulseMsg struct {
	on bool
}

// Bridge forwards messages from timers and goroutines into a tea.Program in order.
// Messages sent before Attach are held until the program starts reading.
type Bridge struct {
	queue chan tea.Msg
	done  chan struct{}
	once  sync.Once
}

// NewBridge creates an unattached bridge.
func NewBridge() *Bridge {
	return &Bridge{
		queue: make(chan tea.Msg, 256),
		done:  make(chan struct{}),
	}
}

// Attach starts forwarding to program.
func (bridge *Bridge) Attach(program *tea.Program) {
	go func() {
		for {
			select {
			case <-bridge.done:
				return
			case msg := <-bridge.queue:
				program.Send(msg)
			}
		}
	}()
}

// Send enqueues msg. It only waits when the queue is full, so Update may call it.
func (bridge *Bridge) Send(msg tea.Msg) {
	select {
	case <-bridge.done:
	case bridge.queue <- msg:
	}
}

// Dispatch runs fn on the update loop. It satisfies schedule.Dispatcher.
func (bridge *Bridge) Dispatch(fn func()) {
	bridge.Send(dispatchMsg{fn: fn})
}

// Close stops forwarding.
func (bridge *Bridge) Close() {
	bridge.once.Do(func() { close(bridge.done) })
}
