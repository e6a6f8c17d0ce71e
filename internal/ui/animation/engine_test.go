package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phases struct {
	mu     sync.Mutex
	values []bool
}

func (recorder *phases) record(highlighted bool) {
	recorder.mu.Lock()
	recorder.values = append(recorder.values, highlighted)
	recorder.mu.Unlock()
}

func (recorder *phases) snapshot() []bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]bool(nil), recorder.values...)
}

func TestEngine_PulsesUntilStopped(t *testing.T) {
	recorder := &phases{}
	engine := New(Config{Interval: 5 * time.Millisecond}, recorder.record)

	engine.Start(context.Background())
	engine.Start(context.Background())
	require.True(t, engine.Running())

	require.Eventually(t, func() bool { return len(recorder.snapshot()) >= 3 }, time.Second, time.Millisecond)
	engine.Stop()
	assert.False(t, engine.Running())

	values := recorder.snapshot()
	assert.True(t, values[0], "first phase is highlighted")
	assert.False(t, values[1])
	assert.False(t, values[len(values)-1], "stop leaves the highlight off")

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, values, recorder.snapshot(), "no updates after stop")
}

func TestEngine_SyncFollowsFlag(t *testing.T) {
	recorder := &phases{}
	engine := New(Config{Interval: time.Hour}, recorder.record)

	engine.Sync(context.Background(), false)
	assert.Empty(t, recorder.snapshot(), "stopping an idle engine is silent")

	engine.Sync(context.Background(), true)
	engine.Sync(context.Background(), false)
	assert.Equal(t, []bool{true, false}, recorder.snapshot())
}

func TestEngine_ParentCancelStopsUpdates(t *testing.T) {
	recorder := &phases{}
	engine := New(Config{Interval: 2 * time.Millisecond}, recorder.record)

	ctx, cancel := context.WithCancel(context.Background())
	engine.Start(ctx)
	cancel()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, []bool{true}, recorder.snapshot())
}

func TestConfigFor(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFor(0))
	assert.Equal(t, 250*time.Millisecond, ConfigFor(250*time.Millisecond).Interval)
}
