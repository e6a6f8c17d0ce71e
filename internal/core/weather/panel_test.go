package weather

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotaclock/internal/core/model"
)

type stubLocator struct {
	calls  atomic.Int32
	coords Coordinates
	err    error
}

func (locator *stubLocator) Locate(context.Context) (Coordinates, error) {
	locator.calls.Add(1)
	return locator.coords, locator.err
}

type stubFetcher struct {
	calls      atomic.Int32
	conditions Conditions
	err        error
	seen       Coordinates
}

func (fetcher *stubFetcher) Current(_ context.Context, at Coordinates) (Conditions, error) {
	fetcher.calls.Add(1)
	fetcher.seen = at
	return fetcher.conditions, fetcher.err
}

func waitDone(t *testing.T, panel *Panel) {
	t.Helper()
	select {
	case <-panel.Done():
	case <-time.After(time.Second):
		t.Fatal("weather sequence did not finish")
	}
}

func TestNewPanel_RequiresPorts(t *testing.T) {
	_, err := NewPanel(Deps{Fetcher: &stubFetcher{}})
	assert.ErrorIs(t, err, model.ErrMissingDependency)
	_, err = NewPanel(Deps{Locator: &stubLocator{}})
	assert.ErrorIs(t, err, model.ErrMissingDependency)
}

func TestVisible_LoadsOnce(t *testing.T) {
	locator := &stubLocator{coords: Coordinates{Latitude: 1, Longitude: 2}}
	fetcher := &stubFetcher{conditions: Conditions{City: "Lagos", Temperature: 29, Description: "clear sky", Icon: "01d"}}
	panel, err := NewPanel(Deps{Locator: locator, Fetcher: fetcher})
	require.NoError(t, err)

	assert.True(t, panel.Visible(context.Background(), 1))
	assert.False(t, panel.Visible(context.Background(), 1), "second visibility must not refetch")
	waitDone(t, panel)
	assert.False(t, panel.Visible(context.Background(), 0.5))

	snapshot := panel.Snapshot()
	assert.True(t, snapshot.Loaded)
	assert.Equal(t, StateLoaded, snapshot.State)
	assert.Equal(t, "Lagos", snapshot.Conditions.City)
	assert.Empty(t, snapshot.Error)
	assert.Equal(t, int32(1), locator.calls.Load())
	assert.Equal(t, int32(1), fetcher.calls.Load())
	assert.Equal(t, Coordinates{Latitude: 1, Longitude: 2}, fetcher.seen)
}

func TestVisible_BelowThresholdDoesNothing(t *testing.T) {
	locator := &stubLocator{}
	panel, err := NewPanel(Deps{Locator: locator, Fetcher: &stubFetcher{}})
	require.NoError(t, err)

	assert.False(t, panel.Visible(context.Background(), 0.05))
	assert.Equal(t, StateIdle, panel.Snapshot().State)
	assert.Equal(t, int32(0), locator.calls.Load())
}

func TestVisible_LocationDenied(t *testing.T) {
	fetcher := &stubFetcher{}
	panel, err := NewPanel(Deps{Locator: &stubLocator{err: ErrLocationDenied}, Fetcher: fetcher})
	require.NoError(t, err)

	panel.Visible(context.Background(), 1)
	waitDone(t, panel)

	snapshot := panel.Snapshot()
	assert.Equal(t, StateFailed, snapshot.State)
	assert.False(t, snapshot.Loaded)
	assert.Equal(t, "Unable to retrieve your location: permission denied", snapshot.Error)
	assert.Equal(t, int32(0), fetcher.calls.Load())
	assert.False(t, panel.Visible(context.Background(), 1), "no retry after failure")
}

func TestVisible_TransportFailure(t *testing.T) {
	panel, err := NewPanel(Deps{
		Locator: &stubLocator{},
		Fetcher: &stubFetcher{err: errors.New("weather request failed with status 503")},
	})
	require.NoError(t, err)
	events := panel.Subscribe(8)

	panel.Visible(context.Background(), 1)
	waitDone(t, panel)

	snapshot := panel.Snapshot()
	assert.Equal(t, StateFailed, snapshot.State)
	assert.Equal(t, "Weather unavailable: weather request failed with status 503", snapshot.Error)
	assert.Empty(t, snapshot.Conditions.City)

	var states []State
	for len(events) > 0 {
		states = append(states, (<-events).Snapshot.State)
	}
	assert.Equal(t, []State{StateLocating, StateFetching, StateFailed}, states)
}
