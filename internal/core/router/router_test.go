package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	name        string
	available   bool
	orientation Orientation
	notify      func()
	registered  int
}

func (source *fakeSource) Name() string         { return source.name }
func (source *fakeSource) Current() Orientation { return source.orientation }
func (source *fakeSource) Register(notify func()) bool {
	if !source.available {
		return false
	}
	source.registered++
	source.notify = notify
	return true
}

func (source *fakeSource) rotate(orientation Orientation) {
	source.orientation = orientation
	if source.notify != nil {
		source.notify()
	}
}

func TestPanelFor(t *testing.T) {
	tests := []struct {
		orientation Orientation
		expected    Panel
	}{
		{PortraitPrimary, PanelAlarm},
		{PortraitSecondary, PanelTimer},
		{LandscapeSecondary, PanelStopwatch},
		{LandscapePrimary, PanelWeather},
		{Unknown, PanelAlarm},
		{Orientation("face-up"), PanelAlarm},
	}

	for _, tt := range tests {
		t.Run(string(tt.orientation), func(t *testing.T) {
			assert.Equal(t, tt.expected, PanelFor(tt.orientation))
		})
	}
}

func TestRoute_ExactlyOnePanelVisible(t *testing.T) {
	router := New(nil, nil)
	for _, orientation := range []Orientation{PortraitPrimary, PortraitSecondary, LandscapePrimary, LandscapeSecondary, Unknown} {
		router.Route(orientation)
		visible := 0
		for _, panel := range Panels {
			if router.Visible(panel) {
				visible++
				assert.Equal(t, PanelFor(orientation), panel)
			}
		}
		assert.Equal(t, 1, visible, orientation)
	}
}

func TestRoute_EmitsChromeColor(t *testing.T) {
	palette := DefaultPalette()
	router := New(palette, nil)
	events := router.Subscribe(4)

	router.Route(LandscapeSecondary)

	event := <-events
	assert.Equal(t, PanelStopwatch, event.Panel)
	assert.Equal(t, PanelAlarm, event.Previous)
	assert.Equal(t, palette[PanelStopwatch], event.ChromeColor)
	assert.Equal(t, palette[PanelStopwatch], router.ChromeColor())
}

func TestStart_FirstAvailableSourceWins(t *testing.T) {
	native := &fakeSource{name: "native", available: false}
	simulated := &fakeSource{name: "simulated", available: true, orientation: PortraitSecondary}
	fallback := &fakeSource{name: "fallback", available: true, orientation: LandscapePrimary}

	router := New(nil, nil)
	chosen, err := router.Start(native, simulated, fallback)
	require.NoError(t, err)

	assert.Equal(t, "simulated", chosen.Name())
	assert.Equal(t, PanelTimer, router.Active(), "startup routes once with the current reading")
	assert.Equal(t, 0, fallback.registered, "fallback must not double-fire")

	simulated.rotate(LandscapeSecondary)
	assert.Equal(t, PanelStopwatch, router.Active())
}

func TestStart_NoSourceFallsBackToAlarm(t *testing.T) {
	router := New(nil, nil)
	router.Route(LandscapePrimary)

	chosen, err := router.Start(&fakeSource{name: "none"}, nil)
	assert.ErrorIs(t, err, ErrNoOrientationSource)
	assert.Nil(t, chosen)
	assert.Equal(t, PanelAlarm, router.Active())
}
