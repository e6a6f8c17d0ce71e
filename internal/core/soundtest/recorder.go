// Package soundtest provides a recording model.Sound for tests.
package soundtest

import "sync"

// Recorder records calls made to a sound.
type Recorder struct {
	mu       sync.Mutex
	PlayErr  error
	playing  bool
	looping  bool
	plays    int
	rewinds  int
	position int
}

// Play starts playback unless PlayErr is set.
func (recorder *Recorder) Play() error {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.plays++
	if recorder.PlayErr != nil {
		return recorder.PlayErr
	}
	recorder.playing = true
	recorder.position = 1
	return nil
}

// Pause halts playback.
func (recorder *Recorder) Pause() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.playing = false
}

// Rewind moves playback to the start.
func (recorder *Recorder) Rewind() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.rewinds++
	recorder.position = 0
}

// SetLoop sets the loop flag.
func (recorder *Recorder) SetLoop(loop bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.looping = loop
}

// Playing reports whether the sound is audible.
func (recorder *Recorder) Playing() bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.playing
}

// Looping reports the loop flag.
func (recorder *Recorder) Looping() bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.looping
}

// Plays reports how many times Play was called.
func (recorder *Recorder) Plays() int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.plays
}

// AtStart reports whether playback is rewound.
func (recorder *Recorder) AtStart() bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.position == 0
}
