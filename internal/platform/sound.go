package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"rotaclock/internal/logger"
)

// ErrAudioUnsupported indicates no audio helper binary is available.
var ErrAudioUnsupported = errors.New("audio playback unsupported")

type player struct {
	name string
	args func(path string) []string
}

// ExecSound plays an embedded clip through the platform's command-line player.
// Each Play starts the clip from its beginning, so Rewind only has to stop playback.
type ExecSound struct {
	mu     sync.Mutex
	name   string
	data   []byte
	path   string
	loop   bool
	lookup func() (player, error)
	active *playback
	log    *logger.Logger
}

type playback struct {
	cancel context.CancelFunc
}

// NewSound creates a sound for a WAV clip.
func NewSound(name string, data []byte, log *logger.Logger) *ExecSound {
	return &ExecSound{
		name:   name,
		data:   data,
		lookup: lookupPlayer,
		log:    log.With("sound", name),
	}
}

// Play starts playback. Calling Play while already playing is a no-op.
func (sound *ExecSound) Play() error {
	sound.mu.Lock()
	defer sound.mu.Unlock()

	if sound.active != nil {
		return nil
	}
	helper, err := sound.lookup()
	if err != nil {
		return err
	}
	path, err := sound.materializeLocked()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	session := &playback{cancel: cancel}
	sound.active = session
	go sound.run(ctx, session, helper, path)
	return nil
}

// Pause stops playback.
func (sound *ExecSound) Pause() {
	sound.mu.Lock()
	defer sound.mu.Unlock()
	if sound.active != nil {
		sound.active.cancel()
		sound.active = nil
	}
}

// Rewind moves playback back to the start of the clip.
func (sound *ExecSound) Rewind() {
	sound.Pause()
}

// SetLoop sets whether the clip repeats.
func (sound *ExecSound) SetLoop(loop bool) {
	sound.mu.Lock()
	defer sound.mu.Unlock()
	sound.loop = loop
}

// Playing reports whether a playback loop is active.
func (sound *ExecSound) Playing() bool {
	sound.mu.Lock()
	defer sound.mu.Unlock()
	return sound.active != nil
}

func (sound *ExecSound) run(ctx context.Context, session *playback, helper player, path string) {
	defer func() {
		sound.mu.Lock()
		session.cancel()
		if sound.active == session {
			sound.active = nil
		}
		sound.mu.Unlock()
	}()

	for {
		cmd := exec.CommandContext(ctx, helper.name, helper.args(path)...)
		err := cmd.Run()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			sound.log.Warn(err, "audio helper failed")
			return
		}

		sound.mu.Lock()
		loop := sound.loop
		sound.mu.Unlock()
		if !loop {
			return
		}
	}
}

func (sound *ExecSound) materializeLocked() (string, error) {
	if sound.path != "" {
		if _, err := os.Stat(sound.path); err == nil {
			return sound.path, nil
		}
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("rotaclock-%s.wav", sound.name))
	if err := os.WriteFile(path, sound.data, 0o644); err != nil {
		return "", fmt.Errorf("write %s clip: %w", sound.name, err)
	}
	sound.path = path
	return path, nil
}

func firstAvailable(candidates []player) (player, error) {
	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate.name); err == nil {
			candidate.name = path
			return candidate, nil
		}
	}
	return player{}, ErrAudioUnsupported
}
