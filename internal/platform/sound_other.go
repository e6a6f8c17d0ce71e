//go:build !linux && !darwin && !windows

package platform

func lookupPlayer() (player, error) {
	return player{}, ErrAudioUnsupported
}
