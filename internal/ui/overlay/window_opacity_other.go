//go:build !windows

package overlay

// applyNativeOpacity relies on the background alpha; other platforms have no window-level call.
func (alert *Window) applyNativeOpacity(uint8) {}
