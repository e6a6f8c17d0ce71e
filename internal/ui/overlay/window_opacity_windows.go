//go:build windows

package overlay

import (
	"syscall"

	"fyne.io/fyne/v2/driver"
)

// GWL_EXSTYLE is -20; the calls take it as an unsigned word.
const (
	exStyleIndex = uintptr(0xFFFFFFEC)
	lwaAlpha     = uintptr(0x2)
)

var user32 = syscall.NewLazyDLL("user32.dll")

var (
	getWindowLong = user32.NewProc("GetWindowLongPtrW")
	setWindowLong = user32.NewProc("SetWindowLongPtrW")
	setLayered    = user32.NewProc("SetLayeredWindowAttributes")
)

// applyNativeOpacity makes the whole alert window translucent.
func (alert *Window) applyNativeOpacity(alpha uint8) {
	native, ok := alert.window.(driver.NativeWindow)
	if !ok {
		return
	}
	native.RunNative(func(context any) {
		win, ok := context.(driver.WindowsWindowContext)
		if !ok || win.HWND == 0 {
			return
		}
		current, _, _ := getWindowLong.Call(win.HWND, exStyleIndex)
		if style, changed := withLayered(current); changed {
			setWindowLong.Call(win.HWND, exStyleIndex, style)
		}
		setLayered.Call(win.HWND, 0, uintptr(alpha), lwaAlpha)
	})
}
