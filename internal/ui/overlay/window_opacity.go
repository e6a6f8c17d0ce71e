package overlay

const wsExLayered uintptr = 0x00080000

// withLayered adds the layered flag to an extended window style, reporting whether it was missing.
func withLayered(style uintptr) (uintptr, bool) {
	if style&wsExLayered != 0 {
		return style, false
	}
	return style | wsExLayered, true
}
