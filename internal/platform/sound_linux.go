//go:build linux

package platform

func lookupPlayer() (player, error) {
	return firstAvailable([]player{
		{name: "paplay", args: func(path string) []string { return []string{path} }},
		{name: "pw-play", args: func(path string) []string { return []string{path} }},
		{name: "aplay", args: func(path string) []string { return []string{"-q", path} }},
	})
}
