//go:build darwin

package platform

func lookupPlayer() (player, error) {
	return firstAvailable([]player{
		{name: "afplay", args: func(path string) []string { return []string{path} }},
	})
}
