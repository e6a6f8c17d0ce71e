//go:build windows

package platform

import "fmt"

func lookupPlayer() (player, error) {
	return firstAvailable([]player{
		{name: "powershell", args: func(path string) []string {
			script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", path)
			return []string{"-NoProfile", "-NonInteractive", "-Command", script}
		}},
	})
}
