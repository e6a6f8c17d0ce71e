//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func defaultLoginDir() (string, error) {
	return "", nil
}

// Enabled reports whether the Run key holds a value for the widget.
func (item *LoginItem) Enabled() bool {
	return exec.Command("reg", "query", registryRunKey, "/v", item.name).Run() == nil
}

func (item *LoginItem) register() error {
	output, err := exec.Command(
		"reg", "add", registryRunKey,
		"/v", item.name,
		"/t", "REG_SZ",
		"/d", quoteWindowsPath(item.execPath),
		"/f",
	).CombinedOutput()
	if err != nil {
		return fmt.Errorf("enable start at login: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (item *LoginItem) unregister() error {
	output, err := exec.Command("reg", "delete", registryRunKey, "/v", item.name, "/f").CombinedOutput()
	if err != nil {
		return fmt.Errorf("disable start at login: reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
