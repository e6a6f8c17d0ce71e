//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

func defaultLoginDir() (string, error) {
	return os.UserHomeDir()
}

func (item *LoginItem) plistPath() (string, error) {
	homeDir, err := item.baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(item.name)+".plist"), nil
}

// Enabled reports whether the launch agent plist exists.
func (item *LoginItem) Enabled() bool {
	path, err := item.plistPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (item *LoginItem) register() error {
	path, err := item.plistPath()
	if err != nil {
		return fmt.Errorf("enable start at login: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable start at login: create LaunchAgents dir: %w", err)
	}
	content := launchAgentPlist(launchAgentLabel(item.name), item.execPath)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("enable start at login: write plist: %w", err)
	}
	return nil
}

func (item *LoginItem) unregister() error {
	path, err := item.plistPath()
	if err != nil {
		return fmt.Errorf("disable start at login: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable start at login: remove plist: %w", err)
	}
	return nil
}
