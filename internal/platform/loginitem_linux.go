//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

func defaultLoginDir() (string, error) {
	if configDir, err := os.UserConfigDir(); err == nil && configDir != "" {
		return configDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(homeDir, ".config"), nil
}

func (item *LoginItem) entryPath() (string, error) {
	configDir, err := item.baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", loginSlug(item.name)+".desktop"), nil
}

// Enabled reports whether the autostart desktop entry exists.
func (item *LoginItem) Enabled() bool {
	path, err := item.entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (item *LoginItem) register() error {
	path, err := item.entryPath()
	if err != nil {
		return fmt.Errorf("enable start at login: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable start at login: create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(desktopEntry(item.name, item.execPath)), 0o644); err != nil {
		return fmt.Errorf("enable start at login: write desktop entry: %w", err)
	}
	return nil
}

func (item *LoginItem) unregister() error {
	path, err := item.entryPath()
	if err != nil {
		return fmt.Errorf("disable start at login: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable start at login: remove desktop entry: %w", err)
	}
	return nil
}
