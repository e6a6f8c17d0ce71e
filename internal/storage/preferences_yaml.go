package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const preferencesFileName = "preferences.yaml"

// PreferencesPath returns the default key-value preferences location for appName.
func PreferencesPath(appName string) (string, error) {
	return resolveConfigPath(appName, preferencesFileName)
}

// PreferencesFile is a small durable string key-value store backed by YAML.
type PreferencesFile struct {
	mu      sync.Mutex
	path    string
	values  map[string]string
	lastErr error
}

// OpenPreferences loads path, treating a missing file as empty.
func OpenPreferences(path string) (*PreferencesFile, error) {
	prefs := &PreferencesFile{path: path, values: map[string]string{}}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return nil, fmt.Errorf("read preferences file: %w", err)
	}
	if err := yaml.Unmarshal(rawData, &prefs.values); err != nil {
		return nil, fmt.Errorf("parse preferences yaml: %w", err)
	}
	if prefs.values == nil {
		prefs.values = map[string]string{}
	}
	return prefs, nil
}

// String returns the value for key or "".
func (prefs *PreferencesFile) String(key string) string {
	prefs.mu.Lock()
	defer prefs.mu.Unlock()
	return prefs.values[key]
}

// SetString stores value and writes the file. Write failures are kept for Err.
func (prefs *PreferencesFile) SetString(key, value string) {
	prefs.mu.Lock()
	defer prefs.mu.Unlock()
	prefs.values[key] = value
	prefs.lastErr = prefs.flushLocked()
}

// Err returns the last write failure, if any.
func (prefs *PreferencesFile) Err() error {
	prefs.mu.Lock()
	defer prefs.mu.Unlock()
	return prefs.lastErr
}

func (prefs *PreferencesFile) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(prefs.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	serialized, err := yaml.Marshal(prefs.values)
	if err != nil {
		return fmt.Errorf("marshal preferences yaml: %w", err)
	}
	if err := os.WriteFile(prefs.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	return nil
}
