package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"rotaclock/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

// ErrInvalidSettings indicates the settings file failed validation.
var ErrInvalidSettings = errors.New("invalid settings")

var validate = validator.New()

type yamlSettings struct {
	WeatherAPIKey      string   `yaml:"weather_api_key,omitempty"`
	WeatherBaseURL     string   `yaml:"weather_base_url,omitempty" validate:"omitempty,url"`
	Latitude           *float64 `yaml:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude          *float64 `yaml:"longitude,omitempty" validate:"omitempty,longitude"`
	LocateByIP         *bool    `yaml:"locate_by_ip,omitempty"`
	LocationDisabled   bool     `yaml:"location_disabled,omitempty"`
	StopwatchRefreshMS int      `yaml:"stopwatch_refresh_ms,omitempty" validate:"omitempty,min=5,max=1000"`
	StatusClearSeconds int      `yaml:"status_clear_seconds,omitempty" validate:"omitempty,min=1,max=60"`
	PulseIntervalMS    int      `yaml:"pulse_interval_ms,omitempty" validate:"omitempty,min=100,max=5000"`
	LogLevel           string   `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	StartAtLogin       bool     `yaml:"start_at_login,omitempty"`
}

// SettingsPath returns the default settings location for appName.
func SettingsPath(appName string) (string, error) {
	return resolveConfigPath(appName, settingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}
	if err := validateSettings(fileData); err != nil {
		return settings, err
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	locateByIP := settings.LocateByIP
	fileData := yamlSettings{
		WeatherAPIKey:      settings.WeatherAPIKey,
		WeatherBaseURL:     settings.WeatherBaseURL,
		LocateByIP:         &locateByIP,
		LocationDisabled:   !settings.LocationEnabled,
		StopwatchRefreshMS: int(settings.StopwatchRefresh / time.Millisecond),
		StatusClearSeconds: int(settings.StatusClearDelay / time.Second),
		PulseIntervalMS:    int(settings.PulseInterval / time.Millisecond),
		LogLevel:           settings.LogLevel,
		StartAtLogin:       settings.StartAtLogin,
	}
	if settings.FixedLocation {
		latitude, longitude := settings.Latitude, settings.Longitude
		fileData.Latitude = &latitude
		fileData.Longitude = &longitude
	}
	if err := validateSettings(fileData); err != nil {
		return err
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func validateSettings(fileData yamlSettings) error {
	if err := validate.Struct(fileData); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if (fileData.Latitude == nil) != (fileData.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidSettings)
	}
	return nil
}

func resolveConfigPath(appName, fileName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, fileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	settings.WeatherAPIKey = fileData.WeatherAPIKey
	settings.WeatherBaseURL = fileData.WeatherBaseURL

	if fileData.Latitude != nil && fileData.Longitude != nil {
		settings.FixedLocation = true
		settings.Latitude = *fileData.Latitude
		settings.Longitude = *fileData.Longitude
	}
	if fileData.LocateByIP != nil {
		settings.LocateByIP = *fileData.LocateByIP
	}
	settings.LocationEnabled = !fileData.LocationDisabled
	settings.StartAtLogin = fileData.StartAtLogin

	if fileData.StopwatchRefreshMS > 0 {
		settings.StopwatchRefresh = time.Duration(fileData.StopwatchRefreshMS) * time.Millisecond
	}
	if fileData.StatusClearSeconds > 0 {
		settings.StatusClearDelay = time.Duration(fileData.StatusClearSeconds) * time.Second
	}
	if fileData.PulseIntervalMS > 0 {
		settings.PulseInterval = time.Duration(fileData.PulseIntervalMS) * time.Millisecond
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}
