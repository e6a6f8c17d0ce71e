package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rotaclock/internal/core/weather"
	"rotaclock/internal/ui/preferences"
)

// DefaultIPLocateURL is the IP geolocation endpoint.
const DefaultIPLocateURL = "https://ipwho.is/?fields=success,message,latitude,longitude"

// StaticLocator returns fixed coordinates.
type StaticLocator struct {
	Coordinates weather.Coordinates
}

// Locate returns the configured coordinates.
func (locator StaticLocator) Locate(context.Context) (weather.Coordinates, error) {
	return locator.Coordinates, nil
}

// DisabledLocator refuses every request, the way a denied permission prompt does.
type DisabledLocator struct{}

// Locate always fails with weather.ErrLocationDenied.
func (DisabledLocator) Locate(context.Context) (weather.Coordinates, error) {
	return weather.Coordinates{}, weather.ErrLocationDenied
}

// IPLocator approximates the position from the public IP address.
type IPLocator struct {
	URL        string
	HTTPClient *http.Client
}

type ipLocateResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewIPLocator creates an IP locator against url, or the default endpoint.
func NewIPLocator(url string) *IPLocator {
	if url == "" {
		url = DefaultIPLocateURL
	}
	return &IPLocator{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Locate performs a single lookup.
func (locator *IPLocator) Locate(ctx context.Context) (weather.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator.URL, nil)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("create locate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := locator.HTTPClient.Do(req)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("%w: %v", weather.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("read locate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return weather.Coordinates{}, fmt.Errorf("%w: status %d", weather.ErrLocationUnavailable, resp.StatusCode)
	}

	var payload ipLocateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Coordinates{}, fmt.Errorf("parse locate response: %w", err)
	}
	if !payload.Success {
		return weather.Coordinates{}, fmt.Errorf("%w: %s", weather.ErrLocationUnavailable, payload.Message)
	}
	return weather.Coordinates{Latitude: payload.Latitude, Longitude: payload.Longitude}, nil
}

// LocatorFor picks the geolocation provider described by settings.
func LocatorFor(settings preferences.Settings) weather.Locator {
	switch {
	case !settings.LocationEnabled:
		return DisabledLocator{}
	case settings.FixedLocation:
		return StaticLocator{Coordinates: weather.Coordinates{Latitude: settings.Latitude, Longitude: settings.Longitude}}
	case settings.LocateByIP:
		return NewIPLocator("")
	default:
		return DisabledLocator{}
	}
}
