package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultBaseURL is the OpenWeatherMap current-conditions endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

const iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"

// ErrMissingAPIKey indicates the client was built without a credential.
var ErrMissingAPIKey = errors.New("weather api key not configured")

// Coordinates is a device position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Conditions is what the weather card renders.
type Conditions struct {
	City        string
	Temperature int
	Description string
	Icon        string
}

// IconURL returns the image URL for the condition icon.
func (conditions Conditions) IconURL() string {
	if conditions.Icon == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, url.PathEscape(conditions.Icon))
}

type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// Client is an HTTP client for the current-conditions endpoint.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a weather client. Requests carry no client timeout and end with their context.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTPClient: &http.Client{},
	}
}

// Current fetches current conditions in metric units.
func (c *Client) Current(ctx context.Context, at Coordinates) (Conditions, error) {
	if c.APIKey == "" {
		return Conditions{}, ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(at.Longitude, 'f', -1, 64))
	query.Set("appid", c.APIKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return Conditions{}, fmt.Errorf("create weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Conditions{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Conditions{}, fmt.Errorf("read weather response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Conditions{}, fmt.Errorf("weather request failed with status %d", resp.StatusCode)
	}

	var payload currentResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Conditions{}, fmt.Errorf("parse weather response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return Conditions{}, errors.New("parse weather response: no conditions")
	}

	return Conditions{
		City:        payload.Name,
		Temperature: int(math.Round(payload.Main.Temp)),
		Description: payload.Weather[0].Description,
		Icon:        payload.Weather[0].Icon,
	}, nil
}
